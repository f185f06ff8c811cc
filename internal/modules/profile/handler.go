package profile

import (
	"errors"
	"net/http"
	"strconv"

	"fazpramim/internal/middleware"
	"fazpramim/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes exposes the provider directory without auth.
func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/providers", h.SearchProviders)
	public.GET("/providers/:id", h.GetProviderPublic)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/profile/client", h.GetClientProfile)
	protected.PUT("/profile/client", h.UpdateClientProfile)
	protected.GET("/profile/provider", h.GetProviderProfile)
	protected.PUT("/profile/provider", h.UpdateProviderProfile)
	protected.POST("/providers/portfolio", h.AddPortfolioPhoto)
	protected.DELETE("/providers/portfolio/:id", h.DeletePortfolioPhoto)
}

func (h *Handler) GetClientProfile(c *gin.Context) {
	p, err := h.svc.GetClientProfile(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdateClientProfile(c *gin.Context) {
	var req UpdateClientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.svc.UpdateClientProfile(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) GetProviderProfile(c *gin.Context) {
	p, err := h.svc.GetProviderProfile(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdateProviderProfile(c *gin.Context) {
	var req UpdateProviderProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.svc.UpdateProviderProfile(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// SearchProviders lists the public directory.
// @Summary		Search providers
// @Param		q		query	string	false	"Free-text match on name and qualification"
// @Param		city	query	string	false	"Exact city filter"
// @Success		200	{object}	map[string]interface{}
// @Router		/providers [GET]
func (h *Handler) SearchProviders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.SearchProviders(c.Request.Context(), c.Query("q"), c.Query("city"), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetProviderPublic(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid provider ID")
		return
	}

	res, err := h.svc.GetProviderPublic(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) AddPortfolioPhoto(c *gin.Context) {
	var req AddPortfolioPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	photo, err := h.svc.AddPortfolioPhoto(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, photo)
}

func (h *Handler) DeletePortfolioPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID")
		return
	}

	if err := h.svc.DeletePortfolioPhoto(c.Request.Context(), middleware.Identity(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
