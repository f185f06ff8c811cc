package request

import (
	"errors"
	"net/http"
	"strconv"

	"fazpramim/internal/domain"
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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/providers/:id/requests", h.Create)
	protected.GET("/requests", h.List)
	protected.GET("/requests/:id", h.Get)
	protected.PATCH("/requests/:id", h.UpdateStatus)
	protected.POST("/requests/:id/accept", h.Accept)
	protected.POST("/requests/:id/reject", h.Reject)
	protected.POST("/requests/:id/complete", h.SignalCompletion)
}

// Create opens a service request from the authenticated client to the
// provider in the URL.
// @Summary		Create a service request
// @Security	BearerAuth
// @Param		id		path	int				true	"Provider ID"
// @Param		request	body	CreateRequest	true	"Request data"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		401	{object}	map[string]interface{} "Authentication required"
// @Router		/providers/:id/requests [POST]
func (h *Handler) Create(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || providerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid provider ID")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sr, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), providerID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sr)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	sr, err := h.svc.Get(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sr)
}

// List returns the caller's own requests. ?status= narrows by lifecycle
// state; ?view=completed orders by recency of closure.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	completedView := c.Query("view") == "completed"
	status := c.Query("status")
	if completedView && status == "" {
		status = string(domain.RequestCompleted)
	}

	items, err := h.svc.List(c.Request.Context(), middleware.Identity(c), status, completedView, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Accept(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	sr, err := h.svc.Accept(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sr)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	sr, err := h.svc.Reject(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sr)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sr, err := h.svc.UpdateStatus(c.Request.Context(), middleware.Identity(c), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sr)
}

// SignalCompletion records the caller's completion signal and reports
// both flags so the UI can say who is still pending.
// @Summary		Signal completion
// @Security	BearerAuth
// @Param		id	path	int	true	"Request ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Not in accepted state"
// @Failure		403	{object}	map[string]interface{} "Not a party to the request"
// @Router		/requests/:id/complete [POST]
func (h *Handler) SignalCompletion(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	res, err := h.svc.SignalCompletion(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var te *domain.InvalidTransitionError
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a party to this request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
	case errors.As(err, &te):
		response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", te.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func requestID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return 0, false
	}
	return id, true
}
