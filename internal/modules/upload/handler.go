package upload

import (
	"errors"
	"net/http"

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
	protected.POST("/uploads", h.Upload)
	protected.GET("/uploads", h.ListMy)
	protected.GET("/uploads/:id", h.GetByID)
	protected.DELETE("/uploads/:id", h.Delete)
}

// Upload accepts one multipart file and returns its ID and public URL.
// @Summary		Upload a file
// @Accept		multipart/form-data
// @Security	BearerAuth
// @Param		file	formData	file	true	"File to upload"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Empty file or disallowed type"
// @Failure		413	{object}	map[string]interface{} "File too large"
// @Router		/uploads [POST]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file provided")
		return
	}

	up, err := h.svc.Upload(c.Request.Context(), middleware.Identity(c).UserID, fileHeader)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, up)
}

func (h *Handler) GetByID(c *gin.Context) {
	up, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, up)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.Identity(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListMy(c *gin.Context) {
	uploads, err := h.svc.ListByUser(c.Request.Context(), middleware.Identity(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, uploads)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Upload not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
