package chat

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/requests/:id/messages", h.List)
	protected.POST("/requests/:id/messages", h.Send)
	protected.GET("/requests/:id/messages/unread", h.UnreadCount)
}

func (h *Handler) List(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	msgs, err := h.svc.List(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, msgs)
}

func (h *Handler) Send(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), middleware.Identity(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	count, err := h.svc.UnreadCount(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusBadRequest, "INVALID_STATE", "Chat is closed until the request is accepted")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a party to this request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
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
