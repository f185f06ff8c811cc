package review

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
	protected.POST("/requests/:id/review", h.Submit)
	protected.GET("/requests/:id/review", h.Get)
}

// Submit records the caller's rating for a completed request.
// @Summary		Submit a review
// @Security	BearerAuth
// @Param		id		path	int					true	"Request ID"
// @Param		review	body	SubmitReviewRequest	true	"Rating, comment and optional photo"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Invalid rating, wrong state, or already reviewed"
// @Router		/requests/:id/review [POST]
func (h *Handler) Submit(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.svc.Submit(c.Request.Context(), middleware.Identity(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	res, err := h.svc.Get(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusBadRequest, "INVALID_STATE", "Reviews open only after the request is completed")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusBadRequest, "ALREADY_REVIEWED", "You have already reviewed this request")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a party to this request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
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
