package review

import (
	"time"

	"fazpramim/internal/domain"
)

type SubmitReviewRequest struct {
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// ReviewResponse exposes the shared record plus derived per-side flags,
// so a UI can tell "not reviewed yet" apart from "reviewed without a
// comment".
type ReviewResponse struct {
	ID               int64 `json:"id"`
	ServiceRequestID int64 `json:"service_request_id"`

	ClientRating     *int       `json:"client_rating,omitempty"`
	ClientComment    string     `json:"client_comment,omitempty"`
	ClientPhotoURL   string     `json:"client_photo_url,omitempty"`
	ClientReviewedAt *time.Time `json:"client_reviewed_at,omitempty"`

	ProviderRating     *int       `json:"provider_rating,omitempty"`
	ProviderComment    string     `json:"provider_comment,omitempty"`
	ProviderReviewedAt *time.Time `json:"provider_reviewed_at,omitempty"`

	ClientHasReviewed   bool `json:"client_has_reviewed"`
	ProviderHasReviewed bool `json:"provider_has_reviewed"`
}

func toResponse(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:                  r.ID,
		ServiceRequestID:    r.ServiceRequestID,
		ClientRating:        r.ClientRating,
		ClientComment:       r.ClientComment,
		ClientPhotoURL:      r.ClientPhotoURL,
		ClientReviewedAt:    r.ClientReviewedAt,
		ProviderRating:      r.ProviderRating,
		ProviderComment:     r.ProviderComment,
		ProviderReviewedAt:  r.ProviderReviewedAt,
		ClientHasReviewed:   r.ClientHasReviewed(),
		ProviderHasReviewed: r.ProviderHasReviewed(),
	}
}
