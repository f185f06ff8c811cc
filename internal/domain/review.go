package domain

import "time"

// Review is the shared record holding both one-sided assessments of a
// completed request. It is created lazily on the first submission from
// either side; each side's rating is write-once.
type Review struct {
	ID               int64 `json:"id"`
	ServiceRequestID int64 `json:"service_request_id"`

	ClientRating     *int       `json:"client_rating,omitempty"`
	ClientComment    string     `json:"client_comment,omitempty"`
	ClientPhotoURL   string     `json:"client_photo_url,omitempty"`
	ClientReviewedAt *time.Time `json:"client_reviewed_at,omitempty"`

	ProviderRating     *int       `json:"provider_rating,omitempty"`
	ProviderComment    string     `json:"provider_comment,omitempty"`
	ProviderReviewedAt *time.Time `json:"provider_reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) ClientHasReviewed() bool   { return r.ClientRating != nil }
func (r *Review) ProviderHasReviewed() bool { return r.ProviderRating != nil }

// ValidRating checks the 1-5 star domain. Zero is not a rating; callers
// must treat "no reviews" and "rating of zero" as different things.
func ValidRating(v int) bool { return v >= 1 && v <= 5 }
