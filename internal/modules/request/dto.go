package request

import "time"

type CreateRequest struct {
	Description     string     `json:"description" binding:"required"`
	DesiredDatetime *time.Time `json:"desired_datetime,omitempty"`
	ProposedValue   *float64   `json:"proposed_value,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CompletionResponse tells the caller whether their signal was newly
// recorded and where the request ended up, so a UI can distinguish
// "waiting on the other party" from "service completed".
type CompletionResponse struct {
	Message             string `json:"message"`
	Status              string `json:"status"`
	CompletedByClient   bool   `json:"completed_by_client"`
	CompletedByProvider bool   `json:"completed_by_provider"`
	NewlyRecorded       bool   `json:"newly_recorded"`
}
