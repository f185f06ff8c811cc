package domain

import "time"

// ChatMessage is one message in a request's channel. Messages are
// append-only and ordered by created_at ascending. is_read is a single
// flag, not per-reader: the channel only ever has two participants, so
// "read" always means "seen by the other side".
type ChatMessage struct {
	ID               int64     `json:"id"`
	ServiceRequestID int64     `json:"service_request_id"`
	SenderID         int64     `json:"sender_id"`
	Content          string    `json:"content"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}
