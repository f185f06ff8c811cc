package chat

import "time"

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageResponse is one thread entry as the caller sees it. is_me is
// computed per caller, so the same message serializes differently for
// the two parties.
type MessageResponse struct {
	ID        int64     `json:"id"`
	SenderID  int64     `json:"sender_id"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	IsMe      bool      `json:"is_me"`
	CreatedAt time.Time `json:"created_at"`
}
