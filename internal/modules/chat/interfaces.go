package chat

import (
	"context"

	"fazpramim/internal/domain"
)

type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListAndMarkRead(ctx context.Context, requestID, readerID int64) ([]domain.ChatMessage, error)
	CountUnread(ctx context.Context, requestID, readerID int64) (int64, error)
}

type RequestReader interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
}
