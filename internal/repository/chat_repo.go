package repository

import (
	"context"
	"time"

	"fazpramim/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

type chatMessageModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	ServiceRequestID int64     `gorm:"column:service_request_id;index"`
	SenderID         int64     `gorm:"column:sender_id"`
	Content          string    `gorm:"column:content"`
	IsRead           bool      `gorm:"column:is_read"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (chatMessageModel) TableName() string { return "chat_messages" }

func toDomainMessage(m chatMessageModel) domain.ChatMessage {
	return domain.ChatMessage{
		ID:               m.ID,
		ServiceRequestID: m.ServiceRequestID,
		SenderID:         m.SenderID,
		Content:          m.Content,
		IsRead:           m.IsRead,
		CreatedAt:        m.CreatedAt,
	}
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	m := chatMessageModel{
		ServiceRequestID: msg.ServiceRequestID,
		SenderID:         msg.SenderID,
		Content:          msg.Content,
		IsRead:           false,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*msg = toDomainMessage(m)
	return nil
}

// ListAndMarkRead returns the request's thread oldest-first and, in the
// same transaction, marks every message not sent by the reader as read.
// Reading is the only way a message becomes read; there is no unmark.
func (r *ChatRepository) ListAndMarkRead(ctx context.Context, requestID, readerID int64) ([]domain.ChatMessage, error) {
	var rows []chatMessageModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upd := tx.Model(&chatMessageModel{}).
			Where("service_request_id = ? AND sender_id <> ? AND is_read = ?", requestID, readerID, false).
			Update("is_read", true)
		if upd.Error != nil {
			return upd.Error
		}

		return tx.
			Where("service_request_id = ?", requestID).
			Order("created_at ASC, id ASC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.ChatMessage, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainMessage(m))
	}
	return out, nil
}

func (r *ChatRepository) CountUnread(ctx context.Context, requestID, readerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&chatMessageModel{}).
		Where("service_request_id = ? AND sender_id <> ? AND is_read = ?", requestID, readerID, false).
		Count(&count).Error
	return count, err
}
