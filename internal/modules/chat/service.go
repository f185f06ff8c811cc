package chat

import (
	"context"
	"errors"
	"strings"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"
)

type Service struct {
	messages ChatRepository
	requests RequestReader
}

func NewService(messages ChatRepository, requests RequestReader) *Service {
	return &Service{messages: messages, requests: requests}
}

// Send appends a message to the request's channel. Both parties may read
// any time, but writing requires the channel to be open (accepted or
// completed).
func (s *Service) Send(ctx context.Context, actor domain.Identity, requestID int64, req SendMessageRequest) (*MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrValidation
	}

	sr, err := s.loadAsParty(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}
	if !domain.ChatOpen(sr.Status) {
		return nil, ErrInvalidState
	}

	msg := &domain.ChatMessage{
		ServiceRequestID: requestID,
		SenderID:         actor.UserID,
		Content:          content,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	out := toResponse(*msg, actor.UserID)
	return &out, nil
}

// List returns the full thread oldest-first and marks the other side's
// messages as read as a side effect of the read.
func (s *Service) List(ctx context.Context, actor domain.Identity, requestID int64) ([]MessageResponse, error) {
	if _, err := s.loadAsParty(ctx, actor, requestID); err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListAndMarkRead(ctx, requestID, actor.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toResponse(m, actor.UserID))
	}
	return out, nil
}

// UnreadCount reports messages the caller has not read yet, without
// touching read flags.
func (s *Service) UnreadCount(ctx context.Context, actor domain.Identity, requestID int64) (int64, error) {
	if _, err := s.loadAsParty(ctx, actor, requestID); err != nil {
		return 0, err
	}
	return s.messages.CountUnread(ctx, requestID, actor.UserID)
}

func (s *Service) loadAsParty(ctx context.Context, actor domain.Identity, requestID int64) (*domain.ServiceRequest, error) {
	sr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, ok := actor.PartyOn(sr); !ok {
		return nil, ErrForbidden
	}
	return sr, nil
}

func toResponse(m domain.ChatMessage, viewerID int64) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		IsRead:    m.IsRead,
		IsMe:      m.SenderID == viewerID,
		CreatedAt: m.CreatedAt,
	}
}
