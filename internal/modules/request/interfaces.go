package request

import (
	"context"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"
)

type RequestRepository interface {
	Create(ctx context.Context, sr *domain.ServiceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	List(ctx context.Context, f repository.ListFilter) ([]domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) (bool, error)
	SignalCompletion(ctx context.Context, id int64, party domain.Party) (*domain.ServiceRequest, bool, error)
}

type ProviderReader interface {
	GetByID(ctx context.Context, id int64) (*domain.ProviderProfile, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
