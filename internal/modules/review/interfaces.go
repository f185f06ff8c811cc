package review

import (
	"context"

	"fazpramim/internal/domain"
)

type ReviewRepository interface {
	GetByRequestID(ctx context.Context, requestID int64) (*domain.Review, error)
	GetOrCreate(ctx context.Context, requestID int64) (*domain.Review, error)
	SetClientReview(ctx context.Context, reviewID int64, rating int, comment, photoURL string) (bool, error)
	SetProviderReview(ctx context.Context, reviewID int64, rating int, comment string) (bool, error)
}

type RequestReader interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
}
