package profile

import (
	"context"

	"fazpramim/internal/domain"
)

type ClientProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ClientProfile, error)
	Update(ctx context.Context, p *domain.ClientProfile) error
}

type ProviderProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ProviderProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error)
	Update(ctx context.Context, p *domain.ProviderProfile) error
	Search(ctx context.Context, q, city string, limit, offset int) ([]domain.ProviderProfile, error)
}

type PortfolioRepository interface {
	Create(ctx context.Context, p *domain.PortfolioPhoto) error
	GetByID(ctx context.Context, id int64) (*domain.PortfolioPhoto, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.PortfolioPhoto, error)
	Delete(ctx context.Context, id int64) error
}

type RatingSummarizer interface {
	ProviderSummary(ctx context.Context, providerID int64) (float64, int64, error)
}
