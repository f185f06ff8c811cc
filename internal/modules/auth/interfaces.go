package auth

import (
	"context"

	"fazpramim/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type ClientProfileRepository interface {
	CreateWithUser(ctx context.Context, u *domain.User, p *domain.ClientProfile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.ClientProfile, error)
}

type ProviderProfileRepository interface {
	CreateWithUser(ctx context.Context, u *domain.User, p *domain.ProviderProfile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
