package repository

import (
	"context"
	"errors"
	"time"

	"fazpramim/internal/domain"

	"gorm.io/gorm"
)

type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

type portfolioPhotoModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	ProviderID  int64     `gorm:"column:provider_id;index"`
	PhotoURL    string    `gorm:"column:photo_url"`
	Title       *string   `gorm:"column:title"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (portfolioPhotoModel) TableName() string { return "portfolio_photos" }

func toDomainPortfolioPhoto(m portfolioPhotoModel) domain.PortfolioPhoto {
	return domain.PortfolioPhoto{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		PhotoURL:    m.PhotoURL,
		Title:       strOrEmpty(m.Title),
		Description: strOrEmpty(m.Description),
		CreatedAt:   m.CreatedAt,
	}
}

func (r *PortfolioRepository) Create(ctx context.Context, p *domain.PortfolioPhoto) error {
	m := portfolioPhotoModel{
		ProviderID:  p.ProviderID,
		PhotoURL:    p.PhotoURL,
		Title:       strOrNil(p.Title),
		Description: strOrNil(p.Description),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = toDomainPortfolioPhoto(m)
	return nil
}

func (r *PortfolioRepository) GetByID(ctx context.Context, id int64) (*domain.PortfolioPhoto, error) {
	var m portfolioPhotoModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	p := toDomainPortfolioPhoto(m)
	return &p, nil
}

// ListByProvider returns the provider's portfolio newest-first.
func (r *PortfolioRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.PortfolioPhoto, error) {
	var rows []portfolioPhotoModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.PortfolioPhoto, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainPortfolioPhoto(m))
	}
	return out, nil
}

func (r *PortfolioRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&portfolioPhotoModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
