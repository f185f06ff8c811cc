package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"fazpramim/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID               int64 `gorm:"column:id;primaryKey"`
	ServiceRequestID int64 `gorm:"column:service_request_id;uniqueIndex"`

	ClientRating     *int       `gorm:"column:client_rating"`
	ClientComment    *string    `gorm:"column:client_comment"`
	ClientPhotoURL   *string    `gorm:"column:client_photo_url"`
	ClientReviewedAt *time.Time `gorm:"column:client_reviewed_at"`

	ProviderRating     *int       `gorm:"column:provider_rating"`
	ProviderComment    *string    `gorm:"column:provider_comment"`
	ProviderReviewedAt *time.Time `gorm:"column:provider_reviewed_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:                 m.ID,
		ServiceRequestID:   m.ServiceRequestID,
		ClientRating:       m.ClientRating,
		ClientComment:      strOrEmpty(m.ClientComment),
		ClientPhotoURL:     strOrEmpty(m.ClientPhotoURL),
		ClientReviewedAt:   m.ClientReviewedAt,
		ProviderRating:     m.ProviderRating,
		ProviderComment:    strOrEmpty(m.ProviderComment),
		ProviderReviewedAt: m.ProviderReviewedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (r *ReviewRepository) GetByRequestID(ctx context.Context, requestID int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).Where("service_request_id = ?", requestID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

// GetOrCreate fetches the request's shared review record, lazily creating
// it on the first rating attempt from either side. A concurrent first
// attempt loses the insert on the unique service_request_id and falls back
// to reading the winner's row.
func (r *ReviewRepository) GetOrCreate(ctx context.Context, requestID int64) (*domain.Review, error) {
	m := reviewModel{ServiceRequestID: requestID}
	tx := r.db.WithContext(ctx).
		Where("service_request_id = ?", requestID).
		FirstOrCreate(&m)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return r.GetByRequestID(ctx, requestID)
		}
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

// SetClientReview writes the client's side of the review exactly once.
// The IS NULL guard makes the write-once rule atomic: a second attempt
// changes no rows and the caller reports ALREADY_REVIEWED.
func (r *ReviewRepository) SetClientReview(ctx context.Context, reviewID int64, rating int, comment, photoURL string) (bool, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("id = ? AND client_rating IS NULL", reviewID).
		Updates(map[string]any{
			"client_rating":      rating,
			"client_comment":     strOrNil(comment),
			"client_photo_url":   strOrNil(photoURL),
			"client_reviewed_at": now,
			"updated_at":         now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ReviewRepository) SetProviderReview(ctx context.Context, reviewID int64, rating int, comment string) (bool, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("id = ? AND provider_rating IS NULL", reviewID).
		Updates(map[string]any{
			"provider_rating":      rating,
			"provider_comment":     strOrNil(comment),
			"provider_reviewed_at": now,
			"updated_at":           now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ProviderSummary aggregates client ratings across the provider's
// completed, client-reviewed requests. Zero reviews is (0, 0), not an
// error.
func (r *ReviewRepository) ProviderSummary(ctx context.Context, providerID int64) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	q := `
SELECT AVG(rv.client_rating) AS avg, COUNT(rv.client_rating) AS count
FROM reviews rv
JOIN service_requests sr ON sr.id = rv.service_request_id
WHERE sr.provider_id = ?
  AND sr.status = 'completed'
  AND rv.client_rating IS NOT NULL
`
	tx := r.db.WithContext(ctx).Raw(q, providerID).Scan(&row)
	if tx.Error != nil {
		return 0, 0, tx.Error
	}
	if row.Avg == nil {
		return 0, 0, nil
	}
	return *row.Avg, row.Count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite reports constraint failures by message only
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "23505")
}
