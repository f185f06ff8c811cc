package repository

import (
	"context"
	"errors"
	"time"

	"fazpramim/internal/domain"

	"gorm.io/gorm"
)

type ServiceRequestRepository struct {
	db *gorm.DB
}

func NewServiceRequestRepository(db *gorm.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

type serviceRequestModel struct {
	ID                  int64      `gorm:"column:id;primaryKey"`
	ProviderID          int64      `gorm:"column:provider_id;index"`
	ClientID            int64      `gorm:"column:client_id;index"`
	Description         string     `gorm:"column:description"`
	DesiredDatetime     *time.Time `gorm:"column:desired_datetime"`
	ProposedValue       *float64   `gorm:"column:proposed_value"`
	Status              string     `gorm:"column:status"`
	CompletedByClient   bool       `gorm:"column:completed_by_client"`
	CompletedByProvider bool       `gorm:"column:completed_by_provider"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (serviceRequestModel) TableName() string { return "service_requests" }

func toDomainRequest(m serviceRequestModel) *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:                  m.ID,
		ProviderID:          m.ProviderID,
		ClientID:            m.ClientID,
		Description:         m.Description,
		DesiredDatetime:     m.DesiredDatetime,
		ProposedValue:       m.ProposedValue,
		Status:              domain.RequestStatus(m.Status),
		CompletedByClient:   m.CompletedByClient,
		CompletedByProvider: m.CompletedByProvider,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toRequestModel(r *domain.ServiceRequest) serviceRequestModel {
	return serviceRequestModel{
		ID:                  r.ID,
		ProviderID:          r.ProviderID,
		ClientID:            r.ClientID,
		Description:         r.Description,
		DesiredDatetime:     r.DesiredDatetime,
		ProposedValue:       r.ProposedValue,
		Status:              string(r.Status),
		CompletedByClient:   r.CompletedByClient,
		CompletedByProvider: r.CompletedByProvider,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func (r *ServiceRequestRepository) Create(ctx context.Context, sr *domain.ServiceRequest) error {
	m := toRequestModel(sr)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*sr = *toDomainRequest(m)
	return nil
}

func (r *ServiceRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	var m serviceRequestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRequest(m), nil
}

// ListFilter narrows request listings. Exactly one of ProviderID/ClientID
// is set by the service: identity is never taken from the client payload.
type ListFilter struct {
	ProviderID    int64
	ClientID      int64
	Status        domain.RequestStatus
	CompletedView bool // order by recency of closure instead of creation
	Limit         int
	Offset        int
}

func (r *ServiceRequestRepository) List(ctx context.Context, f ListFilter) ([]domain.ServiceRequest, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := r.db.WithContext(ctx).Model(&serviceRequestModel{})
	switch {
	case f.ProviderID != 0:
		query = query.Where("provider_id = ?", f.ProviderID)
	case f.ClientID != 0:
		query = query.Where("client_id = ?", f.ClientID)
	default:
		return nil, errors.New("list filter requires an owner")
	}

	if f.Status != "" {
		query = query.Where("status = ?", string(f.Status))
	}

	order := "created_at DESC"
	if f.CompletedView {
		// created_at says nothing about when a request closed
		order = "updated_at DESC"
	}

	var rows []serviceRequestModel
	tx := query.Order(order).Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ServiceRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}

// UpdateStatus writes the new status only if the row still has the
// expected one, reporting whether anything changed. The guard makes
// concurrent accept/reject decisions race-safe: the loser sees changed ==
// false.
func (r *ServiceRequestRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&serviceRequestModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// SignalCompletion records one party's completion signal and promotes the
// request to completed when both flags hold. The flag write and the
// promotion are a single guarded UPDATE (the actor's own column plus a SQL
// CASE on the other flag) inside one transaction, so two concurrent
// signals serialize on the row and neither promotion can be lost.
func (r *ServiceRequestRepository) SignalCompletion(ctx context.Context, id int64, party domain.Party) (*domain.ServiceRequest, bool, error) {
	var (
		out   *domain.ServiceRequest
		newly bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m serviceRequestModel
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res, err := domain.ApplyCompletionSignal(
			domain.RequestStatus(m.Status),
			m.CompletedByClient,
			m.CompletedByProvider,
			party,
		)
		if err != nil {
			return err
		}
		newly = res.NewlyRecorded

		flagCol := "completed_by_client"
		otherCol := "completed_by_provider"
		if party == domain.PartyProvider {
			flagCol, otherCol = otherCol, flagCol
		}

		upd := tx.Model(&serviceRequestModel{}).
			Where("id = ? AND status = ?", id, string(domain.RequestAccepted)).
			Updates(map[string]any{
				flagCol:      true,
				"status":     gorm.Expr("CASE WHEN "+otherCol+" THEN 'completed' ELSE status END"),
				"updated_at": time.Now().UTC(),
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			// Another transaction moved the request between our read and
			// write. That is only possible once our own flag was already
			// recorded, so re-read and report idempotently.
			if err := tx.First(&m, id).Error; err != nil {
				return err
			}
			newly = false
			out = toDomainRequest(m)
			return nil
		}

		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		out = toDomainRequest(m)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, newly, nil
}
