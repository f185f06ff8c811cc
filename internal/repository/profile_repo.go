package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"fazpramim/internal/domain"

	"gorm.io/gorm"
)

type ClientProfileRepository struct {
	db *gorm.DB
}

func NewClientProfileRepository(db *gorm.DB) *ClientProfileRepository {
	return &ClientProfileRepository{db: db}
}

type clientProfileModel struct {
	ID                  int64     `gorm:"column:id;primaryKey"`
	UserID              int64     `gorm:"column:user_id;uniqueIndex"`
	FullName            string    `gorm:"column:full_name"`
	CPF                 string    `gorm:"column:cpf"`
	Phone               *string   `gorm:"column:phone"`
	Address             *string   `gorm:"column:address"`
	City                *string   `gorm:"column:city"`
	State               *string   `gorm:"column:state"`
	ProfilePhotoURL     *string   `gorm:"column:profile_photo_url"`
	IdentityDocumentURL *string   `gorm:"column:identity_document_url"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (clientProfileModel) TableName() string { return "client_profiles" }

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomainClientProfile(m clientProfileModel) *domain.ClientProfile {
	return &domain.ClientProfile{
		ID:                  m.ID,
		UserID:              m.UserID,
		FullName:            m.FullName,
		CPF:                 m.CPF,
		Phone:               strOrEmpty(m.Phone),
		Address:             strOrEmpty(m.Address),
		City:                strOrEmpty(m.City),
		State:               strOrEmpty(m.State),
		ProfilePhotoURL:     strOrEmpty(m.ProfilePhotoURL),
		IdentityDocumentURL: strOrEmpty(m.IdentityDocumentURL),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toClientProfileModel(p *domain.ClientProfile) clientProfileModel {
	return clientProfileModel{
		ID:                  p.ID,
		UserID:              p.UserID,
		FullName:            p.FullName,
		CPF:                 p.CPF,
		Phone:               strOrNil(p.Phone),
		Address:             strOrNil(p.Address),
		City:                strOrNil(p.City),
		State:               strOrNil(p.State),
		ProfilePhotoURL:     strOrNil(p.ProfilePhotoURL),
		IdentityDocumentURL: strOrNil(p.IdentityDocumentURL),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// CreateWithUser inserts the user and its client profile in one
// transaction, so a failed profile insert never leaves an orphan user.
func (r *ClientProfileRepository) CreateWithUser(ctx context.Context, u *domain.User, p *domain.ClientProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		um := toUserModel(u)
		um.Email = strings.ToLower(strings.TrimSpace(um.Email))
		if err := tx.Create(&um).Error; err != nil {
			return err
		}
		*u = *toDomainUser(um)

		pm := toClientProfileModel(p)
		pm.UserID = um.ID
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}
		*p = *toDomainClientProfile(pm)
		return nil
	})
}

func (r *ClientProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.ClientProfile, error) {
	var m clientProfileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainClientProfile(m), nil
}

func (r *ClientProfileRepository) Update(ctx context.Context, p *domain.ClientProfile) error {
	m := toClientProfileModel(p)
	tx := r.db.WithContext(ctx).
		Model(&clientProfileModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"full_name":             m.FullName,
			"phone":                 m.Phone,
			"address":               m.Address,
			"city":                  m.City,
			"state":                 m.State,
			"profile_photo_url":     m.ProfilePhotoURL,
			"identity_document_url": m.IdentityDocumentURL,
			"updated_at":            time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type ProviderProfileRepository struct {
	db *gorm.DB
}

func NewProviderProfileRepository(db *gorm.DB) *ProviderProfileRepository {
	return &ProviderProfileRepository{db: db}
}

type providerProfileModel struct {
	ID                     int64     `gorm:"column:id;primaryKey"`
	UserID                 int64     `gorm:"column:user_id;uniqueIndex"`
	FullName               string    `gorm:"column:full_name"`
	ProfessionalEmail      string    `gorm:"column:professional_email"`
	Phone                  *string   `gorm:"column:phone"`
	ServiceAddress         *string   `gorm:"column:service_address"`
	City                   *string   `gorm:"column:city"`
	State                  *string   `gorm:"column:state"`
	TechnicalQualification *string   `gorm:"column:technical_qualification"`
	ProfilePhotoURL        *string   `gorm:"column:profile_photo_url"`
	IdentityDocumentURL    *string   `gorm:"column:identity_document_url"`
	CertificationsURL      *string   `gorm:"column:certifications_url"`
	CreatedAt              time.Time `gorm:"column:created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

func (providerProfileModel) TableName() string { return "provider_profiles" }

func toDomainProviderProfile(m providerProfileModel) *domain.ProviderProfile {
	return &domain.ProviderProfile{
		ID:                     m.ID,
		UserID:                 m.UserID,
		FullName:               m.FullName,
		ProfessionalEmail:      m.ProfessionalEmail,
		Phone:                  strOrEmpty(m.Phone),
		ServiceAddress:         strOrEmpty(m.ServiceAddress),
		City:                   strOrEmpty(m.City),
		State:                  strOrEmpty(m.State),
		TechnicalQualification: strOrEmpty(m.TechnicalQualification),
		ProfilePhotoURL:        strOrEmpty(m.ProfilePhotoURL),
		IdentityDocumentURL:    strOrEmpty(m.IdentityDocumentURL),
		CertificationsURL:      strOrEmpty(m.CertificationsURL),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func toProviderProfileModel(p *domain.ProviderProfile) providerProfileModel {
	return providerProfileModel{
		ID:                     p.ID,
		UserID:                 p.UserID,
		FullName:               p.FullName,
		ProfessionalEmail:      p.ProfessionalEmail,
		Phone:                  strOrNil(p.Phone),
		ServiceAddress:         strOrNil(p.ServiceAddress),
		City:                   strOrNil(p.City),
		State:                  strOrNil(p.State),
		TechnicalQualification: strOrNil(p.TechnicalQualification),
		ProfilePhotoURL:        strOrNil(p.ProfilePhotoURL),
		IdentityDocumentURL:    strOrNil(p.IdentityDocumentURL),
		CertificationsURL:      strOrNil(p.CertificationsURL),
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

// CreateWithUser mirrors ClientProfileRepository.CreateWithUser for the
// provider side.
func (r *ProviderProfileRepository) CreateWithUser(ctx context.Context, u *domain.User, p *domain.ProviderProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		um := toUserModel(u)
		um.Email = strings.ToLower(strings.TrimSpace(um.Email))
		if err := tx.Create(&um).Error; err != nil {
			return err
		}
		*u = *toDomainUser(um)

		pm := toProviderProfileModel(p)
		pm.UserID = um.ID
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}
		*p = *toDomainProviderProfile(pm)
		return nil
	})
}

func (r *ProviderProfileRepository) GetByID(ctx context.Context, id int64) (*domain.ProviderProfile, error) {
	var m providerProfileModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainProviderProfile(m), nil
}

func (r *ProviderProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error) {
	var m providerProfileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainProviderProfile(m), nil
}

func (r *ProviderProfileRepository) Update(ctx context.Context, p *domain.ProviderProfile) error {
	m := toProviderProfileModel(p)
	tx := r.db.WithContext(ctx).
		Model(&providerProfileModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"full_name":               m.FullName,
			"professional_email":      m.ProfessionalEmail,
			"phone":                   m.Phone,
			"service_address":         m.ServiceAddress,
			"city":                    m.City,
			"state":                   m.State,
			"technical_qualification": m.TechnicalQualification,
			"profile_photo_url":       m.ProfilePhotoURL,
			"identity_document_url":   m.IdentityDocumentURL,
			"certifications_url":      m.CertificationsURL,
			"updated_at":              time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search filters the public provider directory. Free-text q matches name
// and qualification; city narrows further. Filtering happens server-side
// only.
func (r *ProviderProfileRepository) Search(ctx context.Context, q, city string, limit, offset int) ([]domain.ProviderProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := r.db.WithContext(ctx).Model(&providerProfileModel{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(COALESCE(technical_qualification, '')) LIKE ?",
			like, like,
		)
	}
	if city != "" {
		query = query.Where("LOWER(COALESCE(city, '')) = ?", strings.ToLower(city))
	}

	var rows []providerProfileModel
	tx := query.Order("full_name ASC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ProviderProfile, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProviderProfile(m))
	}
	return out, nil
}
