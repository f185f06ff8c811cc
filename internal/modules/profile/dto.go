package profile

import "fazpramim/internal/domain"

// UpdateClientProfileRequest uses pointers so omitted fields stay
// untouched while empty strings clear them.
type UpdateClientProfileRequest struct {
	FullName            *string `json:"full_name,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	Address             *string `json:"address,omitempty"`
	City                *string `json:"city,omitempty"`
	State               *string `json:"state,omitempty"`
	ProfilePhotoURL     *string `json:"profile_photo_url,omitempty"`
	IdentityDocumentURL *string `json:"identity_document_url,omitempty"`
}

type UpdateProviderProfileRequest struct {
	FullName               *string `json:"full_name,omitempty"`
	ProfessionalEmail      *string `json:"professional_email,omitempty"`
	Phone                  *string `json:"phone,omitempty"`
	ServiceAddress         *string `json:"service_address,omitempty"`
	City                   *string `json:"city,omitempty"`
	State                  *string `json:"state,omitempty"`
	TechnicalQualification *string `json:"technical_qualification,omitempty"`
	ProfilePhotoURL        *string `json:"profile_photo_url,omitempty"`
	IdentityDocumentURL    *string `json:"identity_document_url,omitempty"`
	CertificationsURL      *string `json:"certifications_url,omitempty"`
}

type AddPortfolioPhotoRequest struct {
	PhotoURL    string `json:"photo_url" binding:"required"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProviderPublicResponse is the provider's directory page: profile,
// portfolio, and the aggregate of client ratings on completed work.
type ProviderPublicResponse struct {
	Provider      *domain.ProviderProfile `json:"provider"`
	Portfolio     []domain.PortfolioPhoto `json:"portfolio"`
	AverageRating float64                 `json:"average_rating"`
	ReviewCount   int64                   `json:"review_count"`
}
