package domain

import "time"

// ClientProfile holds the client-side registration data, 1:1 with a user.
type ClientProfile struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	FullName            string    `json:"full_name"`
	CPF                 string    `json:"cpf"`
	Phone               string    `json:"phone,omitempty"`
	Address             string    `json:"address,omitempty"`
	City                string    `json:"city,omitempty"`
	State               string    `json:"state,omitempty"`
	ProfilePhotoURL     string    `json:"profile_photo_url,omitempty"`
	IdentityDocumentURL string    `json:"identity_document_url,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ProviderProfile is the public face of a service provider.
type ProviderProfile struct {
	ID                     int64     `json:"id"`
	UserID                 int64     `json:"user_id"`
	FullName               string    `json:"full_name"`
	ProfessionalEmail      string    `json:"professional_email"`
	Phone                  string    `json:"phone,omitempty"`
	ServiceAddress         string    `json:"service_address,omitempty"`
	City                   string    `json:"city,omitempty"`
	State                  string    `json:"state,omitempty"`
	TechnicalQualification string    `json:"technical_qualification,omitempty"`
	ProfilePhotoURL        string    `json:"profile_photo_url,omitempty"`
	IdentityDocumentURL    string    `json:"identity_document_url,omitempty"`
	CertificationsURL      string    `json:"certifications_url,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// PortfolioPhoto is one photo on a provider's public portfolio.
type PortfolioPhoto struct {
	ID          int64     `json:"id"`
	ProviderID  int64     `json:"provider_id"`
	PhotoURL    string    `json:"photo_url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
