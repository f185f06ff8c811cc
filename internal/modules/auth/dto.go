package auth

import "fazpramim/internal/domain"

// RegisterClientRequest creates the user and its client profile in one
// step. password2 must repeat password.
type RegisterClientRequest struct {
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	Password  string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	Password2 string `json:"password2" binding:"required" validate:"required"`

	FullName string `json:"full_name" binding:"required" validate:"required"`
	CPF      string `json:"cpf" binding:"required" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
}

type RegisterProviderRequest struct {
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	Password  string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	Password2 string `json:"password2" binding:"required" validate:"required"`

	FullName               string `json:"full_name" binding:"required" validate:"required"`
	ProfessionalEmail      string `json:"professional_email" binding:"required,email" validate:"required,email"`
	Phone                  string `json:"phone,omitempty"`
	ServiceAddress         string `json:"service_address,omitempty"`
	City                   string `json:"city,omitempty"`
	State                  string `json:"state,omitempty"`
	TechnicalQualification string `json:"technical_qualification,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// MeResponse is the authenticated caller plus the resolved side of the
// marketplace, with whichever profile that side carries.
type MeResponse struct {
	User            *domain.User            `json:"user"`
	Kind            string                  `json:"kind"`
	ClientProfile   *domain.ClientProfile   `json:"client_profile,omitempty"`
	ProviderProfile *domain.ProviderProfile `json:"provider_profile,omitempty"`
}
