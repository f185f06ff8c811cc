package auth

import (
	"context"
	"errors"
	"strings"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users     UserRepository
	clients   ClientProfileRepository
	providers ProviderProfileRepository
	tokens    TokenIssuer
}

func NewService(users UserRepository, clients ClientProfileRepository, providers ProviderProfileRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, clients: clients, providers: providers, tokens: tokens}
}

// RegisterClient creates a user plus client profile atomically and logs
// the new account in.
func (s *Service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*AuthResponse, error) {
	if req.Password != req.Password2 {
		return nil, ErrValidation
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if exists, err := s.users.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		Name:         strings.TrimSpace(req.FullName),
	}
	profile := &domain.ClientProfile{
		FullName: strings.TrimSpace(req.FullName),
		CPF:      strings.TrimSpace(req.CPF),
		Phone:    strings.TrimSpace(req.Phone),
		Address:  strings.TrimSpace(req.Address),
		City:     strings.TrimSpace(req.City),
		State:    strings.TrimSpace(req.State),
	}

	if err := s.clients.CreateWithUser(ctx, user, profile); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *Service) RegisterProvider(ctx context.Context, req RegisterProviderRequest) (*AuthResponse, error) {
	if req.Password != req.Password2 {
		return nil, ErrValidation
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if exists, err := s.users.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleProvider,
		Name:         strings.TrimSpace(req.FullName),
	}
	profile := &domain.ProviderProfile{
		FullName:               strings.TrimSpace(req.FullName),
		ProfessionalEmail:      strings.ToLower(strings.TrimSpace(req.ProfessionalEmail)),
		Phone:                  strings.TrimSpace(req.Phone),
		ServiceAddress:         strings.TrimSpace(req.ServiceAddress),
		City:                   strings.TrimSpace(req.City),
		State:                  strings.TrimSpace(req.State),
		TechnicalQualification: strings.TrimSpace(req.TechnicalQualification),
	}

	if err := s.providers.CreateWithUser(ctx, user, profile); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetMe returns the caller's account and whichever profile the resolved
// identity carries. An unaffiliated identity yields user data only.
func (s *Service) GetMe(ctx context.Context, actor domain.Identity) (*MeResponse, error) {
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	res := &MeResponse{User: user, Kind: string(actor.Kind)}
	switch {
	case actor.IsClient():
		if p, err := s.clients.GetByUserID(ctx, actor.UserID); err == nil {
			res.ClientProfile = p
		}
	case actor.IsProvider():
		if p, err := s.providers.GetByUserID(ctx, actor.UserID); err == nil {
			res.ProviderProfile = p
		}
	}
	return res, nil
}

func (s *Service) issue(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	out := *user
	out.PasswordHash = ""
	return &AuthResponse{Token: token, User: &out}, nil
}
