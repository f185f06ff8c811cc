package profile

import (
	"context"
	"errors"
	"strings"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"
)

type Service struct {
	clients   ClientProfileRepository
	providers ProviderProfileRepository
	portfolio PortfolioRepository
	ratings   RatingSummarizer
}

func NewService(clients ClientProfileRepository, providers ProviderProfileRepository, portfolio PortfolioRepository, ratings RatingSummarizer) *Service {
	return &Service{clients: clients, providers: providers, portfolio: portfolio, ratings: ratings}
}

// GetClientProfile returns the caller's own client profile.
func (s *Service) GetClientProfile(ctx context.Context, actor domain.Identity) (*domain.ClientProfile, error) {
	if !actor.IsClient() {
		return nil, ErrForbidden
	}
	p, err := s.clients.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateClientProfile applies a partial update. CPF is immutable after
// registration and has no slot in the request type.
func (s *Service) UpdateClientProfile(ctx context.Context, actor domain.Identity, req UpdateClientProfileRequest) (*domain.ClientProfile, error) {
	p, err := s.GetClientProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, ErrValidation
		}
		p.FullName = name
	}
	applyStr(req.Phone, &p.Phone)
	applyStr(req.Address, &p.Address)
	applyStr(req.City, &p.City)
	applyStr(req.State, &p.State)
	applyStr(req.ProfilePhotoURL, &p.ProfilePhotoURL)
	applyStr(req.IdentityDocumentURL, &p.IdentityDocumentURL)

	if err := s.clients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetProviderProfile(ctx context.Context, actor domain.Identity) (*domain.ProviderProfile, error) {
	if !actor.IsProvider() {
		return nil, ErrForbidden
	}
	p, err := s.providers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProviderProfile(ctx context.Context, actor domain.Identity, req UpdateProviderProfileRequest) (*domain.ProviderProfile, error) {
	p, err := s.GetProviderProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, ErrValidation
		}
		p.FullName = name
	}
	if req.ProfessionalEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*req.ProfessionalEmail))
		if email == "" {
			return nil, ErrValidation
		}
		p.ProfessionalEmail = email
	}
	applyStr(req.Phone, &p.Phone)
	applyStr(req.ServiceAddress, &p.ServiceAddress)
	applyStr(req.City, &p.City)
	applyStr(req.State, &p.State)
	applyStr(req.TechnicalQualification, &p.TechnicalQualification)
	applyStr(req.ProfilePhotoURL, &p.ProfilePhotoURL)
	applyStr(req.IdentityDocumentURL, &p.IdentityDocumentURL)
	applyStr(req.CertificationsURL, &p.CertificationsURL)

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SearchProviders is the public directory listing. No authentication
// required, so it never exposes anything beyond the public profile.
func (s *Service) SearchProviders(ctx context.Context, q, city string, limit, offset int) ([]domain.ProviderProfile, error) {
	return s.providers.Search(ctx, q, city, limit, offset)
}

// GetProviderPublic assembles the provider's public page: profile,
// portfolio newest-first, and the client-side rating aggregate.
func (s *Service) GetProviderPublic(ctx context.Context, providerID int64) (*ProviderPublicResponse, error) {
	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	photos, err := s.portfolio.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	avg, count, err := s.ratings.ProviderSummary(ctx, providerID)
	if err != nil {
		return nil, err
	}

	return &ProviderPublicResponse{
		Provider:      p,
		Portfolio:     photos,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

// AddPortfolioPhoto attaches a photo to the caller's own portfolio.
func (s *Service) AddPortfolioPhoto(ctx context.Context, actor domain.Identity, req AddPortfolioPhotoRequest) (*domain.PortfolioPhoto, error) {
	if !actor.IsProvider() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.PhotoURL) == "" {
		return nil, ErrValidation
	}

	photo := &domain.PortfolioPhoto{
		ProviderID:  actor.ProfileID,
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.portfolio.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// DeletePortfolioPhoto removes a photo, owner only.
func (s *Service) DeletePortfolioPhoto(ctx context.Context, actor domain.Identity, photoID int64) error {
	if !actor.IsProvider() {
		return ErrForbidden
	}

	photo, err := s.portfolio.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if photo.ProviderID != actor.ProfileID {
		return ErrForbidden
	}

	return s.portfolio.Delete(ctx, photoID)
}

func applyStr(src *string, dst *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
