package request

import (
	"context"
	"errors"
	"math"
	"strings"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"
)

type Service struct {
	requests  RequestRepository
	providers ProviderReader
	users     UserReader
}

func NewService(requests RequestRepository, providers ProviderReader, users UserReader) *Service {
	return &Service{requests: requests, providers: providers, users: users}
}

// Create opens a new pending request from the calling client to the
// provider. Only clients create requests, and a provider can never be
// targeted by its own user.
func (s *Service) Create(ctx context.Context, actor domain.Identity, providerID int64, req CreateRequest) (*domain.ServiceRequest, error) {
	if !actor.IsClient() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrValidation
	}

	provider, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if provider.UserID == actor.UserID {
		return nil, ErrValidation
	}

	value := req.ProposedValue
	if value != nil {
		v := math.Round(*value*100) / 100
		if v < 0 {
			return nil, ErrValidation
		}
		value = &v
	}

	sr := &domain.ServiceRequest{
		ProviderID:      provider.ID,
		ClientID:        actor.UserID,
		Description:     strings.TrimSpace(req.Description),
		DesiredDatetime: req.DesiredDatetime,
		ProposedValue:   value,
		Status:          domain.RequestPending,
	}

	if err := s.requests.Create(ctx, sr); err != nil {
		return nil, err
	}

	s.enrich(ctx, sr)
	return sr, nil
}

// Get returns the request only to its two parties.
func (s *Service) Get(ctx context.Context, actor domain.Identity, id int64) (*domain.ServiceRequest, error) {
	sr, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := actor.PartyOn(sr); !ok {
		return nil, ErrForbidden
	}
	s.enrich(ctx, sr)
	return sr, nil
}

// List returns the caller's own requests, filtered server-side by the
// resolved identity. An unaffiliated caller gets an empty list, matching
// the "empty list if no profile" contract.
func (s *Service) List(ctx context.Context, actor domain.Identity, status string, completedView bool, limit, offset int) ([]domain.ServiceRequest, error) {
	f := repository.ListFilter{
		CompletedView: completedView,
		Limit:         limit,
		Offset:        offset,
	}

	switch {
	case actor.IsProvider():
		f.ProviderID = actor.ProfileID
	case actor.IsClient():
		f.ClientID = actor.UserID
	default:
		return []domain.ServiceRequest{}, nil
	}

	if status != "" {
		st := domain.RequestStatus(status)
		if !st.Valid() {
			return nil, ErrValidation
		}
		f.Status = st
	}

	items, err := s.requests.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.enrich(ctx, &items[i])
	}
	return items, nil
}

// Accept moves a pending request to accepted. Provider-owner only.
func (s *Service) Accept(ctx context.Context, actor domain.Identity, id int64) (*domain.ServiceRequest, error) {
	return s.decide(ctx, actor, id, domain.RequestAccepted)
}

// Reject moves a pending request to rejected. Provider-owner only.
func (s *Service) Reject(ctx context.Context, actor domain.Identity, id int64) (*domain.ServiceRequest, error) {
	return s.decide(ctx, actor, id, domain.RequestRejected)
}

func (s *Service) decide(ctx context.Context, actor domain.Identity, id int64, to domain.RequestStatus) (*domain.ServiceRequest, error) {
	sr, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	party, ok := actor.PartyOn(sr)
	if !ok || party != domain.PartyProvider {
		return nil, ErrForbidden
	}
	if sr.Status != domain.RequestPending {
		return nil, &domain.InvalidTransitionError{Current: sr.Status}
	}

	changed, err := s.requests.UpdateStatus(ctx, id, domain.RequestPending, to)
	if err != nil {
		return nil, err
	}
	if !changed {
		// lost a race with another decision; report the status that won
		cur, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InvalidTransitionError{Current: cur.Status}
	}

	return s.Get(ctx, actor, id)
}

// UpdateStatus is the generic write path: the provider-owner may set
// pending/accepted/rejected, but never completed — completion only ever
// happens through the dual-confirmation signals.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Identity, id int64, newStatus string) (*domain.ServiceRequest, error) {
	st := domain.RequestStatus(newStatus)
	if !st.Valid() {
		return nil, ErrValidation
	}

	sr, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	party, ok := actor.PartyOn(sr)
	if !ok || party != domain.PartyProvider {
		return nil, ErrForbidden
	}

	if !domain.CanProviderSet(sr.Status, st) {
		return nil, &domain.InvalidTransitionError{Current: sr.Status}
	}
	if st == sr.Status {
		s.enrich(ctx, sr)
		return sr, nil
	}

	changed, err := s.requests.UpdateStatus(ctx, id, sr.Status, st)
	if err != nil {
		return nil, err
	}
	if !changed {
		cur, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InvalidTransitionError{Current: cur.Status}
	}

	return s.Get(ctx, actor, id)
}

// SignalCompletion records the caller's completion signal. Either party
// may signal on an accepted request; the second signal completes it.
func (s *Service) SignalCompletion(ctx context.Context, actor domain.Identity, id int64) (*CompletionResponse, error) {
	sr, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	party, ok := actor.PartyOn(sr)
	if !ok {
		return nil, ErrForbidden
	}

	updated, newly, err := s.requests.SignalCompletion(ctx, id, party)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	msg := "Waiting on the other party"
	if updated.Status == domain.RequestCompleted {
		msg = "Service completed"
	} else if !newly {
		msg = "Completion already recorded; waiting on the other party"
	}

	return &CompletionResponse{
		Message:             msg,
		Status:              string(updated.Status),
		CompletedByClient:   updated.CompletedByClient,
		CompletedByProvider: updated.CompletedByProvider,
		NewlyRecorded:       newly,
	}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	sr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sr, nil
}

// enrich attaches the provider and client summaries. Lookup failures are
// not fatal to the read.
func (s *Service) enrich(ctx context.Context, sr *domain.ServiceRequest) {
	if p, err := s.providers.GetByID(ctx, sr.ProviderID); err == nil {
		sr.Provider = p
	}
	if u, err := s.users.GetByID(ctx, sr.ClientID); err == nil {
		u.PasswordHash = ""
		sr.Client = u
	}
}
