package review

import (
	"context"
	"errors"
	"strings"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	requests RequestReader
}

func NewService(reviews ReviewRepository, requests RequestReader) *Service {
	return &Service{reviews: reviews, requests: requests}
}

// Submit records the caller's side of the review. Only parties to a
// completed request may review, each side exactly once, and the two
// sides are independent. The photo slot exists on the client side only.
func (s *Service) Submit(ctx context.Context, actor domain.Identity, requestID int64, req SubmitReviewRequest) (*ReviewResponse, error) {
	if !domain.ValidRating(req.Rating) {
		return nil, ErrValidation
	}

	sr, party, err := s.loadAsParty(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}
	if sr.Status != domain.RequestCompleted {
		return nil, ErrInvalidState
	}
	if party == domain.PartyProvider && strings.TrimSpace(req.PhotoURL) != "" {
		return nil, ErrValidation
	}

	rec, err := s.reviews.GetOrCreate(ctx, requestID)
	if err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(req.Comment)
	var changed bool
	switch party {
	case domain.PartyClient:
		changed, err = s.reviews.SetClientReview(ctx, rec.ID, req.Rating, comment, strings.TrimSpace(req.PhotoURL))
	case domain.PartyProvider:
		changed, err = s.reviews.SetProviderReview(ctx, rec.ID, req.Rating, comment)
	}
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrAlreadyReviewed
	}

	rec, err = s.reviews.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return toResponse(rec), nil
}

// Get returns the request's review record to its parties. A request with
// no submissions yet reads as not found.
func (s *Service) Get(ctx context.Context, actor domain.Identity, requestID int64) (*ReviewResponse, error) {
	if _, _, err := s.loadAsParty(ctx, actor, requestID); err != nil {
		return nil, err
	}

	rec, err := s.reviews.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toResponse(rec), nil
}

func (s *Service) loadAsParty(ctx context.Context, actor domain.Identity, requestID int64) (*domain.ServiceRequest, domain.Party, error) {
	sr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	party, ok := actor.PartyOn(sr)
	if !ok {
		return nil, "", ErrForbidden
	}
	return sr, party, nil
}
