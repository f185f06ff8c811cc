package profile

import (
	"context"
	"testing"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClientProfiles struct {
	mock.Mock
}

func (m *mockClientProfiles) GetByUserID(ctx context.Context, userID int64) (*domain.ClientProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientProfile), args.Error(1)
}

func (m *mockClientProfiles) Update(ctx context.Context, p *domain.ClientProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type mockProviderProfiles struct {
	mock.Mock
}

func (m *mockProviderProfiles) GetByID(ctx context.Context, id int64) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderProfile), args.Error(1)
}

func (m *mockProviderProfiles) GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderProfile), args.Error(1)
}

func (m *mockProviderProfiles) Update(ctx context.Context, p *domain.ProviderProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProviderProfiles) Search(ctx context.Context, q, city string, limit, offset int) ([]domain.ProviderProfile, error) {
	args := m.Called(ctx, q, city, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProviderProfile), args.Error(1)
}

type mockPortfolio struct {
	mock.Mock
}

func (m *mockPortfolio) Create(ctx context.Context, p *domain.PortfolioPhoto) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *mockPortfolio) GetByID(ctx context.Context, id int64) (*domain.PortfolioPhoto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioPhoto), args.Error(1)
}

func (m *mockPortfolio) ListByProvider(ctx context.Context, providerID int64) ([]domain.PortfolioPhoto, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PortfolioPhoto), args.Error(1)
}

func (m *mockPortfolio) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRatings struct {
	mock.Mock
}

func (m *mockRatings) ProviderSummary(ctx context.Context, providerID int64) (float64, int64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

var (
	clientIdentity   = domain.Identity{UserID: 10, Kind: domain.IdentityClient, ProfileID: 100}
	providerIdentity = domain.Identity{UserID: 20, Kind: domain.IdentityProvider, ProfileID: 5}
)

func newTestService() (*Service, *mockClientProfiles, *mockProviderProfiles, *mockPortfolio, *mockRatings) {
	clients := new(mockClientProfiles)
	providers := new(mockProviderProfiles)
	portfolio := new(mockPortfolio)
	ratings := new(mockRatings)
	return NewService(clients, providers, portfolio, ratings), clients, providers, portfolio, ratings
}

func TestGetClientProfile_OwnOnly(t *testing.T) {
	svc, clients, _, _, _ := newTestService()
	ctx := context.Background()

	clients.On("GetByUserID", ctx, int64(10)).Return(&domain.ClientProfile{ID: 100, UserID: 10}, nil)

	p, err := svc.GetClientProfile(ctx, clientIdentity)
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.ID)

	_, err = svc.GetClientProfile(ctx, providerIdentity)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateClientProfile_PartialUpdate(t *testing.T) {
	svc, clients, _, _, _ := newTestService()
	ctx := context.Background()

	clients.On("GetByUserID", ctx, int64(10)).Return(&domain.ClientProfile{
		ID:       100,
		UserID:   10,
		FullName: "Ana Souza",
		CPF:      "12345678900",
		City:     "Recife",
	}, nil)
	clients.On("Update", ctx, mock.AnythingOfType("*domain.ClientProfile")).Return(nil)

	city := "Olinda"
	p, err := svc.UpdateClientProfile(ctx, clientIdentity, UpdateClientProfileRequest{City: &city})

	require.NoError(t, err)
	assert.Equal(t, "Olinda", p.City)
	assert.Equal(t, "Ana Souza", p.FullName)
	assert.Equal(t, "12345678900", p.CPF)
}

func TestUpdateClientProfile_EmptyNameRejected(t *testing.T) {
	svc, clients, _, _, _ := newTestService()
	ctx := context.Background()

	clients.On("GetByUserID", ctx, int64(10)).Return(&domain.ClientProfile{ID: 100, UserID: 10, FullName: "Ana"}, nil)

	empty := "  "
	_, err := svc.UpdateClientProfile(ctx, clientIdentity, UpdateClientProfileRequest{FullName: &empty})

	assert.ErrorIs(t, err, ErrValidation)
	clients.AssertNotCalled(t, "Update")
}

func TestUpdateProviderProfile_NormalizesEmail(t *testing.T) {
	svc, _, providers, _, _ := newTestService()
	ctx := context.Background()

	providers.On("GetByUserID", ctx, int64(20)).Return(&domain.ProviderProfile{ID: 5, UserID: 20, FullName: "Bruno"}, nil)
	providers.On("Update", ctx, mock.AnythingOfType("*domain.ProviderProfile")).Return(nil)

	email := " Contact@BrunoLima.com "
	p, err := svc.UpdateProviderProfile(ctx, providerIdentity, UpdateProviderProfileRequest{ProfessionalEmail: &email})

	require.NoError(t, err)
	assert.Equal(t, "contact@brunolima.com", p.ProfessionalEmail)
}

func TestGetProviderPublic_AssemblesPage(t *testing.T) {
	svc, _, providers, portfolio, ratings := newTestService()
	ctx := context.Background()

	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5, FullName: "Bruno"}, nil)
	portfolio.On("ListByProvider", ctx, int64(5)).Return([]domain.PortfolioPhoto{{ID: 1, ProviderID: 5}}, nil)
	ratings.On("ProviderSummary", ctx, int64(5)).Return(4.5, int64(12), nil)

	res, err := svc.GetProviderPublic(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, 4.5, res.AverageRating)
	assert.Equal(t, int64(12), res.ReviewCount)
	assert.Len(t, res.Portfolio, 1)
}

func TestGetProviderPublic_NoReviewsIsZero(t *testing.T) {
	svc, _, providers, portfolio, ratings := newTestService()
	ctx := context.Background()

	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5}, nil)
	portfolio.On("ListByProvider", ctx, int64(5)).Return([]domain.PortfolioPhoto{}, nil)
	ratings.On("ProviderSummary", ctx, int64(5)).Return(0.0, int64(0), nil)

	res, err := svc.GetProviderPublic(ctx, 5)

	require.NoError(t, err)
	assert.Zero(t, res.AverageRating)
	assert.Zero(t, res.ReviewCount)
}

func TestGetProviderPublic_Unknown(t *testing.T) {
	svc, _, providers, _, _ := newTestService()
	ctx := context.Background()

	providers.On("GetByID", ctx, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.GetProviderPublic(ctx, 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddPortfolioPhoto_ProviderOnly(t *testing.T) {
	svc, _, _, portfolio, _ := newTestService()
	ctx := context.Background()

	portfolio.On("Create", ctx, mock.AnythingOfType("*domain.PortfolioPhoto")).Return(nil)

	photo, err := svc.AddPortfolioPhoto(ctx, providerIdentity, AddPortfolioPhotoRequest{
		PhotoURL: "/static/uploads/work.jpg",
		Title:    "Kitchen remodel",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), photo.ProviderID)

	_, err = svc.AddPortfolioPhoto(ctx, clientIdentity, AddPortfolioPhotoRequest{PhotoURL: "/x.jpg"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeletePortfolioPhoto_OwnerOnly(t *testing.T) {
	svc, _, _, portfolio, _ := newTestService()
	ctx := context.Background()

	portfolio.On("GetByID", ctx, int64(1)).Return(&domain.PortfolioPhoto{ID: 1, ProviderID: 5}, nil)
	portfolio.On("Delete", ctx, int64(1)).Return(nil)
	require.NoError(t, svc.DeletePortfolioPhoto(ctx, providerIdentity, 1))

	other := domain.Identity{UserID: 30, Kind: domain.IdentityProvider, ProfileID: 6}
	portfolio.On("GetByID", ctx, int64(2)).Return(&domain.PortfolioPhoto{ID: 2, ProviderID: 5}, nil)
	err := svc.DeletePortfolioPhoto(ctx, other, 2)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSearchProviders_PassesFilters(t *testing.T) {
	svc, _, providers, _, _ := newTestService()
	ctx := context.Background()

	providers.On("Search", ctx, "eletricista", "Recife", 20, 0).Return([]domain.ProviderProfile{{ID: 5}}, nil)

	items, err := svc.SearchProviders(ctx, "eletricista", "Recife", 20, 0)

	require.NoError(t, err)
	assert.Len(t, items, 1)
}
