package request

import (
	"context"
	"errors"
	"testing"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRequestRepo struct {
	mock.Mock
}

func (m *mockRequestRepo) Create(ctx context.Context, sr *domain.ServiceRequest) error {
	args := m.Called(ctx, sr)
	return args.Error(0)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *mockRequestRepo) List(ctx context.Context, f repository.ListFilter) ([]domain.ServiceRequest, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceRequest), args.Error(1)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *mockRequestRepo) SignalCompletion(ctx context.Context, id int64, party domain.Party) (*domain.ServiceRequest, bool, error) {
	args := m.Called(ctx, id, party)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Bool(1), args.Error(2)
}

type mockProviderReader struct {
	mock.Mock
}

func (m *mockProviderReader) GetByID(ctx context.Context, id int64) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderProfile), args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestService() (*Service, *mockRequestRepo, *mockProviderReader, *mockUserReader) {
	requests := new(mockRequestRepo)
	providers := new(mockProviderReader)
	users := new(mockUserReader)
	return NewService(requests, providers, users), requests, providers, users
}

var (
	clientIdentity   = domain.Identity{UserID: 10, Kind: domain.IdentityClient, ProfileID: 100}
	providerIdentity = domain.Identity{UserID: 20, Kind: domain.IdentityProvider, ProfileID: 5}
	strangerIdentity = domain.Identity{UserID: 99, Kind: domain.IdentityClient, ProfileID: 900}
)

func pendingRequest() *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:          1,
		ProviderID:  5,
		ClientID:    10,
		Description: "Fix the kitchen sink",
		Status:      domain.RequestPending,
	}
}

func acceptedRequest() *domain.ServiceRequest {
	sr := pendingRequest()
	sr.Status = domain.RequestAccepted
	return sr
}

func TestCreate_Success(t *testing.T) {
	svc, requests, providers, users := newTestService()
	ctx := context.Background()

	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5, UserID: 20}, nil)
	users.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10, PasswordHash: "secret"}, nil)
	requests.On("Create", ctx, mock.AnythingOfType("*domain.ServiceRequest")).Return(nil)

	value := 120.999
	sr, err := svc.Create(ctx, clientIdentity, 5, CreateRequest{
		Description:   "  Fix the kitchen sink  ",
		ProposedValue: &value,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, sr.Status)
	assert.Equal(t, "Fix the kitchen sink", sr.Description)
	require.NotNil(t, sr.ProposedValue)
	assert.Equal(t, 121.0, *sr.ProposedValue)
	require.NotNil(t, sr.Client)
	assert.Empty(t, sr.Client.PasswordHash)
	requests.AssertExpectations(t)
}

func TestCreate_ProviderCannotCreate(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), providerIdentity, 5, CreateRequest{Description: "hi"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreate_EmptyDescription(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), clientIdentity, 5, CreateRequest{Description: "   "})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_UnknownProvider(t *testing.T) {
	svc, _, providers, _ := newTestService()
	ctx := context.Background()

	providers.On("GetByID", ctx, int64(5)).Return(nil, repository.ErrNotFound)

	_, err := svc.Create(ctx, clientIdentity, 5, CreateRequest{Description: "hi"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_SelfTargetRejected(t *testing.T) {
	svc, _, providers, _ := newTestService()
	ctx := context.Background()

	// provider profile owned by the same user that is creating
	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5, UserID: clientIdentity.UserID}, nil)

	_, err := svc.Create(ctx, clientIdentity, 5, CreateRequest{Description: "hi"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_NegativeValue(t *testing.T) {
	svc, _, providers, _ := newTestService()
	ctx := context.Background()

	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5, UserID: 20}, nil)

	value := -1.0
	_, err := svc.Create(ctx, clientIdentity, 5, CreateRequest{Description: "hi", ProposedValue: &value})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestGet_PartiesOnly(t *testing.T) {
	svc, requests, providers, users := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(pendingRequest(), nil)
	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5}, nil)
	users.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10}, nil)

	sr, err := svc.Get(ctx, clientIdentity, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sr.ID)

	_, err = svc.Get(ctx, strangerIdentity, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGet_NotFound(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.Get(ctx, clientIdentity, 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_FiltersByIdentitySide(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	requests.On("List", ctx, repository.ListFilter{ProviderID: 5}).Return([]domain.ServiceRequest{}, nil)
	_, err := svc.List(ctx, providerIdentity, "", false, 0, 0)
	require.NoError(t, err)

	requests.On("List", ctx, repository.ListFilter{ClientID: 10}).Return([]domain.ServiceRequest{}, nil)
	_, err = svc.List(ctx, clientIdentity, "", false, 0, 0)
	require.NoError(t, err)

	requests.AssertExpectations(t)
}

func TestList_UnaffiliatedGetsEmptyList(t *testing.T) {
	svc, requests, _, _ := newTestService()

	items, err := svc.List(context.Background(), domain.Identity{UserID: 7, Kind: domain.IdentityUnaffiliated}, "", false, 0, 0)

	require.NoError(t, err)
	assert.Empty(t, items)
	requests.AssertNotCalled(t, "List")
}

func TestList_InvalidStatus(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.List(context.Background(), clientIdentity, "cancelled", false, 0, 0)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAccept_Success(t *testing.T) {
	svc, requests, providers, users := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(pendingRequest(), nil).Once()
	requests.On("UpdateStatus", ctx, int64(1), domain.RequestPending, domain.RequestAccepted).Return(true, nil)
	requests.On("GetByID", ctx, int64(1)).Return(acceptedRequest(), nil).Once()
	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5}, nil)
	users.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10}, nil)

	sr, err := svc.Accept(ctx, providerIdentity, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, sr.Status)
	requests.AssertExpectations(t)
}

func TestAccept_ClientForbidden(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(pendingRequest(), nil)

	_, err := svc.Accept(ctx, clientIdentity, 1)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReject_NotPending(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(acceptedRequest(), nil)

	_, err := svc.Reject(ctx, providerIdentity, 1)

	var te *domain.InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.RequestAccepted, te.Current)
}

func TestAccept_LostRaceReportsWinner(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	rejected := pendingRequest()
	rejected.Status = domain.RequestRejected

	requests.On("GetByID", ctx, int64(1)).Return(pendingRequest(), nil).Once()
	requests.On("UpdateStatus", ctx, int64(1), domain.RequestPending, domain.RequestAccepted).Return(false, nil)
	requests.On("GetByID", ctx, int64(1)).Return(rejected, nil).Once()

	_, err := svc.Accept(ctx, providerIdentity, 1)

	var te *domain.InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.RequestRejected, te.Current)
}

func TestUpdateStatus_CompletedIsNeverWritable(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(acceptedRequest(), nil)

	_, err := svc.UpdateStatus(ctx, providerIdentity, 1, "completed")

	var te *domain.InvalidTransitionError
	require.ErrorAs(t, err, &te)
	requests.AssertNotCalled(t, "UpdateStatus")
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), providerIdentity, 1, "archived")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	svc, requests, providers, users := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(acceptedRequest(), nil)
	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5}, nil)
	users.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10}, nil)

	sr, err := svc.UpdateStatus(ctx, providerIdentity, 1, "accepted")

	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, sr.Status)
	requests.AssertNotCalled(t, "UpdateStatus")
}

func TestSignalCompletion_FirstSignalWaits(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	after := acceptedRequest()
	after.CompletedByClient = true

	requests.On("GetByID", ctx, int64(1)).Return(acceptedRequest(), nil)
	requests.On("SignalCompletion", ctx, int64(1), domain.PartyClient).Return(after, true, nil)

	res, err := svc.SignalCompletion(ctx, clientIdentity, 1)

	require.NoError(t, err)
	assert.Equal(t, "Waiting on the other party", res.Message)
	assert.Equal(t, "accepted", res.Status)
	assert.True(t, res.CompletedByClient)
	assert.False(t, res.CompletedByProvider)
	assert.True(t, res.NewlyRecorded)
}

func TestSignalCompletion_SecondSignalCompletes(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	before := acceptedRequest()
	before.CompletedByClient = true
	after := acceptedRequest()
	after.Status = domain.RequestCompleted
	after.CompletedByClient = true
	after.CompletedByProvider = true

	requests.On("GetByID", ctx, int64(1)).Return(before, nil)
	requests.On("SignalCompletion", ctx, int64(1), domain.PartyProvider).Return(after, true, nil)

	res, err := svc.SignalCompletion(ctx, providerIdentity, 1)

	require.NoError(t, err)
	assert.Equal(t, "Service completed", res.Message)
	assert.Equal(t, "completed", res.Status)
}

func TestSignalCompletion_Idempotent(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	after := acceptedRequest()
	after.CompletedByClient = true

	requests.On("GetByID", ctx, int64(1)).Return(after, nil)
	requests.On("SignalCompletion", ctx, int64(1), domain.PartyClient).Return(after, false, nil)

	res, err := svc.SignalCompletion(ctx, clientIdentity, 1)

	require.NoError(t, err)
	assert.False(t, res.NewlyRecorded)
	assert.Equal(t, "Completion already recorded; waiting on the other party", res.Message)
}

func TestSignalCompletion_StrangerForbidden(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(acceptedRequest(), nil)

	_, err := svc.SignalCompletion(ctx, strangerIdentity, 1)

	assert.ErrorIs(t, err, ErrForbidden)
	requests.AssertNotCalled(t, "SignalCompletion")
}

func TestSignalCompletion_NotAccepted(t *testing.T) {
	svc, requests, _, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(pendingRequest(), nil)
	requests.On("SignalCompletion", ctx, int64(1), domain.PartyClient).
		Return(nil, false, &domain.InvalidTransitionError{Current: domain.RequestPending})

	_, err := svc.SignalCompletion(ctx, clientIdentity, 1)

	var te *domain.InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.RequestPending, te.Current)
}

func TestSignalCompletion_RaceIsOrderIndependent(t *testing.T) {
	// whichever party's signal lands second, the end state is identical
	for _, first := range []domain.Party{domain.PartyClient, domain.PartyProvider} {
		status := domain.RequestAccepted
		byClient, byProvider := false, false

		for _, p := range []domain.Party{first, otherParty(first)} {
			res, err := domain.ApplyCompletionSignal(status, byClient, byProvider, p)
			require.NoError(t, err)
			status, byClient, byProvider = res.Status, res.CompletedByClient, res.CompletedByProvider
		}

		assert.Equal(t, domain.RequestCompleted, status)
		assert.True(t, byClient)
		assert.True(t, byProvider)
	}
}

func otherParty(p domain.Party) domain.Party {
	if p == domain.PartyClient {
		return domain.PartyProvider
	}
	return domain.PartyClient
}

var errBoom = errors.New("boom")

func TestCreate_RepoErrorPropagates(t *testing.T) {
	svc, requests, providers, _ := newTestService()
	ctx := context.Background()

	providers.On("GetByID", ctx, int64(5)).Return(&domain.ProviderProfile{ID: 5, UserID: 20}, nil)
	requests.On("Create", ctx, mock.AnythingOfType("*domain.ServiceRequest")).Return(errBoom)

	_, err := svc.Create(ctx, clientIdentity, 5, CreateRequest{Description: "hi"})

	assert.ErrorIs(t, err, errBoom)
}
