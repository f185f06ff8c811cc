package chat

import (
	"context"
	"testing"

	"fazpramim/internal/domain"
	"fazpramim/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChatRepo struct {
	mock.Mock
}

func (m *mockChatRepo) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = 1
	}
	return args.Error(0)
}

func (m *mockChatRepo) ListAndMarkRead(ctx context.Context, requestID, readerID int64) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, requestID, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *mockChatRepo) CountUnread(ctx context.Context, requestID, readerID int64) (int64, error) {
	args := m.Called(ctx, requestID, readerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockRequestReader struct {
	mock.Mock
}

func (m *mockRequestReader) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

var (
	clientIdentity   = domain.Identity{UserID: 10, Kind: domain.IdentityClient, ProfileID: 100}
	providerIdentity = domain.Identity{UserID: 20, Kind: domain.IdentityProvider, ProfileID: 5}
	strangerIdentity = domain.Identity{UserID: 99, Kind: domain.IdentityClient}
)

func requestWithStatus(st domain.RequestStatus) *domain.ServiceRequest {
	return &domain.ServiceRequest{ID: 1, ProviderID: 5, ClientID: 10, Status: st}
}

func TestSend_OpenChannel(t *testing.T) {
	messages := new(mockChatRepo)
	requests := new(mockRequestReader)
	svc := NewService(messages, requests)
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(requestWithStatus(domain.RequestAccepted), nil)
	messages.On("CreateMessage", ctx, mock.AnythingOfType("*domain.ChatMessage")).Return(nil)

	msg, err := svc.Send(ctx, clientIdentity, 1, SendMessageRequest{Content: " Hello "})

	require.NoError(t, err)
	assert.Equal(t, "Hello", msg.Content)
	assert.True(t, msg.IsMe)
	assert.False(t, msg.IsRead)
	messages.AssertExpectations(t)
}

func TestSend_CompletedStaysOpen(t *testing.T) {
	messages := new(mockChatRepo)
	requests := new(mockRequestReader)
	svc := NewService(messages, requests)
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(requestWithStatus(domain.RequestCompleted), nil)
	messages.On("CreateMessage", ctx, mock.AnythingOfType("*domain.ChatMessage")).Return(nil)

	_, err := svc.Send(ctx, providerIdentity, 1, SendMessageRequest{Content: "Thanks!"})

	require.NoError(t, err)
}

func TestSend_ClosedBeforeAcceptance(t *testing.T) {
	for _, st := range []domain.RequestStatus{domain.RequestPending, domain.RequestRejected} {
		messages := new(mockChatRepo)
		requests := new(mockRequestReader)
		svc := NewService(messages, requests)
		ctx := context.Background()

		requests.On("GetByID", ctx, int64(1)).Return(requestWithStatus(st), nil)

		_, err := svc.Send(ctx, clientIdentity, 1, SendMessageRequest{Content: "hi"})

		assert.ErrorIs(t, err, ErrInvalidState, "status %s", st)
		messages.AssertNotCalled(t, "CreateMessage")
	}
}

func TestSend_EmptyContent(t *testing.T) {
	svc := NewService(new(mockChatRepo), new(mockRequestReader))

	_, err := svc.Send(context.Background(), clientIdentity, 1, SendMessageRequest{Content: "   "})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestSend_StrangerForbidden(t *testing.T) {
	messages := new(mockChatRepo)
	requests := new(mockRequestReader)
	svc := NewService(messages, requests)
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(requestWithStatus(domain.RequestAccepted), nil)

	_, err := svc.Send(ctx, strangerIdentity, 1, SendMessageRequest{Content: "hi"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestList_MarksReadAndComputesIsMe(t *testing.T) {
	messages := new(mockChatRepo)
	requests := new(mockRequestReader)
	svc := NewService(messages, requests)
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(requestWithStatus(domain.RequestAccepted), nil)
	messages.On("ListAndMarkRead", ctx, int64(1), int64(20)).Return([]domain.ChatMessage{
		{ID: 1, SenderID: 10, Content: "Hello", IsRead: true},
		{ID: 2, SenderID: 20, Content: "Hi there", IsRead: false},
	}, nil)

	out, err := svc.List(ctx, providerIdentity, 1)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.False(t, out[0].IsMe)
	assert.True(t, out[1].IsMe)
	messages.AssertExpectations(t)
}

func TestList_ReadableWhilePending(t *testing.T) {
	// reading never requires an open channel, only party membership
	messages := new(mockChatRepo)
	requests := new(mockRequestReader)
	svc := NewService(messages, requests)
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(requestWithStatus(domain.RequestPending), nil)
	messages.On("ListAndMarkRead", ctx, int64(1), int64(10)).Return([]domain.ChatMessage{}, nil)

	out, err := svc.List(ctx, clientIdentity, 1)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestList_UnknownRequest(t *testing.T) {
	messages := new(mockChatRepo)
	requests := new(mockRequestReader)
	svc := NewService(messages, requests)
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.List(ctx, clientIdentity, 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnreadCount(t *testing.T) {
	messages := new(mockChatRepo)
	requests := new(mockRequestReader)
	svc := NewService(messages, requests)
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(1)).Return(requestWithStatus(domain.RequestAccepted), nil)
	messages.On("CountUnread", ctx, int64(1), int64(10)).Return(int64(3), nil)

	count, err := svc.UnreadCount(ctx, clientIdentity, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
