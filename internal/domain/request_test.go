package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanProviderSet(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		want     bool
	}{
		{RequestPending, RequestAccepted, true},
		{RequestPending, RequestRejected, true},
		{RequestPending, RequestPending, true},
		{RequestPending, RequestCompleted, false},
		{RequestAccepted, RequestCompleted, false},
		{RequestAccepted, RequestRejected, false},
		{RequestAccepted, RequestPending, false},
		{RequestAccepted, RequestAccepted, true},
		{RequestRejected, RequestAccepted, false},
		{RequestCompleted, RequestAccepted, false},
		{RequestCompleted, RequestPending, false},
		{RequestPending, RequestStatus("bogus"), false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanProviderSet(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplyCompletionSignal_FirstSignalKeepsAccepted(t *testing.T) {
	res, err := ApplyCompletionSignal(RequestAccepted, false, false, PartyClient)
	require.NoError(t, err)

	assert.Equal(t, RequestAccepted, res.Status)
	assert.True(t, res.CompletedByClient)
	assert.False(t, res.CompletedByProvider)
	assert.True(t, res.NewlyRecorded)
}

func TestApplyCompletionSignal_SecondPartyCompletes(t *testing.T) {
	res, err := ApplyCompletionSignal(RequestAccepted, true, false, PartyProvider)
	require.NoError(t, err)

	assert.Equal(t, RequestCompleted, res.Status)
	assert.True(t, res.CompletedByClient)
	assert.True(t, res.CompletedByProvider)
	assert.True(t, res.NewlyRecorded)
}

func TestApplyCompletionSignal_Idempotent(t *testing.T) {
	res, err := ApplyCompletionSignal(RequestAccepted, true, false, PartyClient)
	require.NoError(t, err)

	assert.Equal(t, RequestAccepted, res.Status)
	assert.True(t, res.CompletedByClient)
	assert.False(t, res.NewlyRecorded)
}

func TestApplyCompletionSignal_RejectedOutsideAccepted(t *testing.T) {
	for _, status := range []RequestStatus{RequestPending, RequestRejected, RequestCompleted} {
		_, err := ApplyCompletionSignal(status, false, false, PartyClient)
		require.Error(t, err, "status %s", status)

		var te *InvalidTransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, status, te.Current)
		assert.Contains(t, err.Error(), string(status))
	}
}

// No interleaving of signals can complete a request without both flags set,
// and both orders end in the same final state.
func TestCompletionSignal_OrderIndependent(t *testing.T) {
	orders := [][]Party{
		{PartyClient, PartyProvider},
		{PartyProvider, PartyClient},
	}

	for _, order := range orders {
		status := RequestAccepted
		byClient, byProvider := false, false

		for i, p := range order {
			res, err := ApplyCompletionSignal(status, byClient, byProvider, p)
			require.NoError(t, err)
			status, byClient, byProvider = res.Status, res.CompletedByClient, res.CompletedByProvider

			if i == 0 {
				assert.Equal(t, RequestAccepted, status, "one signal must not complete")
			}
		}

		assert.Equal(t, RequestCompleted, status)
		assert.True(t, byClient)
		assert.True(t, byProvider)

		// Terminal: nothing more can be signalled.
		_, err := ApplyCompletionSignal(status, byClient, byProvider, PartyClient)
		assert.Error(t, err)
	}
}

func TestChatOpen(t *testing.T) {
	assert.False(t, ChatOpen(RequestPending))
	assert.True(t, ChatOpen(RequestAccepted))
	assert.False(t, ChatOpen(RequestRejected))
	assert.True(t, ChatOpen(RequestCompleted))
}

func TestIdentityPartyOn(t *testing.T) {
	req := &ServiceRequest{ID: 1, ProviderID: 7, ClientID: 42}

	client := Identity{UserID: 42, Kind: IdentityClient}
	provider := Identity{UserID: 9, Kind: IdentityProvider, ProfileID: 7}
	stranger := Identity{UserID: 100, Kind: IdentityClient}
	otherProvider := Identity{UserID: 11, Kind: IdentityProvider, ProfileID: 8}

	p, ok := client.PartyOn(req)
	assert.True(t, ok)
	assert.Equal(t, PartyClient, p)

	p, ok = provider.PartyOn(req)
	assert.True(t, ok)
	assert.Equal(t, PartyProvider, p)

	_, ok = stranger.PartyOn(req)
	assert.False(t, ok)

	_, ok = otherProvider.PartyOn(req)
	assert.False(t, ok)
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0)) // legacy 0 is not accepted
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}
