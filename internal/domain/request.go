package domain

import (
	"fmt"
	"time"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected, RequestCompleted:
		return true
	}
	return false
}

// Party is one of the two sides of a service request.
type Party string

const (
	PartyClient   Party = "client"
	PartyProvider Party = "provider"
)

// ServiceRequest is one client's ask to one provider. Provider and client
// never change after creation; status only moves along
// pending -> accepted|rejected and accepted -> completed.
type ServiceRequest struct {
	ID                  int64         `json:"id"`
	ProviderID          int64         `json:"provider_id"`
	ClientID            int64         `json:"client_id"`
	Description         string        `json:"description"`
	DesiredDatetime     *time.Time    `json:"desired_datetime,omitempty"`
	ProposedValue       *float64      `json:"proposed_value,omitempty"`
	Status              RequestStatus `json:"status"`
	CompletedByClient   bool          `json:"completed_by_client"`
	CompletedByProvider bool          `json:"completed_by_provider"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`

	Provider *ProviderProfile `json:"provider,omitempty" gorm:"-"`
	Client   *User            `json:"client,omitempty" gorm:"-"`
}

// ChatOpen reports whether the request's chat channel accepts new messages.
func ChatOpen(s RequestStatus) bool {
	return s == RequestAccepted || s == RequestCompleted
}

// CanProviderSet is the rule for the generic status-update path. The
// provider may move pending requests to accepted/rejected (or leave them
// pending); completed is reachable only through the dual-confirmation
// signals, never by a direct write.
func CanProviderSet(from, to RequestStatus) bool {
	if to == RequestCompleted {
		return false
	}
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	return from == RequestPending && (to == RequestAccepted || to == RequestRejected)
}

// SignalResult is the outcome of one completion signal.
type SignalResult struct {
	Status              RequestStatus
	CompletedByClient   bool
	CompletedByProvider bool
	NewlyRecorded       bool
}

// InvalidTransitionError reports an operation that is not legal in the
// request's current lifecycle state. The current status is part of the
// message so callers can render a useful diagnostic.
type InvalidTransitionError struct {
	Current RequestStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: request is %s", e.Current)
}

// ApplyCompletionSignal is the pure transition rule behind dual
// confirmation. Signaling is legal only while the request is accepted;
// re-signaling the same side is a no-op, and the request completes the
// moment both flags hold.
func ApplyCompletionSignal(status RequestStatus, byClient, byProvider bool, party Party) (SignalResult, error) {
	if status != RequestAccepted {
		return SignalResult{}, &InvalidTransitionError{Current: status}
	}

	res := SignalResult{
		Status:              status,
		CompletedByClient:   byClient,
		CompletedByProvider: byProvider,
	}

	switch party {
	case PartyClient:
		res.NewlyRecorded = !byClient
		res.CompletedByClient = true
	case PartyProvider:
		res.NewlyRecorded = !byProvider
		res.CompletedByProvider = true
	default:
		return SignalResult{}, fmt.Errorf("unknown party %q", party)
	}

	if res.CompletedByClient && res.CompletedByProvider {
		res.Status = RequestCompleted
	}
	return res, nil
}
