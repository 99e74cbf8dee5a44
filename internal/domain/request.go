package domain

import (
	"context"
	"time"
)

// RequestStatus is the admission status of a participation request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// Active reports whether the request still occupies the (event, requester) slot.
func (s RequestStatus) Active() bool {
	return s != RequestStatusCanceled
}

// Request is a user's intent to join an event.
// swagger:model Request
type Request struct {
	ID          string        `json:"id"`
	EventID     string        `json:"event"`
	RequesterID string        `json:"requester"`
	Status      RequestStatus `json:"status"`
	Created     time.Time     `json:"created"`
}

// NewRequest returns a pending Request. ID is set by the repository on create.
func NewRequest(eventID, requesterID string, created time.Time) *Request {
	return &Request{
		EventID:     eventID,
		RequesterID: requesterID,
		Status:      RequestStatusPending,
		Created:     created,
	}
}

// ReviewDecision is the owner's verdict for a batch of pending requests.
type ReviewDecision string

const (
	ReviewConfirm ReviewDecision = "CONFIRMED"
	ReviewReject  ReviewDecision = "REJECTED"
)

// RequestStatusUpdate is the body of a batch review.
type RequestStatusUpdate struct {
	RequestIDs []string
	Status     ReviewDecision
}

// ReviewResult lists every request whose status changed during a review,
// including pending requests rejected because the limit was reached.
// swagger:model ReviewResult
type ReviewResult struct {
	ConfirmedRequests []*Request `json:"confirmed_requests"`
	RejectedRequests  []*Request `json:"rejected_requests"`
}

// RequestRepository defines storage operations for participation requests.
type RequestRepository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	// GetActiveByEventAndRequester returns the non-canceled request for the pair, or ErrNotFound.
	GetActiveByEventAndRequester(ctx context.Context, eventID, requesterID string) (*Request, error)
	// ListByIDs returns the requests of eventID among ids; unknown ids are omitted.
	ListByIDs(ctx context.Context, eventID string, ids []string) ([]*Request, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Request, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*Request, error)
	// ListPendingByEvent returns pending requests ordered by creation time.
	ListPendingByEvent(ctx context.Context, eventID string) ([]*Request, error)
	CountConfirmed(ctx context.Context, eventID string) (int, error)
	CountConfirmedByEvents(ctx context.Context, eventIDs []string) (map[string]int, error)
	UpdateStatus(ctx context.Context, ids []string, status RequestStatus) error
}

// RequestService runs the admission workflow for participation requests.
type RequestService interface {
	SubmitRequest(ctx context.Context, userID, eventID string) (*Request, error)
	ReviewRequests(ctx context.Context, userID, eventID string, update RequestStatusUpdate) (*ReviewResult, error)
	CancelRequest(ctx context.Context, userID, requestID string) (*Request, error)
	ListUserRequests(ctx context.Context, userID string) ([]*Request, error)
	ListEventRequests(ctx context.Context, userID, eventID string) ([]*Request, error)
}
