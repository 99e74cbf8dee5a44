package domain

import "errors"

// Sentinel errors shared by services, repositories and the HTTP layer.
// Services wrap them with detail (fmt.Errorf("%w: ...", ErrX)); callers match with errors.Is.
var (
	// ErrNotFound covers missing records and records the caller is not allowed to see.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller is not the authorized actor for the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict covers duplicate requests, self-requests and state-incompatible operations.
	ErrConflict = errors.New("conflict")
	// ErrCapacityExceeded is returned when an admission would push confirmed requests above the participant limit.
	ErrCapacityExceeded = errors.New("participant limit reached")
	// ErrInvalidTransition is returned when a state change is not legal from the current state.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrUnsupportedAction is returned for an unknown or out-of-role state action.
	ErrUnsupportedAction = errors.New("unsupported state action")
	// ErrValidation is returned for malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrBusy is returned when the per-event admission lock could not be acquired in time. Retryable.
	ErrBusy = errors.New("event is busy, retry later")
)
