package domain

import (
	"context"
	"time"
)

// EventState is the moderation state of an event.
type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// Valid reports whether s is one of the known event states.
func (s EventState) Valid() bool {
	switch s {
	case EventStatePending, EventStatePublished, EventStateCanceled:
		return true
	}
	return false
}

// StateAction is an admin or initiator request to move an event between states.
type StateAction string

const (
	ActionPublishEvent StateAction = "PUBLISH_EVENT"
	ActionRejectEvent  StateAction = "REJECT_EVENT"
	ActionSendToReview StateAction = "SEND_TO_REVIEW"
	ActionCancelReview StateAction = "CANCEL_REVIEW"
)

// Event is a user-created activity that other users request to join.
// swagger:model Event
type Event struct {
	ID                string     `json:"id"`
	InitiatorID       string     `json:"initiator_id"`
	Category          *Category  `json:"category"`
	State             EventState `json:"state"`
	ParticipantLimit  int        `json:"participant_limit"`
	RequestModeration bool       `json:"request_moderation"`
	Paid              bool       `json:"paid"`
	Title             string     `json:"title"`
	Annotation        string     `json:"annotation"`
	Description       string     `json:"description"`
	EventDate         time.Time  `json:"event_date"`
	CreatedOn         time.Time  `json:"created_on"`
	PublishedOn       *time.Time `json:"published_on"`
	Location          *Location  `json:"location"`
	Views             int64      `json:"views"`
}

// NewEvent returns a new Event awaiting moderation. ID is set by the repository on create.
func NewEvent(initiatorID string, category *Category, location *Location, input NewEventInput, createdOn time.Time) *Event {
	return &Event{
		InitiatorID:       initiatorID,
		Category:          category,
		State:             EventStatePending,
		ParticipantLimit:  input.ParticipantLimit,
		RequestModeration: input.RequestModeration,
		Paid:              input.Paid,
		Title:             input.Title,
		Annotation:        input.Annotation,
		Description:       input.Description,
		EventDate:         input.EventDate,
		CreatedOn:         createdOn,
		Location:          location,
	}
}

// HasUnlimitedCapacity reports whether the event accepts any number of participants.
func (e *Event) HasUnlimitedCapacity() bool {
	return e.ParticipantLimit == 0
}

// EventView is an event annotated with its live confirmed-request count.
// The count is always derived from the request store, never stored on the event.
// swagger:model EventView
type EventView struct {
	*Event
	ConfirmedRequests int `json:"confirmed_requests"`
}

// NewEventInput holds the fields an initiator supplies when creating an event.
type NewEventInput struct {
	CategoryID        string
	Location          LocationInput
	Title             string
	Annotation        string
	Description       string
	EventDate         time.Time
	Paid              bool
	ParticipantLimit  int
	RequestModeration bool
}

// EventPatch is a sparse update. Nil fields and blank strings are left untouched.
type EventPatch struct {
	StateAction       *StateAction
	CategoryID        *string
	Location          *LocationInput
	Title             *string
	Annotation        *string
	Description       *string
	EventDate         *time.Time
	Paid              *bool
	ParticipantLimit  *int
	RequestModeration *bool
}

// EventSort orders public search results.
type EventSort string

const (
	SortEventDate EventSort = "EVENT_DATE"
	SortViews     EventSort = "VIEWS"
)

// AdminEventFilter narrows the admin event search. Empty slices and nil times match everything.
type AdminEventFilter struct {
	InitiatorIDs []string
	States       []EventState
	CategoryIDs  []string
	RangeStart   *time.Time
	RangeEnd     *time.Time
}

// PublicEventFilter narrows the public search over published events.
type PublicEventFilter struct {
	Text          string
	CategoryIDs   []string
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          EventSort
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetForUpdate loads the event and, inside a transaction, holds its row lock until commit.
	GetForUpdate(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	IncrementViews(ctx context.Context, id string) error
	ListByInitiator(ctx context.Context, initiatorID string, page PageRequest) ([]*Event, error)
	AdminSearch(ctx context.Context, filter AdminEventFilter, page PageRequest) ([]*Event, error)
	PublicSearch(ctx context.Context, filter PublicEventFilter, page PageRequest) ([]*Event, error)
}

// EventService is the lifecycle orchestrator for events.
type EventService interface {
	AdminUpdateEvent(ctx context.Context, eventID string, patch EventPatch) (*EventView, error)
	AdminFindEvents(ctx context.Context, filter AdminEventFilter, page PageRequest) ([]*EventView, error)
	InitiatorGetEvents(ctx context.Context, userID string, page PageRequest) ([]*EventView, error)
	InitiatorAddEvent(ctx context.Context, userID string, input NewEventInput) (*EventView, error)
	InitiatorGetEvent(ctx context.Context, userID, eventID string) (*EventView, error)
	InitiatorUpdateEvent(ctx context.Context, userID, eventID string, patch EventPatch) (*EventView, error)
	FindEvents(ctx context.Context, filter PublicEventFilter, page PageRequest) ([]*EventView, error)
	GetEvent(ctx context.Context, eventID string) (*EventView, error)
}
