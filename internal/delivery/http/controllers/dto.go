package controllers

import (
	"strings"

	"eventadmission/internal/delivery/http/helpers"
	"eventadmission/internal/domain"
)

// LocationRequest is a pair of coordinates in a request body.
type LocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (l LocationRequest) validate() []string {
	var errs []string
	if l.Lat < -90 || l.Lat > 90 {
		errs = append(errs, "location.lat must be between -90 and 90")
	}
	if l.Lon < -180 || l.Lon > 180 {
		errs = append(errs, "location.lon must be between -180 and 180")
	}
	return errs
}

func (l LocationRequest) toDomain() domain.LocationInput {
	return domain.LocationInput{Lat: l.Lat, Lon: l.Lon}
}

// NewEventRequest is the request body for POST /users/{userID}/events.
// request_moderation defaults to true when omitted.
type NewEventRequest struct {
	Title             string           `json:"title"`
	Annotation        string           `json:"annotation"`
	Description       string           `json:"description"`
	CategoryID        string           `json:"category"`
	EventDate         *helpers.Date    `json:"event_date" swaggertype:"string" example:"2030-06-01 18:00:00"`
	Location          *LocationRequest `json:"location"`
	Paid              bool             `json:"paid"`
	ParticipantLimit  int              `json:"participant_limit"`
	RequestModeration *bool            `json:"request_moderation"`
}

// Validate implements Validator. Length limits are enforced by the service.
func (n NewEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(n.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(n.Annotation) == "" {
		errs = append(errs, "annotation is required")
	}
	if strings.TrimSpace(n.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(n.CategoryID) == "" {
		errs = append(errs, "category is required")
	}
	if n.EventDate == nil {
		errs = append(errs, "event_date is required")
	}
	if n.Location == nil {
		errs = append(errs, "location is required")
	} else {
		errs = append(errs, n.Location.validate()...)
	}
	if n.ParticipantLimit < 0 {
		errs = append(errs, "participant_limit must not be negative")
	}
	return errs
}

func (n NewEventRequest) toDomain() domain.NewEventInput {
	in := domain.NewEventInput{
		CategoryID:        n.CategoryID,
		Title:             n.Title,
		Annotation:        n.Annotation,
		Description:       n.Description,
		Paid:              n.Paid,
		ParticipantLimit:  n.ParticipantLimit,
		RequestModeration: true,
	}
	if n.EventDate != nil {
		in.EventDate = n.EventDate.Time
	}
	if n.Location != nil {
		in.Location = n.Location.toDomain()
	}
	if n.RequestModeration != nil {
		in.RequestModeration = *n.RequestModeration
	}
	return in
}

// UpdateEventRequest is the request body for PATCH on an event, by admin or initiator.
// All fields are optional; omitted or blank fields are unchanged.
type UpdateEventRequest struct {
	StateAction       *string          `json:"state_action" enums:"PUBLISH_EVENT,REJECT_EVENT,SEND_TO_REVIEW,CANCEL_REVIEW"`
	Title             *string          `json:"title"`
	Annotation        *string          `json:"annotation"`
	Description       *string          `json:"description"`
	CategoryID        *string          `json:"category"`
	EventDate         *helpers.Date    `json:"event_date" swaggertype:"string" example:"2030-06-01 18:00:00"`
	Location          *LocationRequest `json:"location"`
	Paid              *bool            `json:"paid"`
	ParticipantLimit  *int             `json:"participant_limit"`
	RequestModeration *bool            `json:"request_moderation"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Location != nil {
		errs = append(errs, u.Location.validate()...)
	}
	if u.ParticipantLimit != nil && *u.ParticipantLimit < 0 {
		errs = append(errs, "participant_limit must not be negative")
	}
	return errs
}

func (u UpdateEventRequest) toDomain() domain.EventPatch {
	patch := domain.EventPatch{
		Title:             u.Title,
		Annotation:        u.Annotation,
		Description:       u.Description,
		CategoryID:        u.CategoryID,
		Paid:              u.Paid,
		ParticipantLimit:  u.ParticipantLimit,
		RequestModeration: u.RequestModeration,
	}
	if u.StateAction != nil {
		action := domain.StateAction(strings.TrimSpace(*u.StateAction))
		patch.StateAction = &action
	}
	if u.EventDate != nil {
		t := u.EventDate.Time
		patch.EventDate = &t
	}
	if u.Location != nil {
		loc := u.Location.toDomain()
		patch.Location = &loc
	}
	return patch
}

// ReviewRequestsRequest is the request body for PATCH /users/{userID}/events/{eventID}/requests.
type ReviewRequestsRequest struct {
	RequestIDs []string `json:"request_ids"`
	Status     string   `json:"status" enums:"CONFIRMED,REJECTED"`
}

// Validate implements Validator.
func (r ReviewRequestsRequest) Validate() []string {
	var errs []string
	if len(r.RequestIDs) == 0 {
		errs = append(errs, "request_ids is required")
	}
	if r.Status == "" {
		errs = append(errs, "status is required")
	}
	return errs
}

func (r ReviewRequestsRequest) toDomain() domain.RequestStatusUpdate {
	return domain.RequestStatusUpdate{
		RequestIDs: r.RequestIDs,
		Status:     domain.ReviewDecision(strings.ToUpper(strings.TrimSpace(r.Status))),
	}
}

// EventSuccessResponse is the success envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.EventView `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for a page of events.
type EventListSuccessResponse struct {
	Data  []*domain.EventView `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// RequestSuccessResponse is the success envelope for a single participation request.
type RequestSuccessResponse struct {
	Data  *domain.Request   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RequestListSuccessResponse is the success envelope for a list of participation requests.
type RequestListSuccessResponse struct {
	Data  []*domain.Request `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ReviewSuccessResponse is the success envelope for a batch review.
type ReviewSuccessResponse struct {
	Data  *domain.ReviewResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}
