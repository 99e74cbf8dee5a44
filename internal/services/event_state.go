package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"eventadmission/internal/domain"
)

type transitionKey struct {
	from   domain.EventState
	action domain.StateAction
}

// Every legal (state, action) pair is listed; anything else is an invalid transition.
var (
	adminTransitions = map[transitionKey]domain.EventState{
		{domain.EventStatePending, domain.ActionPublishEvent}: domain.EventStatePublished,
		{domain.EventStatePending, domain.ActionRejectEvent}:  domain.EventStateCanceled,
	}
	userTransitions = map[transitionKey]domain.EventState{
		{domain.EventStatePending, domain.ActionCancelReview}:  domain.EventStateCanceled,
		{domain.EventStateCanceled, domain.ActionSendToReview}: domain.EventStatePending,
	}
	adminActions = map[domain.StateAction]struct{}{
		domain.ActionPublishEvent: {},
		domain.ActionRejectEvent:  {},
	}
	userActions = map[domain.StateAction]struct{}{
		domain.ActionSendToReview: {},
		domain.ActionCancelReview: {},
	}
)

// applyAdminAction moves the event according to a moderator action.
// Publishing stamps PublishedOn with now.
func applyAdminAction(event *domain.Event, action domain.StateAction, now time.Time) error {
	return applyTransition(adminTransitions, adminActions, event, action, now)
}

// applyUserAction moves the event according to an initiator action. The caller
// has already checked that the event belongs to the initiator and is not published.
func applyUserAction(event *domain.Event, action domain.StateAction, now time.Time) error {
	return applyTransition(userTransitions, userActions, event, action, now)
}

func applyTransition(
	table map[transitionKey]domain.EventState,
	actions map[domain.StateAction]struct{},
	event *domain.Event,
	action domain.StateAction,
	now time.Time,
) error {
	if _, ok := actions[action]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedAction, action)
	}
	to, ok := table[transitionKey{from: event.State, action: action}]
	if !ok {
		return fmt.Errorf("%w: %s is not allowed for an event in state %s", domain.ErrInvalidTransition, action, event.State)
	}
	event.State = to
	if to == domain.EventStatePublished {
		publishedOn := now
		event.PublishedOn = &publishedOn
	}
	return nil
}

// Field length bounds for event text.
const (
	titleMin       = 3
	titleMax       = 120
	annotationMin  = 20
	annotationMax  = 2000
	descriptionMin = 20
	descriptionMax = 7000
)

// Minimum distance between now and the event date.
const (
	initiatorLeadTime = 2 * time.Hour
	adminLeadTime     = time.Hour
)

// isBlank reports whether a patch string should be ignored.
func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func checkLength(field, value string, lo, hi int) []string {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < lo || n > hi {
		return []string{fmt.Sprintf("%s must be between %d and %d characters", field, lo, hi)}
	}
	return nil
}

// validatePatch checks the non-blank fields of a sparse update.
func validatePatch(p domain.EventPatch) error {
	var errs []string
	if !isBlank(p.Title) {
		errs = append(errs, checkLength("title", *p.Title, titleMin, titleMax)...)
	}
	if !isBlank(p.Annotation) {
		errs = append(errs, checkLength("annotation", *p.Annotation, annotationMin, annotationMax)...)
	}
	if !isBlank(p.Description) {
		errs = append(errs, checkLength("description", *p.Description, descriptionMin, descriptionMax)...)
	}
	if p.ParticipantLimit != nil && *p.ParticipantLimit < 0 {
		errs = append(errs, "participant_limit must not be negative")
	}
	if p.CategoryID != nil && strings.TrimSpace(*p.CategoryID) == "" {
		errs = append(errs, "category must not be empty")
	}
	return validationError(errs)
}

// validateNewEvent checks a creation request; every text field is required.
func validateNewEvent(in domain.NewEventInput, now time.Time) error {
	var errs []string
	errs = append(errs, checkLength("title", in.Title, titleMin, titleMax)...)
	errs = append(errs, checkLength("annotation", in.Annotation, annotationMin, annotationMax)...)
	errs = append(errs, checkLength("description", in.Description, descriptionMin, descriptionMax)...)
	if strings.TrimSpace(in.CategoryID) == "" {
		errs = append(errs, "category is required")
	}
	if in.ParticipantLimit < 0 {
		errs = append(errs, "participant_limit must not be negative")
	}
	if err := checkEventDate(in.EventDate, now, initiatorLeadTime); err != nil {
		errs = append(errs, err.Error())
	}
	return validationError(errs)
}

func checkEventDate(date, now time.Time, lead time.Duration) error {
	if date.Before(now.Add(lead)) {
		return fmt.Errorf("event_date must be at least %s after now", lead)
	}
	return nil
}

func validationError(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
}

// checkPublishedCategory refuses moving an already published event to another category.
func checkPublishedCategory(event *domain.Event, previous domain.EventState, p domain.EventPatch) error {
	if previous != domain.EventStatePublished || p.CategoryID == nil {
		return nil
	}
	if event.Category != nil && event.Category.ID == strings.TrimSpace(*p.CategoryID) {
		return nil
	}
	return fmt.Errorf("%w: the category of a published event cannot change", domain.ErrConflict)
}

// mergeScalarFields copies the present, non-blank scalar fields of p onto event.
// Category and location resolve through collaborators and are handled by the caller.
func mergeScalarFields(event *domain.Event, p domain.EventPatch) {
	if !isBlank(p.Title) {
		event.Title = strings.TrimSpace(*p.Title)
	}
	if !isBlank(p.Annotation) {
		event.Annotation = strings.TrimSpace(*p.Annotation)
	}
	if !isBlank(p.Description) {
		event.Description = strings.TrimSpace(*p.Description)
	}
	if p.EventDate != nil {
		event.EventDate = *p.EventDate
	}
	if p.Paid != nil {
		event.Paid = *p.Paid
	}
	if p.ParticipantLimit != nil {
		event.ParticipantLimit = *p.ParticipantLimit
	}
	if p.RequestModeration != nil {
		event.RequestModeration = *p.RequestModeration
	}
}
