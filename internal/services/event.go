package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventadmission/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	requestRepo    domain.RequestRepository
	userRepo       domain.UserRepository
	categoryRepo   domain.CategoryRepository
	locationRepo   domain.LocationRepository
	tx             domain.Transactor
	locker         *EventLocker
	publisher      domain.LifecyclePublisher
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(
	eventRepo domain.EventRepository,
	requestRepo domain.RequestRepository,
	userRepo domain.UserRepository,
	categoryRepo domain.CategoryRepository,
	locationRepo domain.LocationRepository,
	tx domain.Transactor,
	locker *EventLocker,
	publisher domain.LifecyclePublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		requestRepo:    requestRepo,
		userRepo:       userRepo,
		categoryRepo:   categoryRepo,
		locationRepo:   locationRepo,
		tx:             tx,
		locker:         locker,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) AdminUpdateEvent(ctx context.Context, eventID string, patch domain.EventPatch) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	now := s.now()
	if patch.EventDate != nil {
		if err := checkEventDate(*patch.EventDate, now, adminLeadTime); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	return s.updateEvent(ctx, eventID, patch, func(event *domain.Event) error {
		if patch.StateAction == nil {
			return nil
		}
		if err := applyAdminAction(event, *patch.StateAction, now); err != nil {
			return err
		}
		if event.State == domain.EventStatePublished {
			date := event.EventDate
			if patch.EventDate != nil {
				date = *patch.EventDate
			}
			if err := checkEventDate(date, now, adminLeadTime); err != nil {
				return fmt.Errorf("%w: cannot publish, %v", domain.ErrValidation, err)
			}
		}
		return nil
	})
}

func (s *eventService) InitiatorUpdateEvent(ctx context.Context, userID, eventID string, patch domain.EventPatch) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	now := s.now()
	if patch.EventDate != nil {
		if err := checkEventDate(*patch.EventDate, now, initiatorLeadTime); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	return s.updateEvent(ctx, eventID, patch, func(event *domain.Event) error {
		if event.InitiatorID != userID {
			return fmt.Errorf("%w: only the initiator can update the event", domain.ErrForbidden)
		}
		if event.State == domain.EventStatePublished {
			return fmt.Errorf("%w: published events cannot be changed", domain.ErrConflict)
		}
		if patch.StateAction == nil {
			return nil
		}
		return applyUserAction(event, *patch.StateAction, now)
	})
}

// updateEvent loads the event under the admission lock, lets authorize check the
// caller and apply the state action, merges the patch, persists, and settles the
// event's requests in the same transaction: a CANCELED event cancels its active
// requests, and a limit lowered to the confirmed count rejects the pending ones.
func (s *eventService) updateEvent(ctx context.Context, eventID string, patch domain.EventPatch, authorize func(*domain.Event) error) (*domain.EventView, error) {
	unlock, err := s.locker.Lock(ctx, eventID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		view          *domain.EventView
		previousState domain.EventState
		canceled      []*domain.Request
		rejected      []*domain.Request
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			return lookupError("event", err)
		}
		previousState = event.State

		if err := authorize(event); err != nil {
			return err
		}
		if err := checkPublishedCategory(event, previousState, patch); err != nil {
			return err
		}
		if err := s.applyFieldPatch(ctx, event, patch); err != nil {
			return err
		}

		confirmed, err := s.requestRepo.CountConfirmed(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count confirmed requests: %w", err)
		}
		if patch.ParticipantLimit != nil {
			if err := checkLimit(event, confirmed); err != nil {
				return err
			}
		}

		if err := s.eventRepo.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}

		switch {
		case event.State == domain.EventStateCanceled && previousState != domain.EventStateCanceled:
			canceled, err = s.cancelActiveRequests(ctx, eventID)
			if err != nil {
				return err
			}
			confirmed = 0
		case patch.ParticipantLimit != nil && capacityReached(event, confirmed):
			rejected, err = s.rejectExhaustedPending(ctx, eventID)
			if err != nil {
				return err
			}
		}

		view = &domain.EventView{Event: event, ConfirmedRequests: confirmed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishChanges(ctx, view.Event, previousState, canceled, rejected)
	return view, nil
}

// applyFieldPatch merges a sparse patch into event. Category and location resolve
// through their repositories first.
func (s *eventService) applyFieldPatch(ctx context.Context, event *domain.Event, patch domain.EventPatch) error {
	if patch.CategoryID != nil {
		cat, err := s.categoryRepo.GetByID(ctx, strings.TrimSpace(*patch.CategoryID))
		if err != nil {
			return lookupError("category", err)
		}
		event.Category = cat
	}
	if patch.Location != nil {
		loc, err := s.locationRepo.ResolveOrCreate(ctx, *patch.Location)
		if err != nil {
			return fmt.Errorf("resolve location: %w", err)
		}
		event.Location = loc
	}
	mergeScalarFields(event, patch)
	return nil
}

// cancelActiveRequests moves every PENDING or CONFIRMED request of a canceled event to CANCELED.
func (s *eventService) cancelActiveRequests(ctx context.Context, eventID string) ([]*domain.Request, error) {
	reqs, err := s.requestRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	var active []*domain.Request
	for _, r := range reqs {
		if r.Status == domain.RequestStatusPending || r.Status == domain.RequestStatusConfirmed {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}
	if err := s.requestRepo.UpdateStatus(ctx, requestIDs(active), domain.RequestStatusCanceled); err != nil {
		return nil, fmt.Errorf("cancel requests: %w", err)
	}
	setStatus(active, domain.RequestStatusCanceled)
	return active, nil
}

// rejectExhaustedPending rejects every PENDING request of an event that has no places left.
func (s *eventService) rejectExhaustedPending(ctx context.Context, eventID string) ([]*domain.Request, error) {
	pending, err := s.requestRepo.ListPendingByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	rejected := exhaustedPending(pending, nil)
	if len(rejected) == 0 {
		return nil, nil
	}
	if err := s.requestRepo.UpdateStatus(ctx, requestIDs(rejected), domain.RequestStatusRejected); err != nil {
		return nil, fmt.Errorf("reject pending requests: %w", err)
	}
	setStatus(rejected, domain.RequestStatusRejected)
	return rejected, nil
}

func (s *eventService) publishChanges(ctx context.Context, event *domain.Event, previous domain.EventState, canceled, rejected []*domain.Request) {
	at := s.now()
	var msgs []domain.LifecycleMessage
	if event.State != previous {
		switch event.State {
		case domain.EventStatePublished:
			msgs = append(msgs, domain.LifecycleMessage{Type: domain.MessageEventPublished, EventID: event.ID, OccurredAt: at})
		case domain.EventStateCanceled:
			msgs = append(msgs, domain.LifecycleMessage{Type: domain.MessageEventCanceled, EventID: event.ID, OccurredAt: at})
		}
	}
	msgs = append(msgs, requestMessages(event.ID, at, map[domain.LifecycleMessageType][]*domain.Request{
		domain.MessageRequestRejected: rejected,
		domain.MessageRequestCanceled: canceled,
	})...)
	if len(msgs) == 0 {
		return
	}
	publishAll(ctx, s.publisher, s.logger, msgs...)
}

func (s *eventService) InitiatorAddEvent(ctx context.Context, userID string, input domain.NewEventInput) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	if err := validateNewEvent(input, now); err != nil {
		return nil, err
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Annotation = strings.TrimSpace(input.Annotation)
	input.Description = strings.TrimSpace(input.Description)

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, lookupError("user", err)
	}
	cat, err := s.categoryRepo.GetByID(ctx, strings.TrimSpace(input.CategoryID))
	if err != nil {
		return nil, lookupError("category", err)
	}

	var event *domain.Event
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		loc, err := s.locationRepo.ResolveOrCreate(ctx, input.Location)
		if err != nil {
			return fmt.Errorf("resolve location: %w", err)
		}
		event = domain.NewEvent(userID, cat, loc, input, now)
		if err := s.eventRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.EventView{Event: event, ConfirmedRequests: 0}, nil
}

func (s *eventService) InitiatorGetEvents(ctx context.Context, userID string, page domain.PageRequest) ([]*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, lookupError("user", err)
	}
	events, err := s.eventRepo.ListByInitiator(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return s.withConfirmedCounts(ctx, events)
}

func (s *eventService) InitiatorGetEvent(ctx context.Context, userID, eventID string) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, lookupError("user", err)
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, lookupError("event", err)
	}
	if event.InitiatorID != userID {
		return nil, fmt.Errorf("%w: only the initiator can view this event", domain.ErrForbidden)
	}
	return s.withConfirmedCount(ctx, event)
}

func (s *eventService) AdminFindEvents(ctx context.Context, filter domain.AdminEventFilter, page domain.PageRequest) ([]*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := checkRange(filter.RangeStart, filter.RangeEnd); err != nil {
		return nil, err
	}
	for _, st := range filter.States {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown state %q", domain.ErrValidation, st)
		}
	}
	events, err := s.eventRepo.AdminSearch(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return s.withConfirmedCounts(ctx, events)
}

func (s *eventService) FindEvents(ctx context.Context, filter domain.PublicEventFilter, page domain.PageRequest) ([]*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := checkRange(filter.RangeStart, filter.RangeEnd); err != nil {
		return nil, err
	}
	switch filter.Sort {
	case "", domain.SortEventDate, domain.SortViews:
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrValidation, filter.Sort)
	}
	// Without a date range only upcoming events are listed.
	if filter.RangeStart == nil && filter.RangeEnd == nil {
		now := s.now()
		filter.RangeStart = &now
	}
	events, err := s.eventRepo.PublicSearch(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return s.withConfirmedCounts(ctx, events)
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, lookupError("event", err)
	}
	// Unpublished events are indistinguishable from missing ones.
	if event.State != domain.EventStatePublished {
		return nil, fmt.Errorf("%w: event", domain.ErrNotFound)
	}
	if err := s.eventRepo.IncrementViews(ctx, eventID); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	event.Views++
	return s.withConfirmedCount(ctx, event)
}

func (s *eventService) withConfirmedCount(ctx context.Context, event *domain.Event) (*domain.EventView, error) {
	confirmed, err := s.requestRepo.CountConfirmed(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count confirmed requests: %w", err)
	}
	return &domain.EventView{Event: event, ConfirmedRequests: confirmed}, nil
}

// withConfirmedCounts annotates a page of events using one batched count query.
func (s *eventService) withConfirmedCounts(ctx context.Context, events []*domain.Event) ([]*domain.EventView, error) {
	views := make([]*domain.EventView, 0, len(events))
	if len(events) == 0 {
		return views, nil
	}
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	counts, err := s.requestRepo.CountConfirmedByEvents(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count confirmed requests: %w", err)
	}
	for _, e := range events {
		views = append(views, &domain.EventView{Event: e, ConfirmedRequests: counts[e.ID]})
	}
	return views, nil
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("%w: rangeStart must not be after rangeEnd", domain.ErrValidation)
	}
	return nil
}
