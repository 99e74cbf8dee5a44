package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventadmission/internal/domain"
)

type requestService struct {
	eventRepo      domain.EventRepository
	requestRepo    domain.RequestRepository
	userRepo       domain.UserRepository
	tx             domain.Transactor
	locker         *EventLocker
	publisher      domain.LifecyclePublisher
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewRequestService creates a RequestService. Every operation that can change an
// event's confirmed count runs under locker and inside one transaction.
func NewRequestService(
	eventRepo domain.EventRepository,
	requestRepo domain.RequestRepository,
	userRepo domain.UserRepository,
	tx domain.Transactor,
	locker *EventLocker,
	publisher domain.LifecyclePublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RequestService {
	return &requestService{
		eventRepo:      eventRepo,
		requestRepo:    requestRepo,
		userRepo:       userRepo,
		tx:             tx,
		locker:         locker,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *requestService) SubmitRequest(ctx context.Context, userID, eventID string) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, lookupError("user", err)
	}

	unlock, err := s.locker.Lock(ctx, eventID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		created  *domain.Request
		rejected []*domain.Request
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			return lookupError("event", err)
		}

		existing, err := s.requestRepo.GetActiveByEventAndRequester(ctx, eventID, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get existing request: %w", err)
		}
		confirmed, err := s.requestRepo.CountConfirmed(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count confirmed requests: %w", err)
		}

		status, err := decideSubmission(event, userID, existing, confirmed)
		if err != nil {
			return err
		}

		req := domain.NewRequest(eventID, userID, s.now())
		if err := s.requestRepo.Create(ctx, req); err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		created = req
		if status != domain.RequestStatusConfirmed {
			return nil
		}

		if err := s.requestRepo.UpdateStatus(ctx, []string{req.ID}, domain.RequestStatusConfirmed); err != nil {
			return fmt.Errorf("confirm request: %w", err)
		}
		req.Status = domain.RequestStatusConfirmed
		confirmed++

		if !capacityReached(event, confirmed) {
			return nil
		}
		pending, err := s.requestRepo.ListPendingByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list pending requests: %w", err)
		}
		rejected = exhaustedPending(pending, map[string]struct{}{req.ID: {}})
		if len(rejected) == 0 {
			return nil
		}
		if err := s.requestRepo.UpdateStatus(ctx, requestIDs(rejected), domain.RequestStatusRejected); err != nil {
			return fmt.Errorf("reject pending requests: %w", err)
		}
		setStatus(rejected, domain.RequestStatusRejected)
		return nil
	})
	if err != nil {
		return nil, err
	}

	groups := map[domain.LifecycleMessageType][]*domain.Request{
		domain.MessageRequestRejected: rejected,
	}
	if created.Status == domain.RequestStatusConfirmed {
		groups[domain.MessageRequestConfirmed] = []*domain.Request{created}
	}
	publishAll(ctx, s.publisher, s.logger, requestMessages(eventID, s.now(), groups)...)
	return created, nil
}

func (s *requestService) ReviewRequests(ctx context.Context, userID, eventID string, update domain.RequestStatusUpdate) (*domain.ReviewResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateStatusUpdate(update); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, eventID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var plan reviewPlan
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			return lookupError("event", err)
		}
		if event.InitiatorID != userID {
			return fmt.Errorf("%w: only the initiator can review requests", domain.ErrForbidden)
		}

		ids := dedupeIDs(update.RequestIDs)
		found, err := s.requestRepo.ListByIDs(ctx, eventID, ids)
		if err != nil {
			return fmt.Errorf("list requests: %w", err)
		}
		ordered, err := orderForReview(ids, found)
		if err != nil {
			return err
		}

		confirmed, err := s.requestRepo.CountConfirmed(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count confirmed requests: %w", err)
		}
		var pending []*domain.Request
		if update.Status == domain.ReviewConfirm {
			pending, err = s.requestRepo.ListPendingByEvent(ctx, eventID)
			if err != nil {
				return fmt.Errorf("list pending requests: %w", err)
			}
		}

		plan, err = planReview(event, confirmed, ordered, pending, update.Status)
		if err != nil {
			return err
		}
		if len(plan.confirm) > 0 {
			if err := s.requestRepo.UpdateStatus(ctx, requestIDs(plan.confirm), domain.RequestStatusConfirmed); err != nil {
				return fmt.Errorf("confirm requests: %w", err)
			}
		}
		if len(plan.reject) > 0 {
			if err := s.requestRepo.UpdateStatus(ctx, requestIDs(plan.reject), domain.RequestStatusRejected); err != nil {
				return fmt.Errorf("reject requests: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	setStatus(plan.confirm, domain.RequestStatusConfirmed)
	setStatus(plan.reject, domain.RequestStatusRejected)
	result := &domain.ReviewResult{
		ConfirmedRequests: plan.confirm,
		RejectedRequests:  plan.reject,
	}
	if result.ConfirmedRequests == nil {
		result.ConfirmedRequests = []*domain.Request{}
	}
	if result.RejectedRequests == nil {
		result.RejectedRequests = []*domain.Request{}
	}

	publishAll(ctx, s.publisher, s.logger, requestMessages(eventID, s.now(), map[domain.LifecycleMessageType][]*domain.Request{
		domain.MessageRequestConfirmed: plan.confirm,
		domain.MessageRequestRejected:  plan.reject,
	})...)
	return result, nil
}

func (s *requestService) CancelRequest(ctx context.Context, userID, requestID string) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, lookupError("request", err)
	}
	// Other users' requests are reported as missing.
	if req.RequesterID != userID {
		return nil, fmt.Errorf("%w: request", domain.ErrNotFound)
	}

	unlock, err := s.locker.Lock(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.eventRepo.GetForUpdate(ctx, req.EventID); err != nil {
			return lookupError("event", err)
		}
		current, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return lookupError("request", err)
		}
		if current.Status != domain.RequestStatusPending && current.Status != domain.RequestStatusConfirmed {
			return fmt.Errorf("%w: request %s is %s", domain.ErrInvalidTransition, requestID, current.Status)
		}
		if err := s.requestRepo.UpdateStatus(ctx, []string{requestID}, domain.RequestStatusCanceled); err != nil {
			return fmt.Errorf("cancel request: %w", err)
		}
		req = current
		req.Status = domain.RequestStatusCanceled
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishAll(ctx, s.publisher, s.logger, requestMessages(req.EventID, s.now(), map[domain.LifecycleMessageType][]*domain.Request{
		domain.MessageRequestCanceled: {req},
	})...)
	return req, nil
}

func (s *requestService) ListUserRequests(ctx context.Context, userID string) ([]*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, lookupError("user", err)
	}
	reqs, err := s.requestRepo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	if reqs == nil {
		reqs = []*domain.Request{}
	}
	return reqs, nil
}

func (s *requestService) ListEventRequests(ctx context.Context, userID, eventID string) ([]*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, lookupError("event", err)
	}
	if event.InitiatorID != userID {
		return nil, fmt.Errorf("%w: only the initiator can list event requests", domain.ErrForbidden)
	}
	reqs, err := s.requestRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	if reqs == nil {
		reqs = []*domain.Request{}
	}
	return reqs, nil
}
