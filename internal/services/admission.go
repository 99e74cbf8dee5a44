package services

import (
	"fmt"
	"strings"

	"eventadmission/internal/domain"
)

// capacityReached reports whether confirmed requests have filled a limited event.
func capacityReached(event *domain.Event, confirmed int) bool {
	return !event.HasUnlimitedCapacity() && confirmed >= event.ParticipantLimit
}

// checkLimit refuses a participant limit that is already exceeded by confirmed requests.
func checkLimit(event *domain.Event, confirmed int) error {
	if !event.HasUnlimitedCapacity() && confirmed > event.ParticipantLimit {
		return fmt.Errorf("%w: event %s already has %d confirmed requests, limit %d is too low",
			domain.ErrCapacityExceeded, event.ID, confirmed, event.ParticipantLimit)
	}
	return nil
}

// decideSubmission returns the status a new request for event starts with.
// existing is the requester's non-canceled request for the event, if any.
func decideSubmission(event *domain.Event, requesterID string, existing *domain.Request, confirmed int) (domain.RequestStatus, error) {
	if existing != nil {
		return "", fmt.Errorf("%w: request %s already exists for this event", domain.ErrConflict, existing.ID)
	}
	if event.InitiatorID == requesterID {
		return "", fmt.Errorf("%w: the initiator cannot request to join their own event", domain.ErrConflict)
	}
	if event.State != domain.EventStatePublished {
		return "", fmt.Errorf("%w: event %s is not published", domain.ErrConflict, event.ID)
	}
	if capacityReached(event, confirmed) {
		return "", fmt.Errorf("%w: event %s has %d of %d places taken", domain.ErrCapacityExceeded, event.ID, confirmed, event.ParticipantLimit)
	}
	if !event.RequestModeration || event.HasUnlimitedCapacity() {
		return domain.RequestStatusConfirmed, nil
	}
	return domain.RequestStatusPending, nil
}

// reviewPlan is the set of status changes a review will write.
type reviewPlan struct {
	confirm []*domain.Request
	reject  []*domain.Request
}

// planReview decides the fate of ordered, which holds the reviewed requests in
// the order the owner supplied them. Confirmation proceeds in that order until the
// limit is reached; the rest of ordered is rejected, and so is every other
// request in pending once the event is full.
func planReview(event *domain.Event, confirmed int, ordered, pending []*domain.Request, decision domain.ReviewDecision) (reviewPlan, error) {
	var plan reviewPlan
	if decision == domain.ReviewReject {
		plan.reject = append(plan.reject, ordered...)
		return plan, nil
	}

	if capacityReached(event, confirmed) {
		return plan, fmt.Errorf("%w: event %s has %d of %d places taken", domain.ErrCapacityExceeded, event.ID, confirmed, event.ParticipantLimit)
	}

	planned := make(map[string]struct{}, len(ordered))
	for _, req := range ordered {
		planned[req.ID] = struct{}{}
		if capacityReached(event, confirmed) {
			plan.reject = append(plan.reject, req)
			continue
		}
		plan.confirm = append(plan.confirm, req)
		confirmed++
	}

	if capacityReached(event, confirmed) {
		plan.reject = append(plan.reject, exhaustedPending(pending, planned)...)
	}
	return plan, nil
}

// exhaustedPending returns the pending requests not already in skip. They are
// rejected once the event is full.
func exhaustedPending(pending []*domain.Request, skip map[string]struct{}) []*domain.Request {
	var out []*domain.Request
	for _, req := range pending {
		if _, ok := skip[req.ID]; ok {
			continue
		}
		if req.Status != domain.RequestStatusPending {
			continue
		}
		out = append(out, req)
	}
	return out
}

// orderForReview validates the review input and returns the requests in supplied
// order, duplicates dropped. found holds the event's requests among ids.
func orderForReview(ids []string, found []*domain.Request) ([]*domain.Request, error) {
	byID := make(map[string]*domain.Request, len(found))
	for _, req := range found {
		byID[req.ID] = req
	}

	seen := make(map[string]struct{}, len(ids))
	ordered := make([]*domain.Request, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		req, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: request %s", domain.ErrNotFound, id)
		}
		if req.Status != domain.RequestStatusPending {
			return nil, fmt.Errorf("%w: request %s is %s, only PENDING requests can be reviewed", domain.ErrInvalidTransition, id, req.Status)
		}
		ordered = append(ordered, req)
	}
	return ordered, nil
}

// validateStatusUpdate checks the shape of a review before any storage access.
func validateStatusUpdate(u domain.RequestStatusUpdate) error {
	var errs []string
	if u.Status != domain.ReviewConfirm && u.Status != domain.ReviewReject {
		errs = append(errs, fmt.Sprintf("status must be %s or %s", domain.ReviewConfirm, domain.ReviewReject))
	}
	if len(u.RequestIDs) == 0 {
		errs = append(errs, "request_ids must not be empty")
	}
	for _, id := range u.RequestIDs {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, "request_ids must not contain empty ids")
			break
		}
	}
	return validationError(errs)
}

// dedupeIDs keeps the first occurrence of each id.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func requestIDs(reqs []*domain.Request) []string {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	return ids
}

func setStatus(reqs []*domain.Request, status domain.RequestStatus) {
	for _, r := range reqs {
		r.Status = status
	}
}
