package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventadmission/internal/domain"
)

// lookupError keeps ErrNotFound as the visible kind and wraps anything else as a storage failure.
func lookupError(what string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

// publishAll hands committed changes to the publisher. Failures are logged, never
// returned: the change is already committed.
func publishAll(ctx context.Context, publisher domain.LifecyclePublisher, logger *slog.Logger, msgs ...domain.LifecycleMessage) {
	ctx = context.WithoutCancel(ctx)
	for _, msg := range msgs {
		if err := publisher.Publish(ctx, msg); err != nil {
			logger.WarnContext(ctx, "publish lifecycle message failed",
				"type", msg.Type, "event_id", msg.EventID, "err", err)
		}
	}
}

// requestMessages builds one message per non-empty status group.
func requestMessages(eventID string, at time.Time, groups map[domain.LifecycleMessageType][]*domain.Request) []domain.LifecycleMessage {
	var msgs []domain.LifecycleMessage
	for _, typ := range []domain.LifecycleMessageType{
		domain.MessageRequestConfirmed,
		domain.MessageRequestRejected,
		domain.MessageRequestCanceled,
	} {
		reqs := groups[typ]
		if len(reqs) == 0 {
			continue
		}
		msgs = append(msgs, domain.LifecycleMessage{
			Type:       typ,
			EventID:    eventID,
			RequestIDs: requestIDs(reqs),
			OccurredAt: at,
		})
	}
	return msgs
}
