package domain

import (
	"context"
	"time"
)

// Transactor runs fn inside a single storage transaction. Repositories called with
// the ctx passed to fn take part in it. If fn returns an error nothing is committed.
// Nested calls join the outer transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// LifecycleMessageType names a committed lifecycle change.
type LifecycleMessageType string

const (
	MessageEventPublished   LifecycleMessageType = "event.published"
	MessageEventCanceled    LifecycleMessageType = "event.canceled"
	MessageRequestConfirmed LifecycleMessageType = "request.confirmed"
	MessageRequestRejected  LifecycleMessageType = "request.rejected"
	MessageRequestCanceled  LifecycleMessageType = "request.canceled"
)

// LifecycleMessage describes a change that has been committed.
type LifecycleMessage struct {
	Type       LifecycleMessageType `json:"type"`
	EventID    string               `json:"event_id"`
	RequestIDs []string             `json:"request_ids,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// LifecyclePublisher hands committed lifecycle messages to downstream consumers.
type LifecyclePublisher interface {
	Publish(ctx context.Context, msg LifecycleMessage) error
}
