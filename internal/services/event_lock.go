package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eventadmission/internal/domain"
)

// EventLocker serializes admission work per event id. Different events never
// contend. Entries are dropped once no goroutine holds or waits for them.
type EventLocker struct {
	timeout time.Duration

	mu    sync.Mutex
	locks map[string]*eventLock
}

type eventLock struct {
	sem  chan struct{}
	refs int
}

// NewEventLocker returns a locker whose Lock gives up after timeout.
func NewEventLocker(timeout time.Duration) *EventLocker {
	return &EventLocker{
		timeout: timeout,
		locks:   make(map[string]*eventLock),
	}
}

// Lock acquires the lock for eventID and returns its release func. It fails with
// domain.ErrBusy when the lock is not acquired within the timeout or ctx ends first.
func (l *EventLocker) Lock(ctx context.Context, eventID string) (func(), error) {
	entry := l.acquireEntry(eventID)
	release := func() {
		<-entry.sem
		l.releaseEntry(eventID, entry)
	}

	select {
	case entry.sem <- struct{}{}:
		return sync.OnceFunc(release), nil
	default:
	}

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case entry.sem <- struct{}{}:
		return sync.OnceFunc(release), nil
	case <-timer.C:
		l.releaseEntry(eventID, entry)
		return nil, fmt.Errorf("%w: admission lock for event %s not acquired within %s", domain.ErrBusy, eventID, l.timeout)
	case <-ctx.Done():
		l.releaseEntry(eventID, entry)
		return nil, fmt.Errorf("%w: admission lock for event %s: %v", domain.ErrBusy, eventID, ctx.Err())
	}
}

func (l *EventLocker) acquireEntry(eventID string) *eventLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[eventID]
	if !ok {
		entry = &eventLock{sem: make(chan struct{}, 1)}
		l.locks[eventID] = entry
	}
	entry.refs++
	return entry
}

func (l *EventLocker) releaseEntry(eventID string, entry *eventLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, eventID)
	}
}

// size reports how many event ids currently have an entry.
func (l *EventLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
