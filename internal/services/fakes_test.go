package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"eventadmission/internal/domain"
)

// fakeStore is an in-memory backing store shared by the fake repositories.
// Reads return copies so services only change stored state through writes.
type fakeStore struct {
	mu         sync.Mutex
	seq        int
	events     map[string]*domain.Event
	requests   map[string]*domain.Request
	users      map[string]*domain.User
	categories map[string]*domain.Category
	locations  []*domain.Location

	updateStatusErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:     make(map[string]*domain.Event),
		requests:   make(map[string]*domain.Request),
		users:      make(map[string]*domain.User),
		categories: make(map[string]*domain.Category),
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) addUser(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = &domain.User{ID: id, Name: id, Email: id + "@example.com"}
}

func (f *fakeStore) addCategory(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories[id] = &domain.Category{ID: id, Name: "cat " + id}
}

func (f *fakeStore) addEvent(e *domain.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.events[e.ID] = &cp
}

// addRequest stores a request with a creation time that keeps insertion order.
func (f *fakeStore) addRequest(r *domain.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	if cp.Created.IsZero() {
		f.seq++
		cp.Created = time.Date(2030, 1, 1, 0, 0, f.seq, 0, time.UTC)
	}
	f.requests[r.ID] = &cp
}

func (f *fakeStore) request(id string) *domain.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.requests[id]
	return &cp
}

func (f *fakeStore) event(id string) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.events[id]
	return &cp
}

func (f *fakeStore) countStatus(eventID string, status domain.RequestStatus) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.EventID == eventID && r.Status == status {
			n++
		}
	}
	return n
}

// sortedRequests returns copies matching keep, ordered by creation time then id.
func (f *fakeStore) sortedRequests(keep func(*domain.Request) bool) []*domain.Request {
	var out []*domain.Request
	for _, r := range f.requests {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID < out[j].ID
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out
}

// fakeTransactor snapshots the store and restores it when fn fails.
type fakeTransactor struct{ store *fakeStore }

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	events := make(map[string]*domain.Event, len(t.store.events))
	for k, v := range t.store.events {
		cp := *v
		events[k] = &cp
	}
	requests := make(map[string]*domain.Request, len(t.store.requests))
	for k, v := range t.store.requests {
		cp := *v
		requests[k] = &cp
	}
	t.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.store.mu.Lock()
		t.store.events = events
		t.store.requests = requests
		t.store.mu.Unlock()
		return err
	}
	return nil
}

type fakeEventRepo struct{ store *fakeStore }

func (r *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e.ID = r.store.nextID("ev")
	cp := *e
	r.store.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	r.store.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) IncrementViews(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Views++
	return nil
}

func (r *fakeEventRepo) list(keep func(*domain.Event) bool, page domain.PageRequest) []*domain.Event {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*domain.Event
	for _, e := range r.store.events {
		if keep(e) {
			cp := *e
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if page.Offset() >= len(all) {
		return []*domain.Event{}
	}
	end := page.Offset() + page.Limit()
	if end > len(all) {
		end = len(all)
	}
	return all[page.Offset():end]
}

func (r *fakeEventRepo) ListByInitiator(ctx context.Context, initiatorID string, page domain.PageRequest) ([]*domain.Event, error) {
	return r.list(func(e *domain.Event) bool { return e.InitiatorID == initiatorID }, page), nil
}

func (r *fakeEventRepo) AdminSearch(ctx context.Context, filter domain.AdminEventFilter, page domain.PageRequest) ([]*domain.Event, error) {
	return r.list(func(e *domain.Event) bool {
		if len(filter.States) > 0 {
			for _, s := range filter.States {
				if s == e.State {
					return true
				}
			}
			return false
		}
		return true
	}, page), nil
}

func (r *fakeEventRepo) PublicSearch(ctx context.Context, filter domain.PublicEventFilter, page domain.PageRequest) ([]*domain.Event, error) {
	return r.list(func(e *domain.Event) bool {
		if e.State != domain.EventStatePublished {
			return false
		}
		return filter.RangeStart == nil || !e.EventDate.Before(*filter.RangeStart)
	}, page), nil
}

type fakeRequestRepo struct{ store *fakeStore }

func (r *fakeRequestRepo) Create(ctx context.Context, req *domain.Request) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req.ID = r.store.nextID("req")
	cp := *req
	r.store.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) GetActiveByEventAndRequester(ctx context.Context, eventID, requesterID string) (*domain.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, req := range r.store.requests {
		if req.EventID == eventID && req.RequesterID == requesterID && req.Status.Active() {
			cp := *req
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRequestRepo) ListByIDs(ctx context.Context, eventID string, ids []string) ([]*domain.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return r.store.sortedRequests(func(req *domain.Request) bool {
		_, ok := want[req.ID]
		return ok && req.EventID == eventID
	}), nil
}

func (r *fakeRequestRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.sortedRequests(func(req *domain.Request) bool { return req.EventID == eventID }), nil
}

func (r *fakeRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]*domain.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.sortedRequests(func(req *domain.Request) bool { return req.RequesterID == requesterID }), nil
}

func (r *fakeRequestRepo) ListPendingByEvent(ctx context.Context, eventID string) ([]*domain.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.sortedRequests(func(req *domain.Request) bool {
		return req.EventID == eventID && req.Status == domain.RequestStatusPending
	}), nil
}

func (r *fakeRequestRepo) CountConfirmed(ctx context.Context, eventID string) (int, error) {
	return r.store.countStatus(eventID, domain.RequestStatusConfirmed), nil
}

func (r *fakeRequestRepo) CountConfirmedByEvents(ctx context.Context, eventIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(eventIDs))
	for _, id := range eventIDs {
		out[id] = r.store.countStatus(id, domain.RequestStatusConfirmed)
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, ids []string, status domain.RequestStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.updateStatusErr != nil {
		return r.store.updateStatusErr
	}
	for _, id := range ids {
		req, ok := r.store.requests[id]
		if !ok {
			return domain.ErrNotFound
		}
		req.Status = status
	}
	return nil
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeCategoryRepo struct{ store *fakeStore }

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

type fakeLocationRepo struct{ store *fakeStore }

func (r *fakeLocationRepo) ResolveOrCreate(ctx context.Context, in domain.LocationInput) (*domain.Location, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, l := range r.store.locations {
		if l.Lat == in.Lat && l.Lon == in.Lon {
			cp := *l
			return &cp, nil
		}
	}
	loc := &domain.Location{ID: r.store.nextID("loc"), Lat: in.Lat, Lon: in.Lon}
	r.store.locations = append(r.store.locations, loc)
	cp := *loc
	return &cp, nil
}

// recordingPublisher keeps every published message.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []domain.LifecycleMessage
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, msg domain.LifecycleMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

func (p *recordingPublisher) types() []domain.LifecycleMessageType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.LifecycleMessageType, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.Type)
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

var fixedNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

// testEnv wires both services against one fake store.
type testEnv struct {
	store     *fakeStore
	publisher *recordingPublisher
	locker    *EventLocker
	events    *eventService
	requests  *requestService
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	pub := &recordingPublisher{}
	locker := NewEventLocker(time.Second)
	tx := &fakeTransactor{store: store}
	logger := discardLogger()

	evs := NewEventService(
		&fakeEventRepo{store}, &fakeRequestRepo{store}, &fakeUserRepo{store},
		&fakeCategoryRepo{store}, &fakeLocationRepo{store},
		tx, locker, pub, logger, 5*time.Second,
	).(*eventService)
	evs.now = func() time.Time { return fixedNow }

	rqs := NewRequestService(
		&fakeEventRepo{store}, &fakeRequestRepo{store}, &fakeUserRepo{store},
		tx, locker, pub, logger, 5*time.Second,
	).(*requestService)
	rqs.now = func() time.Time { return fixedNow }

	return &testEnv{store: store, publisher: pub, locker: locker, events: evs, requests: rqs}
}

// publishedEvent stores a published event owned by "owner".
func (e *testEnv) publishedEvent(id string, limit int, moderation bool) {
	e.store.addUser("owner")
	e.store.addEvent(&domain.Event{
		ID:                id,
		InitiatorID:       "owner",
		State:             domain.EventStatePublished,
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		Title:             "Go meetup",
		EventDate:         fixedNow.Add(72 * time.Hour),
	})
}
