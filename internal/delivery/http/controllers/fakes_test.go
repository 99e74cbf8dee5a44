package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventadmission/internal/delivery/http/helpers"
	"eventadmission/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err    error
	view   *domain.EventView
	views  []*domain.EventView
	called bool

	lastUserID       string
	lastEventID      string
	lastPatch        domain.EventPatch
	lastInput        domain.NewEventInput
	lastAdminFilter  domain.AdminEventFilter
	lastPublicFilter domain.PublicEventFilter
	lastPage         domain.PageRequest
}

func (f *fakeEventService) AdminUpdateEvent(_ context.Context, eventID string, patch domain.EventPatch) (*domain.EventView, error) {
	f.called, f.lastEventID, f.lastPatch = true, eventID, patch
	return f.view, f.err
}

func (f *fakeEventService) AdminFindEvents(_ context.Context, filter domain.AdminEventFilter, page domain.PageRequest) ([]*domain.EventView, error) {
	f.called, f.lastAdminFilter, f.lastPage = true, filter, page
	return f.views, f.err
}

func (f *fakeEventService) InitiatorGetEvents(_ context.Context, userID string, page domain.PageRequest) ([]*domain.EventView, error) {
	f.called, f.lastUserID, f.lastPage = true, userID, page
	return f.views, f.err
}

func (f *fakeEventService) InitiatorAddEvent(_ context.Context, userID string, input domain.NewEventInput) (*domain.EventView, error) {
	f.called, f.lastUserID, f.lastInput = true, userID, input
	return f.view, f.err
}

func (f *fakeEventService) InitiatorGetEvent(_ context.Context, userID, eventID string) (*domain.EventView, error) {
	f.called, f.lastUserID, f.lastEventID = true, userID, eventID
	return f.view, f.err
}

func (f *fakeEventService) InitiatorUpdateEvent(_ context.Context, userID, eventID string, patch domain.EventPatch) (*domain.EventView, error) {
	f.called, f.lastUserID, f.lastEventID, f.lastPatch = true, userID, eventID, patch
	return f.view, f.err
}

func (f *fakeEventService) FindEvents(_ context.Context, filter domain.PublicEventFilter, page domain.PageRequest) ([]*domain.EventView, error) {
	f.called, f.lastPublicFilter, f.lastPage = true, filter, page
	return f.views, f.err
}

func (f *fakeEventService) GetEvent(_ context.Context, eventID string) (*domain.EventView, error) {
	f.called, f.lastEventID = true, eventID
	return f.view, f.err
}

// fakeRequestService implements domain.RequestService for handler tests.
type fakeRequestService struct {
	err    error
	req    *domain.Request
	reqs   []*domain.Request
	result *domain.ReviewResult
	called bool

	lastUserID    string
	lastEventID   string
	lastRequestID string
	lastUpdate    domain.RequestStatusUpdate
}

func (f *fakeRequestService) SubmitRequest(_ context.Context, userID, eventID string) (*domain.Request, error) {
	f.called, f.lastUserID, f.lastEventID = true, userID, eventID
	return f.req, f.err
}

func (f *fakeRequestService) ReviewRequests(_ context.Context, userID, eventID string, update domain.RequestStatusUpdate) (*domain.ReviewResult, error) {
	f.called, f.lastUserID, f.lastEventID, f.lastUpdate = true, userID, eventID, update
	return f.result, f.err
}

func (f *fakeRequestService) CancelRequest(_ context.Context, userID, requestID string) (*domain.Request, error) {
	f.called, f.lastUserID, f.lastRequestID = true, userID, requestID
	return f.req, f.err
}

func (f *fakeRequestService) ListUserRequests(_ context.Context, userID string) ([]*domain.Request, error) {
	f.called, f.lastUserID = true, userID
	return f.reqs, f.err
}

func (f *fakeRequestService) ListEventRequests(_ context.Context, userID, eventID string) ([]*domain.Request, error) {
	f.called, f.lastUserID, f.lastEventID = true, userID, eventID
	return f.reqs, f.err
}

// serve mounts handler on pattern so path values resolve, then performs one request.
func serve(pattern string, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

// envelope decodes the response body; data is left raw for per-test decoding.
type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	env := decode(t, rr)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func sampleView(id string, state domain.EventState, confirmed int) *domain.EventView {
	return &domain.EventView{
		Event: &domain.Event{
			ID:               id,
			InitiatorID:      "user-1",
			Category:         &domain.Category{ID: "cat-1", Name: "Board games"},
			State:            state,
			ParticipantLimit: 10,
			Title:            "Catan night",
			EventDate:        time.Date(2030, 7, 1, 18, 0, 0, 0, time.UTC),
			CreatedOn:        time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC),
			Location:         &domain.Location{ID: "loc-1", Lat: 55.75, Lon: 37.62},
		},
		ConfirmedRequests: confirmed,
	}
}
