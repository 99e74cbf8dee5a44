package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"eventadmission/internal/delivery/http/controllers"
	"eventadmission/internal/domain"
)

type stubVerifier map[string]domain.Principal

func (s stubVerifier) Verify(token string) (domain.Principal, error) {
	p, ok := s[token]
	if !ok {
		return domain.Principal{}, errors.New("unknown token")
	}
	return p, nil
}

// stubEvents answers only the calls exercised by the router tests.
type stubEvents struct {
	domain.EventService
}

func (stubEvents) AdminFindEvents(context.Context, domain.AdminEventFilter, domain.PageRequest) ([]*domain.EventView, error) {
	return []*domain.EventView{}, nil
}

func (stubEvents) FindEvents(context.Context, domain.PublicEventFilter, domain.PageRequest) ([]*domain.EventView, error) {
	return []*domain.EventView{}, nil
}

func (stubEvents) InitiatorGetEvents(context.Context, string, domain.PageRequest) ([]*domain.EventView, error) {
	return []*domain.EventView{}, nil
}

type stubRequests struct {
	domain.RequestService
}

func (stubRequests) SubmitRequest(_ context.Context, userID, eventID string) (*domain.Request, error) {
	return &domain.Request{ID: "req-1", EventID: eventID, RequesterID: userID, Status: domain.RequestStatusPending}, nil
}

func newTestRouter() *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := stubEvents{}
	verifier := stubVerifier{
		"user-token":  {UserID: "user-1", Roles: []string{"user"}},
		"admin-token": {UserID: "admin-1", Roles: []string{domain.RoleAdmin}},
	}
	return NewRouter(Controllers{
		Admin:      controllers.NewAdminEventController(logger, events),
		UserEvents: controllers.NewUserEventController(logger, events),
		Public:     controllers.NewPublicEventController(logger, events),
		Requests:   controllers.NewRequestController(logger, stubRequests{}),
	}, verifier, logger)
}

func TestRouter(t *testing.T) {
	router := newTestRouter()
	tests := []struct {
		name       string
		method     string
		target     string
		token      string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"public search needs no token", http.MethodGet, "/events", "", http.StatusOK},
		{"admin search without token", http.MethodGet, "/admin/events", "", http.StatusUnauthorized},
		{"admin search as user", http.MethodGet, "/admin/events", "user-token", http.StatusForbidden},
		{"admin search as admin", http.MethodGet, "/admin/events", "admin-token", http.StatusOK},
		{"own events", http.MethodGet, "/users/user-1/events", "user-token", http.StatusOK},
		{"another user's events", http.MethodGet, "/users/user-2/events", "user-token", http.StatusForbidden},
		{"submit request", http.MethodPost, "/users/user-1/requests?eventId=ev-1", "user-token", http.StatusCreated},
		{"submit with bad token", http.MethodPost, "/users/user-1/requests?eventId=ev-1", "forged", http.StatusUnauthorized},
		{"wrong method", http.MethodDelete, "/events", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
