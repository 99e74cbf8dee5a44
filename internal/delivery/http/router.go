package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventadmission/internal/delivery/http/controllers"
	"eventadmission/internal/delivery/http/helpers"
	"eventadmission/internal/delivery/http/middleware"
	"eventadmission/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Admin      *controllers.AdminEventController
	UserEvents *controllers.UserEventController
	Public     *controllers.PublicEventController
	Requests   *controllers.RequestController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	admin := func(next http.HandlerFunc) http.HandlerFunc { return auth(middleware.RequireAdmin(next)) }
	self := func(next http.HandlerFunc) http.HandlerFunc { return auth(middleware.RequireSelf(next)) }

	// Admin
	mux.HandleFunc("GET /admin/events", admin(c.Admin.FindEvents))
	mux.HandleFunc("PATCH /admin/events/{eventID}", admin(c.Admin.UpdateEvent))

	// Initiator
	mux.HandleFunc("GET /users/{userID}/events", self(c.UserEvents.ListEvents))
	mux.HandleFunc("POST /users/{userID}/events", self(c.UserEvents.AddEvent))
	mux.HandleFunc("GET /users/{userID}/events/{eventID}", self(c.UserEvents.GetEvent))
	mux.HandleFunc("PATCH /users/{userID}/events/{eventID}", self(c.UserEvents.UpdateEvent))
	mux.HandleFunc("GET /users/{userID}/events/{eventID}/requests", self(c.Requests.ListEventRequests))
	mux.HandleFunc("PATCH /users/{userID}/events/{eventID}/requests", self(c.Requests.ReviewRequests))

	// Requester
	mux.HandleFunc("GET /users/{userID}/requests", self(c.Requests.ListUserRequests))
	mux.HandleFunc("POST /users/{userID}/requests", self(c.Requests.SubmitRequest))
	mux.HandleFunc("PATCH /users/{userID}/requests/{requestID}/cancel", self(c.Requests.CancelRequest))

	// Public
	mux.HandleFunc("GET /events", c.Public.FindEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Public.GetEvent)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
