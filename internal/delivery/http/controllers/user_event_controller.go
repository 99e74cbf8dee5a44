package controllers

import (
	"log/slog"
	"net/http"

	"eventadmission/internal/delivery/http/helpers"
	"eventadmission/internal/domain"
)

// UserEventController serves an initiator's own events under /users/{userID}/events.
// Routes are wrapped with RequireAuth and RequireSelf, so userID is the caller.
type UserEventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewUserEventController(logger *slog.Logger, svc domain.EventService) *UserEventController {
	return &UserEventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List my events
// @Description Lists the events created by the user, newest first, with confirmed request counts.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown user)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID}/events [get]
func (c *UserEventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	page, err := helpers.ParsePage(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	events, err := c.Service.InitiatorGetEvents(r.Context(), r.PathValue("userID"), page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// AddEvent godoc
// @Summary Create an event
// @Description Creates an event in PENDING state awaiting moderation. The event date must be at least two hours ahead.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Param event body NewEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (user or category)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID}/events [post]
func (c *UserEventController) AddEvent(w http.ResponseWriter, r *http.Request) {
	var req NewEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.InitiatorAddEvent(r.Context(), r.PathValue("userID"), req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get one of my events
// @Description Returns an event the user initiated, in any state.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the initiator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID}/events/{eventID} [get]
func (c *UserEventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.InitiatorGetEvent(r.Context(), r.PathValue("userID"), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update one of my events
// @Description Edits an unpublished event and/or applies SEND_TO_REVIEW or CANCEL_REVIEW. Published events cannot be changed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "State action and fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or unsupported_action"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the initiator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (published) or invalid_transition"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID}/events/{eventID} [patch]
func (c *UserEventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.InitiatorUpdateEvent(r.Context(), r.PathValue("userID"), r.PathValue("eventID"), req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
