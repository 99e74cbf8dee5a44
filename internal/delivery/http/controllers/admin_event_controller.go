package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"eventadmission/internal/delivery/http/helpers"
	"eventadmission/internal/domain"
)

// AdminEventController serves the moderation endpoints under /admin/events.
type AdminEventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewAdminEventController(logger *slog.Logger, svc domain.EventService) *AdminEventController {
	return &AdminEventController{
		Logger:  logger,
		Service: svc,
	}
}

func parseAdminFilter(r *http.Request) (domain.AdminEventFilter, error) {
	q := r.URL.Query()
	filter := domain.AdminEventFilter{
		InitiatorIDs: helpers.QueryList(q, "users"),
		CategoryIDs:  helpers.QueryList(q, "categories"),
	}
	for _, s := range helpers.QueryList(q, "states") {
		state := domain.EventState(s)
		if !state.Valid() {
			return filter, fmt.Errorf("unknown state %q", s)
		}
		filter.States = append(filter.States, state)
	}
	var err error
	if filter.RangeStart, err = helpers.QueryDate(q, "rangeStart"); err != nil {
		return filter, err
	}
	if filter.RangeEnd, err = helpers.QueryDate(q, "rangeEnd"); err != nil {
		return filter, err
	}
	return filter, nil
}

// FindEvents godoc
// @Summary Search events for moderation
// @Description Lists events in any state, filtered by initiators, states, categories and event date range. Each event carries its confirmed request count.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param users query []string false "Initiator ids" collectionFormat(csv)
// @Param states query []string false "Event states (PENDING, PUBLISHED, CANCELED)" collectionFormat(csv)
// @Param categories query []string false "Category ids" collectionFormat(csv)
// @Param rangeStart query string false "Earliest event date (yyyy-MM-dd HH:mm:ss)"
// @Param rangeEnd query string false "Latest event date (yyyy-MM-dd HH:mm:ss)"
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [get]
func (c *AdminEventController) FindEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAdminFilter(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	page, err := helpers.ParsePage(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	events, err := c.Service.AdminFindEvents(r.Context(), filter, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateEvent godoc
// @Summary Moderate an event
// @Description Publishes or rejects a pending event and/or edits its fields. PUBLISH_EVENT needs the event date at least one hour ahead. Rejecting cancels the event's active requests.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "State action and fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or unsupported_action"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition, conflict or capacity_exceeded"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [patch]
func (c *AdminEventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.AdminUpdateEvent(r.Context(), eventID, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
