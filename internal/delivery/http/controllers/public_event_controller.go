package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventadmission/internal/delivery/http/helpers"
	"eventadmission/internal/domain"
)

// PublicEventController serves the unauthenticated catalogue of published events.
type PublicEventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewPublicEventController(logger *slog.Logger, svc domain.EventService) *PublicEventController {
	return &PublicEventController{
		Logger:  logger,
		Service: svc,
	}
}

func parsePublicFilter(r *http.Request) (domain.PublicEventFilter, error) {
	q := r.URL.Query()
	filter := domain.PublicEventFilter{
		Text:        q.Get("text"),
		CategoryIDs: helpers.QueryList(q, "categories"),
		Sort:        domain.SortEventDate,
	}
	var err error
	if filter.Paid, err = helpers.QueryBool(q, "paid"); err != nil {
		return filter, err
	}
	available, err := helpers.QueryBool(q, "onlyAvailable")
	if err != nil {
		return filter, err
	}
	filter.OnlyAvailable = available != nil && *available
	if filter.RangeStart, err = helpers.QueryDate(q, "rangeStart"); err != nil {
		return filter, err
	}
	if filter.RangeEnd, err = helpers.QueryDate(q, "rangeEnd"); err != nil {
		return filter, err
	}
	if s := q.Get("sort"); s != "" {
		switch sort := domain.EventSort(strings.ToUpper(s)); sort {
		case domain.SortEventDate, domain.SortViews:
			filter.Sort = sort
		default:
			return filter, fmt.Errorf("sort must be %s or %s, got %q", domain.SortEventDate, domain.SortViews, s)
		}
	}
	return filter, nil
}

// FindEvents godoc
// @Summary Search published events
// @Description Full-text search over annotation and description plus category, paid and date filters. Without rangeStart only future events are returned.
// @Tags public
// @Produce json
// @Param text query string false "Case-insensitive text in annotation or description"
// @Param categories query []string false "Category ids" collectionFormat(csv)
// @Param paid query bool false "Paid events only (true) or free only (false)"
// @Param rangeStart query string false "Earliest event date (yyyy-MM-dd HH:mm:ss)"
// @Param rangeEnd query string false "Latest event date (yyyy-MM-dd HH:mm:ss)"
// @Param onlyAvailable query bool false "Hide events whose participant limit is reached" default(false)
// @Param sort query string false "EVENT_DATE or VIEWS" Enums(EVENT_DATE, VIEWS)
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *PublicEventController) FindEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePublicFilter(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	page, err := helpers.ParsePage(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	events, err := c.Service.FindEvents(r.Context(), filter, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get a published event
// @Description Returns a published event with its confirmed request count and counts the view.
// @Tags public
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *PublicEventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
