package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventadmission/internal/delivery/http/helpers"
	"eventadmission/internal/domain"
)

// RequestController serves participation requests, both the requester's side
// under /users/{userID}/requests and the initiator's review under
// /users/{userID}/events/{eventID}/requests.
type RequestController struct {
	Logger  *slog.Logger
	Service domain.RequestService
}

func NewRequestController(logger *slog.Logger, svc domain.RequestService) *RequestController {
	return &RequestController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitRequest godoc
// @Summary Request to join an event
// @Description Creates a participation request. It is confirmed immediately when the event has no moderation or no participant limit.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Param eventId query string true "Event ID (UUID)"
// @Success 201 {object} controllers.RequestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict or capacity_exceeded"
// @Failure 503 {object} helpers.APIResponse "error.code: busy, retry after the Retry-After header"
// @Router /users/{userID}/requests [post]
func (c *RequestController) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(r.URL.Query().Get("eventId"))
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventId")
		return
	}
	req, err := c.Service.SubmitRequest(r.Context(), r.PathValue("userID"), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, req)
}

// ListUserRequests godoc
// @Summary List my participation requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Success 200 {object} controllers.RequestListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID}/requests [get]
func (c *RequestController) ListUserRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.Service.ListUserRequests(r.Context(), r.PathValue("userID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reqs)
}

// CancelRequest godoc
// @Summary Withdraw a participation request
// @Description Cancels one of the caller's pending or confirmed requests, freeing its place.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Param requestID path string true "Request ID (UUID)"
// @Success 200 {object} controllers.RequestSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition"
// @Failure 503 {object} helpers.APIResponse "error.code: busy"
// @Router /users/{userID}/requests/{requestID}/cancel [patch]
func (c *RequestController) CancelRequest(w http.ResponseWriter, r *http.Request) {
	req, err := c.Service.CancelRequest(r.Context(), r.PathValue("userID"), r.PathValue("requestID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, req)
}

// ListEventRequests godoc
// @Summary List requests for one of my events
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.RequestListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the initiator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID}/events/{eventID}/requests [get]
func (c *RequestController) ListEventRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.Service.ListEventRequests(r.Context(), r.PathValue("userID"), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reqs)
}

// ReviewRequests godoc
// @Summary Confirm or reject pending requests
// @Description Reviews a batch of pending requests. Confirmation proceeds in the given order until the participant limit is reached; the rest of the batch and any other pending requests are then rejected.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (must be the caller)"
// @Param eventID path string true "Event ID (UUID)"
// @Param body body ReviewRequestsRequest true "Request ids and decision"
// @Success 200 {object} controllers.ReviewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the initiator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_exceeded or invalid_transition"
// @Failure 503 {object} helpers.APIResponse "error.code: busy"
// @Router /users/{userID}/events/{eventID}/requests [patch]
func (c *RequestController) ReviewRequests(w http.ResponseWriter, r *http.Request) {
	var body ReviewRequestsRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	result, err := c.Service.ReviewRequests(r.Context(), r.PathValue("userID"), r.PathValue("eventID"), body.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
