package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventadmission/internal/domain"
)

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var env APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", fmt.Errorf("%w: event ev-1", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
		{"conflict", fmt.Errorf("%w: already requested", domain.ErrConflict), http.StatusConflict, ErrCodeConflict},
		{"capacity", domain.ErrCapacityExceeded, http.StatusConflict, ErrCodeCapacityExceeded},
		{"transition", domain.ErrInvalidTransition, http.StatusConflict, ErrCodeInvalidTransition},
		{"unsupported", domain.ErrUnsupportedAction, http.StatusBadRequest, ErrCodeUnsupportedAction},
		{"validation", domain.ErrValidation, http.StatusBadRequest, ErrCodeBadRequest},
		{"busy", domain.ErrBusy, http.StatusServiceUnavailable, ErrCodeBusy},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/events", nil)

			WriteServiceError(rr, req, logger, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			if tt.wantStatus == http.StatusServiceUnavailable {
				assert.Equal(t, "1", rr.Header().Get("Retry-After"))
			} else {
				assert.Empty(t, rr.Header().Get("Retry-After"))
			}
		})
	}
}

func TestWriteServiceError_HidesUnexpectedDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	WriteServiceError(rr, req, slog.New(slog.NewTextHandler(io.Discard, nil)), errors.New("pq: password authentication failed"))

	env := decodeEnvelope(t, rr)
	assert.Equal(t, "internal server error", env.Error.Message)
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    domain.PageRequest
		wantErr bool
	}{
		{"defaults", "", domain.PageRequest{From: 0, Size: 10}, false},
		{"explicit", "from=20&size=5", domain.PageRequest{From: 20, Size: 5}, false},
		{"size capped", "size=5000", domain.PageRequest{From: 0, Size: MaxSize}, false},
		{"negative from", "from=-1", domain.PageRequest{}, true},
		{"zero size", "size=0", domain.PageRequest{}, true},
		{"not a number", "size=ten", domain.PageRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/events?"+tt.query, nil)
			got, err := ParsePage(req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	q := url.Values{
		"rangeStart": {"2030-06-01 10:00:00"},
		"rangeEnd":   {"06/01/2030"},
		"paid":       {"true"},
		"broken":     {"maybe"},
		"states":     {"PENDING, PUBLISHED", "CANCELED", " "},
	}

	start, err := QueryDate(q, "rangeStart")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC), *start)

	_, err = QueryDate(q, "rangeEnd")
	require.Error(t, err)

	missing, err := QueryDate(q, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	paid, err := QueryBool(q, "paid")
	require.NoError(t, err)
	assert.True(t, *paid)

	_, err = QueryBool(q, "broken")
	require.Error(t, err)

	assert.Equal(t, []string{"PENDING", "PUBLISHED", "CANCELED"}, QueryList(q, "states"))
	assert.Nil(t, QueryList(q, "users"))
}

type createDTO struct {
	Title string `json:"title"`
}

func (c createDTO) Validate() []string {
	if c.Title == "" {
		return []string{"title is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{"valid", `{"title":"Board games"}`, true},
		{"unknown field", `{"title":"x","extra":1}`, false},
		{"fails validation", `{"title":""}`, false},
		{"malformed", `{`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dto createDTO
			ok := DecodeAndValidate(rr, req, &dto)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.Equal(t, ErrCodeBadRequest, decodeEnvelope(t, rr).Error.Code)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var body struct {
		EventDate *Date `json:"eventDate"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"eventDate":"2030-06-01 18:30:00"}`), &body))
	require.NotNil(t, body.EventDate)
	assert.Equal(t, time.Date(2030, 6, 1, 18, 30, 0, 0, time.UTC), body.EventDate.Time)

	out, err := json.Marshal(body.EventDate)
	require.NoError(t, err)
	assert.JSONEq(t, `"2030-06-01 18:30:00"`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"eventDate":"2030-06-01T18:30:00Z"}`), &body))
	require.Error(t, json.Unmarshal([]byte(`{"eventDate":1700000000}`), &body))
}
