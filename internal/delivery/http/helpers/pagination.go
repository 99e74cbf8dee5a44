package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"eventadmission/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultFrom = 0
	DefaultSize = 10
	MaxSize     = 1000
)

// ParsePage reads from and size from the request query string. Missing values
// fall back to defaults and size is capped at MaxSize. A non-numeric value,
// a negative from or a size below one is an error.
func ParsePage(r *http.Request) (domain.PageRequest, error) {
	page := domain.PageRequest{From: DefaultFrom, Size: DefaultSize}
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return page, fmt.Errorf("from must be a non-negative integer, got %q", s)
		}
		page.From = v
	}
	if s := q.Get("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return page, fmt.Errorf("size must be a positive integer, got %q", s)
		}
		page.Size = min(v, MaxSize)
	}
	return page, nil
}
