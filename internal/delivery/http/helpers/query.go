package helpers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// QueryDate returns the date in query parameter key, or nil when it is absent.
func QueryDate(q url.Values, key string) (*time.Time, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &t, nil
}

// QueryBool returns the boolean in query parameter key, or nil when it is absent.
func QueryBool(q url.Values, key string) (*bool, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false, got %q", key, s)
	}
	return &b, nil
}

// QueryList collects key from repeated parameters and comma-separated values,
// so ?states=A&states=B and ?states=A,B are equivalent. Blank items are dropped.
func QueryList(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
