package helpers

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format for every date in requests and query strings.
const DateLayout = "2006-01-02 15:04:05"

// ParseDate parses s in DateLayout as UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must use layout %q", s, DateLayout)
	}
	return t, nil
}

// Date is a time.Time that travels as a DateLayout string in JSON bodies.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string in layout %q", DateLayout)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(DateLayout))
}
