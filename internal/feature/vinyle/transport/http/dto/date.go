package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateOnly is the calendar-date layout accepted besides RFC 3339.
const dateOnly = "2006-01-02"

// Date is a release date. It decodes RFC 3339 timestamps and plain
// YYYY-MM-DD dates (read as midnight UTC) and always encodes as RFC 3339.
type Date struct {
	time.Time
}

// DateError reports a date_parution value that is not a date string.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("date_parution %s is neither RFC 3339 nor YYYY-MM-DD", e.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &DateError{Value: string(b)}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return &DateError{Value: string(b)}
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}
