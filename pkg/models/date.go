package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-month-year textual form used by all three source
// datasets and by the export artifacts.
const DateLayout = "02-01-2006"

// Date is a calendar date with day precision. It marshals to and from the
// DD-MM-YYYY form used on the wire.
type Date struct {
	time.Time
}

// ParseDate interprets DD-MM-YYYY text. Empty text is an error: callers that
// allow an absent date must check for absence before parsing, rather than
// relying on a silent fallback.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected DD-MM-YYYY", s)
	}
	return Date{t}, nil
}

// DateOf truncates a time to day precision in its location.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return fmt.Errorf("empty date")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
