package helpers

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted for birth dates
const DateLayout = "2006-01-02"

// ParseDate parses an optional YYYY-MM-DD date. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}
