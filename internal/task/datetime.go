package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the only accepted date-time layout (yyyy-MM-dd HHmm).
const DateTimeLayout = "2006-01-02 1504"

// ErrInvalidDateFormat is returned when a date-time does not match DateTimeLayout.
var ErrInvalidDateFormat = errors.New("invalid date format")

// ParseDateTime parses s using DateTimeLayout. Values are wall-clock times
// with no zone; they are held in UTC so that no local DST rule can shift
// them. Surrounding whitespace is ignored.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected yyyy-MM-dd HHmm)", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// FormatDateTime formats the UTC wall clock of t using DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}
