package parsers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/tebeka/strftime"
	"github.com/itchyny/timefmt-go"
)

const DefaultDateFormat = "%Y-%m-%d"

var ErrInvalidFormat = errors.New("invalid date format")

// ValidateFormat reports whether format can both render and read back a date.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	ref := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	if _, err := timefmt.Parse(timefmt.Format(ref, format), format); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidFormat, format, err)
	}
	return nil
}

// ParseTime parses s with a strftime format. Values without a zone are UTC.
func ParseTime(format, s string) (time.Time, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	return timefmt.Parse(strings.TrimSpace(s), format)
}

// FormatTime renders t with a strftime format. Specifiers the strftime
// package does not know go through timefmt.
func FormatTime(format string, t time.Time) string {
	if format == "" {
		format = DefaultDateFormat
	}
	if s, err := strftime.Format(format, t); err == nil {
		return s
	}
	return timefmt.Format(t, format)
}
