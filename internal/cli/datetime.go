package cli

import (
	"time"

	"frameflow-cli/internal/calendar"
)

func parseDateTime(s string) (time.Time, error) {
	return calendar.ParseDateTime(s)
}

func parseOptionalDateTime(s string) (*time.Time, error) {
	return calendar.ParseOptionalDateTime(s)
}
