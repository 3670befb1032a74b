package util

import (
	"time"

	iso8601 "github.com/senseyeio/duration"
)

// ParseISO8601Interval turns an ISO-8601 duration (eg. PT15M) into a time.Duration anchored at now
func ParseISO8601Interval(interval string) (time.Duration, error) {
	duration, err := iso8601.ParseISO8601(interval)
	if err != nil {
		return 0, err
	}

	now := time.Now()

	return duration.Shift(now).Sub(now), nil
}
