// Package biztime holds the clock and the business timezone.
// Timestamps are stored in UTC. Calendar dates (sprint start and end) carry
// no zone and are kept as UTC midnight of that day.
package biztime

import (
	"sync"
	"time"
)

const (
	// DefaultTimezone is used when server.timezone is empty.
	DefaultTimezone = "UTC"

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init loads the business timezone. Only the first call has an effect.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, falling back to UTC when Init
// was never called or failed.
func Location() *time.Location {
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatInBizTimezone renders t in the business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
