// Package escalation computes how long a ticket has been waiting in the
// internal queue. Values are derived on read from pushedToSystechAt.
package escalation

import (
	"fmt"
	"time"
)

type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
)

const (
	WarningAfter  = 8 * time.Hour
	CriticalAfter = 24 * time.Hour
)

// Age is the elapsed time since a ticket was pushed to the internal queue.
type Age struct {
	Elapsed time.Duration `json:"-"`
	Hours   int           `json:"hours"`
	Minutes int           `json:"minutes"`
	Display string        `json:"display"`
	Urgency Urgency       `json:"urgency"`
}

// SLAAge returns the age of an escalation pushed at pushedAt. A pushedAt in
// the future counts as zero elapsed.
func SLAAge(pushedAt, now time.Time) Age {
	elapsed := now.Sub(pushedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	hours := int(elapsed / time.Hour)
	minutes := int((elapsed % time.Hour) / time.Minute)

	return Age{
		Elapsed: elapsed,
		Hours:   hours,
		Minutes: minutes,
		Display: formatAge(hours, minutes),
		Urgency: UrgencyFor(elapsed),
	}
}

// UrgencyFor is critical from 24h, warning from 8h, normal below that.
func UrgencyFor(elapsed time.Duration) Urgency {
	switch {
	case elapsed >= CriticalAfter:
		return UrgencyCritical
	case elapsed >= WarningAfter:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

func formatAge(hours, minutes int) string {
	switch {
	case hours >= 24:
		return fmt.Sprintf("%dd %dh", hours/24, hours%24)
	case hours >= 1:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
