package sprint

import (
	"fmt"
	"time"
)

// Length is the inclusive number of days a sprint covers.
const Length = 14

// GenerateSprintName derives "{Mon}-{I|II}-{YY}" from a start date. Days 1
// to 15 fall in the first half of the month.
func GenerateSprintName(start time.Time) string {
	half := "I"
	if start.Day() > 15 {
		half = "II"
	}
	return fmt.Sprintf("%s-%s-%02d", start.Month().String()[:3], half, start.Year()%100)
}

// CalculateEndDate returns the last day of a sprint starting on start.
func CalculateEndDate(start time.Time) time.Time {
	return start.AddDate(0, 0, Length-1)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
