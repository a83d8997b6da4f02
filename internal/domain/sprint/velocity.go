package sprint

import (
	"math"
	"sort"
)

type VelocityPoint struct {
	SprintID  uint    `json:"sprint_id"`
	Name      string  `json:"name"`
	Velocity  int     `json:"velocity"`
	HeightPct float64 `json:"height_pct"`
}

type VelocityReport struct {
	Sprints []VelocityPoint `json:"sprints"`
	Average float64         `json:"average"`
	Max     int             `json:"max"`
}

// VelocityTrend builds the chart data over completed sprints in start order.
// Sprints in any other status are ignored. Heights are normalized against
// the best sprint.
func VelocityTrend(sprints []*Sprint) VelocityReport {
	completed := make([]*Sprint, 0, len(sprints))
	for _, s := range sprints {
		if s.status == StatusCompleted {
			completed = append(completed, s)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].startDate.Before(completed[j].startDate)
	})

	report := VelocityReport{Sprints: make([]VelocityPoint, 0, len(completed))}
	if len(completed) == 0 {
		return report
	}

	total := 0
	for _, s := range completed {
		v := 0
		if s.velocity != nil {
			v = *s.velocity
		}
		total += v
		if v > report.Max {
			report.Max = v
		}
		report.Sprints = append(report.Sprints, VelocityPoint{SprintID: s.id, Name: s.name, Velocity: v})
	}

	if report.Max > 0 {
		for i := range report.Sprints {
			pct := float64(report.Sprints[i].Velocity) / float64(report.Max) * 100
			report.Sprints[i].HeightPct = math.Round(pct*10) / 10
		}
	}
	report.Average = math.Round(float64(total)/float64(len(completed))*10) / 10
	return report
}
