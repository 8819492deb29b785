package report

import (
	"fmt"
	"strings"
	"time"

	"campuswatt/internal/aggregate"
	"campuswatt/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// PeakEvent identifies the single reading with the largest kWh value in the run.
type PeakEvent struct {
	Building  string
	Timestamp time.Time
	KWh       float64
}

// Summary is the derived executive summary over one pipeline run.
type Summary struct {
	TotalCampusKWh  float64
	HighestBuilding string
	HighestKWh      float64
	Peak            PeakEvent
	DaysRecorded    int
	WeeksRecorded   int
}

// Build derives the executive summary from the unified record set and the
// aggregate tables. Ties on the highest building resolve to the first row in
// summary order; ties on the peak event resolve to the first record in record
// order. Pure with respect to its inputs; callers must not pass an empty
// record set (the pipeline halts earlier on empty input).
func Build(records []models.Record, summaries []aggregate.BuildingSummary, daily, weekly []aggregate.BucketTotal) Summary {
	var s Summary

	for _, r := range records {
		s.TotalCampusKWh += r.KWh
	}

	for i, row := range summaries {
		if i == 0 || row.TotalKWh > s.HighestKWh {
			s.HighestBuilding = row.Building
			s.HighestKWh = row.TotalKWh
		}
	}

	for i, r := range records {
		if i == 0 || r.KWh > s.Peak.KWh {
			s.Peak = PeakEvent{Building: r.Building, Timestamp: r.Timestamp, KWh: r.KWh}
		}
	}

	days := make(map[time.Time]struct{})
	for _, row := range daily {
		days[aggregate.DayBucket(row.Bucket)] = struct{}{}
	}
	s.DaysRecorded = len(days)

	weeks := make(map[int]struct{})
	for _, row := range weekly {
		_, week := row.Bucket.ISOWeek()
		weeks[week] = struct{}{}
	}
	s.WeeksRecorded = len(weeks)

	return s
}

// Render emits the fixed-layout text report. Numeric values are rounded to two
// decimal places here and nowhere earlier.
func (s Summary) Render() string {
	lines := []string{
		"Campus Energy Consumption Summary",
		"=================================",
		fmt.Sprintf("Total Campus Consumption (kWh): %.2f", s.TotalCampusKWh),
		"",
		fmt.Sprintf("Highest Consuming Building: %s (%.2f kWh)", s.HighestBuilding, s.HighestKWh),
		"",
		"Peak Load Details:",
		fmt.Sprintf("  Building : %s", s.Peak.Building),
		fmt.Sprintf("  Time     : %s", s.Peak.Timestamp.Format(timeLayout)),
		fmt.Sprintf("  kWh      : %.2f", s.Peak.KWh),
		"",
		"Trends:",
		fmt.Sprintf("  Number of days recorded : %d", s.DaysRecorded),
		fmt.Sprintf("  Number of weeks recorded: %d", s.WeeksRecorded),
	}
	return strings.Join(lines, "\n")
}
