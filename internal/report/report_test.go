package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuswatt/internal/aggregate"
	"campuswatt/internal/models"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func fixture() ([]models.Record, []aggregate.BuildingSummary, []aggregate.BucketTotal, []aggregate.BucketTotal) {
	records := []models.Record{
		models.NewRecord(ts("2024-01-01 00:00:00"), 60.0, "A"),
		models.NewRecord(ts("2024-01-02 00:00:00"), 40.0, "A"),
		models.NewRecord(ts("2024-01-01 12:00:00"), 50.0, "B"),
	}
	summaries := aggregate.BuildingWiseSummary(records)
	return records, summaries, aggregate.DailyTotals(records), aggregate.WeeklyTotals(records)
}

func TestBuildHighestBuildingAndPeak(t *testing.T) {
	records, summaries, daily, weekly := fixture()

	s := Build(records, summaries, daily, weekly)

	assert.Equal(t, "A", s.HighestBuilding)
	assert.InDelta(t, 100.0, s.HighestKWh, 1e-9)
	assert.InDelta(t, 150.0, s.TotalCampusKWh, 1e-9)

	assert.Equal(t, "A", s.Peak.Building)
	assert.Equal(t, ts("2024-01-01 00:00:00"), s.Peak.Timestamp)
	assert.InDelta(t, 60.0, s.Peak.KWh, 1e-9)
}

func TestBuildTrendCounts(t *testing.T) {
	records, summaries, daily, weekly := fixture()

	s := Build(records, summaries, daily, weekly)

	assert.Equal(t, 2, s.DaysRecorded)
	assert.Equal(t, 1, s.WeeksRecorded)
}

func TestPeakTieBreaksToFirstRecord(t *testing.T) {
	records := []models.Record{
		models.NewRecord(ts("2024-01-01 00:00:00"), 9.0, "A"),
		models.NewRecord(ts("2024-01-02 00:00:00"), 9.0, "B"),
	}
	summaries := aggregate.BuildingWiseSummary(records)

	s := Build(records, summaries, aggregate.DailyTotals(records), aggregate.WeeklyTotals(records))

	assert.Equal(t, "A", s.Peak.Building)
	assert.Equal(t, ts("2024-01-01 00:00:00"), s.Peak.Timestamp)
}

func TestHighestBuildingTieBreaksToFirstSummaryRow(t *testing.T) {
	records := []models.Record{
		models.NewRecord(ts("2024-01-01 00:00:00"), 5.0, "B"),
		models.NewRecord(ts("2024-01-01 01:00:00"), 5.0, "A"),
	}
	summaries := aggregate.BuildingWiseSummary(records)

	s := Build(records, summaries, aggregate.DailyTotals(records), aggregate.WeeklyTotals(records))

	assert.Equal(t, "B", s.HighestBuilding)
}

func TestRenderLayout(t *testing.T) {
	records, summaries, daily, weekly := fixture()

	text := Build(records, summaries, daily, weekly).Render()

	expected := strings.Join([]string{
		"Campus Energy Consumption Summary",
		"=================================",
		"Total Campus Consumption (kWh): 150.00",
		"",
		"Highest Consuming Building: A (100.00 kWh)",
		"",
		"Peak Load Details:",
		"  Building : A",
		"  Time     : 2024-01-01 00:00:00",
		"  kWh      : 60.00",
		"",
		"Trends:",
		"  Number of days recorded : 2",
		"  Number of weeks recorded: 1",
	}, "\n")

	require.Equal(t, expected, text)
}
