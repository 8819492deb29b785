package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuswatt/internal/aggregate"
	"campuswatt/internal/ingest"
	"campuswatt/internal/models"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCleanedDataRoundTrip(t *testing.T) {
	records := []models.Record{
		models.NewRecord(ts("2024-01-01 00:00:00"), 10.0, "hallA"),
		models.NewRecord(ts("2024-01-01 12:00:00"), 5.25, "hallA"),
		models.NewRecord(ts("2024-01-02 06:30:00"), 7.5, "hallB"),
	}

	path := filepath.Join(t.TempDir(), "cleaned_energy_data.csv")
	require.NoError(t, WriteCleanedData(path, records))

	result, err := ingest.ReadSource(path)
	require.NoError(t, err)
	require.Len(t, result.Records, len(records))
	assert.Equal(t, 0, result.Dropped)

	type triple struct {
		building string
		ts       time.Time
		kwh      float64
	}
	want := make(map[triple]int)
	for _, r := range records {
		want[triple{r.Building, r.Timestamp, r.KWh}]++
	}
	got := make(map[triple]int)
	for _, r := range result.Records {
		got[triple{r.Building, r.Timestamp, r.KWh}]++
	}
	assert.Equal(t, want, got)
}

func TestWriteCleanedDataHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned_energy_data.csv")
	require.NoError(t, WriteCleanedData(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,kwh,building,month", strings.TrimSpace(string(data)))
}

func TestWriteBuildingSummary(t *testing.T) {
	summaries := []aggregate.BuildingSummary{
		{Building: "hallA", TotalKWh: 15, MeanKWh: 7.5, MinKWh: 5, MaxKWh: 10},
	}

	path := filepath.Join(t.TempDir(), "building_summary.csv")
	require.NoError(t, WriteBuildingSummary(path, summaries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "building,total_kwh,mean_kwh,min_kwh,max_kwh", lines[0])
	assert.Equal(t, "hallA,15,7.5,5,10", lines[1])
}

func TestWriteSummaryText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	require.NoError(t, WriteSummaryText(path, "hello"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	require.NoError(t, EnsureOutputDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
