package persist

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"campuswatt/internal/aggregate"
	"campuswatt/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// EnsureOutputDir creates the output directory. Invoked explicitly by the
// orchestrator before any file is written.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: create output dir: %w", err)
	}
	return nil
}

// WriteCleanedData serializes the unified record set as CSV with a header row
// and no index column.
func WriteCleanedData(path string, records []models.Record) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"timestamp", "kwh", "building", "month"})
	for _, r := range records {
		rows = append(rows, []string{
			r.Timestamp.Format(timeLayout),
			formatFloat(r.KWh),
			r.Building,
			r.Month,
		})
	}
	return writeCSV(path, rows)
}

// WriteBuildingSummary serializes the per-building summary table as CSV.
func WriteBuildingSummary(path string, summaries []aggregate.BuildingSummary) error {
	rows := make([][]string, 0, len(summaries)+1)
	rows = append(rows, []string{"building", "total_kwh", "mean_kwh", "min_kwh", "max_kwh"})
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Building,
			formatFloat(s.TotalKWh),
			formatFloat(s.MeanKWh),
			formatFloat(s.MinKWh),
			formatFloat(s.MaxKWh),
		})
	}
	return writeCSV(path, rows)
}

// WriteSummaryText stores the rendered executive summary.
func WriteSummaryText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("persist: write summary text: %w", err)
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist: create %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		file.Close()
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("persist: close %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
