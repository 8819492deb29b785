package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"campuswatt/internal/models"
)

// Sentinel errors for source-level validation failures. Both are non-fatal to
// the run: the orchestrator logs them and moves on to the next source.
var (
	// ErrSourceUnreadable marks a source that cannot be opened or parsed at all.
	ErrSourceUnreadable = errors.New("ingest: source unreadable")
	// ErrMissingColumn marks a source without the required timestamp or kwh column.
	ErrMissingColumn = errors.New("ingest: required column missing")
)

// Timestamp layouts accepted in source files, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ColumnPolicy records where each field lives in a source's rows, resolved once
// from the header. An index of -1 means the column is absent and the value is
// derived instead (building from the file stem, month from the timestamp).
type ColumnPolicy struct {
	Timestamp int
	KWh       int
	Building  int
	Month     int
}

// SourceResult is the contribution of a single source, merged by LoadDir.
type SourceResult struct {
	Records []models.Record
	Rows    int
	Dropped int
}

// Scan returns the CSV source files under dir in lexical discovery order.
// A missing directory yields no sources, not an error.
func Scan(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ingest: stat data dir: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("ingest: scan data dir: %w", err)
	}
	return paths, nil
}

// LoadDir reads every CSV source under dir and concatenates the surviving rows
// into the unified record set, in discovery order then row order. Unreadable
// sources and sources missing required columns are logged and skipped; an empty
// result is not an error here.
func LoadDir(dir string, logger *zap.Logger) ([]models.Record, error) {
	logger.Info("scanning data directory", zap.String("dir", dir))

	paths, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		logger.Warn("no source files found", zap.String("dir", dir))
		return nil, nil
	}

	var records []models.Record
	for _, path := range paths {
		logger.Info("reading file", zap.String("file", filepath.Base(path)))
		result, err := ReadSource(path)
		if err != nil {
			logger.Warn("skipping source",
				zap.String("file", filepath.Base(path)),
				zap.Error(err))
			continue
		}
		if result.Dropped > 0 {
			logger.Debug("dropped malformed rows",
				zap.String("file", filepath.Base(path)),
				zap.Int("dropped", result.Dropped))
		}
		records = append(records, result.Records...)
	}

	logger.Info("data loaded", zap.Int("records", len(records)), zap.Int("sources", len(paths)))
	return records, nil
}

// ReadSource parses one CSV file into its SourceResult. Individual malformed
// rows (wrong field count, unparseable timestamp or kwh) are dropped and
// counted; only whole-source failures return an error.
func ReadSource(path string) (SourceResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return SourceResult{}, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Variable field counts are handled per row rather than aborting the source.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return SourceResult{}, fmt.Errorf("%w: reading header: %v", ErrSourceUnreadable, err)
	}

	policy, err := resolveColumns(header)
	if err != nil {
		return SourceResult{}, err
	}

	defaultBuilding := fileStem(path)
	result := SourceResult{}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Rows++
			result.Dropped++
			continue
		}
		result.Rows++

		record, ok := parseRow(row, policy, defaultBuilding)
		if !ok {
			result.Dropped++
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// resolveColumns maps header names to indexes once per source, so per-row
// parsing never branches on column presence.
func resolveColumns(header []string) (ColumnPolicy, error) {
	index := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	policy := ColumnPolicy{
		Timestamp: index("timestamp"),
		KWh:       index("kwh"),
		Building:  index("building"),
		Month:     index("month"),
	}
	if policy.Timestamp < 0 {
		return ColumnPolicy{}, fmt.Errorf("%w: timestamp", ErrMissingColumn)
	}
	if policy.KWh < 0 {
		return ColumnPolicy{}, fmt.Errorf("%w: kwh", ErrMissingColumn)
	}
	return policy, nil
}

func parseRow(row []string, policy ColumnPolicy, defaultBuilding string) (models.Record, bool) {
	get := func(idx int) string {
		if idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	ts, err := parseTimestamp(get(policy.Timestamp))
	if err != nil {
		return models.Record{}, false
	}
	kwh, err := strconv.ParseFloat(get(policy.KWh), 64)
	if err != nil {
		return models.Record{}, false
	}

	building := defaultBuilding
	if policy.Building >= 0 {
		building = get(policy.Building)
	}
	month := models.MonthLabel(ts)
	if policy.Month >= 0 {
		month = get(policy.Month)
	}

	return models.Record{Timestamp: ts, KWh: kwh, Building: building, Month: month}, true
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", value)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
