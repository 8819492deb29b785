package app

import (
	"context"
	"errors"
	"math"
	"path/filepath"

	"go.uber.org/zap"

	"campuswatt/internal/aggregate"
	"campuswatt/internal/config"
	"campuswatt/internal/dashboard"
	"campuswatt/internal/ingest"
	"campuswatt/internal/persist"
	"campuswatt/internal/registry"
	"campuswatt/internal/report"
)

// ErrNoData signals that no source yielded any valid rows. The run halts
// before producing outputs; main treats it as a clean termination.
var ErrNoData = errors.New("app: no data to process")

// Output file names within the output directory.
const (
	cleanedDataFile = "cleaned_energy_data.csv"
	summaryCSVFile  = "building_summary.csv"
	summaryTextFile = "summary.txt"
	dashboardFile   = "dashboard.png"
)

// App wires the dashboard pipeline dependencies.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New constructs the application.
func New(cfg *config.Config, logger *zap.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

// Run executes the batch pipeline: ingest, aggregate, model, report, render,
// persist. All stages run sequentially in one pass.
func (a *App) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := ingest.LoadDir(a.cfg.Data.Dir, a.logger)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return ErrNoData
	}

	daily := aggregate.DailyTotals(records)
	weekly := aggregate.WeeklyTotals(records)
	summaries := aggregate.BuildingWiseSummary(records)

	reg := registry.New()
	reg.LoadRecords(records)
	a.crossCheck(reg, summaries)
	for _, b := range reg.Buildings() {
		a.logger.Debug("building report", zap.String("report", b.FormatReport()))
	}

	summary := report.Build(records, summaries, daily, weekly)
	text := summary.Render()

	if err := persist.EnsureOutputDir(a.cfg.Output.Dir); err != nil {
		return err
	}

	cleanedPath := filepath.Join(a.cfg.Output.Dir, cleanedDataFile)
	if err := persist.WriteCleanedData(cleanedPath, records); err != nil {
		return err
	}
	a.logger.Info("cleaned data saved", zap.String("path", cleanedPath))

	summaryCSVPath := filepath.Join(a.cfg.Output.Dir, summaryCSVFile)
	if err := persist.WriteBuildingSummary(summaryCSVPath, summaries); err != nil {
		return err
	}
	a.logger.Info("building summary saved", zap.String("path", summaryCSVPath))

	summaryTextPath := filepath.Join(a.cfg.Output.Dir, summaryTextFile)
	if err := persist.WriteSummaryText(summaryTextPath, text); err != nil {
		return err
	}
	a.logger.Info("summary report saved", zap.String("path", summaryTextPath))

	dashboardPath := filepath.Join(a.cfg.Output.Dir, dashboardFile)
	if err := dashboard.Render(dashboardPath, records, daily, weekly, a.logger); err != nil {
		return err
	}

	a.logger.Info("all tasks completed")
	return nil
}

// crossCheck verifies that registry totals agree with the aggregated summary
// totals. A mismatch indicates a pipeline defect, surfaced as a warning.
func (a *App) crossCheck(reg *registry.Registry, summaries []aggregate.BuildingSummary) {
	totals := make(map[string]float64, len(summaries))
	for _, s := range summaries {
		totals[s.Building] = s.TotalKWh
	}
	for _, b := range reg.Buildings() {
		got := b.TotalConsumption()
		want, ok := totals[b.Name]
		if !ok || math.Abs(got-want) > 1e-9 {
			a.logger.Warn("building total mismatch",
				zap.String("building", b.Name),
				zap.Float64("registry_total", got),
				zap.Float64("summary_total", want))
		}
	}
}
