package dashboard

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"campuswatt/internal/aggregate"
	"campuswatt/internal/models"
)

// Render draws the three-panel dashboard (daily trend, average weekly bars,
// hour-of-day scatter) into a single PNG. The panels consume the aggregate
// tables as-is; no further derivation happens here beyond chart shaping.
// Rendering is skipped when there are no records.
func Render(path string, records []models.Record, daily, weekly []aggregate.BucketTotal, logger *zap.Logger) error {
	if len(records) == 0 {
		logger.Warn("no data available for plotting")
		return nil
	}

	trend, err := trendPanel(daily)
	if err != nil {
		return fmt.Errorf("dashboard: trend panel: %w", err)
	}
	bars, err := weeklyPanel(weekly)
	if err != nil {
		return fmt.Errorf("dashboard: weekly panel: %w", err)
	}
	scatter, err := scatterPanel(records)
	if err != nil {
		return fmt.Errorf("dashboard: scatter panel: %w", err)
	}

	img := vgimg.New(10*vg.Inch, 15*vg.Inch)
	canvas := draw.New(img)
	tiles := draw.Tiles{
		Rows:   3,
		Cols:   1,
		PadX:   vg.Millimeter * 4,
		PadY:   vg.Millimeter * 4,
		PadTop: vg.Millimeter * 4,
	}

	panels := [][]*plot.Plot{{trend}, {bars}, {scatter}}
	canvases := plot.Align(panels, tiles, canvas)
	for i := range panels {
		panels[i][0].Draw(canvases[i][0])
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dashboard: create %s: %w", path, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("dashboard: encode png: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("dashboard: close %s: %w", path, err)
	}

	logger.Info("dashboard saved", zap.String("path", path))
	return nil
}

// trendPanel plots one daily-consumption line per building.
func trendPanel(daily []aggregate.BucketTotal) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Daily Electricity Consumption"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "kWh"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	series := make(map[string]plotter.XYs)
	var order []string
	for _, row := range daily {
		if _, ok := series[row.Building]; !ok {
			order = append(order, row.Building)
		}
		series[row.Building] = append(series[row.Building], plotter.XY{
			X: float64(row.Bucket.Unix()),
			Y: row.KWh,
		})
	}

	for i, building := range order {
		line, points, err := plotter.NewLinePoints(series[building])
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(building, line, points)
	}
	p.Legend.Top = true
	return p, nil
}

// weeklyPanel draws average weekly usage per building as a bar chart.
func weeklyPanel(weekly []aggregate.BucketTotal) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Average Weekly Consumption per Building"
	p.X.Label.Text = "Building"
	p.Y.Label.Text = "Average kWh"

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for _, row := range weekly {
		if _, ok := sums[row.Building]; !ok {
			order = append(order, row.Building)
		}
		sums[row.Building] += row.KWh
		counts[row.Building]++
	}

	values := make(plotter.Values, 0, len(order))
	for _, building := range order {
		values = append(values, sums[building]/float64(counts[building]))
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(order...)
	return p, nil
}

// scatterPanel plots hour-of-day against kWh for every reading.
func scatterPanel(records []models.Record) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Peak-Hour Consumption (Hour vs kWh)"
	p.X.Label.Text = "Hour of Day"
	p.Y.Label.Text = "kWh"

	points := make(plotter.XYs, 0, len(records))
	for _, r := range records {
		points = append(points, plotter.XY{X: float64(r.Timestamp.Hour()), Y: r.KWh})
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = plotutil.Color(2)
	p.Add(scatter)
	return p, nil
}
