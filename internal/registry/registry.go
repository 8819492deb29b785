package registry

import (
	"fmt"
	"strings"

	"campuswatt/internal/aggregate"
	"campuswatt/internal/models"
)

// Building owns the ordered meter readings recorded against one name.
type Building struct {
	Name     string
	Readings []models.MeterReading
}

// BuildingReport is the per-building rollup rendered into the operator log.
type BuildingReport struct {
	Name         string
	Total        float64
	Average      float64
	ReadingCount int
}

// AddReading appends a reading. Validation already happened during ingestion.
func (b *Building) AddReading(r models.MeterReading) {
	b.Readings = append(b.Readings, r)
}

// TotalConsumption sums kWh over all readings, 0 for an empty building.
func (b *Building) TotalConsumption() float64 {
	var total float64
	for _, r := range b.Readings {
		total += r.KWh
	}
	return total
}

// Report derives the building rollup. Average is 0 when there are no readings.
func (b *Building) Report() BuildingReport {
	total := b.TotalConsumption()
	count := len(b.Readings)
	var avg float64
	if count > 0 {
		avg = total / float64(count)
	}
	return BuildingReport{Name: b.Name, Total: total, Average: avg, ReadingCount: count}
}

// FormatReport renders the building rollup as a text block.
func (b *Building) FormatReport() string {
	rep := b.Report()
	lines := []string{
		fmt.Sprintf("Building: %s", rep.Name),
		fmt.Sprintf("Total Consumption (kWh): %.2f", rep.Total),
		fmt.Sprintf("Average Consumption per Reading (kWh): %.2f", rep.Average),
		fmt.Sprintf("Total Number of Readings: %d", rep.ReadingCount),
	}
	return strings.Join(lines, "\n")
}

// Registry maps building names to buildings, preserving registration order.
type Registry struct {
	buildings map[string]*Building
	order     []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{buildings: make(map[string]*Building)}
}

// GetOrCreate returns the building for name, creating it on first use.
func (r *Registry) GetOrCreate(name string) *Building {
	if b, ok := r.buildings[name]; ok {
		return b
	}
	b := &Building{Name: name}
	r.buildings[name] = b
	r.order = append(r.order, name)
	return b
}

// LoadRecords routes every record of the unified record set to its building,
// preserving per-row order within each building.
func (r *Registry) LoadRecords(records []models.Record) {
	for _, rec := range records {
		r.GetOrCreate(rec.Building).AddReading(rec.Reading())
	}
}

// Buildings returns all registered buildings in registration order.
func (r *Registry) Buildings() []*Building {
	out := make([]*Building, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.buildings[name])
	}
	return out
}

// Summaries computes one summary row per registered building, in registration
// order.
func (r *Registry) Summaries() []aggregate.BuildingSummary {
	summaries := make([]aggregate.BuildingSummary, 0, len(r.order))
	for _, name := range r.order {
		b := r.buildings[name]
		summary := aggregate.BuildingSummary{Building: name}
		for i, reading := range b.Readings {
			summary.TotalKWh += reading.KWh
			if i == 0 || reading.KWh < summary.MinKWh {
				summary.MinKWh = reading.KWh
			}
			if i == 0 || reading.KWh > summary.MaxKWh {
				summary.MaxKWh = reading.KWh
			}
		}
		if len(b.Readings) > 0 {
			summary.MeanKWh = summary.TotalKWh / float64(len(b.Readings))
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
