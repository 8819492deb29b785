package models

import "time"

// MeterReading is a single timestamped kWh measurement. Immutable once created.
type MeterReading struct {
	Timestamp time.Time
	KWh       float64
}

// Record is one row of the unified record set produced by ingestion.
type Record struct {
	Timestamp time.Time
	KWh       float64
	Building  string
	Month     string
}

// NewRecord builds a Record, deriving the YYYY-MM month label from the timestamp.
func NewRecord(ts time.Time, kwh float64, building string) Record {
	return Record{
		Timestamp: ts,
		KWh:       kwh,
		Building:  building,
		Month:     MonthLabel(ts),
	}
}

// MonthLabel formats the YYYY-MM label used for the derived month column.
func MonthLabel(ts time.Time) string {
	return ts.Format("2006-01")
}

// Reading returns the meter reading carried by the record.
func (r Record) Reading() MeterReading {
	return MeterReading{Timestamp: r.Timestamp, KWh: r.KWh}
}
