package aggregate

import (
	"sort"
	"time"

	"campuswatt/internal/models"
)

// BucketTotal is the summed consumption of one building over one calendar bucket.
type BucketTotal struct {
	Building string
	Bucket   time.Time
	KWh      float64
}

// BuildingSummary is the per-building statistical rollup over all readings.
type BuildingSummary struct {
	Building string
	TotalKWh float64
	MeanKWh  float64
	MinKWh   float64
	MaxKWh   float64
}

// DailyTotals sums kWh per building per calendar day. Only days with at least
// one reading are emitted; rows are ordered by first-seen building, then bucket
// time ascending.
func DailyTotals(records []models.Record) []BucketTotal {
	return bucketTotals(records, DayBucket)
}

// WeeklyTotals sums kWh per building per calendar week, labeled by the
// week-ending Sunday. Same zero-suppression and ordering as DailyTotals.
func WeeklyTotals(records []models.Record) []BucketTotal {
	return bucketTotals(records, WeekBucket)
}

// DayBucket truncates a timestamp to the start of its calendar day, keeping
// the timestamp's own location (naive local time, no timezone conversion).
func DayBucket(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

// WeekBucket maps a timestamp to the Sunday ending its calendar week. A reading
// taken on a Sunday labels that same Sunday.
func WeekBucket(ts time.Time) time.Time {
	day := DayBucket(ts)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

func bucketTotals(records []models.Record, bucket func(time.Time) time.Time) []BucketTotal {
	totals := make(map[string]map[time.Time]float64)
	var order []string

	for _, r := range records {
		buckets, ok := totals[r.Building]
		if !ok {
			buckets = make(map[time.Time]float64)
			totals[r.Building] = buckets
			order = append(order, r.Building)
		}
		buckets[bucket(r.Timestamp)] += r.KWh
	}

	var rows []BucketTotal
	for _, building := range order {
		buckets := totals[building]
		starts := make([]time.Time, 0, len(buckets))
		for start := range buckets {
			starts = append(starts, start)
		}
		sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
		for _, start := range starts {
			rows = append(rows, BucketTotal{Building: building, Bucket: start, KWh: buckets[start]})
		}
	}
	return rows
}

// BuildingWiseSummary computes total, mean, min and max kWh per building in a
// single pass. One row per building present in the input, in first-seen order.
func BuildingWiseSummary(records []models.Record) []BuildingSummary {
	type acc struct {
		sum   float64
		count int
		min   float64
		max   float64
	}
	accs := make(map[string]*acc)
	var order []string

	for _, r := range records {
		a, ok := accs[r.Building]
		if !ok {
			accs[r.Building] = &acc{sum: r.KWh, count: 1, min: r.KWh, max: r.KWh}
			order = append(order, r.Building)
			continue
		}
		a.sum += r.KWh
		a.count++
		if r.KWh < a.min {
			a.min = r.KWh
		}
		if r.KWh > a.max {
			a.max = r.KWh
		}
	}

	summaries := make([]BuildingSummary, 0, len(order))
	for _, building := range order {
		a := accs[building]
		summaries = append(summaries, BuildingSummary{
			Building: building,
			TotalKWh: a.sum,
			MeanKWh:  a.sum / float64(a.count),
			MinKWh:   a.min,
			MaxKWh:   a.max,
		})
	}
	return summaries
}
