package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/unobserved-io/furt/internal/models"
)

// Granularity selects the calendar period tasks are bucketed into.
type Granularity int

const (
	ByDay Granularity = iota
	ByWeek
	ByMonth
	ByYear
)

func (g Granularity) String() string {
	switch g {
	case ByDay:
		return "day"
	case ByWeek:
		return "week"
	case ByMonth:
		return "month"
	case ByYear:
		return "year"
	default:
		return "unknown"
	}
}

// AutoGranularity picks a chart granularity from the span of the queried
// range: up to a month of data charts by day, up to two months by week, up
// to two years by month, anything longer by year.
func AutoGranularity(start, end time.Time) Granularity {
	days := int(end.Sub(start).Hours() / 24)
	switch {
	case days <= 31:
		return ByDay
	case days <= 62:
		return ByWeek
	case days <= 731:
		return ByMonth
	default:
		return ByYear
	}
}

// Bucket aggregates the tasks of one calendar period.
type Bucket struct {
	Label     string
	Start     time.Time
	Seconds   int
	Earnings  float64
	TaskCount int
}

// GroupByBucket buckets tasks by the calendar period containing their start
// time. Buckets come back in chronological order; history callers reverse
// them. Tasks with a zero rate still count toward time but earn nothing.
func GroupByBucket(tasks []models.Task, granularity Granularity, weekStart time.Weekday) []Bucket {
	index := make(map[time.Time]*Bucket)

	for i := range tasks {
		start := bucketStart(tasks[i].StartTime, granularity, weekStart)
		bucket, ok := index[start]
		if !ok {
			bucket = &Bucket{
				Label: bucketLabel(start, granularity),
				Start: start,
			}
			index[start] = bucket
		}
		bucket.Seconds += tasks[i].SecondsTotal()
		bucket.Earnings += tasks[i].Earnings()
		bucket.TaskCount++
	}

	buckets := make([]Bucket, 0, len(index))
	for _, bucket := range index {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

// bucketStart truncates t to the start of its calendar period.
func bucketStart(t time.Time, granularity Granularity, weekStart time.Weekday) time.Time {
	year, month, day := t.Date()
	switch granularity {
	case ByWeek:
		return StartOfWeek(t, weekStart)
	case ByMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	case ByYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	}
}

func bucketLabel(start time.Time, granularity Granularity) string {
	switch granularity {
	case ByWeek:
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("%s to %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	case ByMonth:
		return start.Format("January 2006")
	case ByYear:
		return start.Format("2006")
	default:
		return start.Format("Mon, Jan 02, 2006")
	}
}
