package report

import (
	"math"
	"testing"
	"time"

	"github.com/unobserved-io/furt/internal/models"
)

func TestAutoGranularity(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		days int
		want Granularity
	}{
		{1, ByDay},
		{31, ByDay},
		{32, ByWeek},
		{62, ByWeek},
		{63, ByMonth},
		{731, ByMonth},
		{732, ByYear},
	}
	for _, tt := range tests {
		got := AutoGranularity(now.AddDate(0, 0, -tt.days), now)
		if got != tt.want {
			t.Errorf("AutoGranularity over %d days = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestGroupByBucketSingleDay(t *testing.T) {
	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)
	task := makeTask(t, "Write report", "#work", 50, start, 3725)

	buckets := GroupByBucket([]models.Task{task}, ByDay, time.Monday)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	b := buckets[0]
	if b.Seconds != 3725 {
		t.Errorf("bucket seconds = %d, want 3725", b.Seconds)
	}
	wantEarnings := 50.0 / 3600.0 * 3725
	if math.Abs(b.Earnings-wantEarnings) > 1e-9 {
		t.Errorf("bucket earnings = %f, want %f", b.Earnings, wantEarnings)
	}
	if b.TaskCount != 1 {
		t.Errorf("bucket count = %d, want 1", b.TaskCount)
	}
	if b.Label != "Mon, Mar 04, 2024" {
		t.Errorf("bucket label = %q", b.Label)
	}
}

func TestGroupByBucketConservation(t *testing.T) {
	base := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.Local)
	var tasks []models.Task
	for i := 0; i < 40; i++ {
		rate := float64(i % 3 * 25) // every third task is unpaid
		tasks = append(tasks, makeTask(t, "work", "", rate, base.AddDate(0, 0, i), 600+i))
	}

	totalSeconds := 0
	totalEarnings := 0.0
	for i := range tasks {
		totalSeconds += tasks[i].SecondsTotal()
		totalEarnings += tasks[i].Earnings()
	}

	for _, g := range []Granularity{ByDay, ByWeek, ByMonth, ByYear} {
		buckets := GroupByBucket(tasks, g, time.Monday)
		gotSeconds := 0
		gotEarnings := 0.0
		for _, b := range buckets {
			gotSeconds += b.Seconds
			gotEarnings += b.Earnings
		}
		if gotSeconds != totalSeconds {
			t.Errorf("%v: bucketed seconds = %d, want %d", g, gotSeconds, totalSeconds)
		}
		if math.Abs(gotEarnings-totalEarnings) > 1e-6 {
			t.Errorf("%v: bucketed earnings = %f, want %f", g, gotEarnings, totalEarnings)
		}
	}
}

func TestGroupByBucketChronological(t *testing.T) {
	base := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.Local)
	// Supplied newest first, as stored queries return them
	tasks := []models.Task{
		makeTask(t, "c", "", 0, base.AddDate(0, 0, 9), 60),
		makeTask(t, "b", "", 0, base.AddDate(0, 0, 4), 60),
		makeTask(t, "a", "", 0, base, 60),
	}
	buckets := GroupByBucket(tasks, ByDay, time.Monday)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}
	for i := 1; i < len(buckets); i++ {
		if !buckets[i-1].Start.Before(buckets[i].Start) {
			t.Errorf("buckets out of order: %v then %v", buckets[i-1].Start, buckets[i].Start)
		}
	}
}

func TestGroupByBucketZeroRateStillCounted(t *testing.T) {
	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)
	task := makeTask(t, "volunteering", "", 0, start, 1800)

	buckets := GroupByBucket([]models.Task{task}, ByDay, time.Monday)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].Seconds != 1800 {
		t.Errorf("seconds = %d, want 1800", buckets[0].Seconds)
	}
	if buckets[0].Earnings != 0 {
		t.Errorf("earnings = %f, want 0", buckets[0].Earnings)
	}
}

func TestGroupByBucketEmpty(t *testing.T) {
	if buckets := GroupByBucket(nil, ByDay, time.Monday); len(buckets) != 0 {
		t.Errorf("got %d buckets from empty input", len(buckets))
	}
}
