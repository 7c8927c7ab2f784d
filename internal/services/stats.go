package services

import (
	"math"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

const dailyBucketLimit = 31

// CompletionRate is the rounded percentage of completed entries; 0 for no
// entries.
func CompletionRate(logs []models.HabitLog) int {
	completed := 0
	for _, entry := range logs {
		if entry.IsCompleted() {
			completed++
		}
	}
	return percent(completed, len(logs))
}

func percent(part int, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

type ChartBucket struct {
	Label     string    `json:"label"`
	Start     time.Time `json:"start"`
	Completed int       `json:"completed"`
}

// BucketCompletions counts completed entries per day for windows up to 31
// days and per 7-day bucket beyond that. Every bucket is present, empty ones
// report 0; the last weekly bucket may be shorter.
func BucketCompletions(logs []models.HabitLog, window DateRange) []ChartBucket {
	days := window.Days()
	if days == 0 {
		return []ChartBucket{}
	}
	step := 1
	if days > dailyBucketLimit {
		step = 7
	}
	count := (days + step - 1) / step

	buckets := make([]ChartBucket, count)
	for index := range buckets {
		start := window.Start.AddDate(0, 0, index*step)
		buckets[index] = ChartBucket{Label: FormatCalendarDate(start), Start: start}
	}
	for _, entry := range logs {
		if !entry.IsCompleted() || !window.Contains(entry.Date) {
			continue
		}
		offset := int(asCalendarDate(entry.Date).Sub(window.Start).Hours() / 24)
		buckets[offset/step].Completed++
	}
	return buckets
}
