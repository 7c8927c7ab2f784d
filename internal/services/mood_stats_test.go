package services

import (
	"math"
	"testing"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

func moodAt(hour int, level int, label string) models.MoodEntry {
	return models.MoodEntry{
		UserID:    1,
		LoggedAt:  time.Date(2024, time.March, 10, hour, 0, 0, 0, time.UTC),
		MoodLevel: level,
		MoodLabel: label,
	}
}

func TestSummarizeMoodsAverages(t *testing.T) {
	entries := []models.MoodEntry{
		moodAt(8, 3, models.MoodTired),
		moodAt(12, 4, models.MoodCalm),
		moodAt(18, 5, models.MoodHappy),
	}
	entries[0].EnergyLevel = intPointer(2)
	entries[2].EnergyLevel = intPointer(7)

	summary := SummarizeMoods(entries)
	if summary.AverageMood != 4.0 {
		t.Fatalf("expected average mood 4.0, got %v", summary.AverageMood)
	}
	if summary.AverageEnergy != 4.5 {
		t.Fatalf("expected energy averaged over logged values, got %v", summary.AverageEnergy)
	}
	if summary.AverageStress != 0 {
		t.Fatalf("expected no stress average, got %v", summary.AverageStress)
	}

	total := 0.0
	for _, share := range summary.Distribution {
		total += share.Percent
	}
	if math.Abs(total-100) > 0.1*float64(len(summary.Distribution)) {
		t.Fatalf("distribution sums to %v", total)
	}
}

func TestSummarizeMoodsModeAndExtremes(t *testing.T) {
	entries := []models.MoodEntry{
		moodAt(8, 6, models.MoodCalm),
		moodAt(9, 8, models.MoodHappy),
		moodAt(10, 2, models.MoodSad),
		moodAt(11, 8, models.MoodHappy),
		moodAt(12, 2, models.MoodCalm),
	}

	summary := SummarizeMoods(entries)
	if summary.MostCommon != models.MoodCalm {
		t.Fatalf("expected tie to resolve to first encountered label, got %q", summary.MostCommon)
	}
	if summary.Best == nil || !summary.Best.LoggedAt.Equal(entries[3].LoggedAt) {
		t.Fatalf("expected latest of the best entries, got %+v", summary.Best)
	}
	if summary.Worst == nil || !summary.Worst.LoggedAt.Equal(entries[4].LoggedAt) {
		t.Fatalf("expected latest of the worst entries, got %+v", summary.Worst)
	}
	if summary.Distribution[0].Label != models.MoodCalm || summary.Distribution[0].Percent != 40 {
		t.Fatalf("unexpected first share %+v", summary.Distribution[0])
	}
}

func TestSummarizeMoodsEmpty(t *testing.T) {
	summary := SummarizeMoods(nil)
	if summary.Entries != 0 || summary.AverageMood != 0 || summary.MostCommon != "" {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if summary.Best != nil || summary.Worst != nil {
		t.Fatal("expected no best or worst entry")
	}
	if summary.Distribution == nil || len(summary.Distribution) != 0 {
		t.Fatalf("expected empty distribution, got %v", summary.Distribution)
	}
}

func TestMoodTrendZeroFills(t *testing.T) {
	window, err := NewDateRange(date(2024, time.March, 9), date(2024, time.March, 11))
	if err != nil {
		t.Fatalf("NewDateRange() unexpected error: %v", err)
	}
	entries := []models.MoodEntry{
		moodAt(8, 4, models.MoodTired),
		moodAt(20, 7, models.MoodHappy),
	}

	points := MoodTrend(entries, window, time.UTC)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Average != 0 || points[2].Entries != 0 {
		t.Fatalf("expected empty days to report 0, got %+v", points)
	}
	if points[1].Average != 5.5 || points[1].Entries != 2 {
		t.Fatalf("unexpected average for 2024-03-10: %+v", points[1])
	}
}
