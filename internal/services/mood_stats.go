package services

import (
	"math"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

type MoodShare struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type MoodSummary struct {
	Entries       int               `json:"entries"`
	AverageMood   float64           `json:"average_mood"`
	AverageEnergy float64           `json:"average_energy"`
	AverageStress float64           `json:"average_stress"`
	MostCommon    string            `json:"most_common"`
	Distribution  []MoodShare       `json:"distribution"`
	Best          *models.MoodEntry `json:"best,omitempty"`
	Worst         *models.MoodEntry `json:"worst,omitempty"`
}

// SummarizeMoods aggregates every entry given, several per day included.
// Energy and stress average over the entries that carry them.
func SummarizeMoods(entries []models.MoodEntry) MoodSummary {
	summary := MoodSummary{Entries: len(entries), Distribution: []MoodShare{}}
	if len(entries) == 0 {
		return summary
	}

	moodTotal := 0
	energyTotal, energyCount := 0, 0
	stressTotal, stressCount := 0, 0
	counts := make(map[string]int)
	order := make([]string, 0)
	var best, worst *models.MoodEntry

	for index := range entries {
		entry := &entries[index]
		moodTotal += entry.MoodLevel
		if entry.EnergyLevel != nil {
			energyTotal += *entry.EnergyLevel
			energyCount++
		}
		if entry.StressLevel != nil {
			stressTotal += *entry.StressLevel
			stressCount++
		}
		if _, seen := counts[entry.MoodLabel]; !seen {
			order = append(order, entry.MoodLabel)
		}
		counts[entry.MoodLabel]++

		if best == nil || entry.MoodLevel > best.MoodLevel ||
			(entry.MoodLevel == best.MoodLevel && entry.LoggedAt.After(best.LoggedAt)) {
			best = entry
		}
		if worst == nil || entry.MoodLevel < worst.MoodLevel ||
			(entry.MoodLevel == worst.MoodLevel && entry.LoggedAt.After(worst.LoggedAt)) {
			worst = entry
		}
	}

	summary.AverageMood = oneDecimal(float64(moodTotal) / float64(len(entries)))
	if energyCount > 0 {
		summary.AverageEnergy = oneDecimal(float64(energyTotal) / float64(energyCount))
	}
	if stressCount > 0 {
		summary.AverageStress = oneDecimal(float64(stressTotal) / float64(stressCount))
	}

	topCount := 0
	for _, label := range order {
		count := counts[label]
		if count > topCount {
			topCount = count
			summary.MostCommon = label
		}
		summary.Distribution = append(summary.Distribution, MoodShare{
			Label:   label,
			Count:   count,
			Percent: oneDecimal(float64(count) / float64(len(entries)) * 100),
		})
	}

	bestCopy, worstCopy := *best, *worst
	summary.Best = &bestCopy
	summary.Worst = &worstCopy
	return summary
}

type TrendPoint struct {
	Label   string  `json:"label"`
	Average float64 `json:"average"`
	Entries int     `json:"entries"`
}

// MoodTrend averages mood level per local calendar day of window. Days
// without entries report 0.
func MoodTrend(entries []models.MoodEntry, window DateRange, location *time.Location) []TrendPoint {
	dates := window.Dates()
	points := make([]TrendPoint, len(dates))
	totals := make([]int, len(dates))
	for index, day := range dates {
		points[index].Label = FormatCalendarDate(day)
	}
	for _, entry := range entries {
		day := CalendarDay(entry.LoggedAt, location)
		if !window.Contains(day) {
			continue
		}
		index := int(day.Sub(window.Start).Hours() / 24)
		totals[index] += entry.MoodLevel
		points[index].Entries++
	}
	for index := range points {
		if points[index].Entries > 0 {
			points[index].Average = oneDecimal(float64(totals[index]) / float64(points[index].Entries))
		}
	}
	return points
}

func oneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
