package services

import (
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

// periodStart maps a calendar day to the schedule slot it belongs to. Two
// completions in the same slot never change the streak. A custom habit's
// off-schedule day belongs to the nearest preceding scheduled weekday.
func periodStart(habit models.Habit, day time.Time) time.Time {
	day = asCalendarDate(day)
	switch habit.Frequency {
	case models.FrequencyCustom:
		if len(habit.CustomDays) == 0 || containsWeekday(habit.CustomDays, day.Weekday()) {
			return day
		}
		return previousCustomDay(habit.CustomDays, day)
	case models.FrequencyWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case models.FrequencyMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// follows reports whether slot next directly succeeds slot prev in the
// habit's schedule.
func follows(habit models.Habit, prev time.Time, next time.Time) bool {
	switch habit.Frequency {
	case models.FrequencyOnce:
		return false
	case models.FrequencyWeekly:
		return prev.AddDate(0, 0, 7).Equal(next)
	case models.FrequencyMonthly:
		return prev.AddDate(0, 1, 0).Equal(next)
	case models.FrequencyCustom:
		if len(habit.CustomDays) == 0 {
			return prev.AddDate(0, 0, 1).Equal(next)
		}
		return previousCustomDay(habit.CustomDays, next).Equal(prev)
	default:
		return prev.AddDate(0, 0, 1).Equal(next)
	}
}

// previousCustomDay walks back from the day before day to the nearest
// weekday in the set.
func previousCustomDay(weekdays []int, day time.Time) time.Time {
	for step := 1; step <= 7; step++ {
		candidate := day.AddDate(0, 0, -step)
		if containsWeekday(weekdays, candidate.Weekday()) {
			return candidate
		}
	}
	return day.AddDate(0, 0, -7)
}

func containsWeekday(weekdays []int, weekday time.Weekday) bool {
	for _, value := range weekdays {
		if value == int(weekday) {
			return true
		}
	}
	return false
}

// NextStreak is the streak after a new completion on day, given the habit's
// stored counters. day must not be before the last completed day.
func NextStreak(habit models.Habit, day time.Time) int {
	if habit.LastCompletedAt == nil || habit.CurrentStreak < 1 {
		return 1
	}
	last := periodStart(habit, *habit.LastCompletedAt)
	current := periodStart(habit, day)
	switch {
	case current.Equal(last):
		return habit.CurrentStreak
	case follows(habit, last, current):
		return habit.CurrentStreak + 1
	default:
		return 1
	}
}

// StreakEndingAt counts the consecutive scheduled slots with a completion
// ending at the slot of end. completedDays must be sorted ascending. It is 0
// when end's slot has no completion.
func StreakEndingAt(habit models.Habit, completedDays []time.Time, end time.Time) int {
	slots := completionSlots(habit, completedDays, end)
	if len(slots) == 0 || !slots[len(slots)-1].Equal(periodStart(habit, end)) {
		return 0
	}
	streak := 1
	for index := len(slots) - 1; index > 0; index-- {
		if !follows(habit, slots[index-1], slots[index]) {
			break
		}
		streak++
	}
	return streak
}

// LongestRun is the longest consecutive run anywhere in completedDays.
func LongestRun(habit models.Habit, completedDays []time.Time) int {
	if len(completedDays) == 0 {
		return 0
	}
	slots := completionSlots(habit, completedDays, completedDays[len(completedDays)-1])
	longest, run := 0, 0
	for index, slot := range slots {
		if index > 0 && follows(habit, slots[index-1], slot) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func completionSlots(habit models.Habit, completedDays []time.Time, until time.Time) []time.Time {
	until = asCalendarDate(until)
	slots := make([]time.Time, 0, len(completedDays))
	for _, day := range completedDays {
		if asCalendarDate(day).After(until) {
			break
		}
		slot := periodStart(habit, day)
		if len(slots) > 0 && slots[len(slots)-1].Equal(slot) {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// IsScheduledOn reports whether the habit expects a check-in on day. Weekly,
// monthly and once habits anchor on their start date, falling back to the
// creation date.
func IsScheduledOn(habit models.Habit, day time.Time) bool {
	day = asCalendarDate(day)
	if habit.StartDate != nil && day.Before(asCalendarDate(*habit.StartDate)) {
		return false
	}
	if habit.EndDate != nil && day.After(asCalendarDate(*habit.EndDate)) {
		return false
	}

	anchor := asCalendarDate(habit.CreatedAt)
	if habit.StartDate != nil {
		anchor = asCalendarDate(*habit.StartDate)
	}

	switch habit.Frequency {
	case models.FrequencyCustom:
		if len(habit.CustomDays) == 0 {
			return true
		}
		return containsWeekday(habit.CustomDays, day.Weekday())
	case models.FrequencyWeekly:
		return day.Weekday() == anchor.Weekday()
	case models.FrequencyMonthly:
		return day.Day() == clampDayOfMonth(anchor.Day(), day)
	case models.FrequencyOnce:
		return day.Equal(anchor)
	default:
		return true
	}
}

func clampDayOfMonth(dayOfMonth int, reference time.Time) int {
	lastDay := time.Date(reference.Year(), reference.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dayOfMonth > lastDay {
		return lastDay
	}
	return dayOfMonth
}
