package services

import "github.com/terraincognita07/habitflow/internal/models"

// CatalogVersion changes whenever a rule key, threshold or point value does.
const CatalogVersion = 1

type Metric string

const (
	MetricStreak      Metric = "streak"
	MetricCompletions Metric = "completions"
	MetricHabits      Metric = "habits"
	MetricMoodLogs    Metric = "mood_logs"
)

type AchievementRule struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Type        string `json:"type"`
	Metric      Metric `json:"metric"`
	Threshold   int    `json:"threshold"`
}

var achievementCatalog = []AchievementRule{
	{Key: "FIRST_COMPLETION", Title: "First Step", Description: "Complete a habit for the first time.", Points: 10, Type: models.AchievementTypeCompletion, Metric: MetricCompletions, Threshold: 1},
	{Key: "10_COMPLETIONS", Title: "Getting Going", Description: "Complete habits 10 times.", Points: 25, Type: models.AchievementTypeCompletion, Metric: MetricCompletions, Threshold: 10},
	{Key: "50_COMPLETIONS", Title: "Committed", Description: "Complete habits 50 times.", Points: 75, Type: models.AchievementTypeCompletion, Metric: MetricCompletions, Threshold: 50},
	{Key: "100_COMPLETIONS", Title: "Centurion", Description: "Complete habits 100 times.", Points: 150, Type: models.AchievementTypeCompletion, Metric: MetricCompletions, Threshold: 100},
	{Key: "500_COMPLETIONS", Title: "Unstoppable", Description: "Complete habits 500 times.", Points: 500, Type: models.AchievementTypeCompletion, Metric: MetricCompletions, Threshold: 500},

	{Key: "7_DAY_STREAK", Title: "Week Warrior", Description: "Reach a 7 day streak.", Points: 50, Type: models.AchievementTypeStreak, Metric: MetricStreak, Threshold: 7},
	{Key: "30_DAY_STREAK", Title: "Monthly Master", Description: "Reach a 30 day streak.", Points: 150, Type: models.AchievementTypeStreak, Metric: MetricStreak, Threshold: 30},
	{Key: "100_DAY_STREAK", Title: "Century Streak", Description: "Reach a 100 day streak.", Points: 500, Type: models.AchievementTypeStreak, Metric: MetricStreak, Threshold: 100},
	{Key: "365_DAY_STREAK", Title: "Year of Habits", Description: "Reach a 365 day streak.", Points: 2000, Type: models.AchievementTypeStreak, Metric: MetricStreak, Threshold: 365},

	{Key: "FIRST_HABIT", Title: "Habit Builder", Description: "Create your first habit.", Points: 10, Type: models.AchievementTypeHabitCount, Metric: MetricHabits, Threshold: 1},
	{Key: "5_HABITS", Title: "Routine Designer", Description: "Create 5 habits.", Points: 30, Type: models.AchievementTypeHabitCount, Metric: MetricHabits, Threshold: 5},
	{Key: "10_HABITS", Title: "Life Architect", Description: "Create 10 habits.", Points: 60, Type: models.AchievementTypeHabitCount, Metric: MetricHabits, Threshold: 10},

	{Key: "FIRST_MOOD", Title: "Self Aware", Description: "Log your mood for the first time.", Points: 10, Type: models.AchievementTypeMood, Metric: MetricMoodLogs, Threshold: 1},
	{Key: "7_MOOD_LOGS", Title: "Mood Tracker", Description: "Log your mood 7 times.", Points: 30, Type: models.AchievementTypeMood, Metric: MetricMoodLogs, Threshold: 7},
	{Key: "30_MOOD_LOGS", Title: "Emotional Insight", Description: "Log your mood 30 times.", Points: 100, Type: models.AchievementTypeMood, Metric: MetricMoodLogs, Threshold: 30},
	{Key: "100_MOOD_LOGS", Title: "Inner Compass", Description: "Log your mood 100 times.", Points: 250, Type: models.AchievementTypeMood, Metric: MetricMoodLogs, Threshold: 100},
}

func Catalog() []AchievementRule {
	rules := make([]AchievementRule, len(achievementCatalog))
	copy(rules, achievementCatalog)
	return rules
}

// RulesReached returns every rule of metric whose threshold value meets, in
// catalog order.
func RulesReached(metric Metric, value int) []AchievementRule {
	reached := make([]AchievementRule, 0)
	for _, rule := range achievementCatalog {
		if rule.Metric == metric && value >= rule.Threshold {
			reached = append(reached, rule)
		}
	}
	return reached
}

func RuleByKey(key string) (AchievementRule, bool) {
	for _, rule := range achievementCatalog {
		if rule.Key == key {
			return rule, true
		}
	}
	return AchievementRule{}, false
}
