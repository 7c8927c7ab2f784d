package services

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/habitflow/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	instance := validator.New()
	_ = instance.RegisterValidation("moodtag", func(field validator.FieldLevel) bool {
		value := field.Field().String()
		return value == "" || isMoodLabel(value)
	})
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return instance
}

// validateStruct runs the struct tags and reports the first failure as a
// *ValidationError.
func validateStruct(value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return invalid(fieldErrors[0].Field(), fieldErrors[0].Tag())
	}
	return invalid("input", "invalid")
}

type CreateHabitInput struct {
	Title        string `json:"title" validate:"required,max=200"`
	Category     string `json:"category" validate:"max=100"`
	Frequency    string `json:"frequency" validate:"required,oneof=daily weekly custom monthly once"`
	CustomDays   []int  `json:"custom_days" validate:"omitempty,max=7,dive,gte=0,lte=6"`
	StartDate    string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	GoalQuantity int    `json:"goal_quantity" validate:"omitempty,gte=1"`
	GoalUnit     string `json:"goal_unit" validate:"max=50"`
	ReminderTime string `json:"reminder_time" validate:"omitempty,datetime=15:04"`
}

func (input *CreateHabitInput) normalize() {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.Frequency = strings.ToLower(strings.TrimSpace(input.Frequency))
	input.GoalUnit = strings.TrimSpace(input.GoalUnit)
	input.ReminderTime = strings.TrimSpace(input.ReminderTime)
	if input.GoalQuantity == 0 {
		input.GoalQuantity = models.DefaultGoalQuantity
	}
}

func (input CreateHabitInput) Validate() error {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return err
	}
	if err := validateCustomDays(input.Frequency, input.CustomDays); err != nil {
		return err
	}
	_, _, err := parseScheduleWindow(input.StartDate, input.EndDate)
	return err
}

// UpdateHabitInput carries optional edits; nil fields are left unchanged. An
// empty StartDate or EndDate clears that bound.
type UpdateHabitInput struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	Frequency    *string `json:"frequency" validate:"omitempty,oneof=daily weekly custom monthly once"`
	CustomDays   []int   `json:"custom_days" validate:"omitempty,max=7,dive,gte=0,lte=6"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	GoalQuantity *int    `json:"goal_quantity" validate:"omitempty,gte=1"`
	GoalUnit     *string `json:"goal_unit" validate:"omitempty,max=50"`
	ReminderTime *string `json:"reminder_time"`
}

func (input *UpdateHabitInput) normalize() {
	trimPointer(input.Title)
	trimPointer(input.Category)
	trimPointer(input.GoalUnit)
	trimPointer(input.ReminderTime)
	trimPointer(input.StartDate)
	trimPointer(input.EndDate)
	if input.Frequency != nil {
		*input.Frequency = strings.ToLower(strings.TrimSpace(*input.Frequency))
	}
}

func (input UpdateHabitInput) Validate() error {
	input.normalize()
	if input.Title != nil && *input.Title == "" {
		return invalid("title", "required")
	}
	if err := validateStruct(input); err != nil {
		return err
	}
	if input.ReminderTime != nil && *input.ReminderTime != "" {
		if _, err := time.Parse(reminderTimeLayout, *input.ReminderTime); err != nil {
			return invalid("reminder_time", "datetime")
		}
	}
	if input.StartDate != nil {
		if _, err := parseOptionalDate("start_date", *input.StartDate); err != nil {
			return err
		}
	}
	if input.EndDate != nil {
		if _, err := parseOptionalDate("end_date", *input.EndDate); err != nil {
			return err
		}
	}
	return nil
}

type CreateCompletionInput struct {
	HabitID uint    `json:"habit_id" validate:"required"`
	Date    string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status  string  `json:"status" validate:"omitempty,oneof=completed missed pending"`
	Value   float64 `json:"value" validate:"gte=0"`
	Note    string  `json:"note" validate:"max=1000"`
	Mood    string  `json:"mood" validate:"moodtag"`
}

func (input *CreateCompletionInput) normalize() {
	input.Date = strings.TrimSpace(input.Date)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	if input.Status == "" {
		input.Status = models.LogStatusCompleted
	}
	input.Note = strings.TrimSpace(input.Note)
	input.Mood = strings.ToLower(strings.TrimSpace(input.Mood))
}

func (input CreateCompletionInput) Validate() error {
	input.normalize()
	return validateStruct(input)
}

type UpdateCompletionInput struct {
	Status *string  `json:"status" validate:"omitempty,oneof=completed missed pending"`
	Note   *string  `json:"note" validate:"omitempty,max=1000"`
	Value  *float64 `json:"value" validate:"omitempty,gte=0"`
	Mood   *string  `json:"mood" validate:"omitempty,moodtag"`
}

func (input *UpdateCompletionInput) normalize() {
	if input.Status != nil {
		*input.Status = strings.ToLower(strings.TrimSpace(*input.Status))
	}
	trimPointer(input.Note)
	if input.Mood != nil {
		*input.Mood = strings.ToLower(strings.TrimSpace(*input.Mood))
	}
}

func (input UpdateCompletionInput) Validate() error {
	input.normalize()
	return validateStruct(input)
}

type CreateMoodInput struct {
	MoodLevel   int        `json:"mood_level" validate:"required,gte=1,lte=10"`
	MoodLabel   string     `json:"mood_label" validate:"required,oneof=happy excited grateful calm neutral tired anxious stressed sad angry"`
	EnergyLevel *int       `json:"energy_level" validate:"omitempty,gte=1,lte=10"`
	StressLevel *int       `json:"stress_level" validate:"omitempty,gte=1,lte=10"`
	Note        string     `json:"note" validate:"max=1000"`
	LoggedAt    *time.Time `json:"logged_at"`
}

func (input *CreateMoodInput) normalize() {
	input.MoodLabel = strings.ToLower(strings.TrimSpace(input.MoodLabel))
	input.Note = strings.TrimSpace(input.Note)
}

func (input CreateMoodInput) Validate() error {
	input.normalize()
	return validateStruct(input)
}

type UnlockAchievementInput struct {
	Key         string `json:"key" validate:"required,max=64"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=500"`
	Points      int    `json:"points" validate:"gte=0"`
	Type        string `json:"type" validate:"required,oneof=streak completion habit_count mood misc"`
	HabitID     *uint  `json:"habit_id"`
}

func (input *UnlockAchievementInput) normalize() {
	input.Key = strings.ToUpper(strings.TrimSpace(input.Key))
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
}

func (input UnlockAchievementInput) Validate() error {
	input.normalize()
	return validateStruct(input)
}

func validateCustomDays(frequency string, days []int) error {
	if frequency == models.FrequencyCustom && len(days) == 0 {
		return invalid("custom_days", "required")
	}
	return nil
}

func parseScheduleWindow(rawStart string, rawEnd string) (*time.Time, *time.Time, error) {
	start, err := parseOptionalDate("start_date", rawStart)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseOptionalDate("end_date", rawEnd)
	if err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, invalid("end_date", "gtefield")
	}
	return start, end, nil
}

func parseOptionalDate(field string, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := ParseCalendarDate(raw)
	if err != nil {
		return nil, invalid(field, "datetime")
	}
	return &parsed, nil
}

func normalizeCustomDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	result := make([]int, 0, len(days))
	for weekday := 0; weekday <= 6; weekday++ {
		for _, day := range days {
			if day == weekday && !seen[day] {
				seen[day] = true
				result = append(result, day)
			}
		}
	}
	return result
}

func isMoodLabel(value string) bool {
	for _, label := range models.MoodLabels() {
		if label == value {
			return true
		}
	}
	return false
}

func trimPointer(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}
