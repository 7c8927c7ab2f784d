package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/terraincognita07/habitflow/internal/models"
)

// memoryStore is an in-memory Store. Transaction snapshots every table and
// restores it when fn fails.
type memoryStore struct {
	habits       map[uint]models.Habit
	logs         map[uint]models.HabitLog
	deletedLogs  map[uint]bool
	moods        map[uint]models.MoodEntry
	achievements map[uint]models.Achievement
	users        map[uint]models.User
	nextID       uint

	failOn string
}

var errStubFailure = errors.New("stub failure")

func newMemoryStore() *memoryStore {
	return &memoryStore{
		habits:       make(map[uint]models.Habit),
		logs:         make(map[uint]models.HabitLog),
		deletedLogs:  make(map[uint]bool),
		moods:        make(map[uint]models.MoodEntry),
		achievements: make(map[uint]models.Achievement),
		users:        make(map[uint]models.User),
		nextID:       1,
	}
}

func (store *memoryStore) id() uint {
	id := store.nextID
	store.nextID++
	return id
}

func (store *memoryStore) fail(op string) error {
	if store.failOn == op {
		return errStubFailure
	}
	return nil
}

func (store *memoryStore) Habits() HabitRepository             { return memoryHabits{store} }
func (store *memoryStore) Logs() HabitLogRepository            { return memoryLogs{store} }
func (store *memoryStore) Moods() MoodRepository               { return memoryMoods{store} }
func (store *memoryStore) Achievements() AchievementRepository { return memoryAchievements{store} }
func (store *memoryStore) Users() UserRepository               { return memoryUsers{store} }

func (store *memoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	snapshot := store.clone()
	if err := fn(store); err != nil {
		*store = *snapshot
		return err
	}
	return nil
}

func (store *memoryStore) clone() *memoryStore {
	copied := &memoryStore{
		habits:       make(map[uint]models.Habit, len(store.habits)),
		logs:         make(map[uint]models.HabitLog, len(store.logs)),
		deletedLogs:  make(map[uint]bool, len(store.deletedLogs)),
		moods:        make(map[uint]models.MoodEntry, len(store.moods)),
		achievements: make(map[uint]models.Achievement, len(store.achievements)),
		users:        make(map[uint]models.User, len(store.users)),
		nextID:       store.nextID,
		failOn:       store.failOn,
	}
	for key, value := range store.habits {
		copied.habits[key] = value
	}
	for key, value := range store.logs {
		copied.logs[key] = value
	}
	for key, value := range store.deletedLogs {
		copied.deletedLogs[key] = value
	}
	for key, value := range store.moods {
		copied.moods[key] = value
	}
	for key, value := range store.achievements {
		copied.achievements[key] = value
	}
	for key, value := range store.users {
		copied.users[key] = value
	}
	return copied
}

type memoryHabits struct{ store *memoryStore }

func (repo memoryHabits) Create(ctx context.Context, habit *models.Habit) error {
	if err := repo.store.fail("habits.create"); err != nil {
		return err
	}
	habit.ID = repo.store.id()
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	}
	repo.store.habits[habit.ID] = *habit
	return nil
}

func (repo memoryHabits) Save(ctx context.Context, habit *models.Habit) error {
	repo.store.habits[habit.ID] = *habit
	return nil
}

func (repo memoryHabits) FindByIDForUser(ctx context.Context, habitID uint, userID uint) (models.Habit, bool, error) {
	habit, ok := repo.store.habits[habitID]
	if !ok || habit.UserID != userID {
		return models.Habit{}, false, nil
	}
	return habit, true, nil
}

func (repo memoryHabits) ListByUser(ctx context.Context, userID uint, includeArchived bool, includePaused bool) ([]models.Habit, error) {
	habits := make([]models.Habit, 0)
	for _, habit := range repo.store.habits {
		if habit.UserID != userID {
			continue
		}
		if (!includeArchived && habit.IsArchived) || (!includePaused && habit.IsPaused) {
			continue
		}
		habits = append(habits, habit)
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	return habits, nil
}

func (repo memoryHabits) ListIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	habits, _ := repo.ListByUser(ctx, userID, true, true)
	ids := make([]uint, 0, len(habits))
	for _, habit := range habits {
		ids = append(ids, habit.ID)
	}
	return ids, nil
}

func (repo memoryHabits) UpdateCounters(ctx context.Context, habit *models.Habit) error {
	if err := repo.store.fail("habits.counters"); err != nil {
		return err
	}
	stored := repo.store.habits[habit.ID]
	stored.CurrentStreak = habit.CurrentStreak
	stored.LongestStreak = habit.LongestStreak
	stored.TotalCompletions = habit.TotalCompletions
	stored.LastCompletedAt = habit.LastCompletedAt
	repo.store.habits[habit.ID] = stored
	return nil
}

func (repo memoryHabits) DeleteForUser(ctx context.Context, habitID uint, userID uint) (bool, error) {
	habit, ok := repo.store.habits[habitID]
	if !ok || habit.UserID != userID {
		return false, nil
	}
	delete(repo.store.habits, habitID)
	return true, nil
}

func (repo memoryHabits) DeleteByUser(ctx context.Context, userID uint) error {
	for id, habit := range repo.store.habits {
		if habit.UserID == userID {
			delete(repo.store.habits, id)
		}
	}
	return nil
}

type memoryLogs struct{ store *memoryStore }

func (repo memoryLogs) live() []models.HabitLog {
	logs := make([]models.HabitLog, 0, len(repo.store.logs))
	for id, entry := range repo.store.logs {
		if !repo.store.deletedLogs[id] {
			logs = append(logs, entry)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Date.Equal(logs[j].Date) {
			return logs[i].ID > logs[j].ID
		}
		return logs[i].Date.After(logs[j].Date)
	})
	return logs
}

func (repo memoryLogs) Create(ctx context.Context, entry *models.HabitLog) error {
	if err := repo.store.fail("logs.create"); err != nil {
		return err
	}
	entry.ID = repo.store.id()
	repo.store.logs[entry.ID] = *entry
	return nil
}

func (repo memoryLogs) Save(ctx context.Context, entry *models.HabitLog) error {
	repo.store.logs[entry.ID] = *entry
	return nil
}

func (repo memoryLogs) FindByIDForUser(ctx context.Context, logID uint, userID uint) (models.HabitLog, bool, error) {
	entry, ok := repo.store.logs[logID]
	if !ok || entry.UserID != userID || repo.store.deletedLogs[logID] {
		return models.HabitLog{}, false, nil
	}
	return entry, true, nil
}

func (repo memoryLogs) FindByHabitAndDayRange(ctx context.Context, habitID uint, userID uint, dayStart time.Time, dayEnd time.Time) (models.HabitLog, bool, error) {
	var best *models.HabitLog
	for _, entry := range repo.live() {
		if entry.HabitID != habitID || entry.UserID != userID || entry.Date.Before(dayStart) || !entry.Date.Before(dayEnd) {
			continue
		}
		candidate := entry
		if best == nil || (candidate.IsCompleted() && !best.IsCompleted()) {
			best = &candidate
		}
	}
	if best == nil {
		return models.HabitLog{}, false, nil
	}
	return *best, true, nil
}

func (repo memoryLogs) ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.HabitLog, error) {
	logs := make([]models.HabitLog, 0)
	for _, entry := range repo.live() {
		if entry.UserID == userID && !entry.Date.Before(from) && entry.Date.Before(to) {
			logs = append(logs, entry)
		}
	}
	return logs, nil
}

func (repo memoryLogs) ListByHabitRange(ctx context.Context, habitID uint, userID uint, from time.Time, to time.Time) ([]models.HabitLog, error) {
	logs, _ := repo.ListByUserRange(ctx, userID, from, to)
	filtered := make([]models.HabitLog, 0, len(logs))
	for _, entry := range logs {
		if entry.HabitID == habitID {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (repo memoryLogs) ListCompletedDays(ctx context.Context, habitID uint, userID uint, until time.Time) ([]time.Time, error) {
	seen := make(map[time.Time]bool)
	days := make([]time.Time, 0)
	for _, entry := range repo.live() {
		if entry.HabitID != habitID || entry.UserID != userID || !entry.IsCompleted() || entry.Date.After(until) {
			continue
		}
		if !seen[entry.Date] {
			seen[entry.Date] = true
			days = append(days, entry.Date)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

func (repo memoryLogs) CountedOnDay(ctx context.Context, habitID uint, userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	for _, entry := range repo.store.logs {
		if entry.HabitID == habitID && entry.UserID == userID && entry.Counted &&
			!entry.Date.Before(dayStart) && entry.Date.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (repo memoryLogs) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, entry := range repo.live() {
		if _, exists := repo.store.habits[entry.HabitID]; exists && entry.UserID == userID && entry.IsCompleted() {
			count++
		}
	}
	return count, nil
}

func (repo memoryLogs) SoftDelete(ctx context.Context, logID uint, userID uint) (bool, error) {
	entry, ok := repo.store.logs[logID]
	if !ok || entry.UserID != userID || repo.store.deletedLogs[logID] {
		return false, nil
	}
	repo.store.deletedLogs[logID] = true
	return true, nil
}

func (repo memoryLogs) DeleteByUser(ctx context.Context, userID uint) error {
	for id, entry := range repo.store.logs {
		if entry.UserID == userID {
			delete(repo.store.logs, id)
			delete(repo.store.deletedLogs, id)
		}
	}
	return nil
}

type memoryMoods struct{ store *memoryStore }

func (repo memoryMoods) Create(ctx context.Context, entry *models.MoodEntry) error {
	entry.ID = repo.store.id()
	repo.store.moods[entry.ID] = *entry
	return nil
}

func (repo memoryMoods) FindByIDForUser(ctx context.Context, entryID uint, userID uint) (models.MoodEntry, bool, error) {
	entry, ok := repo.store.moods[entryID]
	if !ok || entry.UserID != userID {
		return models.MoodEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo memoryMoods) ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.MoodEntry, error) {
	entries := make([]models.MoodEntry, 0)
	for _, entry := range repo.store.moods {
		if entry.UserID == userID && !entry.LoggedAt.Before(from) && entry.LoggedAt.Before(to) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LoggedAt.Equal(entries[j].LoggedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].LoggedAt.After(entries[j].LoggedAt)
	})
	return entries, nil
}

func (repo memoryMoods) LatestInRange(ctx context.Context, userID uint, from time.Time, to time.Time) (models.MoodEntry, bool, error) {
	entries, _ := repo.ListByUserRange(ctx, userID, from, to)
	if len(entries) == 0 {
		return models.MoodEntry{}, false, nil
	}
	return entries[0], true, nil
}

func (repo memoryMoods) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, entry := range repo.store.moods {
		if entry.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (repo memoryMoods) Delete(ctx context.Context, entryID uint, userID uint) (bool, error) {
	entry, ok := repo.store.moods[entryID]
	if !ok || entry.UserID != userID {
		return false, nil
	}
	delete(repo.store.moods, entryID)
	return true, nil
}

func (repo memoryMoods) DeleteByUser(ctx context.Context, userID uint) error {
	for id, entry := range repo.store.moods {
		if entry.UserID == userID {
			delete(repo.store.moods, id)
		}
	}
	return nil
}

type memoryAchievements struct{ store *memoryStore }

func (repo memoryAchievements) FindByUserAndKey(ctx context.Context, userID uint, key string) (models.Achievement, bool, error) {
	for _, achievement := range repo.store.achievements {
		if achievement.UserID == userID && achievement.Key == key {
			return achievement, true, nil
		}
	}
	return models.Achievement{}, false, nil
}

func (repo memoryAchievements) CreateIfAbsent(ctx context.Context, achievement models.Achievement) (models.Achievement, bool, error) {
	if existing, found, _ := repo.FindByUserAndKey(ctx, achievement.UserID, achievement.Key); found {
		return existing, false, nil
	}
	achievement.ID = repo.store.id()
	repo.store.achievements[achievement.ID] = achievement
	return achievement, true, nil
}

func (repo memoryAchievements) ListByUser(ctx context.Context, userID uint) ([]models.Achievement, error) {
	achievements := make([]models.Achievement, 0)
	for _, achievement := range repo.store.achievements {
		if achievement.UserID == userID {
			achievements = append(achievements, achievement)
		}
	}
	sort.Slice(achievements, func(i, j int) bool { return achievements[i].ID > achievements[j].ID })
	return achievements, nil
}

func (repo memoryAchievements) SumPointsByUser(ctx context.Context, userID uint) (int, error) {
	total := 0
	for _, achievement := range repo.store.achievements {
		if achievement.UserID == userID {
			total += achievement.Points
		}
	}
	return total, nil
}

func (repo memoryAchievements) DeleteByUser(ctx context.Context, userID uint) error {
	for id, achievement := range repo.store.achievements {
		if achievement.UserID == userID {
			delete(repo.store.achievements, id)
		}
	}
	return nil
}

type memoryUsers struct{ store *memoryStore }

func (repo memoryUsers) FindByID(ctx context.Context, userID uint) (models.User, bool, error) {
	user, ok := repo.store.users[userID]
	return user, ok, nil
}

func (repo memoryUsers) IncrementHabitsCreated(ctx context.Context, userID uint) (int, error) {
	user := repo.store.users[userID]
	user.ID = userID
	user.HabitsCreated++
	repo.store.users[userID] = user
	return user.HabitsCreated, nil
}

func (repo memoryUsers) ResetHabitsCreated(ctx context.Context, userID uint) error {
	if user, ok := repo.store.users[userID]; ok {
		user.HabitsCreated = 0
		repo.store.users[userID] = user
	}
	return nil
}

func (repo memoryUsers) ListIDs(ctx context.Context) ([]uint, error) {
	ids := make([]uint, 0, len(repo.store.users))
	for id := range repo.store.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func fixedClock(value time.Time) func() time.Time {
	return func() time.Time { return value }
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
