package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 15, 0, 0, 0, time.Local)
}

func TestOnTaskCompleted_FirstEver(t *testing.T) {
	clock := NewFakeClock(dayAt(2026, time.March, 10))
	e := NewEngine(clock)

	got := e.OnTaskCompleted(DefaultStats())

	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 1, got.TotalCompleted)
	assert.Equal(t, 10, got.XP)
	assert.Equal(t, 1, got.Level)
	require.NotNil(t, got.LastCompletionDate)
	assert.Equal(t, "2026-03-10", *got.LastCompletionDate)
	assert.Empty(t, got.Achievements)
}

func TestOnTaskCompleted_SameDayKeepsStreakButCounts(t *testing.T) {
	clock := NewFakeClock(dayAt(2026, time.March, 10))
	e := NewEngine(clock)

	s := e.OnTaskCompleted(DefaultStats())
	clock.Advance(2 * time.Hour)
	s = e.OnTaskCompleted(s)

	assert.Equal(t, 1, s.Streak)
	assert.Equal(t, 2, s.TotalCompleted)
	assert.Equal(t, 20, s.XP)
}

func TestOnTaskCompleted_ConsecutiveDayExtends(t *testing.T) {
	yesterday := "2026-03-09"
	clock := NewFakeClock(dayAt(2026, time.March, 10))
	e := NewEngine(clock)

	s := e.OnTaskCompleted(GameStats{
		Streak:             2,
		LastCompletionDate: &yesterday,
		TotalCompleted:     9,
		Achievements:       []string{},
		Level:              1,
		XP:                 90,
	})

	assert.Equal(t, 3, s.Streak)
	assert.Equal(t, 10, s.TotalCompleted)
	assert.Equal(t, 100, s.XP)
	assert.Equal(t, 2, s.Level)
	// Two thresholds crossed at once; streak milestone first.
	assert.Equal(t, []string{AchStreak3, AchTasks10}, s.Achievements)
}

func TestOnTaskCompleted_GapResetsStreak(t *testing.T) {
	last := "2026-03-07"
	clock := NewFakeClock(dayAt(2026, time.March, 10))
	e := NewEngine(clock)

	s := e.OnTaskCompleted(GameStats{
		Streak:             14,
		LastCompletionDate: &last,
		TotalCompleted:     30,
		Achievements:       []string{AchStreak3, AchStreak7, AchTasks10},
		Level:              4,
		XP:                 300,
	})

	assert.Equal(t, 1, s.Streak)
	assert.Equal(t, 31, s.TotalCompleted)
	// Earned achievements are never revoked.
	assert.Contains(t, s.Achievements, AchStreak7)
}

func TestOnTaskCompleted_NoDuplicateAchievements(t *testing.T) {
	yesterday := "2026-03-09"
	clock := NewFakeClock(dayAt(2026, time.March, 10))
	e := NewEngine(clock)

	s := GameStats{
		Streak:             3,
		LastCompletionDate: &yesterday,
		TotalCompleted:     5,
		Achievements:       []string{AchStreak3},
		Level:              1,
		XP:                 50,
	}
	s = e.OnTaskCompleted(s)

	n := 0
	for _, id := range s.Achievements {
		if id == AchStreak3 {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestOnTaskCompleted_InputNotMutated(t *testing.T) {
	clock := NewFakeClock(dayAt(2026, time.March, 10))
	e := NewEngine(clock)

	before := GameStats{Streak: 2, TotalCompleted: 9, Achievements: []string{}, Level: 1, XP: 90}
	_ = e.OnTaskCompleted(before)

	assert.Equal(t, 2, before.Streak)
	assert.Equal(t, 9, before.TotalCompleted)
	assert.Empty(t, before.Achievements)
}

func TestOnTaskCompleted_LevelTracksXP(t *testing.T) {
	clock := NewFakeClock(dayAt(2026, time.March, 10))
	e := NewEngine(clock)

	s := DefaultStats()
	for i := 0; i < 25; i++ {
		s = e.OnTaskCompleted(s)
		assert.Equal(t, s.XP/XPPerLevel+1, s.Level)
	}
	assert.Equal(t, 250, s.XP)
	assert.Equal(t, 3, s.Level)
}

func TestOnTaskCompleted_LongStreakUnlocksEverything(t *testing.T) {
	clock := NewFakeClock(dayAt(2026, time.January, 1))
	e := NewEngine(clock)

	s := DefaultStats()
	for day := 0; day < 30; day++ {
		// Several completions per day to drive the task counters too.
		for i := 0; i < 4; i++ {
			s = e.OnTaskCompleted(s)
		}
		clock.Advance(24 * time.Hour)
	}

	assert.Equal(t, 30, s.Streak)
	assert.Equal(t, 120, s.TotalCompleted)
	// Unlock order is chronological: tasks_10 lands the same day as streak_3,
	// streak_30 last.
	assert.Equal(t, []string{AchStreak3, AchTasks10, AchStreak7, AchTasks50, AchTasks100, AchStreak30}, s.Achievements)
}

func TestNewlyUnlocked(t *testing.T) {
	before := GameStats{Achievements: []string{AchStreak3}}
	after := GameStats{Achievements: []string{AchStreak3, AchStreak7, AchTasks10}}

	assert.Equal(t, []string{AchStreak7, AchTasks10}, NewlyUnlocked(before, after))
	assert.Empty(t, NewlyUnlocked(after, after))
}

func TestLevelProgress(t *testing.T) {
	assert.InDelta(t, 0.0, LevelProgress(0, 1), 1e-9)
	assert.InDelta(t, 50.0, LevelProgress(50, 1), 1e-9)
	assert.InDelta(t, 0.0, LevelProgress(100, 2), 1e-9)
	assert.InDelta(t, 30.0, LevelProgress(230, 3), 1e-9)
}

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, 100, XPForNextLevel(1))
	assert.Equal(t, 300, XPForNextLevel(3))
}

func TestNormalize_RepairsBrokenRecord(t *testing.T) {
	s := GameStats{Streak: -2, TotalCompleted: -1, XP: -10, Level: 0}.Normalize()
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, 0, s.TotalCompleted)
	assert.Equal(t, 0, s.XP)
	assert.Equal(t, 1, s.Level)
	assert.NotNil(t, s.Achievements)
}
