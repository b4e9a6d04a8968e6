package game

import "slices"

// GameStats is the persisted gamification record. Counters only ever grow;
// the reducer in engine.go is the single writer.
type GameStats struct {
	Streak             int      `json:"streak"`
	LastCompletionDate *string  `json:"lastCompletionDate"` // local day, "2006-01-02"; nil = never
	TotalCompleted     int      `json:"totalCompleted"`
	Achievements       []string `json:"achievements"`
	Level              int      `json:"level"`
	XP                 int      `json:"xp"`
}

func DefaultStats() GameStats {
	return GameStats{Level: 1, Achievements: []string{}}
}

// Normalize repairs a loaded record (level floor, negative counters, nil
// achievement slice). It never invents progress.
func (s GameStats) Normalize() GameStats {
	if s.Streak < 0 {
		s.Streak = 0
	}
	if s.TotalCompleted < 0 {
		s.TotalCompleted = 0
	}
	if s.XP < 0 {
		s.XP = 0
	}
	if s.Level < 1 {
		s.Level = 1
	}
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	return s
}

func (s GameStats) HasAchievement(id string) bool {
	return slices.Contains(s.Achievements, id)
}
