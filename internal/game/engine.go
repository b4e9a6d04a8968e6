package game

import "slices"

const (
	// XPPerCompletion is the flat reward for completing any task.
	XPPerCompletion = 10
	// XPPerLevel is the xp span of one level; level = floor(xp/100)+1.
	XPPerLevel = 100

	dateLayout = "2006-01-02"
)

// Engine applies completion events to GameStats. It is a pure reducer over
// its inputs; loading and saving the record is the caller's job.
type Engine struct {
	Clock Clock
}

func NewEngine(clock Clock) Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return Engine{Clock: clock}
}

// OnTaskCompleted returns the stats after one completion event.
//
// Streak: a completion on the same local day keeps the streak flat (but
// still counts toward xp and totals); a completion the day after the last
// one, or the first completion ever, extends it; anything else resets it
// to 1. Achievement thresholds are evaluated against the post-update values
// in the fixed catalog order, so several can unlock in a single event.
func (e Engine) OnTaskCompleted(stats GameStats) GameStats {
	now := e.Clock.Now().Local()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	next := stats.Normalize()

	last := ""
	if next.LastCompletionDate != nil {
		last = *next.LastCompletionDate
	}
	switch {
	case last == today:
		// already counted toward today's streak
	case last == yesterday || last == "":
		next.Streak++
	default:
		next.Streak = 1
	}

	next.XP += XPPerCompletion
	next.Level = next.XP/XPPerLevel + 1
	next.TotalCompleted++
	next.LastCompletionDate = &today

	next.Achievements = append([]string{}, next.Achievements...)
	for _, check := range achievementOrder {
		if check.met(next) && !slices.Contains(next.Achievements, check.id) {
			next.Achievements = append(next.Achievements, check.id)
		}
	}
	return next
}

// NewlyUnlocked reports achievement ids present in after but not in before,
// in after's order. The first element is what a single-toast UI shows.
func NewlyUnlocked(before, after GameStats) []string {
	out := []string{}
	for _, id := range after.Achievements {
		if !slices.Contains(before.Achievements, id) {
			out = append(out, id)
		}
	}
	return out
}

// LevelProgress is the display percentage through the current level.
func LevelProgress(xp, level int) float64 {
	return float64(xp-(level-1)*XPPerLevel) / float64(XPPerLevel) * 100
}

// XPForNextLevel is the total xp at which the given level rolls over.
func XPForNextLevel(level int) int {
	return level * XPPerLevel
}
