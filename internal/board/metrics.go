package board

import (
	"time"

	"github.com/motaterry/bubble-board/internal/model"
)

// TodayCompletes counts tasks completed since local midnight.
func TodayCompletes(tasks []model.Task, now time.Time) int {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UnixMilli()

	n := 0
	for _, t := range tasks {
		if t.DoneAt != nil && *t.DoneAt >= midnight {
			n++
		}
	}
	return n
}

// Summary is the toolbar's view of the board: open tasks per quadrant plus
// completion counters.
type Summary struct {
	Open           map[string]int `json:"open"`
	TotalOpen      int            `json:"total_open"`
	TotalDone      int            `json:"total_done"`
	TodayCompletes int            `json:"today_completes"`
}

func Summarize(tasks []model.Task, now time.Time) Summary {
	s := Summary{Open: map[string]int{
		QuadrantDoNow:     0,
		QuadrantPlan:      0,
		QuadrantDelegate:  0,
		QuadrantEliminate: 0,
	}}
	for _, t := range tasks {
		if t.Done() {
			s.TotalDone++
			continue
		}
		s.Open[QuadrantLabel(t.X, t.Y)]++
		s.TotalOpen++
	}
	s.TodayCompletes = TodayCompletes(tasks, now)
	return s
}
