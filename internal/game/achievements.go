package game

const (
	AchStreak3  = "streak_3"
	AchStreak7  = "streak_7"
	AchStreak30 = "streak_30"
	AchTasks10  = "tasks_10"
	AchTasks50  = "tasks_50"
	AchTasks100 = "tasks_100"
)

type achievementCheck struct {
	id  string
	met func(GameStats) bool
}

// achievementOrder is the fixed evaluation order: streak milestones before
// task-count milestones. When several thresholds are crossed by one event,
// the unlock list (and so the first toast shown) follows this order.
var achievementOrder = []achievementCheck{
	{AchStreak3, func(s GameStats) bool { return s.Streak >= 3 }},
	{AchStreak7, func(s GameStats) bool { return s.Streak >= 7 }},
	{AchStreak30, func(s GameStats) bool { return s.Streak >= 30 }},
	{AchTasks10, func(s GameStats) bool { return s.TotalCompleted >= 10 }},
	{AchTasks50, func(s GameStats) bool { return s.TotalCompleted >= 50 }},
	{AchTasks100, func(s GameStats) bool { return s.TotalCompleted >= 100 }},
}

// AchievementIDs lists the catalog ids in evaluation order.
func AchievementIDs() []string {
	out := make([]string, 0, len(achievementOrder))
	for _, c := range achievementOrder {
		out = append(out, c.id)
	}
	return out
}

// Achievement describes one milestone for the notification UI.
type Achievement struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Catalog is the static achievement lookup consumed by the toast UI. It is
// never mutated by the engine.
var Catalog = map[string]Achievement{
	AchStreak3:  {Name: "3 Day Streak", Icon: "🔥", Description: "Complete tasks 3 days in a row"},
	AchStreak7:  {Name: "Week Warrior", Icon: "⚡", Description: "Complete tasks 7 days in a row"},
	AchStreak30: {Name: "Month Master", Icon: "👑", Description: "Complete tasks 30 days in a row"},
	AchTasks10:  {Name: "Getting Started", Icon: "🌱", Description: "Complete 10 tasks"},
	AchTasks50:  {Name: "Productivity Pro", Icon: "🚀", Description: "Complete 50 tasks"},
	AchTasks100: {Name: "Century Club", Icon: "💯", Description: "Complete 100 tasks"},
}
