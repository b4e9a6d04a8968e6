package game

import (
	"encoding/json"
	"log"
	"net/http"
)

// Handler serves the read-only gamification endpoints. Mutation happens
// only through the completion flow in the task handler.
type Handler struct {
	repo   StatsRepo
	logger *log.Logger
}

func NewHandler(repo StatsRepo, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

type statsResponse struct {
	Stats          GameStats `json:"stats"`
	LevelProgress  float64   `json:"level_progress"`
	XPForNextLevel int       `json:"xp_for_next_level"`
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.repo.Load()
	if err != nil {
		h.logger.Printf("game: stats record unreadable, serving defaults: %v", err)
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Stats:          stats,
		LevelProgress:  LevelProgress(stats.XP, stats.Level),
		XPForNextLevel: XPForNextLevel(stats.Level),
	})
}

type achievementsResponse struct {
	Order   []string               `json:"order"`
	Catalog map[string]Achievement `json:"catalog"`
}

// Achievements handles GET /api/achievements.
func (h *Handler) Achievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, achievementsResponse{
		Order:   AchievementIDs(),
		Catalog: Catalog,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
