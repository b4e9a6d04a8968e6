package board

import (
	"encoding/json"
	"net/http"

	"github.com/motaterry/bubble-board/internal/game"
	"github.com/motaterry/bubble-board/internal/task"
)

type Handler struct {
	store *task.Store
	clock game.Clock
}

func NewHandler(store *task.Store, clock game.Clock) *Handler {
	if clock == nil {
		clock = game.SystemClock{}
	}
	return &Handler{store: store, clock: clock}
}

// Summary handles GET /api/board/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(Summarize(h.store.List(), h.clock.Now()))
}
