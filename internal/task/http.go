package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/motaterry/bubble-board/internal/game"
	"github.com/motaterry/bubble-board/internal/model"
)

// maxImportBytes bounds the import payload; the capped document is far
// smaller than this.
const maxImportBytes = 1 << 20

// Handler exposes the task store over JSON. Completion toggles also drive
// the gamification engine so the response can carry the updated stats and
// any newly unlocked achievements for the toast UI.
type Handler struct {
	store  *Store
	stats  game.StatsRepo
	engine game.Engine
	logger *log.Logger
}

func NewHandler(store *Store, stats game.StatsRepo, engine game.Engine, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{store: store, stats: stats, engine: engine, logger: logger}
}

// TasksRoot handles /api/tasks (collection).
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.List())
	case http.MethodPost:
		var req AddRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		t, err := h.store.Add(req)
		switch {
		case errors.Is(err, ErrAddInFlight):
			writeErr(w, http.StatusConflict, err.Error())
		case errors.Is(err, model.ErrInvalidDocument):
			writeErr(w, http.StatusBadRequest, err.Error())
		case err != nil:
			writeErr(w, http.StatusInternalServerError, err.Error())
		default:
			writeJSON(w, http.StatusCreated, t)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// TasksSub handles /api/tasks/{id} and /api/tasks/{id}/toggle.
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeErr(w, http.StatusNotFound, "task id required")
		return
	}

	switch {
	case action == "toggle" && r.Method == http.MethodPost:
		h.toggle(w, r, id)
	case action != "":
		writeErr(w, http.StatusNotFound, "unknown task action")
	default:
		switch r.Method {
		case http.MethodGet:
			t, ok := h.store.Get(id)
			if !ok {
				writeErr(w, http.StatusNotFound, ErrNotFound.Error())
				return
			}
			writeJSON(w, http.StatusOK, t)
		case http.MethodPatch:
			h.patch(w, r, id)
		case http.MethodDelete:
			// Unknown ids are a no-op for the store; the API still says 404.
			if !h.store.Remove(id) {
				writeErr(w, http.StatusNotFound, ErrNotFound.Error())
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (h *Handler) patch(w http.ResponseWriter, r *http.Request, id string) {
	var p Patch
	if err := decodeJSON(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	t, err := h.store.Update(id, p)
	switch {
	case errors.Is(err, ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidDocument):
		writeErr(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeErr(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, t)
	}
}

type toggleResponse struct {
	Task            model.Task      `json:"task"`
	Stats           *game.GameStats `json:"stats,omitempty"`
	NewAchievements []string        `json:"new_achievements,omitempty"`
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, id string) {
	cur, ok := h.store.Get(id)
	if !ok {
		writeErr(w, http.StatusNotFound, ErrNotFound.Error())
		return
	}

	if cur.Done() {
		t, err := h.store.SetDone(id, false, time.Time{})
		if err != nil {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toggleResponse{Task: t})
		return
	}

	t, err := h.store.SetDone(id, true, h.engine.Clock.Now())
	if err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}

	before, err := h.stats.Load()
	if err != nil {
		h.logger.Printf("game: stats record unreadable, starting from defaults: %v", err)
	}
	after := h.engine.OnTaskCompleted(before)
	if err := h.stats.Save(after); err != nil {
		h.logger.Printf("game: stats save failed, keeping in-memory result: %v", err)
	}

	writeJSON(w, http.StatusOK, toggleResponse{
		Task:            t,
		Stats:           &after,
		NewAchievements: game.NewlyUnlocked(before, after),
	})
}

// Export handles GET /api/tasks/export: the pretty-printed versioned
// document as a download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	b, err := h.store.ExportJSON()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	name := fmt.Sprintf("bubble-board-tasks-%s.json", h.engine.Clock.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(b)
}

// Import handles POST /api/tasks/import: strict validation, full
// replacement, no merge. A bad document reports 422 and changes nothing.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "read body failed")
		return
	}
	tasks, err := h.store.ImportJSON(body)
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, ErrInvalidFormat.Error())
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}
