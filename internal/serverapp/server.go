package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/motaterry/bubble-board/internal/board"
	"github.com/motaterry/bubble-board/internal/config"
	"github.com/motaterry/bubble-board/internal/game"
	"github.com/motaterry/bubble-board/internal/httpmw"
	"github.com/motaterry/bubble-board/internal/task"
	staticfiles "github.com/motaterry/bubble-board/static"
)

type Options struct {
	Config        *config.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Clock         game.Clock
	Fs            afero.Fs
	Logger        *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Storage.DataDir
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = opts.Config.Static.Dir
	}
	if opts.Clock == nil {
		opts.Clock = game.SystemClock{}
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))
	mux.Handle("/", staticHandler)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "bubble-board",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	taskRepo, err := task.NewFileRepo(opts.Fs, opts.DataDir)
	if err != nil {
		return nil, err
	}
	store := task.NewStore(taskRepo, opts.Logger)

	statsRepo, err := game.NewFileStatsRepo(opts.Fs, opts.DataDir)
	if err != nil {
		return nil, err
	}
	engine := game.NewEngine(opts.Clock)

	taskHandler := task.NewHandler(store, statsRepo, engine, opts.Logger)
	mux.HandleFunc("/api/tasks", taskHandler.TasksRoot)
	mux.HandleFunc("/api/tasks/", taskHandler.TasksSub)
	// Exact patterns win over the /api/tasks/ prefix above.
	mux.HandleFunc("/api/tasks/export", taskHandler.Export)
	mux.HandleFunc("/api/tasks/import", taskHandler.Import)

	gameHandler := game.NewHandler(statsRepo, opts.Logger)
	mux.HandleFunc("/api/stats", gameHandler.Stats)
	mux.HandleFunc("/api/achievements", gameHandler.Achievements)

	boardHandler := board.NewHandler(store, opts.Clock)
	mux.HandleFunc("/api/board/summary", boardHandler.Summary)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, _, err := taskRepo.Load(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "task storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "bubble-board",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("BUBBLEBOARD_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
