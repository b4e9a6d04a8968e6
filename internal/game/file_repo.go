package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

const statsFile = "game_stats.json"

// StatsRepo is the persistence port for the gamification record. Load
// returns defaults when nothing has been persisted; a non-nil error on top
// of defaults means the stored record was unreadable and should be logged.
type StatsRepo interface {
	Load() (GameStats, error)
	Save(GameStats) error
}

// FileStatsRepo keeps the record as a JSON file next to the task document.
type FileStatsRepo struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

func NewFileStatsRepo(fsys afero.Fs, dataDir string) (*FileStatsRepo, error) {
	if err := fsys.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStatsRepo{fs: fsys, path: filepath.Join(dataDir, statsFile)}, nil
}

func (r *FileStatsRepo) Load() (GameStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultStats(), nil
		}
		return DefaultStats(), err
	}

	var s GameStats
	if err := json.Unmarshal(b, &s); err != nil {
		return DefaultStats(), err
	}
	return s.Normalize(), nil
}

func (r *FileStatsRepo) Save(s GameStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(r.fs, r.path, b, 0o644)
}
