package task

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/motaterry/bubble-board/internal/model"
)

const documentFile = "tasks.json"

// FileRepo persists the task document as a single pretty-printed JSON file
// under the data directory. The afero filesystem makes it trivially
// swappable for an in-memory one in tests.
type FileRepo struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

func NewFileRepo(fsys afero.Fs, dataDir string) (*FileRepo, error) {
	if err := fsys.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileRepo{fs: fsys, path: filepath.Join(dataDir, documentFile)}, nil
}

func (r *FileRepo) Load() (model.Document, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Document{}, false, nil
		}
		return model.Document{}, false, err
	}

	var doc model.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return model.Document{}, false, err
	}
	return doc, true, nil
}

func (r *FileRepo) Save(doc model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(r.fs, r.path, b, 0o644)
}
