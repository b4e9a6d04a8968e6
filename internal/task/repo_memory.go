package task

import (
	"sync"

	"github.com/motaterry/bubble-board/internal/model"
)

// MemoryRepo is an in-memory DocumentRepo for tests and ephemeral boards.
type MemoryRepo struct {
	mu  sync.Mutex
	doc model.Document
	has bool
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Load() (model.Document, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneDocument(r.doc), r.has, nil
}

func (r *MemoryRepo) Save(doc model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = cloneDocument(doc)
	r.has = true
	return nil
}

func cloneDocument(doc model.Document) model.Document {
	out := doc
	out.Tasks = append([]model.Task(nil), doc.Tasks...)
	return out
}
