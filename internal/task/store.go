package task

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/motaterry/bubble-board/internal/model"
)

// MaxPersistedTasks caps how many tasks survive a save. Longer lists keep
// working in memory for the session, but only the first MaxPersistedTasks
// entries (by current order) are written out.
const MaxPersistedTasks = 200

// New tasks land in the center of the board unless the caller says otherwise.
const (
	DefaultX = 0.5
	DefaultY = 0.5
)

// Store owns the authoritative in-memory task list, most recently added
// first, and mirrors every mutation to its DocumentRepo. Loading and saving
// fail soft: the in-memory list keeps working even when the persisted copy
// is corrupt or a write fails.
type Store struct {
	mu     sync.Mutex
	repo   DocumentRepo
	logger *log.Logger
	tasks  []model.Task
	adding atomic.Bool
}

func NewStore(repo DocumentRepo, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{repo: repo, logger: logger}
	s.tasks = s.load()
	return s
}

func (s *Store) load() []model.Task {
	doc, ok, err := s.repo.Load()
	if err != nil {
		s.logger.Printf("task store: load failed, starting empty: %v", err)
		return []model.Task{}
	}
	if !ok {
		return []model.Task{}
	}
	if err := model.ValidateDocument(doc); err != nil {
		s.logger.Printf("task store: persisted document rejected, starting empty: %v", err)
		return []model.Task{}
	}
	return append([]model.Task{}, doc.Tasks...)
}

// List returns a copy of the current task list.
func (s *Store) List() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// AddRequest carries caller-supplied fields for a new task. Nil coordinates
// mean "center of the board"; a zero Impact means Medium.
type AddRequest struct {
	Title  string       `json:"title"`
	X      *float64     `json:"x,omitempty"`
	Y      *float64     `json:"y,omitempty"`
	Impact model.Impact `json:"impact,omitempty"`
}

// Add creates a task with a fresh id and prepends it to the list. A second
// Add arriving while one is still in flight is ignored with ErrAddInFlight,
// the same debounce the submit button applies.
func (s *Store) Add(req AddRequest) (model.Task, error) {
	if !s.adding.CompareAndSwap(false, true) {
		return model.Task{}, ErrAddInFlight
	}
	defer s.adding.Store(false)

	t := model.Task{
		ID:     uuid.NewString(),
		Title:  req.Title,
		X:      DefaultX,
		Y:      DefaultY,
		Impact: req.Impact,
	}
	if req.X != nil {
		t.X = clamp01(*req.X)
	}
	if req.Y != nil {
		t.Y = clamp01(*req.Y)
	}
	if t.Impact == 0 {
		t.Impact = model.ImpactMedium
	}
	if err := model.ValidateTask(t); err != nil {
		return model.Task{}, fmt.Errorf("add task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]model.Task{t}, s.tasks...)
	s.persistLocked()
	return t, nil
}

// Patch is a partial update; nil means "no change". Coordinates are clamped
// into [0,1] so a drag past the board edge pins the bubble to the edge.
type Patch struct {
	Title  *string       `json:"title,omitempty"`
	X      *float64      `json:"x,omitempty"`
	Y      *float64      `json:"y,omitempty"`
	Impact *model.Impact `json:"impact,omitempty"`
}

// Update merges the patch into the task matching id. An unknown id leaves
// state untouched and reports ErrNotFound; callers that want the original
// "silently ignore" behavior just drop that error.
func (s *Store) Update(id string, p Patch) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}

	t := s.tasks[i]
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.X != nil {
		t.X = clamp01(*p.X)
	}
	if p.Y != nil {
		t.Y = clamp01(*p.Y)
	}
	if p.Impact != nil {
		t.Impact = *p.Impact
	}
	if err := model.ValidateTask(t); err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}

	s.tasks[i] = t
	s.persistLocked()
	return t, nil
}

// SetDone marks the task complete at the given time, or reopens it when
// done is false.
func (s *Store) SetDone(id string, done bool, at time.Time) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}

	if done {
		ms := at.UnixMilli()
		s.tasks[i].DoneAt = &ms
	} else {
		s.tasks[i].DoneAt = nil
	}
	s.persistLocked()
	return s.tasks[i], nil
}

// Remove deletes the task matching id. Unknown ids are a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persistLocked()
	return true
}

// ExportJSON serializes the full current list (no truncation) as the
// pretty-printed versioned document handed to the download button.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.Lock()
	doc := model.NewDocument(append([]model.Task(nil), s.tasks...))
	s.mu.Unlock()
	return json.MarshalIndent(doc, "", "  ")
}

// ImportJSON replaces the whole task list with the given document. Any
// parse or validation failure reports ErrInvalidFormat and leaves the
// current list untouched; there is no merge and no partial import.
func (s *Store) ImportJSON(data []byte) ([]model.Task, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := model.ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]model.Task{}, doc.Tasks...)
	s.persistLocked()
	return append([]model.Task(nil), s.tasks...), nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() {
	tasks := s.tasks
	if len(tasks) > MaxPersistedTasks {
		tasks = tasks[:MaxPersistedTasks]
	}
	if err := s.repo.Save(model.NewDocument(tasks)); err != nil {
		s.logger.Printf("task store: save failed, keeping in-memory state: %v", err)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
