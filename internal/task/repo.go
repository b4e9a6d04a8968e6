package task

import (
	"errors"

	"github.com/motaterry/bubble-board/internal/model"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrInvalidFormat = errors.New("invalid task data format")
	ErrAddInFlight   = errors.New("task add already in flight")
)

// DocumentRepo is the persistence port for the task document. Load returns
// ok=false when nothing has been persisted yet. Implementations hand back
// the document exactly as stored; validation belongs to the Store so that a
// corrupt document degrades to an empty board instead of an error.
type DocumentRepo interface {
	Load() (doc model.Document, ok bool, err error)
	Save(doc model.Document) error
}
