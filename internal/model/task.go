package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SchemaVersion tags the persisted task document. Bump it on breaking
// changes and add migration logic in the repos.
const SchemaVersion = "ebb_v1"

// Impact is the size category of a task bubble.
type Impact int

const (
	ImpactSmall  Impact = 1
	ImpactMedium Impact = 2
	ImpactLarge  Impact = 3
)

// Task is a single bubble on the urgency/importance plane. X is the
// importance axis (right = more important); Y is the urgency axis,
// inverted so that low Y means more urgent, matching the on-screen
// drag direction.
type Task struct {
	ID     string  `json:"id" validate:"required"`
	Title  string  `json:"title" validate:"required,min=1,max=200"`
	X      float64 `json:"x" validate:"gte=0,lte=1"`
	Y      float64 `json:"y" validate:"gte=0,lte=1"`
	Impact Impact  `json:"impact" validate:"oneof=1 2 3"`
	DoneAt *int64  `json:"doneAt"` // ms since epoch; nil = not completed
}

func (t Task) Done() bool { return t.DoneAt != nil }

// Document is the persisted shape: a version tag plus the ordered task
// list, most recently added first.
type Document struct {
	Version string `json:"version" validate:"required"`
	Tasks   []Task `json:"tasks" validate:"dive"`
}

func NewDocument(tasks []Task) Document {
	if tasks == nil {
		tasks = []Task{}
	}
	return Document{Version: SchemaVersion, Tasks: tasks}
}

var validate = validator.New()

var ErrInvalidDocument = errors.New("invalid task document")

// ValidateDocument checks the whole document contract: version tag, field
// ranges on every task, and id uniqueness. A document is accepted or
// rejected as a unit; there is no partial acceptance.
func ValidateDocument(doc Document) error {
	if doc.Version != SchemaVersion {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidDocument, doc.Version)
	}
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	seen := make(map[string]struct{}, len(doc.Tasks))
	for _, t := range doc.Tasks {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate task id %q", ErrInvalidDocument, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// ValidateTask checks a single task against the same field rules the
// document uses.
func ValidateTask(t Task) error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
