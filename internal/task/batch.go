package task

import (
	"errors"
	"time"
)

// BatchState is the lifecycle status of a batch
type BatchState int

const (
	BatchStaging BatchState = iota
	BatchInProgress
	BatchCompleted
)

func (s BatchState) String() string {
	switch s {
	case BatchStaging:
		return "staging"
	case BatchInProgress:
		return "in_progress"
	case BatchCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	ErrBatchNotFound      = errors.New("Batch not found")
	ErrBatchExists        = errors.New("Batch already exists")
	ErrBatchNotStaging    = errors.New("Batch has already been finalized")
	ErrBatchNameRequired  = errors.New("Please provide a batch name")
	ErrBatchNotAcceptable = errors.New("Batch is not accepting new tasks")
)

// Batch is the fake API's record of a named group of tasks
type Batch struct {
	Name      string
	Project   string
	Callback  string
	State     BatchState
	CreatedAt time.Time
}

// NewBatch creates a batch in staging
func NewBatch(project, name, callback string) *Batch {
	return &Batch{
		Name:      name,
		Project:   project,
		Callback:  callback,
		State:     BatchStaging,
		CreatedAt: time.Now().UTC(),
	}
}

// Finalize moves a staging batch into progress
func (b *Batch) Finalize() error {
	if b.State != BatchStaging {
		return ErrBatchNotStaging
	}
	b.State = BatchInProgress
	return nil
}

// AcceptsTasks reports whether tasks may still be added
func (b *Batch) AcceptsTasks() bool {
	return b.State == BatchStaging
}

// ToDocument converts a Batch to the JSON object served by the API
func (b *Batch) ToDocument() map[string]any {
	return map[string]any{
		"name":       b.Name,
		"project":    b.Project,
		"callback":   b.Callback,
		"status":     b.State.String(),
		"created_at": b.CreatedAt.Format(time.RFC3339Nano),
	}
}

// Counts is the per-status breakdown of the tasks in a batch
type Counts struct {
	Pending   int
	Completed int
	Canceled  int
}

// Add tallies one task state
func (c *Counts) Add(s State) {
	switch s {
	case StatePending:
		c.Pending++
	case StateCompleted:
		c.Completed++
	case StateCanceled:
		c.Canceled++
	}
}
