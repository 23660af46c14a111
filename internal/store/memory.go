package store

import (
	"sync"
	"time"

	"github.com/maumercado/scaleapi-go/internal/task"
)

// TaskFilter selects tasks for listing. Zero values match everything.
type TaskFilter struct {
	Status               *task.State
	Type                 string
	Project              string
	Batch                string
	CustomerReviewStatus string
	StartTime            time.Time
	EndTime              time.Time
	CompletedAfter       time.Time
	CompletedBefore      time.Time
	UpdatedAfter         time.Time
	UpdatedBefore        time.Time
}

func (f *TaskFilter) matches(t *task.Task) bool {
	if f.Status != nil && t.State != *f.Status {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Project != "" && t.Project != f.Project {
		return false
	}
	if f.Batch != "" && t.Batch != f.Batch {
		return false
	}
	if f.CustomerReviewStatus != "" && t.CustomerReviewStatus != f.CustomerReviewStatus {
		return false
	}
	if !f.StartTime.IsZero() && t.CreatedAt.Before(f.StartTime) {
		return false
	}
	if !f.EndTime.IsZero() && !t.CreatedAt.Before(f.EndTime) {
		return false
	}
	if !f.UpdatedAfter.IsZero() && !t.UpdatedAt.After(f.UpdatedAfter) {
		return false
	}
	if !f.UpdatedBefore.IsZero() && !t.UpdatedAt.Before(f.UpdatedBefore) {
		return false
	}
	if !f.CompletedAfter.IsZero() || !f.CompletedBefore.IsZero() {
		if t.CompletedAt == nil || t.State != task.StateCompleted {
			return false
		}
		if !f.CompletedAfter.IsZero() && !t.CompletedAt.After(f.CompletedAfter) {
			return false
		}
		if !f.CompletedBefore.IsZero() && !t.CompletedAt.Before(f.CompletedBefore) {
			return false
		}
	}
	return true
}

// Memory is a thread-safe in-memory store for tasks and batches. Tasks are
// listed in creation order.
type Memory struct {
	mu      sync.RWMutex
	tasks   map[string]*task.Task
	order   []string
	batches map[string]*task.Batch
}

// NewMemory creates an empty store
func NewMemory() *Memory {
	return &Memory{
		tasks:   make(map[string]*task.Task),
		batches: make(map[string]*task.Batch),
	}
}

// CreateTask stores t. A referenced batch must exist and still be staging.
func (m *Memory) CreateTask(t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.Batch != "" {
		b, ok := m.batches[t.Batch]
		if !ok {
			return task.ErrBatchNotFound
		}
		if !b.AcceptsTasks() {
			return task.ErrBatchNotAcceptable
		}
		if t.Project == "" {
			t.Project = b.Project
		}
	}

	m.tasks[t.ID] = t.Clone()
	m.order = append(m.order, t.ID)
	return nil
}

// GetTask returns a copy of the task with the given ID
func (m *Memory) GetTask(id string) (*task.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return t.Clone(), nil
}

// CancelTask cancels a pending task
func (m *Memory) CancelTask(id string) (*task.Task, error) {
	return m.transition(id, func(sm *task.StateMachine) error {
		return sm.Cancel()
	})
}

// CompleteTask marks a pending task completed with the given response
func (m *Memory) CompleteTask(id string, response map[string]any) (*task.Task, error) {
	return m.transition(id, func(sm *task.StateMachine) error {
		return sm.Complete(response)
	})
}

// SetReviewStatus records the customer review outcome of a task
func (m *Memory) SetReviewStatus(id, status string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	t.CustomerReviewStatus = status
	t.UpdatedAt = time.Now().UTC()
	return t.Clone(), nil
}

func (m *Memory) transition(id string, apply func(*task.StateMachine) error) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}

	updated := t.Clone()
	if err := apply(task.NewStateMachine(updated)); err != nil {
		return nil, err
	}
	m.tasks[id] = updated

	if updated.Batch != "" {
		m.settleBatchLocked(updated.Batch)
	}
	return updated.Clone(), nil
}

// settleBatchLocked completes an in-progress batch once none of its tasks
// are pending.
func (m *Memory) settleBatchLocked(name string) {
	b, ok := m.batches[name]
	if !ok || b.State != task.BatchInProgress {
		return
	}
	if m.countsLocked(name).Pending == 0 {
		b.State = task.BatchCompleted
	}
}

// ListTasks returns up to limit tasks matching f starting at offset, plus
// the total number of matches.
func (m *Memory) ListTasks(f TaskFilter, offset, limit int) ([]*task.Task, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*task.Task
	for _, id := range m.order {
		t := m.tasks[id]
		if f.matches(t) {
			matched = append(matched, t)
		}
	}

	total := len(matched)
	if offset >= total {
		return []*task.Task{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]*task.Task, 0, end-offset)
	for _, t := range matched[offset:end] {
		page = append(page, t.Clone())
	}
	return page, total
}

// CreateBatch stores a new batch. Names are unique.
func (m *Memory) CreateBatch(b *task.Batch) error {
	if b.Name == "" {
		return task.ErrBatchNameRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.batches[b.Name]; exists {
		return task.ErrBatchExists
	}
	stored := *b
	m.batches[b.Name] = &stored
	return nil
}

// GetBatch returns a copy of the named batch
func (m *Memory) GetBatch(name string) (*task.Batch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.batches[name]
	if !ok {
		return nil, task.ErrBatchNotFound
	}
	out := *b
	return &out, nil
}

// FinalizeBatch moves a staging batch into progress. A batch with no pending
// tasks completes immediately.
func (m *Memory) FinalizeBatch(name string) (*task.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.batches[name]
	if !ok {
		return nil, task.ErrBatchNotFound
	}
	if err := b.Finalize(); err != nil {
		return nil, err
	}
	m.settleBatchLocked(name)

	out := *b
	return &out, nil
}

// BatchCounts returns the batch with its per-status task counts
func (m *Memory) BatchCounts(name string) (*task.Batch, task.Counts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.batches[name]
	if !ok {
		return nil, task.Counts{}, task.ErrBatchNotFound
	}
	out := *b
	return &out, m.countsLocked(name), nil
}

func (m *Memory) countsLocked(name string) task.Counts {
	var c task.Counts
	for _, t := range m.tasks {
		if t.Batch == name {
			c.Add(t.State)
		}
	}
	return c
}
