package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maumercado/scaleapi-go/internal/task"
)

func newTask(t *testing.T, m *Memory, taskType, project, batch string) *task.Task {
	t.Helper()
	tk := task.New(taskType)
	tk.Project = project
	tk.Batch = batch
	require.NoError(t, m.CreateTask(tk))
	return tk
}

func TestMemory_CreateAndGetTask(t *testing.T) {
	m := NewMemory()
	tk := newTask(t, m, "comparison", "kitti", "")

	got, err := m.GetTask(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, tk.ID, got.ID)
	assert.Equal(t, "kitti", got.Project)

	got.Project = "changed"
	again, err := m.GetTask(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "kitti", again.Project, "returned tasks are copies")

	_, err = m.GetTask("missing")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestMemory_CreateTask_Batch(t *testing.T) {
	m := NewMemory()

	tk := task.New("comparison")
	tk.Batch = "missing"
	assert.ErrorIs(t, m.CreateTask(tk), task.ErrBatchNotFound)

	require.NoError(t, m.CreateBatch(task.NewBatch("kitti", "b1", "")))
	added := newTask(t, m, "comparison", "", "b1")
	assert.Equal(t, "kitti", added.Project, "tasks inherit the batch project")

	_, err := m.FinalizeBatch("b1")
	require.NoError(t, err)

	late := task.New("comparison")
	late.Batch = "b1"
	assert.ErrorIs(t, m.CreateTask(late), task.ErrBatchNotAcceptable)
}

func TestMemory_CancelTask(t *testing.T) {
	m := NewMemory()
	tk := newTask(t, m, "comparison", "", "")

	canceled, err := m.CancelTask(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StateCanceled, canceled.State)

	_, err = m.CancelTask(tk.ID)
	assert.ErrorIs(t, err, task.ErrAlreadyCanceled)

	_, err = m.CancelTask("missing")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestMemory_CompleteTask(t *testing.T) {
	m := NewMemory()
	tk := newTask(t, m, "categorization", "", "")

	done, err := m.CompleteTask(tk.ID, map[string]any{"category": "public"})
	require.NoError(t, err)
	assert.Equal(t, task.StateCompleted, done.State)
	assert.Equal(t, "public", done.Response["category"])

	_, err = m.CancelTask(tk.ID)
	assert.ErrorIs(t, err, task.ErrAlreadyCompleted)

	stored, err := m.GetTask(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StateCompleted, stored.State, "failed transitions leave the task untouched")
}

func TestMemory_SetReviewStatus(t *testing.T) {
	m := NewMemory()
	tk := newTask(t, m, "comparison", "", "")

	updated, err := m.SetReviewStatus(tk.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, "accepted", updated.CustomerReviewStatus)

	_, err = m.SetReviewStatus("missing", "accepted")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestMemory_ListTasks_Pagination(t *testing.T) {
	m := NewMemory()
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, newTask(t, m, "comparison", "", "").ID)
	}

	page, total := m.ListTasks(TaskFilter{}, 0, 2)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[0], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)

	page, _ = m.ListTasks(TaskFilter{}, 4, 2)
	require.Len(t, page, 1)
	assert.Equal(t, ids[4], page[0].ID)

	page, total = m.ListTasks(TaskFilter{}, 10, 2)
	assert.Empty(t, page)
	assert.NotNil(t, page)
	assert.Equal(t, 5, total)
}

func TestMemory_ListTasks_Filters(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateBatch(task.NewBatch("kitti", "b1", "")))

	a := newTask(t, m, "comparison", "kitti", "b1")
	b := newTask(t, m, "transcription", "kitti", "")
	c := newTask(t, m, "comparison", "other", "")

	_, err := m.CompleteTask(a.ID, map[string]any{})
	require.NoError(t, err)
	_, err = m.CancelTask(c.ID)
	require.NoError(t, err)
	_, err = m.SetReviewStatus(a.ID, "accepted")
	require.NoError(t, err)

	pending := task.StatePending
	completed := task.StateCompleted
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name   string
		filter TaskFilter
		want   []string
	}{
		{"all", TaskFilter{}, []string{a.ID, b.ID, c.ID}},
		{"status pending", TaskFilter{Status: &pending}, []string{b.ID}},
		{"status completed", TaskFilter{Status: &completed}, []string{a.ID}},
		{"type", TaskFilter{Type: "comparison"}, []string{a.ID, c.ID}},
		{"project", TaskFilter{Project: "kitti"}, []string{a.ID, b.ID}},
		{"batch", TaskFilter{Batch: "b1"}, []string{a.ID}},
		{"review status", TaskFilter{CustomerReviewStatus: "accepted"}, []string{a.ID}},
		{"start time in future", TaskFilter{StartTime: future}, nil},
		{"end time in past", TaskFilter{EndTime: past}, nil},
		{"window around now", TaskFilter{StartTime: past, EndTime: future}, []string{a.ID, b.ID, c.ID}},
		{"completed after", TaskFilter{CompletedAfter: past}, []string{a.ID}},
		{"completed before past", TaskFilter{CompletedBefore: past}, nil},
		{"updated after future", TaskFilter{UpdatedAfter: future}, nil},
		{"updated before future", TaskFilter{UpdatedBefore: future}, []string{a.ID, b.ID, c.ID}},
		{"combined", TaskFilter{Type: "comparison", Project: "kitti"}, []string{a.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total := m.ListTasks(tt.filter, 0, 100)
			var got []string
			for _, tk := range page {
				got = append(got, tk.ID)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), total)
		})
	}
}

func TestMemory_Batches(t *testing.T) {
	m := NewMemory()

	assert.ErrorIs(t, m.CreateBatch(task.NewBatch("kitti", "", "")), task.ErrBatchNameRequired)
	require.NoError(t, m.CreateBatch(task.NewBatch("kitti", "b1", "https://example.com/done")))
	assert.ErrorIs(t, m.CreateBatch(task.NewBatch("kitti", "b1", "")), task.ErrBatchExists)

	b, err := m.GetBatch("b1")
	require.NoError(t, err)
	assert.Equal(t, task.BatchStaging, b.State)
	assert.Equal(t, "https://example.com/done", b.Callback)

	_, err = m.GetBatch("missing")
	assert.ErrorIs(t, err, task.ErrBatchNotFound)
	_, err = m.FinalizeBatch("missing")
	assert.ErrorIs(t, err, task.ErrBatchNotFound)
	_, _, err = m.BatchCounts("missing")
	assert.ErrorIs(t, err, task.ErrBatchNotFound)
}

func TestMemory_BatchLifecycle(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateBatch(task.NewBatch("kitti", "b1", "")))

	t1 := newTask(t, m, "comparison", "", "b1")
	t2 := newTask(t, m, "comparison", "", "b1")
	t3 := newTask(t, m, "comparison", "", "b1")
	newTask(t, m, "comparison", "", "")

	_, err := m.CancelTask(t3.ID)
	require.NoError(t, err)

	b, err := m.FinalizeBatch("b1")
	require.NoError(t, err)
	assert.Equal(t, task.BatchInProgress, b.State)

	_, err = m.FinalizeBatch("b1")
	assert.ErrorIs(t, err, task.ErrBatchNotStaging)

	_, counts, err := m.BatchCounts("b1")
	require.NoError(t, err)
	assert.Equal(t, task.Counts{Pending: 2, Canceled: 1}, counts)

	_, err = m.CompleteTask(t1.ID, nil)
	require.NoError(t, err)
	b, _ = m.GetBatch("b1")
	assert.Equal(t, task.BatchInProgress, b.State)

	_, err = m.CompleteTask(t2.ID, nil)
	require.NoError(t, err)
	b, counts, err = m.BatchCounts("b1")
	require.NoError(t, err)
	assert.Equal(t, task.BatchCompleted, b.State)
	assert.Equal(t, task.Counts{Completed: 2, Canceled: 1}, counts)
}

func TestMemory_FinalizeEmptyBatchCompletes(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateBatch(task.NewBatch("kitti", "empty", "")))

	b, err := m.FinalizeBatch("empty")
	require.NoError(t, err)
	assert.Equal(t, task.BatchCompleted, b.State)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tk := task.New("comparison")
			tk.Project = fmt.Sprintf("p%d", i%3)
			if err := m.CreateTask(tk); err != nil {
				t.Error(err)
				return
			}
			_, _ = m.GetTask(tk.ID)
			_, _ = m.ListTasks(TaskFilter{}, 0, 10)
			_, _ = m.CancelTask(tk.ID)
		}(i)
	}
	wg.Wait()

	canceled := task.StateCanceled
	_, total := m.ListTasks(TaskFilter{Status: &canceled}, 0, 100)
	assert.Equal(t, 20, total)
}
