package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tk := New("imageannotation")

	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, "imageannotation", tk.Type)
	assert.Equal(t, StatePending, tk.State)
	assert.NotNil(t, tk.Params)
	assert.NotNil(t, tk.Metadata)
	assert.False(t, tk.CreatedAt.IsZero())
	assert.Equal(t, tk.CreatedAt, tk.UpdatedAt)
	assert.Nil(t, tk.CompletedAt)

	assert.NotEqual(t, tk.ID, New("imageannotation").ID)
}

func TestFromRequest(t *testing.T) {
	body := map[string]any{
		"callback_url": "https://example.com/cb",
		"instruction":  "Draw a box around each car",
		"project":      "kitti",
		"batch":        "kitti-2024-06",
		"metadata":     map[string]any{"frame": 7.0},
		"attachment":   "https://example.com/car.jpg",
		"geometries":   map[string]any{"box": map[string]any{}},
	}

	tk, err := FromRequest("imageannotation", body)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/cb", tk.CallbackURL)
	assert.Equal(t, "Draw a box around each car", tk.Instruction)
	assert.Equal(t, "kitti", tk.Project)
	assert.Equal(t, "kitti-2024-06", tk.Batch)
	assert.Equal(t, map[string]any{"frame": 7.0}, tk.Metadata)
	assert.Equal(t, map[string]any{
		"attachment": "https://example.com/car.jpg",
		"geometries": map[string]any{"box": map[string]any{}},
	}, tk.Params)
}

func TestFromRequest_InvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"numeric callback", map[string]any{"callback_url": 5.0}, "callback_url"},
		{"list metadata", map[string]any{"metadata": []any{"a"}}, "metadata"},
		{"object project", map[string]any{"project": map[string]any{}}, "project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRequest("comparison", tt.body)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTaskData)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestTask_ToDocument(t *testing.T) {
	tk := New("categorization")
	tk.Project = "kitti"
	tk.CallbackURL = "https://example.com/cb"
	tk.Params["categories"] = []any{"public", "private"}

	doc := tk.ToDocument()
	assert.Equal(t, tk.ID, doc["task_id"])
	assert.Equal(t, "categorization", doc["type"])
	assert.Equal(t, "pending", doc["status"])
	assert.Equal(t, "kitti", doc["project"])
	assert.NotContains(t, doc, "batch")
	assert.NotContains(t, doc, "response")
	assert.NotContains(t, doc, "completed_at")

	createdAt, err := time.Parse(time.RFC3339Nano, doc["created_at"].(string))
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(tk.CreatedAt))

	require.NoError(t, NewStateMachine(tk).Complete(map[string]any{"category": "public"}))
	doc = tk.ToDocument()
	assert.Equal(t, "completed", doc["status"])
	assert.Contains(t, doc, "completed_at")
	assert.Equal(t, map[string]any{"category": "public"}, doc["response"])

	_, err = json.Marshal(doc)
	assert.NoError(t, err)
}

func TestTask_Clone(t *testing.T) {
	tk := New("transcription")
	tk.Params["attachment"] = "a.pdf"
	require.NoError(t, NewStateMachine(tk).Complete(map[string]any{"text": "hello"}))

	c := tk.Clone()
	c.Params["attachment"] = "b.pdf"
	c.Response["text"] = "changed"
	*c.CompletedAt = time.Time{}

	assert.Equal(t, "a.pdf", tk.Params["attachment"])
	assert.Equal(t, "hello", tk.Response["text"])
	assert.False(t, tk.CompletedAt.IsZero())
}

func TestBatch_Lifecycle(t *testing.T) {
	b := NewBatch("kitti", "kitti-2024-06", "https://example.com/done")
	assert.Equal(t, BatchStaging, b.State)
	assert.True(t, b.AcceptsTasks())

	require.NoError(t, b.Finalize())
	assert.Equal(t, BatchInProgress, b.State)
	assert.False(t, b.AcceptsTasks())
	assert.ErrorIs(t, b.Finalize(), ErrBatchNotStaging)

	doc := b.ToDocument()
	assert.Equal(t, "kitti-2024-06", doc["name"])
	assert.Equal(t, "kitti", doc["project"])
	assert.Equal(t, "https://example.com/done", doc["callback"])
	assert.Equal(t, "in_progress", doc["status"])
}

func TestBatchState_String(t *testing.T) {
	assert.Equal(t, "staging", BatchStaging.String())
	assert.Equal(t, "in_progress", BatchInProgress.String())
	assert.Equal(t, "completed", BatchCompleted.String())
	assert.Equal(t, "unknown", BatchState(9).String())
}

func TestCounts_Add(t *testing.T) {
	var c Counts
	c.Add(StatePending)
	c.Add(StatePending)
	c.Add(StateCompleted)
	c.Add(StateCanceled)

	assert.Equal(t, Counts{Pending: 2, Completed: 1, Canceled: 1}, c)
}
