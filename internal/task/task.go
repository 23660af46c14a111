package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidTaskData = errors.New("invalid task data")

// Top-level request fields lifted out of params.
const (
	fieldCallbackURL = "callback_url"
	fieldInstruction = "instruction"
	fieldProject     = "project"
	fieldBatch       = "batch"
	fieldMetadata    = "metadata"
)

// Task is the fake API's record of an annotation task
type Task struct {
	ID                   string
	Type                 string
	State                State
	Project              string
	Batch                string
	CallbackURL          string
	Instruction          string
	Params               map[string]any
	Metadata             map[string]any
	Response             map[string]any
	CustomerReviewStatus string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CompletedAt          *time.Time
}

// New creates a pending task of the given type
func New(taskType string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		State:     StatePending,
		Params:    make(map[string]any),
		Metadata:  make(map[string]any),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FromRequest builds a task from a creation body. Well-known fields become
// top-level attributes and everything else is kept in Params.
func FromRequest(taskType string, body map[string]any) (*Task, error) {
	t := New(taskType)

	for key, value := range body {
		switch key {
		case fieldCallbackURL, fieldInstruction, fieldProject, fieldBatch:
			s, ok := value.(string)
			if !ok {
				return nil, &FieldError{Field: key, Want: "a string"}
			}
			switch key {
			case fieldCallbackURL:
				t.CallbackURL = s
			case fieldInstruction:
				t.Instruction = s
			case fieldProject:
				t.Project = s
			case fieldBatch:
				t.Batch = s
			}
		case fieldMetadata:
			m, ok := value.(map[string]any)
			if !ok {
				return nil, &FieldError{Field: key, Want: "an object"}
			}
			t.Metadata = m
		default:
			t.Params[key] = value
		}
	}

	return t, nil
}

// FieldError reports a creation field with the wrong JSON type
type FieldError struct {
	Field string
	Want  string
}

func (e *FieldError) Error() string {
	return "Invalid " + e.Field + ": expected " + e.Want
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidTaskData
}

// ToDocument converts a Task to the JSON object served by the API
func (t *Task) ToDocument() map[string]any {
	doc := map[string]any{
		"task_id":      t.ID,
		"type":         t.Type,
		"status":       t.State.String(),
		"callback_url": t.CallbackURL,
		"instruction":  t.Instruction,
		"params":       t.Params,
		"metadata":     t.Metadata,
		"created_at":   t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   t.UpdatedAt.Format(time.RFC3339Nano),
	}
	if t.Project != "" {
		doc["project"] = t.Project
	}
	if t.Batch != "" {
		doc["batch"] = t.Batch
	}
	if t.Response != nil {
		doc["response"] = t.Response
	}
	if t.CompletedAt != nil {
		doc["completed_at"] = t.CompletedAt.Format(time.RFC3339Nano)
	}
	if t.CustomerReviewStatus != "" {
		doc["customer_review_status"] = t.CustomerReviewStatus
	}
	return doc
}

// Clone returns a copy that shares no mutable state with t
func (t *Task) Clone() *Task {
	c := *t
	c.Params = cloneMap(t.Params)
	c.Metadata = cloneMap(t.Metadata)
	c.Response = cloneMap(t.Response)
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

// cloneMap deep-copies a decoded JSON object through a re-encode.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return m
	}
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return m
	}
	return out
}
