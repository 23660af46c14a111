package scaleapi

import (
	"context"
	"encoding/json"
	"iter"
	"strconv"
	"time"

	"github.com/maumercado/scaleapi-go/internal/metrics"
)

// Task is a read view over a task document returned by the API. It keeps a
// reference to the Client that produced it for follow-up calls; it does not
// own the client. A Task is never modified in place.
type Task struct {
	doc    Document
	client *Client
}

// NewTask wraps doc. client may be nil, in which case Refresh and Cancel
// fail.
func NewTask(doc Document, client *Client) *Task {
	if doc == nil {
		doc = Document{}
	}
	return &Task{doc: doc, client: client}
}

// ID returns the task_id field.
func (t *Task) ID() string { return t.doc.String("task_id") }

// Type returns the task type.
func (t *Task) Type() TaskType { return TaskType(t.doc.String("type")) }

// Status returns the task status.
func (t *Task) Status() TaskStatus { return TaskStatus(t.doc.String("status")) }

// Project returns the owning project name, if any.
func (t *Task) Project() string { return t.doc.String("project") }

// Batch returns the batch name, if any.
func (t *Task) Batch() string { return t.doc.String("batch") }

// CallbackURL returns the URL notified on completion.
func (t *Task) CallbackURL() string { return t.doc.String("callback_url") }

// Instruction returns the worker-facing instruction text.
func (t *Task) Instruction() string { return t.doc.String("instruction") }

// CreatedAt returns the creation time, or the zero time.
func (t *Task) CreatedAt() time.Time { return t.doc.Time("created_at") }

// CompletedAt returns the completion time, or the zero time.
func (t *Task) CompletedAt() time.Time { return t.doc.Time("completed_at") }

// Params returns the type-specific parameters the task was created with.
func (t *Task) Params() Document { return t.doc.Object("params") }

// Response returns the annotation result of a completed task.
func (t *Task) Response() Document { return t.doc.Object("response") }

// Metadata returns the caller-defined metadata object.
func (t *Task) Metadata() Document { return t.doc.Object("metadata") }

// Get returns the top-level field named key, falling back to the task's
// params. The second result reports whether the key was found.
func (t *Task) Get(key string) (any, bool) {
	if v, ok := t.doc[key]; ok {
		return v, true
	}
	if params := t.Params(); params != nil {
		v, ok := params[key]
		return v, ok
	}
	return nil, false
}

// Document returns a copy of the underlying JSON document.
func (t *Task) Document() Document { return t.doc.Clone() }

// Decode binds the task document to v, typically a pointer to a struct.
func (t *Task) Decode(v any) error { return t.doc.decodeInto(v) }

// MarshalJSON encodes the underlying document unchanged.
func (t *Task) MarshalJSON() ([]byte, error) { return json.Marshal(t.doc) }

// Refresh fetches the latest version of the task.
func (t *Task) Refresh(ctx context.Context) (*Task, error) {
	if t.client == nil {
		return nil, newInvalidRequestError("task %s is not bound to a client", t.ID())
	}
	return t.client.FetchTask(ctx, t.ID())
}

// Cancel cancels the task and returns its updated version.
func (t *Task) Cancel(ctx context.Context) (*Task, error) {
	if t.client == nil {
		return nil, newInvalidRequestError("task %s is not bound to a client", t.ID())
	}
	return t.client.CancelTask(ctx, t.ID())
}

// FetchTask retrieves a task by ID.
func (c *Client) FetchTask(ctx context.Context, taskID string) (*Task, error) {
	if taskID == "" {
		return nil, newInvalidRequestError("task id is required")
	}

	var doc Document
	if err := c.getRequest(ctx, "fetch_task", pathJoin("task", taskID), nil, &doc); err != nil {
		return nil, err
	}
	return NewTask(doc, c), nil
}

// CancelTask cancels a task. The server reports an error when the task was
// already canceled or completed.
func (c *Client) CancelTask(ctx context.Context, taskID string) (*Task, error) {
	if taskID == "" {
		return nil, newInvalidRequestError("task id is required")
	}

	var doc Document
	if err := c.postRequest(ctx, "cancel_task", pathJoin("task", taskID, "cancel"), nil, &doc); err != nil {
		return nil, err
	}
	return NewTask(doc, c), nil
}

// ListTasks returns one page of tasks. Up to 100 tasks are returned at a
// time; pass the page's NextToken back with WithNextToken to get more.
func (c *Client) ListTasks(ctx context.Context, opts ...ListOption) (*TaskList, error) {
	params, err := buildListParams("ListTasks", taskListParams, opts)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := c.getRequest(ctx, "list_tasks", "tasks", params, &resp); err != nil {
		return nil, err
	}
	return newPage(&resp, func(doc Document) *Task { return NewTask(doc, c) }), nil
}

// AllTasks iterates over every task matching opts, requesting pages as
// needed. Pages are chained through next_token; when the server reports more
// results without a token the offset is advanced instead. Iteration stops
// at the first error, which is yielded with a nil task.
func (c *Client) AllTasks(ctx context.Context, opts ...ListOption) iter.Seq2[*Task, error] {
	return func(yield func(*Task, error) bool) {
		pageOpts := append([]ListOption(nil), opts...)
		for {
			page, err := c.ListTasks(ctx, pageOpts...)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, t := range page.Items {
				if !yield(t, nil) {
					return
				}
			}
			if !page.HasMore || page.Len() == 0 {
				return
			}

			next := append([]ListOption(nil), opts...)
			if page.NextToken != "" {
				next = append(next, WithNextToken(page.NextToken))
			} else {
				next = append(next, WithParam("offset", strconv.Itoa(page.Offset+page.Len())))
			}
			pageOpts = next
		}
	}
}

// CreateTask creates a task of the given type with fields as the request
// body. Unknown task types are rejected without contacting the server.
func (c *Client) CreateTask(ctx context.Context, taskType TaskType, fields Fields) (*Task, error) {
	if !taskType.Valid() {
		return nil, newInvalidRequestError("unknown task type %q", string(taskType))
	}

	var payload any = fields
	if fields == nil {
		payload = nil
	}

	var doc Document
	if err := c.postRequest(ctx, "create_task", pathJoin("task", string(taskType)), payload, &doc); err != nil {
		return nil, err
	}

	metrics.RecordTaskCreated(string(taskType))
	return NewTask(doc, c), nil
}
