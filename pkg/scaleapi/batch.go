package scaleapi

import (
	"context"
	"encoding/json"
	"time"
)

// Batch is a read view over a batch document, with a non-owning reference
// to the Client that produced it.
type Batch struct {
	doc    Document
	client *Client
}

// NewBatch wraps doc. client may be nil.
func NewBatch(doc Document, client *Client) *Batch {
	if doc == nil {
		doc = Document{}
	}
	return &Batch{doc: doc, client: client}
}

// Name returns the batch name, its identifier.
func (b *Batch) Name() string { return b.doc.String("name") }

// Project returns the project the batch belongs to.
func (b *Batch) Project() string { return b.doc.String("project") }

// Status returns the batch status.
func (b *Batch) Status() BatchStatus { return BatchStatus(b.doc.String("status")) }

// CallbackURL returns the URL notified when the batch completes.
func (b *Batch) CallbackURL() string { return b.doc.String("callback") }

// CreatedAt returns the creation time, or the zero time.
func (b *Batch) CreatedAt() time.Time { return b.doc.Time("created_at") }

// Get returns the top-level field named key.
func (b *Batch) Get(key string) (any, bool) {
	v, ok := b.doc[key]
	return v, ok
}

// Document returns a copy of the underlying JSON document.
func (b *Batch) Document() Document { return b.doc.Clone() }

// Decode binds the batch document to v.
func (b *Batch) Decode(v any) error { return b.doc.decodeInto(v) }

// MarshalJSON encodes the underlying document unchanged.
func (b *Batch) MarshalJSON() ([]byte, error) { return json.Marshal(b.doc) }

// Refresh fetches the latest version of the batch.
func (b *Batch) Refresh(ctx context.Context) (*Batch, error) {
	if b.client == nil {
		return nil, newInvalidRequestError("batch %s is not bound to a client", b.Name())
	}
	return b.client.GetBatch(ctx, b.Name())
}

// Finalize closes the batch to new tasks and starts work on it.
func (b *Batch) Finalize(ctx context.Context) (*Batch, error) {
	if b.client == nil {
		return nil, newInvalidRequestError("batch %s is not bound to a client", b.Name())
	}
	return b.client.FinalizeBatch(ctx, b.Name())
}

// Progress reports per-status task counts for the batch.
func (b *Batch) Progress(ctx context.Context) (*BatchProgress, error) {
	if b.client == nil {
		return nil, newInvalidRequestError("batch %s is not bound to a client", b.Name())
	}
	return b.client.BatchStatus(ctx, b.Name())
}

// BatchProgress is the task breakdown of a batch.
type BatchProgress struct {
	Status         BatchStatus `json:"status"`
	TasksPending   int         `json:"tasks_pending"`
	TasksCompleted int         `json:"tasks_completed"`
	TasksCanceled  int         `json:"tasks_canceled"`
}

// Total returns the number of tasks in the batch.
func (p *BatchProgress) Total() int {
	return p.TasksPending + p.TasksCompleted + p.TasksCanceled
}

// createBatchRequest is the JSON request body for creating a batch.
type createBatchRequest struct {
	Project  string `json:"project"`
	Name     string `json:"name"`
	Callback string `json:"callback"`
}

// CreateBatch creates a named batch under project. callbackURL is notified
// once every task in the batch is done.
func (c *Client) CreateBatch(ctx context.Context, project, batchName, callbackURL string) (*Batch, error) {
	body := createBatchRequest{
		Project:  project,
		Name:     batchName,
		Callback: callbackURL,
	}

	var doc Document
	if err := c.postRequest(ctx, "create_batch", "batches", body, &doc); err != nil {
		return nil, err
	}
	return NewBatch(doc, c), nil
}

// GetBatch retrieves a batch by name.
func (c *Client) GetBatch(ctx context.Context, batchName string) (*Batch, error) {
	if batchName == "" {
		return nil, newInvalidRequestError("batch name is required")
	}

	var doc Document
	if err := c.getRequest(ctx, "get_batch", pathJoin("batches", batchName), nil, &doc); err != nil {
		return nil, err
	}
	return NewBatch(doc, c), nil
}

// ListBatches returns one page of batches. The listing is served by the
// tasks collection and accepts only start_time, end_time, status, project,
// batch, limit and offset.
func (c *Client) ListBatches(ctx context.Context, opts ...ListOption) (*BatchList, error) {
	params, err := buildListParams("ListBatches", batchListParams, opts)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := c.getRequest(ctx, "list_batches", "tasks", params, &resp); err != nil {
		return nil, err
	}
	return newPage(&resp, func(doc Document) *Batch { return NewBatch(doc, c) }), nil
}

// FinalizeBatch moves a staging batch into production.
func (c *Client) FinalizeBatch(ctx context.Context, batchName string) (*Batch, error) {
	if batchName == "" {
		return nil, newInvalidRequestError("batch name is required")
	}

	var doc Document
	if err := c.postRequest(ctx, "finalize_batch", pathJoin("batches", batchName, "finalize"), nil, &doc); err != nil {
		return nil, err
	}
	return NewBatch(doc, c), nil
}

// BatchStatus returns per-status task counts for a batch.
func (c *Client) BatchStatus(ctx context.Context, batchName string) (*BatchProgress, error) {
	if batchName == "" {
		return nil, newInvalidRequestError("batch name is required")
	}

	var progress BatchProgress
	if err := c.getRequest(ctx, "batch_status", pathJoin("batches", batchName, "status"), nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}
