package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maumercado/scaleapi-go/internal/logger"
	"github.com/maumercado/scaleapi-go/internal/store"
	"github.com/maumercado/scaleapi-go/internal/task"
	"github.com/maumercado/scaleapi-go/pkg/scaleapi"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	store *store.Memory
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(st *store.Memory) *TaskHandler {
	return &TaskHandler{store: st}
}

// Create handles POST /v1/task/{taskType}
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	taskType := chi.URLParam(r, "id")
	if _, ok := scaleapi.ParseTaskType(taskType); !ok {
		respondError(w, http.StatusBadRequest, "Invalid task type "+taskType)
		return
	}

	body, err := decodeObject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := task.FromRequest(taskType, body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateTask(t); err != nil {
		switch {
		case errors.Is(err, task.ErrBatchNotFound), errors.Is(err, task.ErrBatchNotAcceptable):
			respondError(w, http.StatusBadRequest, err.Error()+": "+t.Batch)
		default:
			logger.Error().Err(err).Str("task_id", t.ID).Msg("failed to create task")
			respondError(w, http.StatusInternalServerError, "failed to create task")
		}
		return
	}

	logger.Info().
		Str("task_id", t.ID).
		Str("type", t.Type).
		Str("batch", t.Batch).
		Msg("task created")

	respondJSON(w, http.StatusOK, t.ToDocument())
}

// Get handles GET /v1/task/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	t, err := h.store.GetTask(taskID)
	if err != nil {
		respondTaskError(w, err, taskID)
		return
	}

	respondJSON(w, http.StatusOK, t.ToDocument())
}

// Cancel handles POST /v1/task/{id}/cancel
func (h *TaskHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	t, err := h.store.CancelTask(taskID)
	if err != nil {
		respondTaskError(w, err, taskID)
		return
	}

	logger.Info().Str("task_id", taskID).Msg("task canceled")
	respondJSON(w, http.StatusOK, t.ToDocument())
}

// ListResponse is the paginated listing body
type ListResponse struct {
	Docs      []map[string]any `json:"docs"`
	Total     int              `json:"total"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	HasMore   bool             `json:"has_more"`
	NextToken *string          `json:"next_token"`
}

// List handles GET /v1/tasks. Unknown query parameters are ignored.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := parseTaskFilter(query)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, offset, err := parsePaging(query)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, total := h.store.ListTasks(filter, offset, limit)

	resp := ListResponse{
		Docs:   make([]map[string]any, 0, len(tasks)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, t := range tasks {
		resp.Docs = append(resp.Docs, t.ToDocument())
	}
	if next := offset + len(tasks); next < total {
		token := encodePageToken(next)
		resp.HasMore = true
		resp.NextToken = &token
	}

	respondJSON(w, http.StatusOK, resp)
}

func respondTaskError(w http.ResponseWriter, err error, taskID string) {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, task.ErrAlreadyCanceled), errors.Is(err, task.ErrAlreadyCompleted):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Str("task_id", taskID).Msg("task operation failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

type paramError string

func (e paramError) Error() string { return string(e) }

func parseTaskFilter(q url.Values) (store.TaskFilter, error) {
	f := store.TaskFilter{
		Type:                 q.Get("type"),
		Project:              q.Get("project"),
		Batch:                q.Get("batch"),
		CustomerReviewStatus: q.Get("customer_review_status"),
	}

	if s := q.Get("status"); s != "" {
		state, ok := task.ParseState(s)
		if !ok {
			return f, paramError("Invalid status " + s)
		}
		f.Status = &state
	}

	times := []struct {
		key string
		dst *time.Time
	}{
		{"start_time", &f.StartTime},
		{"end_time", &f.EndTime},
		{"completed_after", &f.CompletedAfter},
		{"completed_before", &f.CompletedBefore},
		{"updated_after", &f.UpdatedAfter},
		{"updated_before", &f.UpdatedBefore},
	}
	for _, tp := range times {
		raw := q.Get(tp.key)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, paramError("Invalid " + tp.key + ": expected an ISO 8601 timestamp")
		}
		*tp.dst = parsed
	}

	return f, nil
}

// parsePaging reads limit and the page start. next_token wins over offset.
func parsePaging(q url.Values) (limit, offset int, err error) {
	limit = defaultListLimit
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return 0, 0, paramError("limit must be between 1 and " + strconv.Itoa(maxListLimit))
		}
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, paramError("offset must be a non-negative integer")
		}
	}

	if raw := q.Get("next_token"); raw != "" {
		offset, err = decodePageToken(raw)
		if err != nil {
			return 0, 0, paramError("Invalid next_token")
		}
	}

	return limit, offset, nil
}

func encodePageToken(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
}

func decodePageToken(token string) (int, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, err
	}
	if len(data) < 3 || string(data[:2]) != "o:" {
		return 0, paramError("malformed token")
	}
	offset, err := strconv.Atoi(string(data[2:]))
	if err != nil || offset < 0 {
		return 0, paramError("malformed token")
	}
	return offset, nil
}
