package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maumercado/scaleapi-go/internal/logger"
	"github.com/maumercado/scaleapi-go/internal/store"
	"github.com/maumercado/scaleapi-go/internal/task"
)

// BatchHandler handles batch-related HTTP requests
type BatchHandler struct {
	store *store.Memory
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(st *store.Memory) *BatchHandler {
	return &BatchHandler{store: st}
}

// Create handles POST /v1/batches
func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, _ := body["project"].(string)
	name, _ := body["name"].(string)
	callback, _ := body["callback"].(string)

	if project == "" {
		respondError(w, http.StatusBadRequest, "Please provide a project")
		return
	}

	b := task.NewBatch(project, name, callback)
	if err := h.store.CreateBatch(b); err != nil {
		switch {
		case errors.Is(err, task.ErrBatchNameRequired):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, task.ErrBatchExists):
			respondError(w, http.StatusBadRequest, "Batch "+name+" already exists")
		default:
			logger.Error().Err(err).Str("batch", name).Msg("failed to create batch")
			respondError(w, http.StatusInternalServerError, "failed to create batch")
		}
		return
	}

	logger.Info().Str("batch", name).Str("project", project).Msg("batch created")
	respondJSON(w, http.StatusOK, b.ToDocument())
}

// Get handles GET /v1/batches/{name}
func (h *BatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	b, err := h.store.GetBatch(name)
	if err != nil {
		respondBatchError(w, err, name)
		return
	}

	respondJSON(w, http.StatusOK, b.ToDocument())
}

// Finalize handles POST /v1/batches/{name}/finalize
func (h *BatchHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	b, err := h.store.FinalizeBatch(name)
	if err != nil {
		respondBatchError(w, err, name)
		return
	}

	logger.Info().Str("batch", name).Str("status", b.State.String()).Msg("batch finalized")
	respondJSON(w, http.StatusOK, b.ToDocument())
}

// StatusResponse is the batch progress body
type StatusResponse struct {
	Status         string `json:"status"`
	TasksPending   int    `json:"tasks_pending"`
	TasksCompleted int    `json:"tasks_completed"`
	TasksCanceled  int    `json:"tasks_canceled"`
}

// Status handles GET /v1/batches/{name}/status
func (h *BatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	b, counts, err := h.store.BatchCounts(name)
	if err != nil {
		respondBatchError(w, err, name)
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{
		Status:         b.State.String(),
		TasksPending:   counts.Pending,
		TasksCompleted: counts.Completed,
		TasksCanceled:  counts.Canceled,
	})
}

func respondBatchError(w http.ResponseWriter, err error, name string) {
	switch {
	case errors.Is(err, task.ErrBatchNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, task.ErrBatchNotStaging):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Str("batch", name).Msg("batch operation failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
