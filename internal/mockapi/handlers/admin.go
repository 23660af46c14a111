package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maumercado/scaleapi-go/internal/logger"
	"github.com/maumercado/scaleapi-go/internal/store"
	"github.com/maumercado/scaleapi-go/internal/task"
	"github.com/maumercado/scaleapi-go/pkg/scaleapi"
)

// AdminHandler exposes operations that only the annotation side performs,
// so local runs can drive tasks to completion.
type AdminHandler struct {
	store *store.Memory
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(st *store.Memory) *AdminHandler {
	return &AdminHandler{store: st}
}

// CompleteTask handles POST /admin/tasks/{id}/complete. The body becomes the
// task response.
func (h *AdminHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	response, err := decodeObject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.store.CompleteTask(taskID, response)
	if err != nil {
		respondTaskError(w, err, taskID)
		return
	}

	logger.Info().Str("task_id", taskID).Msg("task completed")
	respondJSON(w, http.StatusOK, t.ToDocument())
}

// ReviewTask handles POST /admin/tasks/{id}/review with {"status": "..."}
func (h *AdminHandler) ReviewTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	body, err := decodeObject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, _ := body["status"].(string)
	switch scaleapi.ReviewStatus(status) {
	case scaleapi.ReviewStatusPending, scaleapi.ReviewStatusFixed,
		scaleapi.ReviewStatusAccepted, scaleapi.ReviewStatusRejected:
	default:
		respondError(w, http.StatusBadRequest, "Invalid review status "+status)
		return
	}

	t, err := h.store.SetReviewStatus(taskID, status)
	if err != nil {
		respondTaskError(w, err, taskID)
		return
	}

	respondJSON(w, http.StatusOK, t.ToDocument())
}

// HealthCheck handles GET /admin/health
func (h *AdminHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var counts task.Counts
	tasks, total := h.store.ListTasks(store.TaskFilter{}, 0, int(^uint(0)>>1))
	for _, t := range tasks {
		counts.Add(t.State)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"tasks": map[string]int{
			"total":     total,
			"pending":   counts.Pending,
			"completed": counts.Completed,
			"canceled":  counts.Canceled,
		},
	})
}
