package rest

import (
	"net/http"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
	"crm-service/internal/core/port/usecases_port"
)

type TaskHandler struct {
	tasksUC usecases_port.TasksUseCase
}

func NewTaskHandler(tasksUC usecases_port.TasksUseCase) *TaskHandler {
	return &TaskHandler{tasksUC: tasksUC}
}

// List обрабатывает GET /api/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	filters := domain.TaskFilters{
		Status:          parseString(query, "status"),
		Priority:        parseString(query, "priority"),
		TaskType:        parseString(query, "taskType"),
		AssignedAgentID: parseInt64(query, "agentId"),
		BuyerID:         parseInt64(query, "buyerId"),
		SellerID:        parseInt64(query, "sellerId"),
		PropertyID:      parseInt64(query, "propertyId"),
		DueBefore:       parseDate(query, "dueBefore"),
		DueAfter:        parseDate(query, "dueAfter"),
		Search:          parseString(query, "search"),
	}
	page := parsePagination(query)

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "TaskHandler.List",
		"page":    page.Page,
		"limit":   page.Limit,
	})
	handlerLogger.Debug("Processing task list request", nil)

	list, err := h.tasksUC.List(r.Context(), filters, parseSort(query), page)
	if err != nil {
		respondUseCaseError(w, handlerLogger, err, "Failed to list tasks")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tasks":      tasksToResponse(list.Items),
		"pagination": list.Pagination,
	})
}

// Overdue обрабатывает GET /api/tasks/overdue - просроченные задачи
// в порядке возрастания дедлайна.
func (h *TaskHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	items, err := h.tasksUC.Overdue(r.Context())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to list overdue tasks")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasksToResponse(items),
		"total": len(items),
	})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.tasksUC.Get(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to get task")
		return
	}
	RespondWithJSON(w, http.StatusOK, taskToResponse(*t))
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req TaskRequest
	if !decodeValidatedBody(w, r, "task", &req) {
		return
	}
	t, err := req.toDomain()
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid due date")
		return
	}
	created, err := h.tasksUC.Create(r.Context(), t)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to create task")
		return
	}
	RespondWithJSON(w, http.StatusCreated, taskToResponse(*created))
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeValidatedBody(w, r, "task", &req) {
		return
	}
	t, err := req.toDomain()
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid due date")
		return
	}
	t.ID = id

	updated, err := h.tasksUC.Update(r.Context(), t)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to update task")
		return
	}
	RespondWithJSON(w, http.StatusOK, taskToResponse(*updated))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.tasksUC.Delete(r.Context(), id); err != nil {
		respondUseCaseError(w, logger, err, "Failed to delete task")
		return
	}
	respondOK(w, "deleted")
}

// Complete обрабатывает POST /api/tasks/{id}/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.tasksUC.Complete(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to complete task")
		return
	}
	RespondWithJSON(w, http.StatusOK, taskToResponse(*t))
}
