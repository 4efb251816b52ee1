package usecase

import (
	"context"
	"time"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
)

// TaskUseCase - операции над задачами агентов.
type TaskUseCase struct {
	storage port.TaskStoragePort
	// now подменяется в тестах, по умолчанию time.Now
	now func() time.Time
}

func NewTaskUseCase(storage port.TaskStoragePort) *TaskUseCase {
	return &TaskUseCase{storage: storage, now: time.Now}
}

func (uc *TaskUseCase) List(ctx context.Context, filters domain.TaskFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.TaskList, error) {
	items, total, err := uc.storage.List(ctx, filters, sort, page)
	if err != nil {
		return nil, err
	}
	return &domain.TaskList{
		Items:      items,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

func (uc *TaskUseCase) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.storage.GetByID(ctx, id)
}

func (uc *TaskUseCase) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	if t.Status == "" {
		t.Status = domain.TaskStatusPending
	}
	created, err := uc.storage.Create(ctx, t)
	if err != nil {
		logger.Error("Failed to create task", err, nil)
		return nil, err
	}
	logger.Info("Task created", port.Fields{"task_id": created.ID, "due_date": created.DueDate})
	return created, nil
}

func (uc *TaskUseCase) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	if t.Status == "" {
		t.Status = domain.TaskStatusPending
	}
	return uc.storage.Update(ctx, t)
}

func (uc *TaskUseCase) Delete(ctx context.Context, id int64) error {
	return uc.storage.Delete(ctx, id)
}

// startOfToday - граница "сегодня" в UTC для просроченных задач.
func startOfToday(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Overdue - просроченные задачи: due_date строго раньше сегодняшнего дня.
func (uc *TaskUseCase) Overdue(ctx context.Context) ([]domain.Task, error) {
	return uc.storage.ListOverdue(ctx, startOfToday(uc.now()))
}

func (uc *TaskUseCase) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	t, err := uc.storage.Complete(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info("Task completed", port.Fields{"task_id": id})
	return t, nil
}
