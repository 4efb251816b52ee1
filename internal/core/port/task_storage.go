package port

import (
	"context"
	"time"

	"crm-service/internal/core/domain"
)

// TaskStoragePort - хранилище задач. Задачи удаляются жестко.
type TaskStoragePort interface {
	List(ctx context.Context, filters domain.TaskFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Task, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	// ListOverdue - задачи со статусом pending и датой раньше указанной,
	// отсортированные по возрастанию due_date.
	ListOverdue(ctx context.Context, before time.Time) ([]domain.Task, error)
	Complete(ctx context.Context, id int64) (*domain.Task, error)
}
