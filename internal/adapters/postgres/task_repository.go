package postgres

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, title, description, due_date, due_time, priority, status, task_type,
	buyer_id, seller_id, property_id, assigned_agent_id, created_at, updated_at`

var taskSortable = map[string]string{
	"dueDate":   "due_date",
	"priority":  "priority",
	"createdAt": "created_at",
	"status":    "status",
}

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) (*TaskRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &TaskRepository{pool: pool}, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.DueDate, &t.DueTime, &t.Priority, &t.Status, &t.TaskType,
		&t.BuyerID, &t.SellerID, &t.PropertyID, &t.AssignedAgentID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, filters domain.TaskFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Task, int, error) {
	whereClause, args := applyTaskFilters(filters)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tasks %s", whereClause)
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	if total == 0 {
		return []domain.Task{}, 0, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM tasks %s %s LIMIT $%d OFFSET $%d",
		taskColumns, whereClause,
		orderClause(sort, taskSortable, "due_date ASC, id ASC"),
		len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Task, 0, page.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return items, total, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)
	t, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	query := fmt.Sprintf(`INSERT INTO tasks (
			title, description, due_date, due_time, priority, status, task_type,
			buyer_id, seller_id, property_id, assigned_agent_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING %s`, taskColumns)

	created, err := scanTask(r.pool.QueryRow(ctx, query,
		t.Title, t.Description, t.DueDate, t.DueTime, t.Priority, t.Status, t.TaskType,
		t.BuyerID, t.SellerID, t.PropertyID, t.AssignedAgentID,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	query := fmt.Sprintf(`UPDATE tasks SET
			title=$1, description=$2, due_date=$3, due_time=$4, priority=$5, status=$6,
			task_type=$7, buyer_id=$8, seller_id=$9, property_id=$10, assigned_agent_id=$11,
			updated_at=now()
		WHERE id=$12 RETURNING %s`, taskColumns)

	updated, err := scanTask(r.pool.QueryRow(ctx, query,
		t.Title, t.Description, t.DueDate, t.DueTime, t.Priority, t.Status,
		t.TaskType, t.BuyerID, t.SellerID, t.PropertyID, t.AssignedAgentID, t.ID,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListOverdue - просроченные невыполненные задачи, ближайшие первыми.
func (r *TaskRepository) ListOverdue(ctx context.Context, before time.Time) ([]domain.Task, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE status = 'pending' AND due_date < $1 ORDER BY due_date ASC, id ASC",
		taskColumns)
	rows, err := r.pool.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue tasks: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overdue task: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r *TaskRepository) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	query := fmt.Sprintf(
		"UPDATE tasks SET status = 'completed', updated_at = now() WHERE id = $1 RETURNING %s",
		taskColumns)
	t, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}
