package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const buyerColumns = `id, first_name, last_name, phone, email, budget_min, budget_max,
	preferred_location, property_type, rooms_min, rooms_max, status, source,
	assigned_agent_id, notes, archived_at, created_at, updated_at`

var buyerSortable = map[string]string{
	"createdAt": "created_at",
	"lastName":  "last_name",
	"budgetMax": "budget_max",
	"status":    "status",
}

type BuyerRepository struct {
	pool *pgxpool.Pool
}

func NewBuyerRepository(pool *pgxpool.Pool) (*BuyerRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &BuyerRepository{pool: pool}, nil
}

func scanBuyer(row pgx.Row) (*domain.Buyer, error) {
	var b domain.Buyer
	err := row.Scan(
		&b.ID, &b.FirstName, &b.LastName, &b.Phone, &b.Email, &b.BudgetMin, &b.BudgetMax,
		&b.PreferredLocation, &b.PropertyType, &b.RoomsMin, &b.RoomsMax, &b.Status, &b.Source,
		&b.AssignedAgentID, &b.Notes, &b.ArchivedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BuyerRepository) List(ctx context.Context, filters domain.BuyerFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Buyer, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "BuyerRepository",
		"method":    "List",
	})

	whereClause, args := applyBuyerFilters(filters)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM buyers %s", whereClause)
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count buyers", err, port.Fields{"query": countQuery})
		return nil, 0, fmt.Errorf("failed to count buyers: %w", err)
	}
	if total == 0 {
		return []domain.Buyer{}, 0, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM buyers %s %s LIMIT $%d OFFSET $%d",
		buyerColumns, whereClause,
		orderClause(sort, buyerSortable, "created_at DESC, id ASC"),
		len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, page.Limit, page.Offset())...)
	if err != nil {
		repoLogger.Error("Failed to query buyers", err, port.Fields{"query": dataQuery})
		return nil, 0, fmt.Errorf("failed to query buyers: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Buyer, 0, page.Limit)
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan buyer: %w", err)
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return items, total, nil
}

func (r *BuyerRepository) GetByID(ctx context.Context, id int64) (*domain.Buyer, error) {
	query := fmt.Sprintf("SELECT %s FROM buyers WHERE id = $1", buyerColumns)
	b, err := scanBuyer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *BuyerRepository) Create(ctx context.Context, b *domain.Buyer) (*domain.Buyer, error) {
	query := fmt.Sprintf(`INSERT INTO buyers (
			first_name, last_name, phone, email, budget_min, budget_max,
			preferred_location, property_type, rooms_min, rooms_max, status, source,
			assigned_agent_id, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING %s`, buyerColumns)

	created, err := scanBuyer(r.pool.QueryRow(ctx, query,
		b.FirstName, b.LastName, b.Phone, b.Email, b.BudgetMin, b.BudgetMax,
		b.PreferredLocation, b.PropertyType, b.RoomsMin, b.RoomsMax, b.Status, b.Source,
		b.AssignedAgentID, b.Notes,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (r *BuyerRepository) Update(ctx context.Context, b *domain.Buyer) (*domain.Buyer, error) {
	query := fmt.Sprintf(`UPDATE buyers SET
			first_name=$1, last_name=$2, phone=$3, email=$4, budget_min=$5, budget_max=$6,
			preferred_location=$7, property_type=$8, rooms_min=$9, rooms_max=$10, status=$11,
			source=$12, assigned_agent_id=$13, notes=$14, updated_at=now()
		WHERE id=$15 RETURNING %s`, buyerColumns)

	updated, err := scanBuyer(r.pool.QueryRow(ctx, query,
		b.FirstName, b.LastName, b.Phone, b.Email, b.BudgetMin, b.BudgetMax,
		b.PreferredLocation, b.PropertyType, b.RoomsMin, b.RoomsMax, b.Status,
		b.Source, b.AssignedAgentID, b.Notes, b.ID,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *BuyerRepository) Archive(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE buyers SET archived_at = now(), updated_at = now() WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BuyerRepository) Restore(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE buyers SET archived_at = NULL, status = 'active', updated_at = now() WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
