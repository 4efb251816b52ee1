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

const sellerColumns = `id, first_name, last_name, phone, email, status,
	assigned_agent_id, notes, archived_at, created_at, updated_at`

var sellerSortable = map[string]string{
	"createdAt": "created_at",
	"lastName":  "last_name",
	"status":    "status",
}

type SellerRepository struct {
	pool *pgxpool.Pool
}

func NewSellerRepository(pool *pgxpool.Pool) (*SellerRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &SellerRepository{pool: pool}, nil
}

func scanSeller(row pgx.Row) (*domain.Seller, error) {
	var s domain.Seller
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Phone, &s.Email, &s.Status,
		&s.AssignedAgentID, &s.Notes, &s.ArchivedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SellerRepository) List(ctx context.Context, filters domain.SellerFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Seller, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "SellerRepository",
		"method":    "List",
	})

	whereClause, args := applySellerFilters(filters)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sellers %s", whereClause)
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count sellers", err, port.Fields{"query": countQuery})
		return nil, 0, fmt.Errorf("failed to count sellers: %w", err)
	}
	if total == 0 {
		return []domain.Seller{}, 0, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM sellers %s %s LIMIT $%d OFFSET $%d",
		sellerColumns, whereClause,
		orderClause(sort, sellerSortable, "created_at DESC, id ASC"),
		len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, page.Limit, page.Offset())...)
	if err != nil {
		repoLogger.Error("Failed to query sellers", err, port.Fields{"query": dataQuery})
		return nil, 0, fmt.Errorf("failed to query sellers: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Seller, 0, page.Limit)
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan seller: %w", err)
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return items, total, nil
}

func (r *SellerRepository) GetByID(ctx context.Context, id int64) (*domain.Seller, error) {
	query := fmt.Sprintf("SELECT %s FROM sellers WHERE id = $1", sellerColumns)
	s, err := scanSeller(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *SellerRepository) Create(ctx context.Context, s *domain.Seller) (*domain.Seller, error) {
	query := fmt.Sprintf(`INSERT INTO sellers (
			first_name, last_name, phone, email, status, assigned_agent_id, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING %s`, sellerColumns)

	created, err := scanSeller(r.pool.QueryRow(ctx, query,
		s.FirstName, s.LastName, s.Phone, s.Email, s.Status, s.AssignedAgentID, s.Notes,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (r *SellerRepository) Update(ctx context.Context, s *domain.Seller) (*domain.Seller, error) {
	query := fmt.Sprintf(`UPDATE sellers SET
			first_name=$1, last_name=$2, phone=$3, email=$4, status=$5,
			assigned_agent_id=$6, notes=$7, updated_at=now()
		WHERE id=$8 RETURNING %s`, sellerColumns)

	updated, err := scanSeller(r.pool.QueryRow(ctx, query,
		s.FirstName, s.LastName, s.Phone, s.Email, s.Status, s.AssignedAgentID, s.Notes, s.ID,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *SellerRepository) Archive(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE sellers SET archived_at = now(), updated_at = now() WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SellerRepository) Restore(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE sellers SET archived_at = NULL, status = 'active', updated_at = now() WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
