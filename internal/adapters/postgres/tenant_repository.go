package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tenantColumns = `id, first_name, last_name, phone, email, property_id,
	contract_start, contract_end, deposit, monthly_rent, status, created_at, updated_at`

var tenantSortable = map[string]string{
	"createdAt":   "created_at",
	"contractEnd": "contract_end",
	"lastName":    "last_name",
}

type TenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) (*TenantRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &TenantRepository{pool: pool}, nil
}

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Phone, &t.Email, &t.PropertyID,
		&t.ContractStart, &t.ContractEnd, &t.Deposit, &t.MonthlyRent, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) List(ctx context.Context, filters domain.TenantFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Tenant, int, error) {
	whereClause, args := applyTenantFilters(filters)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tenants %s", whereClause)
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	if total == 0 {
		return []domain.Tenant{}, 0, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM tenants %s %s LIMIT $%d OFFSET $%d",
		tenantColumns, whereClause,
		orderClause(sort, tenantSortable, "contract_end ASC, id ASC"),
		len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Tenant, 0, page.Limit)
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tenant: %w", err)
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

func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	query := fmt.Sprintf("SELECT %s FROM tenants WHERE id = $1", tenantColumns)
	t, err := scanTenant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *TenantRepository) Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	query := fmt.Sprintf(`INSERT INTO tenants (
			first_name, last_name, phone, email, property_id,
			contract_start, contract_end, deposit, monthly_rent, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING %s`, tenantColumns)

	created, err := scanTenant(r.pool.QueryRow(ctx, query,
		t.FirstName, t.LastName, t.Phone, t.Email, t.PropertyID,
		t.ContractStart, t.ContractEnd, t.Deposit, t.MonthlyRent, t.Status,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (r *TenantRepository) Update(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	query := fmt.Sprintf(`UPDATE tenants SET
			first_name=$1, last_name=$2, phone=$3, email=$4, property_id=$5,
			contract_start=$6, contract_end=$7, deposit=$8, monthly_rent=$9, status=$10,
			updated_at=now()
		WHERE id=$11 RETURNING %s`, tenantColumns)

	updated, err := scanTenant(r.pool.QueryRow(ctx, query,
		t.FirstName, t.LastName, t.Phone, t.Email, t.PropertyID,
		t.ContractStart, t.ContractEnd, t.Deposit, t.MonthlyRent, t.Status, t.ID,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *TenantRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tenants WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
