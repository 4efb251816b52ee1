package postgres

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const propertyColumns = `id, title, description, property_type, category, address, city, district,
	area, rooms, floor, total_floors, year_built, exposure, heating,
	price_eur, monthly_rent_eur, management_fee_percent, status, viewings, last_viewing,
	seller_id, assigned_agent_id, archived_at, created_at, updated_at`

// Whitelist сортируемых колонок листинга объектов.
var propertySortable = map[string]string{
	"createdAt": "created_at",
	"price":     "price_eur",
	"rent":      "monthly_rent_eur",
	"area":      "area",
	"rooms":     "rooms",
	"viewings":  "viewings",
	"district":  "district",
}

type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) (*PropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyRepository{pool: pool}, nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.PropertyType, &p.Category, &p.Address, &p.City, &p.District,
		&p.Area, &p.Rooms, &p.Floor, &p.TotalFloors, &p.YearBuilt, &p.Exposure, &p.Heating,
		&p.PriceEur, &p.MonthlyRentEur, &p.ManagementFeePercent, &p.Status, &p.Viewings, &p.LastViewing,
		&p.SellerID, &p.AssignedAgentID, &p.ArchivedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List выполняет COUNT и выборку страницы в одной транзакции,
// оба запроса видят один и тот же набор предикатов.
func (r *PropertyRepository) List(ctx context.Context, filters domain.PropertyFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Property, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "List",
		"page":      page.Page,
		"limit":     page.Limit,
	})

	whereClause, args := applyPropertyFilters(filters)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties %s", whereClause)
	var total int
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count properties", err, port.Fields{"query": countQuery})
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	// Пустой результат - второй запрос не нужен
	if total == 0 {
		return []domain.Property{}, 0, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM properties %s %s LIMIT $%d OFFSET $%d",
		propertyColumns, whereClause,
		orderClause(sort, propertySortable, "created_at DESC, id ASC"),
		len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, page.Limit, page.Offset())...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": dataQuery})
		return nil, 0, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Property, 0, page.Limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan property: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Properties page fetched", port.Fields{"total": total, "items_on_page": len(items)})
	return items, total, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)
	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// GetDetails собирает объект вместе со связанными записями для детальной
// страницы: собственник, агент, активные арендаторы, открытые задачи.
func (r *PropertyRepository) GetDetails(ctx context.Context, id int64) (*domain.PropertyDetails, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details := &domain.PropertyDetails{Property: *p}

	if p.SellerID != nil {
		var s domain.Seller
		err := r.pool.QueryRow(ctx, `SELECT id, first_name, last_name, phone, email, status,
				assigned_agent_id, notes, archived_at, created_at, updated_at
			FROM sellers WHERE id = $1`, *p.SellerID).Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.Phone, &s.Email, &s.Status,
			&s.AssignedAgentID, &s.Notes, &s.ArchivedAt, &s.CreatedAt, &s.UpdatedAt)
		if err != nil && err != pgx.ErrNoRows {
			return nil, fmt.Errorf("failed to get property seller: %w", err)
		}
		if err == nil {
			details.Seller = &s
		}
	}

	if p.AssignedAgentID != nil {
		var u domain.User
		err := r.pool.QueryRow(ctx, `SELECT id, email, first_name, last_name, role, is_active, created_at
			FROM users WHERE id = $1`, *p.AssignedAgentID).Scan(
			&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt)
		if err != nil && err != pgx.ErrNoRows {
			return nil, fmt.Errorf("failed to get property agent: %w", err)
		}
		if err == nil {
			details.AssignedAgent = &u
		}
	}

	tenantRows, err := r.pool.Query(ctx, `SELECT id, first_name, last_name, phone, email, property_id,
			contract_start, contract_end, deposit, monthly_rent, status, created_at, updated_at
		FROM tenants WHERE property_id = $1 AND status = 'active' ORDER BY contract_end ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get active tenants: %w", err)
	}
	defer tenantRows.Close()
	details.ActiveTenants = make([]domain.Tenant, 0)
	for tenantRows.Next() {
		var t domain.Tenant
		if err := tenantRows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Phone, &t.Email, &t.PropertyID,
			&t.ContractStart, &t.ContractEnd, &t.Deposit, &t.MonthlyRent, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		details.ActiveTenants = append(details.ActiveTenants, t)
	}
	if err := tenantRows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM tasks
		WHERE property_id = $1 AND status = 'pending' ORDER BY due_date ASC, id ASC`, taskColumns), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get open tasks: %w", err)
	}
	defer taskRows.Close()
	details.OpenTasks = make([]domain.Task, 0)
	for taskRows.Next() {
		t, err := scanTask(taskRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		details.OpenTasks = append(details.OpenTasks, *t)
	}
	return details, taskRows.Err()
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	query := fmt.Sprintf(`INSERT INTO properties (
			title, description, property_type, category, address, city, district,
			area, rooms, floor, total_floors, year_built, exposure, heating,
			price_eur, monthly_rent_eur, management_fee_percent, status, seller_id, assigned_agent_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING %s`, propertyColumns)

	created, err := scanProperty(r.pool.QueryRow(ctx, query,
		p.Title, p.Description, p.PropertyType, p.Category, p.Address, p.City, p.District,
		p.Area, p.Rooms, p.Floor, p.TotalFloors, p.YearBuilt, p.Exposure, p.Heating,
		p.PriceEur, p.MonthlyRentEur, p.ManagementFeePercent, p.Status, p.SellerID, p.AssignedAgentID,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// Update - полная замена документа: незаданные опциональные поля обнуляются.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	query := fmt.Sprintf(`UPDATE properties SET
			title=$1, description=$2, property_type=$3, category=$4, address=$5, city=$6, district=$7,
			area=$8, rooms=$9, floor=$10, total_floors=$11, year_built=$12, exposure=$13, heating=$14,
			price_eur=$15, monthly_rent_eur=$16, management_fee_percent=$17, status=$18,
			seller_id=$19, assigned_agent_id=$20, updated_at=now()
		WHERE id=$21 RETURNING %s`, propertyColumns)

	updated, err := scanProperty(r.pool.QueryRow(ctx, query,
		p.Title, p.Description, p.PropertyType, p.Category, p.Address, p.City, p.District,
		p.Area, p.Rooms, p.Floor, p.TotalFloors, p.YearBuilt, p.Exposure, p.Heating,
		p.PriceEur, p.MonthlyRentEur, p.ManagementFeePercent, p.Status,
		p.SellerID, p.AssignedAgentID, p.ID,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViewings - один атомарный UPDATE, конкурентные инкременты
// сериализуются на уровне строки в базе.
func (r *PropertyRepository) IncrementViewings(ctx context.Context, id int64) (int, time.Time, error) {
	var viewings int
	var lastViewing time.Time
	err := r.pool.QueryRow(ctx,
		`UPDATE properties SET viewings = viewings + 1, last_viewing = now()
		 WHERE id = $1 RETURNING viewings, last_viewing`, id).
		Scan(&viewings, &lastViewing)
	if err != nil {
		return 0, time.Time{}, mapError(err)
	}
	return viewings, lastViewing, nil
}

func (r *PropertyRepository) Archive(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE properties SET archived_at = now(), updated_at = now() WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore снимает архивацию и возвращает дефолтное бизнес-состояние.
func (r *PropertyRepository) Restore(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE properties SET archived_at = NULL, status = 'available', updated_at = now() WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
