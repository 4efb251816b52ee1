package postgres

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/core/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository - агрегатные выборки для отчетов. Каждый метод - один
// независимый запрос; параллелизм и сборка ответа живут в use case.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) (*AnalyticsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &AnalyticsRepository{pool: pool}, nil
}

func (r *AnalyticsRepository) countGrouped(ctx context.Context, query string) ([]domain.StatusCount, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to run grouped count: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StatusCount, 0)
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan grouped count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepository) CountPropertiesByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	return r.countGrouped(ctx,
		`SELECT status, COUNT(*) FROM properties WHERE archived_at IS NULL GROUP BY status ORDER BY status`)
}

func (r *AnalyticsRepository) CountPropertiesByType(ctx context.Context) ([]domain.StatusCount, error) {
	return r.countGrouped(ctx,
		`SELECT property_type, COUNT(*) FROM properties WHERE archived_at IS NULL GROUP BY property_type ORDER BY property_type`)
}

func (r *AnalyticsRepository) CountPropertiesByCategory(ctx context.Context) ([]domain.StatusCount, error) {
	return r.countGrouped(ctx,
		`SELECT category, COUNT(*) FROM properties WHERE archived_at IS NULL GROUP BY category ORDER BY category`)
}

func (r *AnalyticsRepository) CountBuyers(ctx context.Context) (int, int, error) {
	var total, converted int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'converted')
		 FROM buyers WHERE archived_at IS NULL`).Scan(&total, &converted)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count buyers: %w", err)
	}
	return total, converted, nil
}

func (r *AnalyticsRepository) CountSellers(ctx context.Context) (int, int, error) {
	var total, active int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active')
		 FROM sellers WHERE archived_at IS NULL`).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count sellers: %w", err)
	}
	return total, active, nil
}

func (r *AnalyticsRepository) CountTasks(ctx context.Context) (int, int, int, error) {
	var total, completed, pending int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'completed'),
		        COUNT(*) FILTER (WHERE status = 'pending')
		 FROM tasks`).Scan(&total, &completed, &pending)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return total, completed, pending, nil
}

func (r *AnalyticsRepository) CountOverdueTasks(ctx context.Context, before time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE status = 'pending' AND due_date < $1`, before).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepository) SumManagedRent(ctx context.Context) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(monthly_rent_eur), 0) FROM properties
		 WHERE property_type = 'managed' AND status = 'managed' AND archived_at IS NULL`).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum managed rent: %w", err)
	}
	return sum, nil
}

func (r *AnalyticsRepository) AvgPricePerSqm(ctx context.Context) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(price_eur / area), 0) FROM properties
		 WHERE property_type = 'sale' AND price_eur IS NOT NULL AND area > 0 AND archived_at IS NULL`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute avg price per sqm: %w", err)
	}
	return avg, nil
}

func (r *AnalyticsRepository) AvgAreaAndViewings(ctx context.Context) (float64, int, error) {
	var avgArea float64
	var totalViewings int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(area), 0), COALESCE(SUM(viewings), 0)
		 FROM properties WHERE archived_at IS NULL`).Scan(&avgArea, &totalViewings)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute area stats: %w", err)
	}
	return avgArea, totalViewings, nil
}

// PriceBands - гистограмма цен продажи. Переносимая группировка по CASE
// вместо диалектного сырого запроса; полосы упорядочены по минимальной цене.
func (r *AnalyticsRepository) PriceBands(ctx context.Context) ([]domain.PriceBand, error) {
	query := `
		SELECT band, COUNT(*), MIN(price_eur)
		FROM (
			SELECT price_eur,
				CASE
					WHEN price_eur < 50000  THEN '<50k'
					WHEN price_eur < 100000 THEN '50k-100k'
					WHEN price_eur < 200000 THEN '100k-200k'
					WHEN price_eur < 300000 THEN '200k-300k'
					ELSE '>300k'
				END AS band
			FROM properties
			WHERE property_type = 'sale' AND price_eur IS NOT NULL AND archived_at IS NULL
		) bands
		GROUP BY band
		ORDER BY MIN(price_eur) ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query price bands: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PriceBand, 0, 5)
	for rows.Next() {
		var b domain.PriceBand
		if err := rows.Scan(&b.Band, &b.Count, &b.MinPrice); err != nil {
			return nil, fmt.Errorf("failed to scan price band: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ManagedPropertyRevenues - только объекты, у которых заданы и аренда,
// и процент комиссии; выручку по строке считает use case.
func (r *AnalyticsRepository) ManagedPropertyRevenues(ctx context.Context) ([]domain.PropertyRevenue, error) {
	query := `
		SELECT id, title, monthly_rent_eur, management_fee_percent
		FROM properties
		WHERE property_type = 'managed' AND archived_at IS NULL
		  AND monthly_rent_eur IS NOT NULL AND management_fee_percent IS NOT NULL
		ORDER BY monthly_rent_eur DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query managed revenues: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PropertyRevenue, 0)
	for rows.Next() {
		var pr domain.PropertyRevenue
		if err := rows.Scan(&pr.PropertyID, &pr.Title, &pr.MonthlyRentEur, &pr.ManagementFeePercent); err != nil {
			return nil, fmt.Errorf("failed to scan managed revenue: %w", err)
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// AgentPerformanceRows - счетчики по активным агентам одним запросом
// с коррелированными подзапросами; процентные поля заполняет use case.
func (r *AnalyticsRepository) AgentPerformanceRows(ctx context.Context) ([]domain.AgentPerformance, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name,
			(SELECT COUNT(*) FROM properties p WHERE p.assigned_agent_id = u.id AND p.archived_at IS NULL),
			(SELECT COUNT(*) FROM buyers b WHERE b.assigned_agent_id = u.id AND b.archived_at IS NULL),
			(SELECT COUNT(*) FROM buyers b WHERE b.assigned_agent_id = u.id AND b.archived_at IS NULL AND b.status = 'converted'),
			(SELECT COUNT(*) FROM sellers s WHERE s.assigned_agent_id = u.id AND s.archived_at IS NULL),
			(SELECT COUNT(*) FROM tasks t WHERE t.assigned_agent_id = u.id),
			(SELECT COUNT(*) FROM tasks t WHERE t.assigned_agent_id = u.id AND t.status = 'completed')
		FROM users u
		WHERE u.is_active = true
		ORDER BY u.id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent performance: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AgentPerformance, 0)
	for rows.Next() {
		var ap domain.AgentPerformance
		if err := rows.Scan(&ap.AgentID, &ap.FirstName, &ap.LastName,
			&ap.Properties, &ap.Buyers, &ap.ConvertedBuyers, &ap.Sellers,
			&ap.TasksTotal, &ap.TasksCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan agent performance: %w", err)
		}
		out = append(out, ap)
	}
	return out, rows.Err()
}
