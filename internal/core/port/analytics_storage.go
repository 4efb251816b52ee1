package port

import (
	"context"
	"time"

	"crm-service/internal/core/domain"
)

// AnalyticsStoragePort - независимые агрегатные выборки для отчетов.
// Use case запускает их параллельно; любая ошибка отменяет всю сборку.
type AnalyticsStoragePort interface {
	CountPropertiesByStatus(ctx context.Context) ([]domain.StatusCount, error)
	CountPropertiesByType(ctx context.Context) ([]domain.StatusCount, error)
	CountPropertiesByCategory(ctx context.Context) ([]domain.StatusCount, error)
	CountBuyers(ctx context.Context) (total, converted int, err error)
	CountSellers(ctx context.Context) (total, active int, err error)
	CountTasks(ctx context.Context) (total, completed, pending int, err error)
	CountOverdueTasks(ctx context.Context, before time.Time) (int, error)

	// SumManagedRent - сумма месячной аренды по объектам
	// property_type=managed AND status=managed.
	SumManagedRent(ctx context.Context) (float64, error)

	AvgPricePerSqm(ctx context.Context) (float64, error)
	AvgAreaAndViewings(ctx context.Context) (avgArea float64, totalViewings int, err error)

	// PriceBands - гистограмма цен продажи по фиксированным полосам,
	// упорядоченная по минимальной цене полосы.
	PriceBands(ctx context.Context) ([]domain.PriceBand, error)

	// ManagedPropertyRevenues - управляемые объекты, у которых заданы
	// и аренда, и процент комиссии. MonthlyRevenue заполняет use case.
	ManagedPropertyRevenues(ctx context.Context) ([]domain.PropertyRevenue, error)

	// AgentPerformanceRows - счетчики по каждому активному агенту.
	// Процентные поля заполняет use case.
	AgentPerformanceRows(ctx context.Context) ([]domain.AgentPerformance, error)
}
