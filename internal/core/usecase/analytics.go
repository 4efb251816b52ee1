package usecase

import (
	"context"
	"time"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"golang.org/x/sync/errgroup"
)

// AnalyticsUseCaseImpl собирает отчеты из независимых агрегатных
// выборок, выполняемых параллельно. Любая ошибка отменяет всю сборку.
type AnalyticsUseCaseImpl struct {
	storage port.AnalyticsStoragePort
	// now подменяется в тестах, по умолчанию time.Now
	now func() time.Time
}

func NewAnalyticsUseCase(storage port.AnalyticsStoragePort) *AnalyticsUseCaseImpl {
	return &AnalyticsUseCaseImpl{storage: storage, now: time.Now}
}

func (uc *AnalyticsUseCaseImpl) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	stats := &domain.DashboardStats{}
	var managedRent float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		byStatus, err := uc.storage.CountPropertiesByStatus(gctx)
		if err != nil {
			return err
		}
		stats.Properties.ByStatus = byStatus
		for _, sc := range byStatus {
			stats.Properties.Total += sc.Count
		}
		return nil
	})
	g.Go(func() error {
		total, converted, err := uc.storage.CountBuyers(gctx)
		if err != nil {
			return err
		}
		stats.Buyers.Total = total
		stats.Buyers.Converted = converted
		return nil
	})
	g.Go(func() error {
		total, active, err := uc.storage.CountSellers(gctx)
		if err != nil {
			return err
		}
		stats.Sellers.Total = total
		stats.Sellers.Active = active
		return nil
	})
	g.Go(func() error {
		total, completed, pending, err := uc.storage.CountTasks(gctx)
		if err != nil {
			return err
		}
		stats.Tasks.Total = total
		stats.Tasks.Completed = completed
		stats.Tasks.Pending = pending
		return nil
	})
	g.Go(func() error {
		overdue, err := uc.storage.CountOverdueTasks(gctx, startOfToday(uc.now()))
		if err != nil {
			return err
		}
		stats.Tasks.Overdue = overdue
		return nil
	})
	g.Go(func() error {
		rent, err := uc.storage.SumManagedRent(gctx)
		if err != nil {
			return err
		}
		managedRent = rent
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to build dashboard stats", err, nil)
		return nil, err
	}

	// Проценты считаем после сборки счетчиков, деление на ноль гасится
	// внутри FormatRate.
	stats.Buyers.ConversionRate = domain.FormatRate(stats.Buyers.Converted, stats.Buyers.Total)
	stats.Tasks.CompletionRate = domain.FormatRate(stats.Tasks.Completed, stats.Tasks.Total)
	// Оценка сверху: фактические проценты комиссии здесь не читаем,
	// точный расчет делает Revenue.
	stats.ManagementRevenue = managedRent * domain.FallbackManagementFeeRate

	return stats, nil
}

func (uc *AnalyticsUseCaseImpl) Properties(ctx context.Context) (*domain.PropertyAnalytics, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	out := &domain.PropertyAnalytics{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		byStatus, err := uc.storage.CountPropertiesByStatus(gctx)
		if err != nil {
			return err
		}
		out.ByStatus = byStatus
		for _, sc := range byStatus {
			out.Total += sc.Count
		}
		return nil
	})
	g.Go(func() error {
		byType, err := uc.storage.CountPropertiesByType(gctx)
		if err != nil {
			return err
		}
		out.ByType = byType
		return nil
	})
	g.Go(func() error {
		byCategory, err := uc.storage.CountPropertiesByCategory(gctx)
		if err != nil {
			return err
		}
		out.ByCategory = byCategory
		return nil
	})
	g.Go(func() error {
		avg, err := uc.storage.AvgPricePerSqm(gctx)
		if err != nil {
			return err
		}
		out.AvgPricePerSqm = avg
		return nil
	})
	g.Go(func() error {
		avgArea, viewings, err := uc.storage.AvgAreaAndViewings(gctx)
		if err != nil {
			return err
		}
		out.AvgArea = avgArea
		out.TotalViewings = viewings
		return nil
	})
	g.Go(func() error {
		bands, err := uc.storage.PriceBands(gctx)
		if err != nil {
			return err
		}
		out.PriceBands = bands
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to build property analytics", err, nil)
		return nil, err
	}
	return out, nil
}

// Revenue - точный отчет по выручке от управления: по каждому объекту
// берется его фактический процент комиссии, средняя комиссия выводится
// из набора, годовая проекция - месячная * 12.
func (uc *AnalyticsUseCaseImpl) Revenue(ctx context.Context) (*domain.RevenueReport, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	rows, err := uc.storage.ManagedPropertyRevenues(ctx)
	if err != nil {
		logger.Error("Failed to load managed property revenues", err, nil)
		return nil, err
	}

	report := &domain.RevenueReport{
		ManagedProperties: len(rows),
		Properties:        make([]domain.PropertyRevenue, 0, len(rows)),
	}

	var monthlyTotal, feeSum float64
	for _, row := range rows {
		revenue := row.MonthlyRentEur * row.ManagementFeePercent / 100
		row.MonthlyRevenue = domain.FormatMoney(revenue)
		report.Properties = append(report.Properties, row)

		report.TotalMonthlyRent += row.MonthlyRentEur
		monthlyTotal += revenue
		feeSum += row.ManagementFeePercent
	}
	if len(rows) > 0 {
		report.AvgFeePercent = feeSum / float64(len(rows))
	}
	report.MonthlyRevenue = domain.FormatMoney(monthlyTotal)
	report.YearlyRevenue = domain.FormatMoney(monthlyTotal * 12)

	return report, nil
}

func (uc *AnalyticsUseCaseImpl) Performance(ctx context.Context) ([]domain.AgentPerformance, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	rows, err := uc.storage.AgentPerformanceRows(ctx)
	if err != nil {
		logger.Error("Failed to load agent performance", err, nil)
		return nil, err
	}
	for i := range rows {
		rows[i].ConversionRate = domain.FormatRate(rows[i].ConvertedBuyers, rows[i].Buyers)
		rows[i].CompletionRate = domain.FormatRate(rows[i].TasksCompleted, rows[i].TasksTotal)
	}
	return rows, nil
}
