package usecase

import (
	"context"
	"testing"
	"time"

	"crm-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyticsStorage отдает заранее заданные агрегаты.
type stubAnalyticsStorage struct {
	propsByStatus   []domain.StatusCount
	propsByType     []domain.StatusCount
	propsByCategory []domain.StatusCount

	buyersTotal     int
	buyersConverted int
	sellersTotal    int
	sellersActive   int
	tasksTotal      int
	tasksCompleted  int
	tasksPending    int
	tasksOverdue    int

	managedRent    float64
	avgPricePerSqm float64
	avgArea        float64
	totalViewings  int
	priceBands     []domain.PriceBand
	revenues       []domain.PropertyRevenue
	agents         []domain.AgentPerformance

	overdueCutoff time.Time
}

func (s *stubAnalyticsStorage) CountPropertiesByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	return s.propsByStatus, nil
}

func (s *stubAnalyticsStorage) CountPropertiesByType(ctx context.Context) ([]domain.StatusCount, error) {
	return s.propsByType, nil
}

func (s *stubAnalyticsStorage) CountPropertiesByCategory(ctx context.Context) ([]domain.StatusCount, error) {
	return s.propsByCategory, nil
}

func (s *stubAnalyticsStorage) CountBuyers(ctx context.Context) (int, int, error) {
	return s.buyersTotal, s.buyersConverted, nil
}

func (s *stubAnalyticsStorage) CountSellers(ctx context.Context) (int, int, error) {
	return s.sellersTotal, s.sellersActive, nil
}

func (s *stubAnalyticsStorage) CountTasks(ctx context.Context) (int, int, int, error) {
	return s.tasksTotal, s.tasksCompleted, s.tasksPending, nil
}

func (s *stubAnalyticsStorage) CountOverdueTasks(ctx context.Context, before time.Time) (int, error) {
	s.overdueCutoff = before
	return s.tasksOverdue, nil
}

func (s *stubAnalyticsStorage) SumManagedRent(ctx context.Context) (float64, error) {
	return s.managedRent, nil
}

func (s *stubAnalyticsStorage) AvgPricePerSqm(ctx context.Context) (float64, error) {
	return s.avgPricePerSqm, nil
}

func (s *stubAnalyticsStorage) AvgAreaAndViewings(ctx context.Context) (float64, int, error) {
	return s.avgArea, s.totalViewings, nil
}

func (s *stubAnalyticsStorage) PriceBands(ctx context.Context) ([]domain.PriceBand, error) {
	return s.priceBands, nil
}

func (s *stubAnalyticsStorage) ManagedPropertyRevenues(ctx context.Context) ([]domain.PropertyRevenue, error) {
	return s.revenues, nil
}

func (s *stubAnalyticsStorage) AgentPerformanceRows(ctx context.Context) ([]domain.AgentPerformance, error) {
	return s.agents, nil
}

func TestDashboardMath(t *testing.T) {
	storage := &stubAnalyticsStorage{
		propsByStatus: []domain.StatusCount{
			{Status: "available", Count: 12},
			{Status: "managed", Count: 8},
		},
		buyersTotal:     4,
		buyersConverted: 1,
		sellersTotal:    6,
		sellersActive:   5,
		tasksTotal:      10,
		tasksCompleted:  7,
		tasksPending:    3,
		tasksOverdue:    2,
		managedRent:     600,
	}

	uc := NewAnalyticsUseCase(storage)
	uc.now = func() time.Time {
		return time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	}

	stats, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, stats.Properties.Total)
	assert.Equal(t, "25.0", stats.Buyers.ConversionRate)
	assert.Equal(t, "70.0", stats.Tasks.CompletionRate)
	assert.Equal(t, 2, stats.Tasks.Overdue)
	// 8% от суммарной управляемой аренды.
	assert.InDelta(t, 48.0, stats.ManagementRevenue, 0.001)
	// Просроченные считаются от полуночи UTC текущего дня.
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), storage.overdueCutoff)
}

func TestDashboardZeroDenominators(t *testing.T) {
	uc := NewAnalyticsUseCase(&stubAnalyticsStorage{})

	stats, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.0", stats.Buyers.ConversionRate)
	assert.Equal(t, "0.0", stats.Tasks.CompletionRate)
	assert.Zero(t, stats.ManagementRevenue)
}

func TestRevenueUsesActualFees(t *testing.T) {
	storage := &stubAnalyticsStorage{
		revenues: []domain.PropertyRevenue{
			{PropertyID: 1, Title: "A", MonthlyRentEur: 600, ManagementFeePercent: 8},
			{PropertyID: 2, Title: "B", MonthlyRentEur: 1000, ManagementFeePercent: 10},
		},
	}

	uc := NewAnalyticsUseCase(storage)
	report, err := uc.Revenue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.ManagedProperties)
	assert.InDelta(t, 1600.0, report.TotalMonthlyRent, 0.001)
	assert.InDelta(t, 9.0, report.AvgFeePercent, 0.001)
	// 600*8% + 1000*10% = 148
	assert.Equal(t, "148.00", report.MonthlyRevenue)
	assert.Equal(t, "1776.00", report.YearlyRevenue)

	require.Len(t, report.Properties, 2)
	assert.Equal(t, "48.00", report.Properties[0].MonthlyRevenue)
	assert.Equal(t, "100.00", report.Properties[1].MonthlyRevenue)
}

func TestRevenueEmpty(t *testing.T) {
	uc := NewAnalyticsUseCase(&stubAnalyticsStorage{})

	report, err := uc.Revenue(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.ManagedProperties)
	assert.Zero(t, report.AvgFeePercent)
	assert.Equal(t, "0.00", report.MonthlyRevenue)
	assert.Equal(t, "0.00", report.YearlyRevenue)
	assert.Empty(t, report.Properties)
}

func TestPerformanceRates(t *testing.T) {
	storage := &stubAnalyticsStorage{
		agents: []domain.AgentPerformance{
			{AgentID: 1, Buyers: 4, ConvertedBuyers: 3, TasksTotal: 10, TasksCompleted: 5},
			{AgentID: 2, Buyers: 0, ConvertedBuyers: 0, TasksTotal: 0, TasksCompleted: 0},
		},
	}

	uc := NewAnalyticsUseCase(storage)
	rows, err := uc.Performance(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "75.0", rows[0].ConversionRate)
	assert.Equal(t, "50.0", rows[0].CompletionRate)
	assert.Equal(t, "0.0", rows[1].ConversionRate)
	assert.Equal(t, "0.0", rows[1].CompletionRate)
}

func TestPropertyAnalyticsTotals(t *testing.T) {
	storage := &stubAnalyticsStorage{
		propsByStatus: []domain.StatusCount{
			{Status: "available", Count: 3},
			{Status: "sold", Count: 2},
		},
		propsByType:    []domain.StatusCount{{Status: "sale", Count: 5}},
		avgPricePerSqm: 1800.5,
		avgArea:        72.4,
		totalViewings:  940,
		priceBands: []domain.PriceBand{
			{Band: "<50k", Count: 1, MinPrice: 42000},
			{Band: "100k-200k", Count: 4, MinPrice: 110000},
		},
	}

	uc := NewAnalyticsUseCase(storage)
	out, err := uc.Properties(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, out.Total)
	assert.InDelta(t, 1800.5, out.AvgPricePerSqm, 0.001)
	assert.Equal(t, 940, out.TotalViewings)
	require.Len(t, out.PriceBands, 2)
	assert.Equal(t, "<50k", out.PriceBands[0].Band)
}
