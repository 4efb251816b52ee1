package usecases_port

import (
	"context"

	"crm-service/internal/core/domain"
)

// AnalyticsUseCase - сборка отчетов из параллельных агрегатных запросов.
type AnalyticsUseCase interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	Properties(ctx context.Context) (*domain.PropertyAnalytics, error)
	Revenue(ctx context.Context) (*domain.RevenueReport, error)
	Performance(ctx context.Context) ([]domain.AgentPerformance, error)
}
