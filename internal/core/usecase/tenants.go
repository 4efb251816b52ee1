package usecase

import (
	"context"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
)

// TenantUseCase - операции над арендаторами.
type TenantUseCase struct {
	storage port.TenantStoragePort
}

func NewTenantUseCase(storage port.TenantStoragePort) *TenantUseCase {
	return &TenantUseCase{storage: storage}
}

func (uc *TenantUseCase) List(ctx context.Context, filters domain.TenantFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.TenantList, error) {
	items, total, err := uc.storage.List(ctx, filters, sort, page)
	if err != nil {
		return nil, err
	}
	return &domain.TenantList{
		Items:      items,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

func (uc *TenantUseCase) Get(ctx context.Context, id int64) (*domain.Tenant, error) {
	return uc.storage.GetByID(ctx, id)
}

func (uc *TenantUseCase) Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	if err := domain.NewValidationError(t.ValidateContract()); err != nil {
		logger.Warn("Tenant contract validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if t.Status == "" {
		t.Status = domain.TenantStatusActive
	}

	created, err := uc.storage.Create(ctx, t)
	if err != nil {
		logger.Error("Failed to create tenant", err, nil)
		return nil, err
	}
	logger.Info("Tenant created", port.Fields{"tenant_id": created.ID, "property_id": created.PropertyID})
	return created, nil
}

func (uc *TenantUseCase) Update(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	if err := domain.NewValidationError(t.ValidateContract()); err != nil {
		return nil, err
	}
	if t.Status == "" {
		t.Status = domain.TenantStatusActive
	}
	return uc.storage.Update(ctx, t)
}

func (uc *TenantUseCase) Delete(ctx context.Context, id int64) error {
	return uc.storage.Delete(ctx, id)
}
