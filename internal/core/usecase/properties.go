package usecase

import (
	"context"
	"time"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
)

// PropertyUseCase - операции над объектами недвижимости.
type PropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewPropertyUseCase(storage port.PropertyStoragePort) *PropertyUseCase {
	return &PropertyUseCase{storage: storage}
}

func (uc *PropertyUseCase) List(ctx context.Context, filters domain.PropertyFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.PropertyList, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "Properties.List",
		"page":     page.Page,
		"limit":    page.Limit,
	})

	items, total, err := uc.storage.List(ctx, filters, sort, page)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Properties listed", port.Fields{
		"total_found":   total,
		"items_on_page": len(items),
	})
	return &domain.PropertyList{
		Items:      items,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

func (uc *PropertyUseCase) Get(ctx context.Context, id int64) (*domain.Property, error) {
	return uc.storage.GetByID(ctx, id)
}

func (uc *PropertyUseCase) GetDetails(ctx context.Context, id int64) (*domain.PropertyDetails, error) {
	return uc.storage.GetDetails(ctx, id)
}

// defaultStatus возвращает бизнес-статус по умолчанию для нового объекта.
func defaultPropertyStatus(propertyType string) string {
	if propertyType == domain.PropertyTypeManaged {
		return domain.PropertyStatusManaged
	}
	return domain.PropertyStatusAvailable
}

func (uc *PropertyUseCase) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	if err := domain.NewValidationError(p.ValidatePricing()); err != nil {
		logger.Warn("Property pricing validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if p.Status == "" {
		p.Status = defaultPropertyStatus(p.PropertyType)
	}

	created, err := uc.storage.Create(ctx, p)
	if err != nil {
		logger.Error("Failed to create property", err, nil)
		return nil, err
	}
	logger.Info("Property created", port.Fields{"property_id": created.ID})
	return created, nil
}

func (uc *PropertyUseCase) Update(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	if err := domain.NewValidationError(p.ValidatePricing()); err != nil {
		logger.Warn("Property pricing validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	if p.Status == "" {
		p.Status = defaultPropertyStatus(p.PropertyType)
	}

	updated, err := uc.storage.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	logger.Info("Property updated", port.Fields{"property_id": updated.ID})
	return updated, nil
}

func (uc *PropertyUseCase) Delete(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	if err := uc.storage.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Property deleted", port.Fields{"property_id": id})
	return nil
}

func (uc *PropertyUseCase) RecordViewing(ctx context.Context, id int64) (int, time.Time, error) {
	return uc.storage.IncrementViewings(ctx, id)
}

func (uc *PropertyUseCase) Archive(ctx context.Context, id int64) error {
	return uc.storage.Archive(ctx, id)
}

func (uc *PropertyUseCase) Restore(ctx context.Context, id int64) error {
	return uc.storage.Restore(ctx, id)
}
