package usecase

import (
	"context"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
)

// BuyerUseCase - операции над покупателями. Удаления нет: только архивация.
type BuyerUseCase struct {
	storage port.BuyerStoragePort
}

func NewBuyerUseCase(storage port.BuyerStoragePort) *BuyerUseCase {
	return &BuyerUseCase{storage: storage}
}

func (uc *BuyerUseCase) List(ctx context.Context, filters domain.BuyerFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.BuyerList, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	items, total, err := uc.storage.List(ctx, filters, sort, page)
	if err != nil {
		logger.Error("Failed to list buyers", err, nil)
		return nil, err
	}
	return &domain.BuyerList{
		Items:      items,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

func (uc *BuyerUseCase) Get(ctx context.Context, id int64) (*domain.Buyer, error) {
	return uc.storage.GetByID(ctx, id)
}

func (uc *BuyerUseCase) Create(ctx context.Context, b *domain.Buyer) (*domain.Buyer, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	if b.Status == "" {
		b.Status = domain.BuyerStatusActive
	}
	created, err := uc.storage.Create(ctx, b)
	if err != nil {
		logger.Error("Failed to create buyer", err, nil)
		return nil, err
	}
	logger.Info("Buyer created", port.Fields{"buyer_id": created.ID})
	return created, nil
}

func (uc *BuyerUseCase) Update(ctx context.Context, b *domain.Buyer) (*domain.Buyer, error) {
	if b.Status == "" {
		b.Status = domain.BuyerStatusActive
	}
	return uc.storage.Update(ctx, b)
}

func (uc *BuyerUseCase) Archive(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	if err := uc.storage.Archive(ctx, id); err != nil {
		return err
	}
	logger.Info("Buyer archived", port.Fields{"buyer_id": id})
	return nil
}

func (uc *BuyerUseCase) Restore(ctx context.Context, id int64) error {
	return uc.storage.Restore(ctx, id)
}
