package usecase

import (
	"context"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"
)

// SellerUseCase - операции над собственниками, модель та же, что у покупателей.
type SellerUseCase struct {
	storage port.SellerStoragePort
}

func NewSellerUseCase(storage port.SellerStoragePort) *SellerUseCase {
	return &SellerUseCase{storage: storage}
}

func (uc *SellerUseCase) List(ctx context.Context, filters domain.SellerFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.SellerList, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	items, total, err := uc.storage.List(ctx, filters, sort, page)
	if err != nil {
		logger.Error("Failed to list sellers", err, nil)
		return nil, err
	}
	return &domain.SellerList{
		Items:      items,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

func (uc *SellerUseCase) Get(ctx context.Context, id int64) (*domain.Seller, error) {
	return uc.storage.GetByID(ctx, id)
}

func (uc *SellerUseCase) Create(ctx context.Context, s *domain.Seller) (*domain.Seller, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	if s.Status == "" {
		s.Status = domain.SellerStatusActive
	}
	created, err := uc.storage.Create(ctx, s)
	if err != nil {
		logger.Error("Failed to create seller", err, nil)
		return nil, err
	}
	logger.Info("Seller created", port.Fields{"seller_id": created.ID})
	return created, nil
}

func (uc *SellerUseCase) Update(ctx context.Context, s *domain.Seller) (*domain.Seller, error) {
	if s.Status == "" {
		s.Status = domain.SellerStatusActive
	}
	return uc.storage.Update(ctx, s)
}

func (uc *SellerUseCase) Archive(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	if err := uc.storage.Archive(ctx, id); err != nil {
		return err
	}
	logger.Info("Seller archived", port.Fields{"seller_id": id})
	return nil
}

func (uc *SellerUseCase) Restore(ctx context.Context, id int64) error {
	return uc.storage.Restore(ctx, id)
}
