package port

import (
	"context"

	"crm-service/internal/core/domain"
)

// BuyerStoragePort - хранилище покупателей. "Удаление" покупателя - это
// архивация (archived_at), жесткого DELETE нет.
type BuyerStoragePort interface {
	List(ctx context.Context, filters domain.BuyerFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Buyer, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Buyer, error)
	Create(ctx context.Context, b *domain.Buyer) (*domain.Buyer, error)
	Update(ctx context.Context, b *domain.Buyer) (*domain.Buyer, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

// SellerStoragePort - хранилище собственников, та же модель архивации.
type SellerStoragePort interface {
	List(ctx context.Context, filters domain.SellerFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Seller, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Seller, error)
	Create(ctx context.Context, s *domain.Seller) (*domain.Seller, error)
	Update(ctx context.Context, s *domain.Seller) (*domain.Seller, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

// TenantStoragePort - хранилище арендаторов.
type TenantStoragePort interface {
	List(ctx context.Context, filters domain.TenantFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Tenant, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	Delete(ctx context.Context, id int64) error
}
