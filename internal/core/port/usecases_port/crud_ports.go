package usecases_port

import (
	"context"
	"time"

	"crm-service/internal/core/domain"
)

// Интерфейсы use case'ов, которые потребляют REST-обработчики.
// Сгруппированы по сущностям; реализации живут в core/usecase.

type PropertiesUseCase interface {
	List(ctx context.Context, filters domain.PropertyFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.PropertyList, error)
	Get(ctx context.Context, id int64) (*domain.Property, error)
	GetDetails(ctx context.Context, id int64) (*domain.PropertyDetails, error)
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id int64) error
	RecordViewing(ctx context.Context, id int64) (int, time.Time, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

type BuyersUseCase interface {
	List(ctx context.Context, filters domain.BuyerFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.BuyerList, error)
	Get(ctx context.Context, id int64) (*domain.Buyer, error)
	Create(ctx context.Context, b *domain.Buyer) (*domain.Buyer, error)
	Update(ctx context.Context, b *domain.Buyer) (*domain.Buyer, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

type SellersUseCase interface {
	List(ctx context.Context, filters domain.SellerFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.SellerList, error)
	Get(ctx context.Context, id int64) (*domain.Seller, error)
	Create(ctx context.Context, s *domain.Seller) (*domain.Seller, error)
	Update(ctx context.Context, s *domain.Seller) (*domain.Seller, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

type TenantsUseCase interface {
	List(ctx context.Context, filters domain.TenantFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.TenantList, error)
	Get(ctx context.Context, id int64) (*domain.Tenant, error)
	Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	Delete(ctx context.Context, id int64) error
}

type TasksUseCase interface {
	List(ctx context.Context, filters domain.TaskFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.TaskList, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	Overdue(ctx context.Context) ([]domain.Task, error)
	Complete(ctx context.Context, id int64) (*domain.Task, error)
}
