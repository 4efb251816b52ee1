package port

import (
	"context"
	"time"

	"crm-service/internal/core/domain"
)

// PropertyStoragePort - хранилище объектов недвижимости.
// List выполняет COUNT и выборку страницы под одним и тем же набором
// предикатов; total - количество без учета пагинации.
type PropertyStoragePort interface {
	List(ctx context.Context, filters domain.PropertyFilters, sort domain.SortSpec, page domain.PageSpec) ([]domain.Property, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetDetails(ctx context.Context, id int64) (*domain.PropertyDetails, error)
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id int64) error
	// IncrementViewings - атомарный инкремент счетчика просмотров
	// с одновременным обновлением last_viewing.
	IncrementViewings(ctx context.Context, id int64) (int, time.Time, error)
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}
