package port

import (
	"context"

	"crm-service/internal/core/domain"
)

// SearchStoragePort - поисковые выборки по отдельным типам сущностей.
// Каждый метод строит OR-предикат по текстовым полям своего типа; релевантность
// аппроксимируется типо-специфичной сортировкой (см. реализацию).
type SearchStoragePort interface {
	SearchProperties(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Property, error)
	SearchBuyers(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Buyer, error)
	SearchSellers(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Seller, error)
	SearchTasks(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Task, error)

	// Подсказки: независимые выборки с малым лимитом по группам полей.
	SuggestPropertyTitles(ctx context.Context, prefix string, limit int) ([]string, error)
	SuggestBuyerNames(ctx context.Context, prefix string, limit int) ([]string, error)
	SuggestDistricts(ctx context.Context, prefix string, limit int) ([]string, error)
}
