package usecases_port

import (
	"context"

	"crm-service/internal/core/domain"
)

// SearchUseCase - универсальный поиск, точечный поиск по ID и подсказки.
type SearchUseCase interface {
	Search(ctx context.Context, text, entityType string, limit int) (*domain.SearchResults, error)
	QuickLookup(ctx context.Context, id int64) (*domain.QuickMatch, error)
	Suggest(ctx context.Context, text, entityType string) ([]domain.Suggestion, error)
}
