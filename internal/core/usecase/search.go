package usecase

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"golang.org/x/sync/errgroup"
)

// Жесткий потолок на размер корзины одного типа сущностей.
const maxSearchLimit = 50

// Потолки для подсказок: на группу полей и на итоговый список.
const (
	suggestPerGroupLimit = 5
	suggestTotalLimit    = 10
)

var (
	idPattern = regexp.MustCompile(`^[0-9]+$`)
	// Расслабленный шаблон телефона: необязательный ведущий +,
	// цифры/пробелы/дефисы/скобки, минимум 7 символов.
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,}$`)
)

// ClassifyQuery считает эвристики поискового запроса один раз;
// результат переиспользуется предикатами всех типов сущностей.
func ClassifyQuery(text string) domain.SearchQuery {
	q := domain.SearchQuery{Text: strings.TrimSpace(text)}

	if idPattern.MatchString(q.Text) {
		if id, err := strconv.ParseInt(q.Text, 10, 64); err == nil {
			q.IsID = true
			q.NormalizedID = id
		}
	}
	if phonePattern.MatchString(q.Text) {
		q.IsPhoneNumber = true
		q.PhoneDigits = strings.Join(strings.Fields(q.Text), "")
	}
	return q
}

// SearchUseCaseImpl - универсальный поиск по четырем типам сущностей.
// Для точечного поиска по ID переиспользует хранилища сущностей.
type SearchUseCaseImpl struct {
	search     port.SearchStoragePort
	properties port.PropertyStoragePort
	buyers     port.BuyerStoragePort
	sellers    port.SellerStoragePort
	tasks      port.TaskStoragePort
}

func NewSearchUseCase(
	search port.SearchStoragePort,
	properties port.PropertyStoragePort,
	buyers port.BuyerStoragePort,
	sellers port.SellerStoragePort,
	tasks port.TaskStoragePort,
) *SearchUseCaseImpl {
	return &SearchUseCaseImpl{
		search:     search,
		properties: properties,
		buyers:     buyers,
		sellers:    sellers,
		tasks:      tasks,
	}
}

func searchTypeInScope(entityType, want string) bool {
	return entityType == domain.SearchTypeAll || entityType == want
}

// Search выполняет активные по-типовые запросы параллельно и склеивает
// конверт. Корзины дизъюнктны по типам, дедупликация не нужна.
func (uc *SearchUseCaseImpl) Search(ctx context.Context, text, entityType string, limit int) (*domain.SearchResults, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	if entityType == "" {
		entityType = domain.SearchTypeAll
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	q := ClassifyQuery(text)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "Search",
		"type":     entityType,
		"is_id":    q.IsID,
		"is_phone": q.IsPhoneNumber,
	})

	results := &domain.SearchResults{
		Query:      q.Text,
		Type:       entityType,
		Properties: []domain.Property{},
		Buyers:     []domain.Buyer{},
		Sellers:    []domain.Seller{},
		Tasks:      []domain.Task{},
	}

	g, gctx := errgroup.WithContext(ctx)
	if searchTypeInScope(entityType, domain.SearchTypeProperties) {
		g.Go(func() error {
			items, err := uc.search.SearchProperties(gctx, q, limit)
			if err != nil {
				return err
			}
			results.Properties = items
			return nil
		})
	}
	if searchTypeInScope(entityType, domain.SearchTypeBuyers) {
		g.Go(func() error {
			items, err := uc.search.SearchBuyers(gctx, q, limit)
			if err != nil {
				return err
			}
			results.Buyers = items
			return nil
		})
	}
	if searchTypeInScope(entityType, domain.SearchTypeSellers) {
		g.Go(func() error {
			items, err := uc.search.SearchSellers(gctx, q, limit)
			if err != nil {
				return err
			}
			results.Sellers = items
			return nil
		})
	}
	if searchTypeInScope(entityType, domain.SearchTypeTasks) {
		g.Go(func() error {
			items, err := uc.search.SearchTasks(gctx, q, limit)
			if err != nil {
				return err
			}
			results.Tasks = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ucLogger.Error("Search failed", err, nil)
		return nil, err
	}

	results.TotalResults = len(results.Properties) + len(results.Buyers) +
		len(results.Sellers) + len(results.Tasks)

	ucLogger.Info("Search finished", port.Fields{"total_results": results.TotalResults})
	return results, nil
}

// QuickLookup пробует найти сущность по первичному ключу в фиксированном
// порядке приоритета: property, buyer, seller, task. Это дизъюнктное
// объединение, а не ранжированный поиск.
func (uc *SearchUseCaseImpl) QuickLookup(ctx context.Context, id int64) (*domain.QuickMatch, error) {
	if p, err := uc.properties.GetByID(ctx, id); err == nil {
		return &domain.QuickMatch{Type: "property", Property: p}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if b, err := uc.buyers.GetByID(ctx, id); err == nil {
		return &domain.QuickMatch{Type: "buyer", Buyer: b}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if s, err := uc.sellers.GetByID(ctx, id); err == nil {
		return &domain.QuickMatch{Type: "seller", Seller: s}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if t, err := uc.tasks.GetByID(ctx, id); err == nil {
		return &domain.QuickMatch{Type: "task", Task: t}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return nil, domain.ErrNotFound
}

// Suggest собирает подсказки по группам полей независимыми выборками
// с малым лимитом, дедуплицирует по точному совпадению подписи
// и обрезает итог до suggestTotalLimit.
func (uc *SearchUseCaseImpl) Suggest(ctx context.Context, text, entityType string) ([]domain.Suggestion, error) {
	if entityType == "" {
		entityType = domain.SearchTypeAll
	}

	type group struct {
		kind  string
		fetch func(context.Context, string, int) ([]string, error)
	}
	groups := make([]group, 0, 3)
	if searchTypeInScope(entityType, domain.SearchTypeProperties) {
		groups = append(groups,
			group{"property", uc.search.SuggestPropertyTitles},
			group{"district", uc.search.SuggestDistricts},
		)
	}
	if searchTypeInScope(entityType, domain.SearchTypeBuyers) {
		groups = append(groups, group{"buyer", uc.search.SuggestBuyerNames})
	}

	suggestions := make([]domain.Suggestion, 0, suggestTotalLimit)
	seen := make(map[string]bool)
	for _, gr := range groups {
		labels, err := gr.fetch(ctx, text, suggestPerGroupLimit)
		if err != nil {
			return nil, err
		}
		for _, label := range labels {
			if seen[label] {
				continue
			}
			seen[label] = true
			suggestions = append(suggestions, domain.Suggestion{Label: label, Type: gr.kind})
			if len(suggestions) == suggestTotalLimit {
				return suggestions, nil
			}
		}
	}
	return suggestions, nil
}
