package usecase

import (
	"context"
	"testing"

	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyQuery(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantID    bool
		wantIDVal int64
		wantPhone bool
		wantDigit string
	}{
		{"plain text", "Ivan Petrov", false, 0, false, ""},
		{"short digits are id only", "12345", true, 12345, false, ""},
		{"long digits are both id and phone", "0888123456", true, 888123456, true, "0888123456"},
		{"international phone", "+359 888 123 456", false, 0, true, "+359888123456"},
		{"hyphenated phone", "088-812-3456", false, 0, true, "088-812-3456"},
		{"surrounding whitespace trimmed", "  42  ", true, 42, false, ""},
		{"letters break the phone pattern", "apt 42", false, 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ClassifyQuery(tt.text)
			assert.Equal(t, tt.wantID, q.IsID, "IsID")
			if tt.wantID {
				assert.Equal(t, tt.wantIDVal, q.NormalizedID)
			}
			assert.Equal(t, tt.wantPhone, q.IsPhoneNumber, "IsPhoneNumber")
			if tt.wantPhone {
				assert.Equal(t, tt.wantDigit, q.PhoneDigits)
			}
		})
	}
}

// stubSearchStorage записывает, с какими лимитами его дергали,
// и возвращает фиксированные корзины.
type stubSearchStorage struct {
	properties []domain.Property
	buyers     []domain.Buyer
	sellers    []domain.Seller
	tasks      []domain.Task

	calledTypes map[string]int
}

func newStubSearchStorage() *stubSearchStorage {
	return &stubSearchStorage{calledTypes: make(map[string]int)}
}

func (s *stubSearchStorage) SearchProperties(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Property, error) {
	s.calledTypes["properties"] = limit
	return s.properties, nil
}

func (s *stubSearchStorage) SearchBuyers(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Buyer, error) {
	s.calledTypes["buyers"] = limit
	return s.buyers, nil
}

func (s *stubSearchStorage) SearchSellers(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Seller, error) {
	s.calledTypes["sellers"] = limit
	return s.sellers, nil
}

func (s *stubSearchStorage) SearchTasks(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Task, error) {
	s.calledTypes["tasks"] = limit
	return s.tasks, nil
}

func (s *stubSearchStorage) SuggestPropertyTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	return []string{"Sunny apartment", "Sunny office"}, nil
}

func (s *stubSearchStorage) SuggestBuyerNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	return []string{"Sunny apartment", "Ivan Petrov"}, nil
}

func (s *stubSearchStorage) SuggestDistricts(ctx context.Context, prefix string, limit int) ([]string, error) {
	return []string{"Lozenets"}, nil
}

// Точечные заглушки хранилищ сущностей: задается только GetByID,
// остальные методы интерфейса падают при вызове.
type stubPropertyStorage struct {
	port.PropertyStoragePort
	byID map[int64]*domain.Property
}

func (s *stubPropertyStorage) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

type stubBuyerStorage struct {
	port.BuyerStoragePort
	byID map[int64]*domain.Buyer
}

func (s *stubBuyerStorage) GetByID(ctx context.Context, id int64) (*domain.Buyer, error) {
	if b, ok := s.byID[id]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

type stubSellerStorage struct {
	port.SellerStoragePort
	byID map[int64]*domain.Seller
}

func (s *stubSellerStorage) GetByID(ctx context.Context, id int64) (*domain.Seller, error) {
	if se, ok := s.byID[id]; ok {
		return se, nil
	}
	return nil, domain.ErrNotFound
}

type stubTaskStorage struct {
	port.TaskStoragePort
	byID map[int64]*domain.Task
}

func (s *stubTaskStorage) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if task, ok := s.byID[id]; ok {
		return task, nil
	}
	return nil, domain.ErrNotFound
}

func newTestSearchUseCase(storage *stubSearchStorage, props *stubPropertyStorage, buyers *stubBuyerStorage, sellers *stubSellerStorage, tasks *stubTaskStorage) *SearchUseCaseImpl {
	if props == nil {
		props = &stubPropertyStorage{byID: map[int64]*domain.Property{}}
	}
	if buyers == nil {
		buyers = &stubBuyerStorage{byID: map[int64]*domain.Buyer{}}
	}
	if sellers == nil {
		sellers = &stubSellerStorage{byID: map[int64]*domain.Seller{}}
	}
	if tasks == nil {
		tasks = &stubTaskStorage{byID: map[int64]*domain.Task{}}
	}
	return NewSearchUseCase(storage, props, buyers, sellers, tasks)
}

func TestSearchAllTypesSumsTotal(t *testing.T) {
	storage := newStubSearchStorage()
	storage.properties = []domain.Property{{ID: 1}, {ID: 2}}
	storage.buyers = []domain.Buyer{{ID: 3}}
	storage.tasks = []domain.Task{{ID: 4}}

	uc := newTestSearchUseCase(storage, nil, nil, nil, nil)

	results, err := uc.Search(context.Background(), "sofia", "", 10)
	require.NoError(t, err)

	assert.Equal(t, "all", results.Type)
	assert.Equal(t, 4, results.TotalResults)
	assert.Len(t, results.Properties, 2)
	assert.Len(t, results.Buyers, 1)
	assert.Empty(t, results.Sellers)
	assert.Len(t, results.Tasks, 1)

	// Все четыре типа опрошены с запрошенным лимитом.
	assert.Equal(t, map[string]int{
		"properties": 10, "buyers": 10, "sellers": 10, "tasks": 10,
	}, storage.calledTypes)
}

func TestSearchScopedTypeQueriesOnlyThatBucket(t *testing.T) {
	storage := newStubSearchStorage()
	storage.buyers = []domain.Buyer{{ID: 1}}

	uc := newTestSearchUseCase(storage, nil, nil, nil, nil)

	results, err := uc.Search(context.Background(), "ivan", domain.SearchTypeBuyers, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, results.TotalResults)
	assert.Equal(t, map[string]int{"buyers": 5}, storage.calledTypes)
}

func TestSearchLimitIsCapped(t *testing.T) {
	storage := newStubSearchStorage()
	uc := newTestSearchUseCase(storage, nil, nil, nil, nil)

	_, err := uc.Search(context.Background(), "x", domain.SearchTypeTasks, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, storage.calledTypes["tasks"])

	storage = newStubSearchStorage()
	uc = newTestSearchUseCase(storage, nil, nil, nil, nil)
	_, err = uc.Search(context.Background(), "x", domain.SearchTypeTasks, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, storage.calledTypes["tasks"])
}

func TestQuickLookupPriorityOrder(t *testing.T) {
	props := &stubPropertyStorage{byID: map[int64]*domain.Property{7: {ID: 7, Title: "Office"}}}
	buyers := &stubBuyerStorage{byID: map[int64]*domain.Buyer{7: {ID: 7}, 9: {ID: 9}}}

	uc := newTestSearchUseCase(newStubSearchStorage(), props, buyers, nil, nil)

	// ID есть и у объекта, и у покупателя - побеждает объект.
	match, err := uc.QuickLookup(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "property", match.Type)
	require.NotNil(t, match.Property)
	assert.Equal(t, "Office", match.Property.Title)

	// Объекта с таким ID нет - очередь доходит до покупателя.
	match, err = uc.QuickLookup(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "buyer", match.Type)

	_, err = uc.QuickLookup(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuggestDeduplicatesByLabel(t *testing.T) {
	uc := newTestSearchUseCase(newStubSearchStorage(), nil, nil, nil, nil)

	suggestions, err := uc.Suggest(context.Background(), "sun", "")
	require.NoError(t, err)

	// "Sunny apartment" пришел и как тайтл объекта, и как имя покупателя -
	// остается только первое вхождение.
	labels := make([]string, len(suggestions))
	for i, s := range suggestions {
		labels[i] = s.Label
	}
	assert.Equal(t, []string{"Sunny apartment", "Sunny office", "Lozenets", "Ivan Petrov"}, labels)
	assert.Equal(t, "property", suggestions[0].Type)
	assert.Equal(t, "district", suggestions[2].Type)
	assert.Equal(t, "buyer", suggestions[3].Type)
}

func TestSuggestScopedToBuyers(t *testing.T) {
	uc := newTestSearchUseCase(newStubSearchStorage(), nil, nil, nil, nil)

	suggestions, err := uc.Suggest(context.Background(), "iv", domain.SearchTypeBuyers)
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.Equal(t, "buyer", s.Type)
	}
}
