package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-service/internal/core/domain"
	"crm-service/internal/core/port/usecases_port"
)

// stubPropertiesUC встраивает интерфейс, тесты переопределяют только
// нужные методы.
type stubPropertiesUC struct {
	usecases_port.PropertiesUseCase

	listFn    func(ctx context.Context, filters domain.PropertyFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.PropertyList, error)
	detailsFn func(ctx context.Context, id int64) (*domain.PropertyDetails, error)
	createFn  func(ctx context.Context, p *domain.Property) (*domain.Property, error)
	deleteFn  func(ctx context.Context, id int64) error
	archiveFn func(ctx context.Context, id int64) error
	viewingFn func(ctx context.Context, id int64) (int, time.Time, error)
}

func (s *stubPropertiesUC) List(ctx context.Context, filters domain.PropertyFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.PropertyList, error) {
	return s.listFn(ctx, filters, sort, page)
}

func (s *stubPropertiesUC) GetDetails(ctx context.Context, id int64) (*domain.PropertyDetails, error) {
	return s.detailsFn(ctx, id)
}

func (s *stubPropertiesUC) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	return s.createFn(ctx, p)
}

func (s *stubPropertiesUC) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubPropertiesUC) Archive(ctx context.Context, id int64) error {
	return s.archiveFn(ctx, id)
}

func (s *stubPropertiesUC) RecordViewing(ctx context.Context, id int64) (int, time.Time, error) {
	return s.viewingFn(ctx, id)
}

func propertyRouter(h *PropertyHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/properties", h.List)
	r.Post("/api/properties", h.Create)
	r.Get("/api/properties/{id}", h.Get)
	r.Delete("/api/properties/{id}", h.Delete)
	r.Post("/api/properties/{id}/viewing", h.RecordViewing)
	r.Post("/api/properties/{id}/archive", h.Archive)
	return r
}

func TestPropertyListPlumbsQueryParams(t *testing.T) {
	var gotFilters domain.PropertyFilters
	var gotSort domain.SortSpec
	var gotPage domain.PageSpec

	uc := &stubPropertiesUC{
		listFn: func(_ context.Context, filters domain.PropertyFilters, sort domain.SortSpec, page domain.PageSpec) (*domain.PropertyList, error) {
			gotFilters, gotSort, gotPage = filters, sort, page
			return &domain.PropertyList{
				Items:      []domain.Property{{ID: 1, Title: "Sunny apartment"}},
				Pagination: domain.NewPagination(page, 1),
			}, nil
		},
	}
	router := propertyRouter(NewPropertyHandler(uc))

	url := "/api/properties?type=rent&status=available&city=Sofia&minPrice=50000&maxPrice=oops" +
		"&rooms=3&agentId=7&search=sunny&includeArchived=true&page=2&limit=10&sortBy=price&sortOrder=desc"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "rent", gotFilters.PropertyType)
	assert.Equal(t, "available", gotFilters.Status)
	assert.Equal(t, "Sofia", gotFilters.City)
	require.NotNil(t, gotFilters.MinPrice)
	assert.Equal(t, 50000.0, *gotFilters.MinPrice)
	assert.Nil(t, gotFilters.MaxPrice, "нечисловой maxPrice означает отсутствие фильтра")
	require.NotNil(t, gotFilters.Rooms)
	assert.Equal(t, 3, *gotFilters.Rooms)
	require.NotNil(t, gotFilters.AssignedAgentID)
	assert.Equal(t, int64(7), *gotFilters.AssignedAgentID)
	assert.Equal(t, "sunny", gotFilters.Search)
	assert.True(t, gotFilters.IncludeArchived)

	assert.Equal(t, domain.SortSpec{SortBy: "price", SortOrder: "desc"}, gotSort)
	assert.Equal(t, domain.PageSpec{Page: 2, Limit: 10}, gotPage)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload, "properties")
	assert.Contains(t, payload, "pagination")
}

func TestPropertyGetMapsNotFound(t *testing.T) {
	uc := &stubPropertiesUC{
		detailsFn: func(_ context.Context, _ int64) (*domain.PropertyDetails, error) {
			return nil, domain.ErrNotFound
		},
	}
	router := propertyRouter(NewPropertyHandler(uc))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"entity not found"}`, rec.Body.String())
}

func TestPropertyGetRejectsBadPathID(t *testing.T) {
	router := propertyRouter(NewPropertyHandler(&stubPropertiesUC{}))

	for _, raw := range []string{"abc", "0", "-5"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/"+raw, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id=%s", raw)
	}
}

func TestPropertyCreateValidatesBody(t *testing.T) {
	uc := &stubPropertiesUC{
		createFn: func(_ context.Context, p *domain.Property) (*domain.Property, error) {
			created := *p
			created.ID = 10
			return &created, nil
		},
	}
	router := propertyRouter(NewPropertyHandler(uc))

	t.Run("missing required fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/properties",
			strings.NewReader(`{"title":"Garage"}`))
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var payload struct {
			Error  string   `json:"error"`
			Fields []string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "validation failed", payload.Error)
		assert.NotEmpty(t, payload.Fields)
	})

	t.Run("valid body", func(t *testing.T) {
		body := `{
			"title": "Garage in Lozenets",
			"property_type": "sale",
			"category": "garage",
			"address": "12 Krichim St",
			"city": "Sofia",
			"district": "Lozenets",
			"area": 18,
			"rooms": 1,
			"price_eur": 25000
		}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp PropertyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, "Garage in Lozenets", resp.Title)
	})
}

func TestPropertyCreateMapsDuplicate(t *testing.T) {
	uc := &stubPropertiesUC{
		createFn: func(_ context.Context, _ *domain.Property) (*domain.Property, error) {
			return nil, domain.ErrDuplicate
		},
	}
	router := propertyRouter(NewPropertyHandler(uc))

	body := `{
		"title": "Garage in Lozenets",
		"property_type": "sale",
		"category": "garage",
		"address": "12 Krichim St",
		"city": "Sofia",
		"district": "Lozenets",
		"area": 18,
		"rooms": 1,
		"price_eur": 25000
	}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"duplicate entry"}`, rec.Body.String())
}

func TestPropertyDeleteRespondsOK(t *testing.T) {
	var deletedID int64
	uc := &stubPropertiesUC{
		deleteFn: func(_ context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	router := propertyRouter(NewPropertyHandler(uc))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/properties/7", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), deletedID)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())
}

func TestPropertyArchiveRespondsOK(t *testing.T) {
	uc := &stubPropertiesUC{
		archiveFn: func(_ context.Context, _ int64) error { return nil },
	}
	router := propertyRouter(NewPropertyHandler(uc))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/properties/7/archive", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"archived"}`, rec.Body.String())
}

func TestPropertyRecordViewingResponse(t *testing.T) {
	last := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	uc := &stubPropertiesUC{
		viewingFn: func(_ context.Context, id int64) (int, time.Time, error) {
			assert.Equal(t, int64(5), id)
			return 4, last, nil
		},
	}
	router := propertyRouter(NewPropertyHandler(uc))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/properties/5/viewing", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"viewings":4,"last_viewing":"2026-09-01T14:00:00Z"}`, rec.Body.String())
}
