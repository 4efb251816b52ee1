package rest

import (
	"math"
	"net/url"
	"strconv"
	"time"

	"crm-service/internal/core/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Хелперы разбора query-параметров. Контракт единый: отсутствующее или
// некорректное значение дает nil, то есть фильтр просто не применяется.
// ID в пути и тела запросов, наоборот, валидируются жестко.

func parseString(query url.Values, key string) string {
	return query.Get(key)
}

func parseInt(query url.Values, key string) *int {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt64(query url.Values, key string) *int64 {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(query url.Values, key string) *float64 {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		// ParseFloat принимает "NaN" и "Inf", но в диапазонном предикате
		// им делать нечего.
		return nil
	}
	return &v
}

func parseBool(query url.Values, key string) bool {
	v, err := strconv.ParseBool(query.Get(key))
	return err == nil && v
}

func parseDate(query url.Values, key string) *time.Time {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &v
}

// parsePagination нормализует окно: page >= 1, limit по умолчанию
// defaultLimit, потолок maxLimit.
func parsePagination(query url.Values) domain.PageSpec {
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return domain.PageSpec{Page: page, Limit: limit}
}

func parseSort(query url.Values) domain.SortSpec {
	order := query.Get("sortOrder")
	if order != "asc" && order != "desc" {
		order = ""
	}
	return domain.SortSpec{
		SortBy:    query.Get("sortBy"),
		SortOrder: order,
	}
}
