package rest

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumericHelpersIgnoreGarbage(t *testing.T) {
	query := url.Values{
		"minPrice": {"abc"},
		"maxPrice": {"100000"},
		"rooms":    {"3.5"},
		"agentId":  {"7"},
	}

	assert.Nil(t, parseFloat(query, "minPrice"), "мусор трактуется как отсутствие фильтра")
	require.NotNil(t, parseFloat(query, "maxPrice"))
	assert.Equal(t, 100000.0, *parseFloat(query, "maxPrice"))

	for _, raw := range []string{"NaN", "Inf", "+Inf", "-Inf"} {
		assert.Nil(t, parseFloat(url.Values{"minPrice": {raw}}, "minPrice"),
			"ParseFloat принимает %q, фильтр - нет", raw)
	}

	assert.Nil(t, parseInt(query, "rooms"), "дробное значение не подходит для int-фильтра")
	assert.Nil(t, parseInt(query, "missing"))

	require.NotNil(t, parseInt64(query, "agentId"))
	assert.Equal(t, int64(7), *parseInt64(query, "agentId"))
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool(url.Values{"includeArchived": {"true"}}, "includeArchived"))
	assert.True(t, parseBool(url.Values{"includeArchived": {"1"}}, "includeArchived"))
	assert.False(t, parseBool(url.Values{"includeArchived": {"yes"}}, "includeArchived"))
	assert.False(t, parseBool(url.Values{}, "includeArchived"))
}

func TestParseDate(t *testing.T) {
	got := parseDate(url.Values{"dueBefore": {"2026-09-30"}}, "dueBefore")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())

	assert.Nil(t, parseDate(url.Values{"dueBefore": {"30.09.2026"}}, "dueBefore"))
	assert.Nil(t, parseDate(url.Values{}, "dueBefore"))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantPage  int
		wantLimit int
	}{
		{"defaults", url.Values{}, 1, 20},
		{"explicit values", url.Values{"page": {"3"}, "limit": {"50"}}, 3, 50},
		{"zero page normalized", url.Values{"page": {"0"}}, 1, 20},
		{"negative page normalized", url.Values{"page": {"-2"}}, 1, 20},
		{"limit above cap resets to default", url.Values{"limit": {"1000"}}, 1, 20},
		{"limit at cap is kept", url.Values{"limit": {"100"}}, 1, 100},
		{"garbage falls back", url.Values{"page": {"x"}, "limit": {"y"}}, 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := parsePagination(tt.query)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantLimit, page.Limit)
		})
	}
}

func TestParseSort(t *testing.T) {
	sort := parseSort(url.Values{"sortBy": {"price"}, "sortOrder": {"desc"}})
	assert.Equal(t, "price", sort.SortBy)
	assert.Equal(t, "desc", sort.SortOrder)

	sort = parseSort(url.Values{"sortOrder": {"sideways"}})
	assert.Equal(t, "", sort.SortOrder, "неизвестное направление отбрасывается")
}
