package postgres

import (
	"testing"
	"time"

	"crm-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }

func TestQueryBuilderEmpty(t *testing.T) {
	qb := newQueryBuilder()
	where, args := qb.build()

	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestQueryBuilderNumbersArgsSequentially(t *testing.T) {
	qb := newQueryBuilder()
	qb.AddEqual("status", "available")
	qb.AddEqual("city", "Sofia")
	qb.AddEqualInt("rooms", intPtr(3))

	where, args := qb.build()

	assert.Equal(t, "WHERE status = $1 AND city = $2 AND rooms = $3", where)
	assert.Equal(t, []interface{}{"available", "Sofia", 3}, args)
}

func TestQueryBuilderSkipsAbsentFilters(t *testing.T) {
	qb := newQueryBuilder()
	qb.AddEqual("status", "")
	qb.AddEqualInt64("seller_id", nil)
	qb.AddFloatRange("budget_max", nil, nil)
	qb.AddILike("district", "")

	where, args := qb.build()

	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestQueryBuilderSearchGroupSharesOneArg(t *testing.T) {
	qb := newQueryBuilder()
	qb.AddEqual("status", "active")
	qb.AddSearchGroup([]string{"first_name", "last_name", "phone"}, "ivan")

	where, args := qb.build()

	assert.Equal(t,
		"WHERE status = $1 AND (first_name ILIKE $2 OR last_name ILIKE $2 OR phone ILIKE $2)",
		where)
	assert.Equal(t, []interface{}{"active", "%ivan%"}, args)
}

func TestQueryBuilderPriceRangeSpansBothColumns(t *testing.T) {
	qb := newQueryBuilder()
	qb.AddPriceRange(floatPtr(500), floatPtr(100000))

	where, args := qb.build()

	assert.Equal(t,
		"WHERE (price_eur >= $1 OR monthly_rent_eur >= $1) AND (price_eur <= $2 OR monthly_rent_eur <= $2)",
		where)
	assert.Equal(t, []interface{}{500.0, 100000.0}, args)
}

func TestApplyPropertyFilters(t *testing.T) {
	tests := []struct {
		name      string
		filters   domain.PropertyFilters
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filters excludes archived by default",
			filters:   domain.PropertyFilters{},
			wantWhere: "WHERE archived_at IS NULL",
			wantArgs:  []interface{}{},
		},
		{
			name:      "includeArchived drops the archived predicate",
			filters:   domain.PropertyFilters{IncludeArchived: true},
			wantWhere: "",
			wantArgs:  []interface{}{},
		},
		{
			name: "district is substring match",
			filters: domain.PropertyFilters{
				IncludeArchived: true,
				District:        "Lozenets",
			},
			wantWhere: "WHERE district ILIKE $1",
			wantArgs:  []interface{}{"%Lozenets%"},
		},
		{
			name: "combined filters keep AND order",
			filters: domain.PropertyFilters{
				PropertyType: "sale",
				Category:     "apartment",
				MinArea:      intPtr(50),
				SellerID:     int64Ptr(7),
			},
			wantWhere: "WHERE archived_at IS NULL AND property_type = $1 AND category = $2 AND area >= $3 AND seller_id = $4",
			wantArgs:  []interface{}{"sale", "apartment", 50, int64(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := applyPropertyFilters(tt.filters)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestApplyBuyerFiltersBudgetOverlap(t *testing.T) {
	// Диапазон бюджета - это пересечение интервалов, а не точечное сравнение:
	// minBudget сравнивается с budget_max, maxBudget с budget_min.
	where, args := applyBuyerFilters(domain.BuyerFilters{
		MinBudget: floatPtr(50000),
		MaxBudget: floatPtr(150000),
	})

	assert.Equal(t,
		"WHERE archived_at IS NULL AND budget_max >= $1 AND budget_min <= $2",
		where)
	assert.Equal(t, []interface{}{50000.0, 150000.0}, args)
}

func TestApplyTaskFiltersDueRange(t *testing.T) {
	after := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	where, args := applyTaskFilters(domain.TaskFilters{
		Status:    "pending",
		DueAfter:  &after,
		DueBefore: &before,
	})

	assert.Equal(t, "WHERE status = $1 AND due_date >= $2 AND due_date <= $3", where)
	require.Len(t, args, 3)
	assert.Equal(t, "pending", args[0])
	assert.Equal(t, after, args[1])
	assert.Equal(t, before, args[2])
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort domain.SortSpec
		want string
	}{
		{
			name: "known column with direction",
			sort: domain.SortSpec{SortBy: "price", SortOrder: "desc"},
			want: "ORDER BY price_eur DESC, id ASC",
		},
		{
			name: "direction defaults to asc",
			sort: domain.SortSpec{SortBy: "area"},
			want: "ORDER BY area ASC, id ASC",
		},
		{
			name: "unknown column falls back to default",
			sort: domain.SortSpec{SortBy: "password_hash", SortOrder: "desc"},
			want: "ORDER BY created_at DESC",
		},
		{
			name: "empty sort falls back to default",
			sort: domain.SortSpec{},
			want: "ORDER BY created_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderClause(tt.sort, propertySortable, "created_at DESC")
			assert.Equal(t, tt.want, got)
		})
	}
}
