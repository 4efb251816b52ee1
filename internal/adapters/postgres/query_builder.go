package postgres

import (
	"fmt"
	"strings"

	"crm-service/internal/core/domain"
)

// queryBuilder накапливает предикаты WHERE с нумерованными аргументами.
// Конструирование чистое: никаких запросов, только строки и args.
type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder(base ...string) *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: base,
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddEqual добавляет предикат точного совпадения, пустая строка = фильтр не задан.
func (qb *queryBuilder) AddEqual(fieldName string, value string) {
	if value != "" {
		qb.addCondition("%s = $%d", fieldName, value)
	}
}

func (qb *queryBuilder) AddEqualInt64(fieldName string, value *int64) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

func (qb *queryBuilder) AddEqualInt(fieldName string, value *int) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

// AddILike добавляет регистронезависимый поиск подстроки.
func (qb *queryBuilder) AddILike(fieldName string, substr string) {
	if substr != "" {
		qb.addCondition("%s ILIKE $%d", fieldName, "%"+substr+"%")
	}
}

// AddFloatRange добавляет один диапазонный предикат; незаданная граница
// оставляет диапазон открытым с этой стороны.
func (qb *queryBuilder) AddFloatRange(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntRange(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// AddSearchGroup добавляет OR-группу ILIKE-предикатов по нескольким полям
// с одним общим аргументом.
func (qb *queryBuilder) AddSearchGroup(fieldNames []string, term string) {
	if term == "" || len(fieldNames) == 0 {
		return
	}
	parts := make([]string, len(fieldNames))
	for i, f := range fieldNames {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", f, qb.argId)
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
	qb.args = append(qb.args, "%"+term+"%")
	qb.argId++
}

// AddPriceRange - ценовой фильтр объектов. Фильтр не знает, в каком режиме
// ценообразования находится строка, поэтому каждая граница сравнивается
// с обеими ценовыми колонками через OR; NULL-колонка выпадает сама.
func (qb *queryBuilder) AddPriceRange(min *float64, max *float64) {
	if min != nil {
		qb.conditions = append(qb.conditions,
			fmt.Sprintf("(price_eur >= $%d OR monthly_rent_eur >= $%d)", qb.argId, qb.argId))
		qb.args = append(qb.args, *min)
		qb.argId++
	}
	if max != nil {
		qb.conditions = append(qb.conditions,
			fmt.Sprintf("(price_eur <= $%d OR monthly_rent_eur <= $%d)", qb.argId, qb.argId))
		qb.args = append(qb.args, *max)
		qb.argId++
	}
}

// build собирает финальный WHERE clause.
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyPropertyFilters строит WHERE для листинга объектов.
func applyPropertyFilters(filters domain.PropertyFilters) (string, []interface{}) {
	qb := newQueryBuilder()
	if !filters.IncludeArchived {
		qb.conditions = append(qb.conditions, "archived_at IS NULL")
	}

	qb.AddEqual("property_type", filters.PropertyType)
	qb.AddEqual("category", filters.Category)
	qb.AddEqual("status", filters.Status)
	qb.AddEqual("city", filters.City)
	qb.AddILike("district", filters.District)

	qb.AddPriceRange(filters.MinPrice, filters.MaxPrice)
	qb.AddIntRange("area", filters.MinArea, filters.MaxArea)
	qb.AddEqualInt("rooms", filters.Rooms)

	qb.AddEqualInt64("seller_id", filters.SellerID)
	qb.AddEqualInt64("assigned_agent_id", filters.AssignedAgentID)

	qb.AddSearchGroup([]string{"title", "address", "district", "description"}, filters.Search)

	return qb.build()
}

// applyBuyerFilters строит WHERE для листинга покупателей.
func applyBuyerFilters(filters domain.BuyerFilters) (string, []interface{}) {
	qb := newQueryBuilder()
	if !filters.IncludeArchived {
		qb.conditions = append(qb.conditions, "archived_at IS NULL")
	}

	qb.AddEqual("status", filters.Status)
	qb.AddEqual("property_type", filters.PropertyType)
	qb.AddFloatRange("budget_max", filters.MinBudget, nil)
	qb.AddFloatRange("budget_min", nil, filters.MaxBudget)
	qb.AddEqualInt64("assigned_agent_id", filters.AssignedAgentID)

	qb.AddSearchGroup([]string{"first_name", "last_name", "phone", "email"}, filters.Search)

	return qb.build()
}

// applySellerFilters строит WHERE для листинга собственников.
func applySellerFilters(filters domain.SellerFilters) (string, []interface{}) {
	qb := newQueryBuilder()
	if !filters.IncludeArchived {
		qb.conditions = append(qb.conditions, "archived_at IS NULL")
	}

	qb.AddEqual("status", filters.Status)
	qb.AddEqualInt64("assigned_agent_id", filters.AssignedAgentID)
	qb.AddSearchGroup([]string{"first_name", "last_name", "phone", "email"}, filters.Search)

	return qb.build()
}

// applyTaskFilters строит WHERE для листинга задач.
func applyTaskFilters(filters domain.TaskFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	qb.AddEqual("status", filters.Status)
	qb.AddEqual("priority", filters.Priority)
	qb.AddEqual("task_type", filters.TaskType)
	qb.AddEqualInt64("assigned_agent_id", filters.AssignedAgentID)
	qb.AddEqualInt64("buyer_id", filters.BuyerID)
	qb.AddEqualInt64("seller_id", filters.SellerID)
	qb.AddEqualInt64("property_id", filters.PropertyID)

	if filters.DueAfter != nil {
		qb.addCondition("%s >= $%d", "due_date", *filters.DueAfter)
	}
	if filters.DueBefore != nil {
		qb.addCondition("%s <= $%d", "due_date", *filters.DueBefore)
	}

	qb.AddSearchGroup([]string{"title", "description"}, filters.Search)

	return qb.build()
}

// applyTenantFilters строит WHERE для листинга арендаторов.
func applyTenantFilters(filters domain.TenantFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	qb.AddEqualInt64("property_id", filters.PropertyID)
	qb.AddEqual("status", filters.Status)

	return qb.build()
}

// orderClause строит ORDER BY по whitelist сортируемых колонок.
// Незнакомый sortBy молча откатывается на дефолт - тот же принцип
// "невалидный параметр = параметр не задан", что и у числовых фильтров.
func orderClause(sort domain.SortSpec, allowed map[string]string, defaultClause string) string {
	column, ok := allowed[sort.SortBy]
	if !ok {
		return "ORDER BY " + defaultClause
	}
	direction := "ASC"
	if strings.EqualFold(sort.SortOrder, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}
