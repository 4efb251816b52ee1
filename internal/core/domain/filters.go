package domain

import (
	"math"
	"time"
)

// SortSpec - запрошенная сортировка. Колонки валидируются на уровне
// репозитория по whitelist, здесь только сырые значения.
type SortSpec struct {
	SortBy    string
	SortOrder string // "asc" | "desc"
}

// PageSpec - окно пагинации (уже нормализованное обработчиком).
type PageSpec struct {
	Page  int
	Limit int
}

func (p PageSpec) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination - блок пагинации в ответе списочных эндпоинтов.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination считает количество страниц: pages = ceil(total/limit),
// pages == 0 тогда и только тогда, когда total == 0.
func NewPagination(page PageSpec, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(page.Limit)))
	}
	return Pagination{
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
		Pages: pages,
	}
}

// PropertyFilters - фильтры листинга объектов. nil-указатель означает
// "фильтр не задан". Поля Min/Max образуют один диапазонный предикат,
// открытый с незаданной стороны.
type PropertyFilters struct {
	PropertyType    string
	Category        string
	Status          string
	City            string
	District        string // поиск подстроки
	MinPrice        *float64
	MaxPrice        *float64
	MinArea         *int
	MaxArea         *int
	Rooms           *int
	SellerID        *int64
	AssignedAgentID *int64
	Search          string // OR-группа по title/address/district/description
	IncludeArchived bool
}

// BuyerFilters - фильтры листинга покупателей.
type BuyerFilters struct {
	Status          string
	PropertyType    string
	MinBudget       *float64
	MaxBudget       *float64
	AssignedAgentID *int64
	Search          string // OR-группа по имени/телефону/email
	IncludeArchived bool
}

// SellerFilters - фильтры листинга собственников.
type SellerFilters struct {
	Status          string
	AssignedAgentID *int64
	Search          string
	IncludeArchived bool
}

// TaskFilters - фильтры листинга задач.
type TaskFilters struct {
	Status          string
	Priority        string
	TaskType        string
	AssignedAgentID *int64
	BuyerID         *int64
	SellerID        *int64
	PropertyID      *int64
	DueBefore       *time.Time
	DueAfter        *time.Time
	Search          string // OR-группа по title/description
}

// TenantFilters - фильтры листинга арендаторов.
type TenantFilters struct {
	PropertyID *int64
	Status     string
}
