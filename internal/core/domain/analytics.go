package domain

import "fmt"

// Запасная средняя комиссия за управление, когда считаем выручку без
// учета фактического management_fee_percent (дашборд).
const FallbackManagementFeeRate = 0.08

// FormatRate считает part/total*100 и форматирует с одним знаком после
// запятой. При нулевом знаменателе возвращает "0.0" вместо деления на ноль.
func FormatRate(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

// FormatMoney форматирует денежную сумму с двумя знаками после запятой.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// StatusCount - количество записей в одном статусе.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardStats - сводка для дашборда.
type DashboardStats struct {
	Properties struct {
		Total    int           `json:"total"`
		ByStatus []StatusCount `json:"by_status"`
	} `json:"properties"`
	Buyers struct {
		Total          int    `json:"total"`
		Converted      int    `json:"converted"`
		ConversionRate string `json:"conversion_rate"`
	} `json:"buyers"`
	Sellers struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"sellers"`
	Tasks struct {
		Total          int    `json:"total"`
		Completed      int    `json:"completed"`
		Pending        int    `json:"pending"`
		Overdue        int    `json:"overdue"`
		CompletionRate string `json:"completion_rate"`
	} `json:"tasks"`
	// Оценка месячной выручки от управления: сумма аренды управляемых
	// объектов * FallbackManagementFeeRate.
	ManagementRevenue float64 `json:"management_revenue"`
}

// PriceBand - полоса цен для гистограммы продаж.
type PriceBand struct {
	Band     string  `json:"band"`
	Count    int     `json:"count"`
	MinPrice float64 `json:"min_price"`
}

// PropertyAnalytics - срезы по объектам.
type PropertyAnalytics struct {
	Total          int           `json:"total"`
	ByType         []StatusCount `json:"by_type"`
	ByCategory     []StatusCount `json:"by_category"`
	ByStatus       []StatusCount `json:"by_status"`
	AvgPricePerSqm float64       `json:"avg_price_per_sqm"`
	AvgArea        float64       `json:"avg_area"`
	TotalViewings  int           `json:"total_viewings"`
	PriceBands     []PriceBand   `json:"price_bands"`
}

// PropertyRevenue - выручка по одному управляемому объекту. Считается
// только для объектов, у которых заданы и аренда, и процент комиссии.
type PropertyRevenue struct {
	PropertyID           int64   `json:"property_id"`
	Title                string  `json:"title"`
	MonthlyRentEur       float64 `json:"monthly_rent_eur"`
	ManagementFeePercent float64 `json:"management_fee_percent"`
	MonthlyRevenue       string  `json:"monthly_revenue"`
}

// RevenueReport - точный отчет по выручке от управления: средняя
// фактическая комиссия вместо запасных 8%, месячная и годовая проекции.
type RevenueReport struct {
	ManagedProperties int               `json:"managed_properties"`
	TotalMonthlyRent  float64           `json:"total_monthly_rent"`
	AvgFeePercent     float64           `json:"avg_fee_percent"`
	MonthlyRevenue    string            `json:"monthly_revenue"`
	YearlyRevenue     string            `json:"yearly_revenue"`
	Properties        []PropertyRevenue `json:"properties"`
}

// AgentPerformance - сводка по одному агенту.
type AgentPerformance struct {
	AgentID         int64  `json:"agent_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Properties      int    `json:"properties"`
	Buyers          int    `json:"buyers"`
	ConvertedBuyers int    `json:"converted_buyers"`
	ConversionRate  string `json:"conversion_rate"`
	Sellers         int    `json:"sellers"`
	TasksTotal      int    `json:"tasks_total"`
	TasksCompleted  int    `json:"tasks_completed"`
	CompletionRate  string `json:"completion_rate"`
}
