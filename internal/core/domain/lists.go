package domain

// Результаты списочных операций: страница данных плюс блок пагинации,
// посчитанный под тем же набором предикатов.

type PropertyList struct {
	Items      []Property
	Pagination Pagination
}

type BuyerList struct {
	Items      []Buyer
	Pagination Pagination
}

type SellerList struct {
	Items      []Seller
	Pagination Pagination
}

type TenantList struct {
	Items      []Tenant
	Pagination Pagination
}

type TaskList struct {
	Items      []Task
	Pagination Pagination
}
