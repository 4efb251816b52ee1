package domain

// ValidatePricing проверяет кросс-полевое правило режима ценообразования,
// которое не выражается одной JSON-схемой до конца: ровно одно из полей
// цены должно быть заполнено в зависимости от типа сделки.
func (p *Property) ValidatePricing() []string {
	var errs []string
	switch p.PropertyType {
	case PropertyTypeSale:
		if p.PriceEur == nil {
			errs = append(errs, "price_eur: required for sale properties")
		}
		if p.MonthlyRentEur != nil {
			errs = append(errs, "monthly_rent_eur: must be empty for sale properties")
		}
		if p.ManagementFeePercent != nil {
			errs = append(errs, "management_fee_percent: only allowed for managed properties")
		}
	case PropertyTypeRent:
		if p.MonthlyRentEur == nil {
			errs = append(errs, "monthly_rent_eur: required for rent properties")
		}
		if p.PriceEur != nil {
			errs = append(errs, "price_eur: must be empty for rent properties")
		}
		if p.ManagementFeePercent != nil {
			errs = append(errs, "management_fee_percent: only allowed for managed properties")
		}
	case PropertyTypeManaged:
		if p.MonthlyRentEur == nil {
			errs = append(errs, "monthly_rent_eur: required for managed properties")
		}
		if p.PriceEur != nil {
			errs = append(errs, "price_eur: must be empty for managed properties")
		}
	}
	return errs
}

// ValidateContract проверяет инвариант дат контракта аренды.
func (t *Tenant) ValidateContract() []string {
	if !t.ContractStart.Before(t.ContractEnd) {
		return []string{"contract_start: must be before contract_end"}
	}
	return nil
}
