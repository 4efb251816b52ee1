package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPropertyValidatePricing(t *testing.T) {
	price := 120000.0
	rent := 650.0
	fee := 8.0

	tests := []struct {
		name     string
		property Property
		wantErrs int
	}{
		{
			name:     "sale with price is valid",
			property: Property{PropertyType: PropertyTypeSale, PriceEur: &price},
			wantErrs: 0,
		},
		{
			name:     "sale without price",
			property: Property{PropertyType: PropertyTypeSale},
			wantErrs: 1,
		},
		{
			name:     "sale with rent and fee set",
			property: Property{PropertyType: PropertyTypeSale, PriceEur: &price, MonthlyRentEur: &rent, ManagementFeePercent: &fee},
			wantErrs: 2,
		},
		{
			name:     "rent with monthly rent is valid",
			property: Property{PropertyType: PropertyTypeRent, MonthlyRentEur: &rent},
			wantErrs: 0,
		},
		{
			name:     "rent with sale price",
			property: Property{PropertyType: PropertyTypeRent, MonthlyRentEur: &rent, PriceEur: &price},
			wantErrs: 1,
		},
		{
			name:     "managed with rent and fee is valid",
			property: Property{PropertyType: PropertyTypeManaged, MonthlyRentEur: &rent, ManagementFeePercent: &fee},
			wantErrs: 0,
		},
		{
			name:     "managed without rent",
			property: Property{PropertyType: PropertyTypeManaged},
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.property.ValidatePricing(), tt.wantErrs)
		})
	}
}

func TestTenantValidateContract(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	valid := Tenant{ContractStart: start, ContractEnd: start.AddDate(1, 0, 0)}
	assert.Empty(t, valid.ValidateContract())

	inverted := Tenant{ContractStart: start, ContractEnd: start.AddDate(0, -1, 0)}
	assert.Len(t, inverted.ValidateContract(), 1)

	sameDay := Tenant{ContractStart: start, ContractEnd: start}
	assert.Len(t, sameDay.ValidateContract(), 1)
}

func TestPropertyPricePerSqm(t *testing.T) {
	price := 100000.0

	p := Property{PriceEur: &price, Area: 80}
	got := p.PricePerSqm()
	assert.NotNil(t, got)
	assert.InDelta(t, 1250.0, *got, 0.001)

	noPrice := Property{Area: 80}
	assert.Nil(t, noPrice.PricePerSqm())

	zeroArea := Property{PriceEur: &price}
	assert.Nil(t, zeroArea.PricePerSqm())
}

func TestNewValidationError(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))
	assert.NoError(t, NewValidationError([]string{}))

	err := NewValidationError([]string{"title: required"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "title: required")
}
