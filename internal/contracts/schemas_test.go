package contracts

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-service/internal/core/domain"
)

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}

func TestValidateProperty(t *testing.T) {
	t.Run("valid sale listing", func(t *testing.T) {
		body := `{
			"title": "Two-bedroom in Mladost",
			"property_type": "sale",
			"category": "apartment",
			"address": "5 Aleksandar Malinov Blvd",
			"city": "Sofia",
			"district": "Mladost 1",
			"area": 78,
			"rooms": 3,
			"price_eur": 145000
		}`
		assert.NoError(t, Validate("property", []byte(body)))
	})

	t.Run("sale without price fails conditional requirement", func(t *testing.T) {
		body := `{
			"title": "Two-bedroom in Mladost",
			"property_type": "sale",
			"category": "apartment",
			"address": "5 Aleksandar Malinov Blvd",
			"city": "Sofia",
			"district": "Mladost 1",
			"area": 78,
			"rooms": 3
		}`
		fields := validationFields(t, Validate("property", []byte(body)))
		assert.True(t, containsSubstring(fields, "price_eur"), "fields: %v", fields)
	})

	t.Run("rent without monthly rent fails", func(t *testing.T) {
		body := `{
			"title": "Studio for rent",
			"property_type": "rent",
			"category": "apartment",
			"address": "1 Vitosha Blvd",
			"city": "Sofia",
			"district": "Center",
			"area": 40,
			"rooms": 1
		}`
		fields := validationFields(t, Validate("property", []byte(body)))
		assert.True(t, containsSubstring(fields, "monthly_rent_eur"), "fields: %v", fields)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		body := `{
			"title": "Garage",
			"property_type": "sale",
			"category": "garage",
			"address": "x",
			"city": "Sofia",
			"district": "Lozenets",
			"area": 18,
			"rooms": 1,
			"price_eur": 25000,
			"surprise": true
		}`
		err := Validate("property", []byte(body))
		require.Error(t, err)
	})

	t.Run("zero rooms is rejected", func(t *testing.T) {
		body := `{
			"title": "Garage",
			"property_type": "sale",
			"category": "garage",
			"address": "x",
			"city": "Sofia",
			"district": "Lozenets",
			"area": 18,
			"rooms": 0,
			"price_eur": 25000
		}`
		fields := validationFields(t, Validate("property", []byte(body)))
		assert.True(t, containsSubstring(fields, "rooms"), "fields: %v", fields)
	})
}

func TestValidateTask(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Validate("task", []byte(`{"title":"Call buyer","due_date":"2026-09-15","due_time":"14:30"}`)))
	})

	t.Run("bad due_time", func(t *testing.T) {
		fields := validationFields(t, Validate("task", []byte(`{"title":"Call buyer","due_date":"2026-09-15","due_time":"25:99"}`)))
		assert.True(t, containsSubstring(fields, "due_time"), "fields: %v", fields)
	})

	t.Run("missing due_date", func(t *testing.T) {
		fields := validationFields(t, Validate("task", []byte(`{"title":"Call buyer"}`)))
		assert.NotEmpty(t, fields)
	})
}

func TestValidateEntityKeyIsCaseInsensitive(t *testing.T) {
	body := `{"first_name":"Ivan","last_name":"Petrov","phone":"+359888123456"}`
	assert.NoError(t, Validate("Buyer", []byte(body)))
	assert.NoError(t, Validate("buyer", []byte(body)))
}

func TestValidateUnknownEntity(t *testing.T) {
	err := Validate("spaceship", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spaceship")
}

func TestValidateMalformedJSON(t *testing.T) {
	err := Validate("buyer", []byte(`{"first_name":`))
	require.Error(t, err)
	var ve *domain.ValidationError
	assert.False(t, errors.As(err, &ve), "битый JSON не должен оборачиваться в полевые ошибки")
}

func containsSubstring(fields []string, sub string) bool {
	for _, f := range fields {
		if strings.Contains(f, sub) {
			return true
		}
	}
	return false
}
