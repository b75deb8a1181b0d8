package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"allowed field passes", "order_number", "order_number"},
		{"empty falls back", "", "created_at"},
		{"whitespace falls back", "   ", "created_at"},
		{"unknown column falls back", "password_hash", "created_at"},
		{"subquery falls back", "(SELECT 1)", "created_at"},
		{"stacked statement falls back", "id; DROP TABLE sales_orders--", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected,
				ValidateSortField(tt.input, SalesOrderSortFields, "created_at"))
		})
	}
}

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(" DESC "))
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(""))
	assert.Equal(t, "ASC", ValidateSortOrder("desc; DROP TABLE products"))
}
