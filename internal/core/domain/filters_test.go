package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      PageSpec
		total     int
		wantPages int
	}{
		{"empty result has zero pages", PageSpec{Page: 1, Limit: 20}, 0, 0},
		{"single partial page", PageSpec{Page: 1, Limit: 20}, 7, 1},
		{"exact multiple", PageSpec{Page: 1, Limit: 20}, 40, 2},
		{"remainder rounds up", PageSpec{Page: 3, Limit: 20}, 41, 3},
		{"limit one", PageSpec{Page: 1, Limit: 1}, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.total)
			assert.Equal(t, tt.page.Page, p.Page)
			assert.Equal(t, tt.page.Limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantPages, p.Pages)
		})
	}
}

func TestPageSpecOffset(t *testing.T) {
	assert.Equal(t, 0, PageSpec{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, PageSpec{Page: 3, Limit: 20}.Offset())
}
