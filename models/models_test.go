package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIngredient_IsLowStock(t *testing.T) {
	tests := []struct {
		stock, min int64
		want       bool
	}{
		{100, 100, true},
		{99, 100, true},
		{101, 100, false},
		{0, 0, true},
	}
	for _, tt := range tests {
		ing := Ingredient{Stock: decimal.NewFromInt(tt.stock), MinStock: decimal.NewFromInt(tt.min)}
		assert.Equal(t, tt.want, ing.IsLowStock(), "stock %d min %d", tt.stock, tt.min)
	}
}

func TestEvent_Servings(t *testing.T) {
	ev := Event{
		GuestCount: 30,
		Selections: []EventSelection{{Quantity: 30}, {Quantity: 25}, {Quantity: 10}},
	}
	s := ev.Servings()
	assert.Equal(t, 65, s.TotalPortions)
	assert.Equal(t, "2.17", s.PortionsPerGuest.StringFixed(2))

	ev.GuestCount = 0
	s = ev.Servings()
	assert.Equal(t, 65, s.TotalPortions)
	assert.True(t, s.PortionsPerGuest.IsZero())
}

func TestTimestamps(t *testing.T) {
	var ts Timestamps
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ts.MarkCreated(created)
	assert.Equal(t, created, ts.CreatedAt)
	assert.Equal(t, created, ts.UpdatedAt)

	later := created.Add(time.Hour)
	ts.MarkUpdated(later)
	assert.Equal(t, created, ts.CreatedAt)
	assert.Equal(t, later, ts.UpdatedAt)
}
