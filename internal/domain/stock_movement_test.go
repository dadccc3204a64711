package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetstock/internal/domain"
)

func TestParseMovementType(t *testing.T) {
	for _, mt := range domain.MovementTypes {
		got, ok := domain.ParseMovementType(string(mt))
		assert.True(t, ok)
		assert.Equal(t, mt, got)
	}

	got, ok := domain.ParseMovementType(" purchase ")
	assert.True(t, ok)
	assert.Equal(t, domain.MovementPurchase, got)

	for _, bad := range []string{"", "add", "remove", "set", "PURCHASES"} {
		_, ok := domain.ParseMovementType(bad)
		assert.False(t, ok, bad)
	}
}

func TestResultingStock(t *testing.T) {
	tests := []struct {
		name    string
		current int
		delta   int
		want    int64
		check   domain.StockCheck
	}{
		{"increase", 10, 5, 15, domain.StockOK},
		{"down to zero", 10, -10, 0, domain.StockOK},
		{"negative", 10, -15, -5, domain.StockNegative},
		{"up to max", domain.MaxStock - 1, 1, domain.MaxStock, domain.StockOK},
		{"above int32", domain.MaxStock, 1, domain.MaxStock + 1, domain.StockOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, check := domain.ResultingStock(tt.current, tt.delta)
			assert.Equal(t, tt.want, next)
			assert.Equal(t, tt.check, check)
		})
	}
}

func TestResultingStock_HugeIncreaseIsNeverNegative(t *testing.T) {
	_, check := domain.ResultingStock(10, math.MaxInt)
	assert.Equal(t, domain.StockOverflow, check)
}

func TestTotalCost(t *testing.T) {
	assert.Nil(t, domain.TotalCost(nil, 5))

	cost := decimal.RequireFromString("2.50")
	total := domain.TotalCost(&cost, -4)
	require.NotNil(t, total)
	assert.True(t, total.Equal(decimal.NewFromInt(10)), total.String())
}

func TestNewStockMovement_PurchaseScenario(t *testing.T) {
	cost := decimal.NewFromInt(2)
	now := time.Now()
	adj := domain.StockAdjustment{
		PartID:    "part-1",
		Quantity:  5,
		Type:      domain.MovementPurchase,
		Reason:    "purchase",
		Cost:      &cost,
		CreatedBy: "user-1",
	}

	m := domain.NewStockMovement("mov-1", adj, 10, now)

	assert.Equal(t, 10, m.PreviousStock)
	assert.Equal(t, 15, m.NewStock)
	assert.Equal(t, 5, m.Quantity)
	require.NotNil(t, m.TotalCost)
	assert.True(t, m.TotalCost.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "user-1", m.CreatedBy)

	applied := m.Applied()
	assert.Equal(t, domain.AppliedAdjustment{
		Quantity: 5, Type: domain.MovementPurchase, Reason: "purchase", PreviousStock: 10, NewStock: 15,
	}, applied)
}

func TestMovementChain_Invariant(t *testing.T) {
	initial := 7
	deltas := []int{5, -3, -9, 4, 10, -14}

	current := initial
	sum := 0
	var last domain.StockMovement
	for i, d := range deltas {
		m := domain.NewStockMovement("m", domain.StockAdjustment{Quantity: d, Type: domain.MovementAdjustment}, current, time.Now())
		require.GreaterOrEqual(t, m.NewStock, 0, "step %d", i)
		assert.Equal(t, m.PreviousStock+m.Quantity, m.NewStock)
		current = m.NewStock
		sum += d
		last = m
	}

	assert.Equal(t, initial+sum, current)
	assert.Equal(t, current, last.NewStock)
}
