package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	ingdom "padoca/internal/domain/ingredient"
)

func TestRecomputeEmptySet(t *testing.T) {
	snap := Recompute(nil)
	require.Equal(t, 0, snap.TotalItems)
	require.Equal(t, 0, snap.LowStock)
	require.Equal(t, 0.0, snap.TotalValue)
	require.Empty(t, snap.Categories)
	require.Equal(t, StateOK, snap.State)

	// idempotent empty case
	require.Equal(t, snap, Recompute([]ingdom.Ingredient{}))
}

func TestRecomputeAggregates(t *testing.T) {
	records := []ingdom.Ingredient{
		{Name: "Farinha de Trigo", Category: "Farinhas", Quantity: 50, Cost: 4.5},
		{Name: "Chocolate em Pó", Category: "Outros", Quantity: 2, Cost: 25, MinQuantity: 5},
	}

	snap := Recompute(records)
	require.Equal(t, 2, snap.TotalItems)
	require.Equal(t, 1, snap.LowStock)
	require.InDelta(t, 275.0, snap.TotalValue, 1e-9) // 50*4.5 + 2*25
	require.Equal(t, []CategoryCount{
		{Name: "Farinhas", Count: 1},
		{Name: "Outros", Count: 1},
	}, snap.Categories)
}

func TestRecomputeThresholdDefaulting(t *testing.T) {
	// no threshold + stocked is never low; no threshold + depleted is low;
	// at threshold is low
	snap := Recompute([]ingdom.Ingredient{
		{Name: "a", Quantity: 5},
		{Name: "b", Quantity: 0},
		{Name: "c", Quantity: 10, MinQuantity: 10},
	})
	require.Equal(t, 2, snap.LowStock)
}

func TestRecomputeCategoryFallback(t *testing.T) {
	snap := Recompute([]ingdom.Ingredient{
		{Name: "a"},
		{Name: "b", Category: "  "},
		{Name: "c", Category: "Frutas"},
	})
	require.Equal(t, []CategoryCount{
		{Name: ingdom.CategoryFallback, Count: 2},
		{Name: "Frutas", Count: 1},
	}, snap.Categories)
}

func TestRecomputeCountsAreOrderIndependent(t *testing.T) {
	a := []ingdom.Ingredient{
		{Name: "1", Category: "Farinhas", Quantity: 1, Cost: 2},
		{Name: "2", Category: "Frutas", Quantity: 3, Cost: 4},
		{Name: "3", Category: "Farinhas", Quantity: 5, Cost: 6},
	}
	b := []ingdom.Ingredient{a[2], a[0], a[1]}

	snapA := Recompute(a)
	snapB := Recompute(b)

	require.Equal(t, snapA.TotalItems, snapB.TotalItems)
	require.Equal(t, snapA.LowStock, snapB.LowStock)
	require.InDelta(t, snapA.TotalValue, snapB.TotalValue, 1e-9)

	toMap := func(cc []CategoryCount) map[string]int {
		m := map[string]int{}
		for _, c := range cc {
			m[c.Name] = c.Count
		}
		return m
	}
	require.Equal(t, toMap(snapA.Categories), toMap(snapB.Categories))
}

func TestRecomputeTotalsMatchInputSize(t *testing.T) {
	records := make([]ingdom.Ingredient, 17)
	for i := range records {
		records[i] = ingdom.Ingredient{Name: "x", Quantity: float64(i), Cost: 1}
	}
	require.Equal(t, len(records), Recompute(records).TotalItems)
}
