// internal/application/stats/snapshot.go
package stats

import (
	ingdom "padoca/internal/domain/ingredient"
)

// State tells consumers whether the snapshot reflects live data.
type State string

const (
	// StateOK: snapshot was computed from the latest emission.
	StateOK State = "ok"
	// StateUnavailable: the watch stream failed; counters hold the last
	// good values but must not be presented as current.
	StateUnavailable State = "unavailable"
)

// CategoryCount is one entry of the category breakdown. The JSON shape
// ({name, value}) is what the dashboard pie chart consumes.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"value"`
}

// Snapshot is the derived aggregate over the full record set of one
// user at a point in time. It is never persisted and never patched
// incrementally: every store emission produces a fresh one.
type Snapshot struct {
	TotalItems int             `json:"totalItems"`
	LowStock   int             `json:"lowStock"`
	TotalValue float64         `json:"totalValue"`
	Categories []CategoryCount `json:"categories"`

	State State `json:"state"`
}

// Recompute derives a Snapshot from the complete record set. Pure and
// deterministic: same records in, same snapshot out, regardless of
// record order (category keys keep first-encounter order).
//
// Per record:
//   - TotalItems +1
//   - TotalValue += quantity × cost
//   - LowStock +1 when quantity <= minQuantity (minQuantity defaults to
//     0, so an unthresholded record is low only at zero quantity)
//   - Categories[category] +1, empty category grouped under "Outros"
func Recompute(records []ingdom.Ingredient) Snapshot {
	snap := Snapshot{
		Categories: []CategoryCount{},
		State:      StateOK,
	}

	index := make(map[string]int, len(records))

	for _, r := range records {
		snap.TotalItems++
		snap.TotalValue += r.StockValue()

		if r.LowStock() {
			snap.LowStock++
		}

		cat := r.EffectiveCategory()
		if pos, ok := index[cat]; ok {
			snap.Categories[pos].Count++
		} else {
			index[cat] = len(snap.Categories)
			snap.Categories = append(snap.Categories, CategoryCount{Name: cat, Count: 1})
		}
	}

	return snap
}
