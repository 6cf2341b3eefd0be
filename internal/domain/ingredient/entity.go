// internal/domain/ingredient/entity.go
package ingredient

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("ingredient not found")
	ErrInvalidID       = errors.New("invalid ingredient id")
	ErrInvalidName     = errors.New("invalid ingredient name")
	ErrInvalidOwnerID  = errors.New("invalid owner id")
	ErrNotOwned        = errors.New("ingredient not owned by user")
	ErrConfirmRequired = errors.New("delete requires confirmation")
)

// CategoryFallback is applied when a record carries no category.
const CategoryFallback = "Outros"

// Well-known categories. The enumeration is open: any user-supplied
// string is a valid category, these are just the values the frontend
// ships pickers for.
const (
	CategoryFarinhas   = "Farinhas"
	CategoryLaticinios = "Laticínios"
	CategoryFrutas     = "Frutas"
)

// Ingredient is one stock entry (= one document in "ingredients").
// Quantity/Cost/MinQuantity are always non-negative; decoding coerces
// missing or malformed values to 0.
type Ingredient struct {
	ID       string
	Name     string
	Category string

	Quantity float64
	Unit     string
	Cost     float64

	// MinQuantity == 0 means no threshold is configured; such a record
	// is low-stock only when its quantity has reached 0.
	MinQuantity float64

	OwnerID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds a validated Ingredient. Negative numerics are clamped to 0,
// an empty category falls back to CategoryFallback.
func New(
	id string,
	ownerID string,
	name string,
	category string,
	quantity float64,
	unit string,
	cost float64,
	minQuantity float64,
	now time.Time,
) (Ingredient, error) {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return Ingredient{}, ErrInvalidOwnerID
	}

	nm := strings.TrimSpace(name)
	if nm == "" {
		return Ingredient{}, ErrInvalidName
	}

	cat := strings.TrimSpace(category)
	if cat == "" {
		cat = CategoryFallback
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Ingredient{
		ID:          strings.TrimSpace(id),
		Name:        nm,
		Category:    cat,
		Quantity:    clampNonNegative(quantity),
		Unit:        strings.TrimSpace(unit),
		Cost:        clampNonNegative(cost),
		MinQuantity: clampNonNegative(minQuantity),
		OwnerID:     oid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// AdjustQuantity applies an increment/decrement and clamps at 0.
func (i *Ingredient) AdjustQuantity(delta float64, now time.Time) {
	i.Quantity = clampNonNegative(i.Quantity + delta)
	if now.IsZero() {
		now = time.Now().UTC()
	}
	i.UpdatedAt = now
}

// LowStock reports whether the record has reached its threshold.
// With no configured threshold (MinQuantity == 0) only a fully
// depleted record counts as low.
func (i Ingredient) LowStock() bool {
	return i.Quantity <= i.MinQuantity
}

// EffectiveCategory returns the category used for aggregation grouping.
func (i Ingredient) EffectiveCategory() string {
	cat := strings.TrimSpace(i.Category)
	if cat == "" {
		return CategoryFallback
	}
	return cat
}

// StockValue is the monetary valuation of the record (quantity × unit cost).
func (i Ingredient) StockValue() float64 {
	return i.Quantity * i.Cost
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
