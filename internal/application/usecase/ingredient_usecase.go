// internal/application/usecase/ingredient_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	ingdom "padoca/internal/domain/ingredient"
)

type IngredientUsecase struct {
	repo ingdom.Repository
}

func NewIngredientUsecase(repo ingdom.Repository) *IngredientUsecase {
	return &IngredientUsecase{repo: repo}
}

// CreateIngredientInput carries the form fields of "Novo Ingrediente".
type CreateIngredientInput struct {
	Name        string
	Category    string
	Quantity    float64
	Unit        string
	Cost        float64
	MinQuantity float64
}

// UpdateIngredientInput carries direct field edits. Nil fields are left
// untouched.
type UpdateIngredientInput struct {
	Name        *string
	Category    *string
	Quantity    *float64
	Unit        *string
	Cost        *float64
	MinQuantity *float64
}

func (uc *IngredientUsecase) Create(ctx context.Context, ownerID string, in CreateIngredientInput) (ingdom.Ingredient, error) {
	if uc == nil || uc.repo == nil {
		return ingdom.Ingredient{}, errors.New("ingredient usecase/repo is nil")
	}

	ing, err := ingdom.New(
		"", // repo assigns the id
		ownerID,
		in.Name,
		in.Category,
		in.Quantity,
		in.Unit,
		in.Cost,
		in.MinQuantity,
		time.Now().UTC(),
	)
	if err != nil {
		return ingdom.Ingredient{}, err
	}

	created, err := uc.repo.Create(ctx, ing)
	if err != nil {
		log.Printf("[ingredient_uc] Create error owner=%s name=%q err=%v", ing.OwnerID, ing.Name, err)
		return ingdom.Ingredient{}, err
	}

	log.Printf("[ingredient_uc] Create ok id=%s owner=%s name=%q", created.ID, created.OwnerID, created.Name)
	return created, nil
}

func (uc *IngredientUsecase) GetByID(ctx context.Context, ownerID, id string) (ingdom.Ingredient, error) {
	if uc == nil || uc.repo == nil {
		return ingdom.Ingredient{}, errors.New("ingredient usecase/repo is nil")
	}
	return uc.getOwned(ctx, ownerID, id)
}

func (uc *IngredientUsecase) ListByOwner(ctx context.Context, ownerID string) ([]ingdom.Ingredient, error) {
	if uc == nil || uc.repo == nil {
		return nil, errors.New("ingredient usecase/repo is nil")
	}

	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return nil, ingdom.ErrInvalidOwnerID
	}
	return uc.repo.ListByOwner(ctx, oid)
}

func (uc *IngredientUsecase) Update(ctx context.Context, ownerID, id string, in UpdateIngredientInput) (ingdom.Ingredient, error) {
	if uc == nil || uc.repo == nil {
		return ingdom.Ingredient{}, errors.New("ingredient usecase/repo is nil")
	}

	ing, err := uc.getOwned(ctx, ownerID, id)
	if err != nil {
		return ingdom.Ingredient{}, err
	}

	if in.Name != nil {
		nm := strings.TrimSpace(*in.Name)
		if nm == "" {
			return ingdom.Ingredient{}, ingdom.ErrInvalidName
		}
		ing.Name = nm
	}
	if in.Category != nil {
		cat := strings.TrimSpace(*in.Category)
		if cat == "" {
			cat = ingdom.CategoryFallback
		}
		ing.Category = cat
	}
	if in.Quantity != nil {
		ing.Quantity = clampZero(*in.Quantity)
	}
	if in.Unit != nil {
		ing.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Cost != nil {
		ing.Cost = clampZero(*in.Cost)
	}
	if in.MinQuantity != nil {
		ing.MinQuantity = clampZero(*in.MinQuantity)
	}
	ing.UpdatedAt = time.Now().UTC()

	updated, err := uc.repo.Update(ctx, ing)
	if err != nil {
		log.Printf("[ingredient_uc] Update error id=%s owner=%s err=%v", ing.ID, ing.OwnerID, err)
		return ingdom.Ingredient{}, err
	}
	return updated, nil
}

// AdjustQuantity applies the +/- stepper from the estoque table. The
// result is clamped at 0, never negative.
func (uc *IngredientUsecase) AdjustQuantity(ctx context.Context, ownerID, id string, delta float64) (ingdom.Ingredient, error) {
	if uc == nil || uc.repo == nil {
		return ingdom.Ingredient{}, errors.New("ingredient usecase/repo is nil")
	}

	ing, err := uc.getOwned(ctx, ownerID, id)
	if err != nil {
		return ingdom.Ingredient{}, err
	}

	ing.AdjustQuantity(delta, time.Now().UTC())

	updated, err := uc.repo.Update(ctx, ing)
	if err != nil {
		log.Printf("[ingredient_uc] AdjustQuantity error id=%s delta=%v err=%v", ing.ID, delta, err)
		return ingdom.Ingredient{}, err
	}

	log.Printf("[ingredient_uc] AdjustQuantity ok id=%s delta=%v quantity=%v", updated.ID, delta, updated.Quantity)
	return updated, nil
}

// Delete removes a record. The confirmation gate is part of the
// contract: the store mutation is never issued unconfirmed.
func (uc *IngredientUsecase) Delete(ctx context.Context, ownerID, id string, confirmed bool) error {
	if uc == nil || uc.repo == nil {
		return errors.New("ingredient usecase/repo is nil")
	}

	if !confirmed {
		return ingdom.ErrConfirmRequired
	}

	ing, err := uc.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, ing.ID); err != nil {
		log.Printf("[ingredient_uc] Delete error id=%s owner=%s err=%v", ing.ID, ing.OwnerID, err)
		return err
	}

	log.Printf("[ingredient_uc] Delete ok id=%s owner=%s", ing.ID, ing.OwnerID)
	return nil
}

// getOwned fetches a record and enforces single-owner scoping. A record
// owned by someone else surfaces as not-found so ids do not leak.
func (uc *IngredientUsecase) getOwned(ctx context.Context, ownerID, id string) (ingdom.Ingredient, error) {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return ingdom.Ingredient{}, ingdom.ErrInvalidOwnerID
	}

	rid := strings.TrimSpace(id)
	if rid == "" {
		return ingdom.Ingredient{}, ingdom.ErrInvalidID
	}

	ing, err := uc.repo.GetByID(ctx, rid)
	if err != nil {
		return ingdom.Ingredient{}, err
	}
	if ing.OwnerID != oid {
		return ingdom.Ingredient{}, ingdom.ErrNotFound
	}
	return ing, nil
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
