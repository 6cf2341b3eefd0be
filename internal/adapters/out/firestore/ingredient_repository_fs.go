// internal/adapters/out/firestore/ingredient_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	ingdom "padoca/internal/domain/ingredient"
)

// IngredientRepositoryFS implements ingredient.Repository with Firestore.
type IngredientRepositoryFS struct {
	Client *firestore.Client
}

func NewIngredientRepositoryFS(client *firestore.Client) *IngredientRepositoryFS {
	return &IngredientRepositoryFS{Client: client}
}

func (r *IngredientRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("ingredients")
}

// Compile-time check
var _ ingdom.Repository = (*IngredientRepositoryFS)(nil)

// =======================
// Queries
// =======================

func (r *IngredientRepositoryFS) GetByID(ctx context.Context, id string) (ingdom.Ingredient, error) {
	if r.Client == nil {
		return ingdom.Ingredient{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return ingdom.Ingredient{}, ingdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ingdom.Ingredient{}, ingdom.ErrNotFound
		}
		return ingdom.Ingredient{}, err
	}

	return docToIngredient(snap), nil
}

func (r *IngredientRepositoryFS) ListByOwner(ctx context.Context, ownerID string) ([]ingdom.Ingredient, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return nil, ingdom.ErrInvalidOwnerID
	}

	it := r.ownerQuery(oid).Documents(ctx)
	defer it.Stop()

	out := []ingdom.Ingredient{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, docToIngredient(doc))
	}
	return out, nil
}

// =======================
// Mutations
// =======================

func (r *IngredientRepositoryFS) Create(ctx context.Context, i ingdom.Ingredient) (ingdom.Ingredient, error) {
	if r.Client == nil {
		return ingdom.Ingredient{}, errors.New("firestore client is nil")
	}

	if strings.TrimSpace(i.ID) == "" {
		i.ID = uuid.NewString()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}
	i.UpdatedAt = i.CreatedAt

	if _, err := r.col().Doc(i.ID).Set(ctx, ingredientToDoc(i)); err != nil {
		return ingdom.Ingredient{}, err
	}
	return i, nil
}

func (r *IngredientRepositoryFS) Update(ctx context.Context, i ingdom.Ingredient) (ingdom.Ingredient, error) {
	if r.Client == nil {
		return ingdom.Ingredient{}, errors.New("firestore client is nil")
	}

	id := strings.TrimSpace(i.ID)
	if id == "" {
		return ingdom.Ingredient{}, ingdom.ErrInvalidID
	}
	i.UpdatedAt = time.Now().UTC()

	if _, err := r.col().Doc(id).Set(ctx, ingredientToDoc(i)); err != nil {
		if status.Code(err) == codes.NotFound {
			return ingdom.Ingredient{}, ingdom.ErrNotFound
		}
		return ingdom.Ingredient{}, err
	}
	return i, nil
}

func (r *IngredientRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return ingdom.ErrInvalidID
	}

	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ingdom.ErrNotFound
		}
		return err
	}
	return nil
}

// =======================
// Live subscription
// =======================

// Watch opens a snapshot listener scoped to ownerID. Firestore delivers
// a full query snapshot on attach and after every mutation, so each
// emission is the complete current set, never a diff. The channel is
// closed when ctx is cancelled or the listener dies.
func (r *IngredientRepositoryFS) Watch(ctx context.Context, ownerID string) (<-chan []ingdom.Ingredient, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return nil, ingdom.ErrInvalidOwnerID
	}

	snaps := r.ownerQuery(oid).Snapshots(ctx)
	ch := make(chan []ingdom.Ingredient, 1)

	go func() {
		defer close(ch)
		defer snaps.Stop()

		for {
			qsnap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				log.Printf("[ingredient_repo_fs] watch error owner=%s err=%v", oid, err)
				return
			}

			docs, err := qsnap.Documents.GetAll()
			if err != nil {
				log.Printf("[ingredient_repo_fs] watch read error owner=%s err=%v", oid, err)
				return
			}

			set := make([]ingdom.Ingredient, 0, len(docs))
			for _, doc := range docs {
				set = append(set, docToIngredient(doc))
			}

			select {
			case ch <- set:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (r *IngredientRepositoryFS) ownerQuery(ownerID string) firestore.Query {
	return r.col().Where("ownerId", "==", ownerID)
}

// =======================
// Mapping
// =======================

func ingredientToDoc(i ingdom.Ingredient) map[string]interface{} {
	return map[string]interface{}{
		"name":        i.Name,
		"category":    i.Category,
		"quantity":    i.Quantity,
		"unit":        i.Unit,
		"cost":        i.Cost,
		"minQuantity": i.MinQuantity,
		"ownerId":     i.OwnerID,
		"createdAt":   i.CreatedAt,
		"updatedAt":   i.UpdatedAt,
	}
}

// docToIngredient decodes leniently: missing or mistyped numeric fields
// become 0, missing strings become "". A malformed document must never
// break an emission.
func docToIngredient(doc *firestore.DocumentSnapshot) ingdom.Ingredient {
	data := doc.Data()

	getStr := func(key string) string {
		if v, ok := data[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}
	getNum := func(key string) float64 {
		switch v := data[key].(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		case int:
			return float64(v)
		}
		return 0
	}
	getTime := func(key string) time.Time {
		if v, ok := data[key].(time.Time); ok {
			return v.UTC()
		}
		return time.Time{}
	}

	var ing ingdom.Ingredient

	ing.ID = doc.Ref.ID
	ing.Name = getStr("name")
	ing.Category = getStr("category")
	ing.Quantity = getNum("quantity")
	ing.Unit = getStr("unit")
	ing.Cost = getNum("cost")
	ing.MinQuantity = getNum("minQuantity")
	ing.OwnerID = getStr("ownerId")
	ing.CreatedAt = getTime("createdAt")
	ing.UpdatedAt = getTime("updatedAt")

	return ing
}
