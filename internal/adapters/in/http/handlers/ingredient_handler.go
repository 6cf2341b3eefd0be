// internal/adapters/in/http/handlers/ingredient_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"padoca/internal/adapters/in/http/middleware"
	usecase "padoca/internal/application/usecase"
	ingdom "padoca/internal/domain/ingredient"
)

type IngredientHandler struct {
	UC *usecase.IngredientUsecase
}

func NewIngredientHandler(uc *usecase.IngredientUsecase) *IngredientHandler {
	return &IngredientHandler{UC: uc}
}

func (h *IngredientHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	log.Printf("[ingredient_handler] IN %s %s query=%q", r.Method, path, r.URL.RawQuery)

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if path == "/ingredients" {
		switch r.Method {
		case http.MethodPost:
			h.Create(w, r, uid)
			return
		case http.MethodGet:
			h.List(w, r, uid)
			return
		default:
			methodNotAllowed(w)
			return
		}
	}

	// PATCH /ingredients/{id}/quantity
	if strings.HasPrefix(path, "/ingredients/") && strings.HasSuffix(path, "/quantity") {
		if r.Method != http.MethodPatch {
			methodNotAllowed(w)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/ingredients/"), "/quantity")
		id = strings.Trim(id, "/")
		h.AdjustQuantity(w, r, uid, id)
		return
	}

	if strings.HasPrefix(path, "/ingredients/") {
		id := strings.TrimSpace(strings.TrimPrefix(path, "/ingredients/"))
		if id == "" || strings.Contains(id, "/") {
			writeError(w, http.StatusBadRequest, "invalid ingredient id")
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.GetByID(w, r, uid, id)
			return
		case http.MethodPatch:
			h.Update(w, r, uid, id)
			return
		case http.MethodDelete:
			h.Delete(w, r, uid, id)
			return
		default:
			methodNotAllowed(w)
			return
		}
	}

	log.Printf("[ingredient_handler] NOT_FOUND %s %s", r.Method, path)
	w.WriteHeader(http.StatusNotFound)
}

// ============================================================
// DTOs
// ============================================================

type ingredientDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Cost        float64   `json:"cost"`
	MinQuantity float64   `json:"minQuantity"`
	LowStock    bool      `json:"lowStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toIngredientDTO(i ingdom.Ingredient) ingredientDTO {
	return ingredientDTO{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Quantity:    i.Quantity,
		Unit:        i.Unit,
		Cost:        i.Cost,
		MinQuantity: i.MinQuantity,
		LowStock:    i.LowStock(),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

type createIngredientRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Cost        float64 `json:"cost"`
	MinQuantity float64 `json:"minQuantity"`
}

type updateIngredientRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	Cost        *float64 `json:"cost"`
	MinQuantity *float64 `json:"minQuantity"`
}

type adjustQuantityRequest struct {
	Delta float64 `json:"delta"`
}

// ============================================================
// Actions
// ============================================================

func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request, uid string) {
	var req createIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := h.UC.Create(r.Context(), uid, usecase.CreateIngredientInput{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Cost:        req.Cost,
		MinQuantity: req.MinQuantity,
	})
	if err != nil {
		h.writeUCError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toIngredientDTO(created))
}

func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request, uid string) {
	items, err := h.UC.ListByOwner(r.Context(), uid)
	if err != nil {
		h.writeUCError(w, err)
		return
	}

	// ?search= filters by name, same contains-match the estoque page does
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

	out := make([]ingredientDTO, 0, len(items))
	for _, it := range items {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		out = append(out, toIngredientDTO(it))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *IngredientHandler) GetByID(w http.ResponseWriter, r *http.Request, uid, id string) {
	ing, err := h.UC.GetByID(r.Context(), uid, id)
	if err != nil {
		h.writeUCError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIngredientDTO(ing))
}

func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request, uid, id string) {
	var req updateIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	updated, err := h.UC.Update(r.Context(), uid, id, usecase.UpdateIngredientInput{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Cost:        req.Cost,
		MinQuantity: req.MinQuantity,
	})
	if err != nil {
		h.writeUCError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIngredientDTO(updated))
}

func (h *IngredientHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request, uid, id string) {
	var req adjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	updated, err := h.UC.AdjustQuantity(r.Context(), uid, id, req.Delta)
	if err != nil {
		h.writeUCError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIngredientDTO(updated))
}

func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request, uid, id string) {
	confirmed := parseBoolParam(r, "confirm")

	if err := h.UC.Delete(r.Context(), uid, id, confirmed); err != nil {
		h.writeUCError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *IngredientHandler) writeUCError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ingdom.ErrNotFound):
		writeError(w, http.StatusNotFound, "ingredient not found")
	case errors.Is(err, ingdom.ErrConfirmRequired):
		writeError(w, http.StatusConflict, "delete requires ?confirm=true")
	case errors.Is(err, ingdom.ErrInvalidName),
		errors.Is(err, ingdom.ErrInvalidID),
		errors.Is(err, ingdom.ErrInvalidOwnerID):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[ingredient_handler] ERROR %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
