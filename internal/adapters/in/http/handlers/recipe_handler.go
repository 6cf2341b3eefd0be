// internal/adapters/in/http/handlers/recipe_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"padoca/internal/adapters/in/http/middleware"
	usecase "padoca/internal/application/usecase"
	recdom "padoca/internal/domain/recipe"
)

type RecipeHandler struct {
	UC *usecase.RecipeUsecase
}

func NewRecipeHandler(uc *usecase.RecipeUsecase) *RecipeHandler {
	return &RecipeHandler{UC: uc}
}

type generateRecipeRequest struct {
	Ingredients []string `json:"ingredients"`
}

func (h *RecipeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if path != "/recipes/generate" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req generateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rec, err := h.UC.Generate(r.Context(), uid, req.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, recdom.ErrNoIngredients):
			writeError(w, http.StatusBadRequest, "Ingredientes são necessários")
		case errors.Is(err, recdom.ErrGeneration):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			log.Printf("[recipe_handler] ERROR %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
