// internal/application/usecase/recipe_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	recdom "padoca/internal/domain/recipe"
)

type RecipeUsecase struct {
	gen recdom.Generator
}

func NewRecipeUsecase(gen recdom.Generator) *RecipeUsecase {
	return &RecipeUsecase{gen: gen}
}

// Generate asks the chef model for one recipe built around the selected
// ingredient names. Exactly one upstream attempt per call; failures are
// returned for the handler to surface.
func (uc *RecipeUsecase) Generate(ctx context.Context, ownerID string, names []string) (recdom.Recipe, error) {
	if uc == nil || uc.gen == nil {
		return recdom.Recipe{}, errors.New("recipe usecase/generator is nil")
	}

	selected := normalizeNames(names)
	if len(selected) == 0 {
		return recdom.Recipe{}, recdom.ErrNoIngredients
	}

	log.Printf("[recipe_uc] Generate owner=%s ingredients=%d", strings.TrimSpace(ownerID), len(selected))

	rec, err := uc.gen.Generate(ctx, buildRecipePrompt(selected))
	if err != nil {
		log.Printf("[recipe_uc] Generate upstream error owner=%s err=%v", strings.TrimSpace(ownerID), err)
		return recdom.Recipe{}, err
	}

	log.Printf("[recipe_uc] Generate ok owner=%s title=%q", strings.TrimSpace(ownerID), rec.Title)
	return rec, nil
}

// buildRecipePrompt keeps the chef persona and the JSON contract the
// frontend renders from.
func buildRecipePrompt(names []string) string {
	return fmt.Sprintf(`Você é um Chef Gourmet especializado em padaria e confeitaria.
Crie uma receita criativa usando (mas não limitada a) estes ingredientes disponíveis: %s.
A receita deve focar em reduzir o desperdício e ser lucrativa para uma padaria.

Responda em formato JSON com a seguinte estrutura:
{
  "title": "Nome da Receita",
  "description": "Uma breve descrição atraente focada em lucro e redução de desperdício",
  "difficulty": "Fácil|Médio|Difícil",
  "ingredients": [
    "quantidade e nome do ingrediente"
  ],
  "steps": [
    "passo a passo detalhado"
  ],
  "estimatedCost": "valor em R$",
  "preparationTime": "tempo total"
}`, strings.Join(names, ", "))
}

func normalizeNames(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
