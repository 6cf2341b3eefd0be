// internal/domain/recipe/entity.go
package recipe

import "errors"

var (
	ErrNoIngredients = errors.New("ingredients are required")
	ErrGeneration    = errors.New("recipe generation failed")
)

// Difficulty values as the chat model returns them (PT-BR wire values,
// mapped Easy/Medium/Hard).
const (
	DifficultyEasy   = "Fácil"
	DifficultyMedium = "Médio"
	DifficultyHard   = "Difícil"
)

// Recipe is the structured result of one generation request.
type Recipe struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Difficulty      string   `json:"difficulty"`
	Ingredients     []string `json:"ingredients"`
	Steps           []string `json:"steps"`
	EstimatedCost   string   `json:"estimatedCost"`
	PreparationTime string   `json:"preparationTime"`
}
