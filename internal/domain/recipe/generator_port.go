// internal/domain/recipe/generator_port.go
package recipe

import "context"

// Generator is the outbound port for the recipe-generation collaborator.
// Implementations send exactly one request per call; any retry policy is
// the caller's decision (currently: none).
type Generator interface {
	Generate(ctx context.Context, prompt string) (Recipe, error)
}
