package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	recdom "padoca/internal/domain/recipe"
)

type fakeGenerator struct {
	prompt string
	rec    recdom.Recipe
	err    error
	calls  int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (recdom.Recipe, error) {
	f.calls++
	f.prompt = prompt
	return f.rec, f.err
}

func TestRecipeGenerateRejectsEmptySelection(t *testing.T) {
	gen := &fakeGenerator{}
	uc := NewRecipeUsecase(gen)

	_, err := uc.Generate(context.Background(), "user-1", nil)
	require.ErrorIs(t, err, recdom.ErrNoIngredients)

	_, err = uc.Generate(context.Background(), "user-1", []string{"  ", ""})
	require.ErrorIs(t, err, recdom.ErrNoIngredients)

	require.Zero(t, gen.calls)
}

func TestRecipeGenerateBuildsPrompt(t *testing.T) {
	gen := &fakeGenerator{rec: recdom.Recipe{Title: "Bolo de Banana", Difficulty: recdom.DifficultyEasy}}
	uc := NewRecipeUsecase(gen)

	rec, err := uc.Generate(context.Background(), "user-1", []string{" Bananas Maduras ", "Farinha de Trigo", ""})
	require.NoError(t, err)
	require.Equal(t, "Bolo de Banana", rec.Title)
	require.Equal(t, 1, gen.calls)

	require.Contains(t, gen.prompt, "Bananas Maduras, Farinha de Trigo")
	require.Contains(t, gen.prompt, "Chef Gourmet")
	require.Contains(t, gen.prompt, `"difficulty": "Fácil|Médio|Difícil"`)
}

func TestRecipeGenerateSingleAttempt(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream down")}
	uc := NewRecipeUsecase(gen)

	_, err := uc.Generate(context.Background(), "user-1", []string{"Ovos"})
	require.Error(t, err)
	require.Equal(t, 1, gen.calls) // no retry
}
