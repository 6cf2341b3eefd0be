// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"padoca/internal/adapters/in/http/handlers"
	"padoca/internal/adapters/in/http/middleware"
	"padoca/internal/application/stats"
	usecase "padoca/internal/application/usecase"
)

// RouterDeps collects the dependencies injected from the DI container.
type RouterDeps struct {
	FirebaseAuth *middleware.FirebaseAuthClient

	IngredientUC  *usecase.IngredientUsecase
	RecipeUC      *usecase.RecipeUsecase
	StatsRegistry *stats.Registry
}

// NewRouter mounts every endpoint whose dependencies exist. Everything
// except /healthz sits behind Firebase auth.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	auth := &middleware.AuthMiddleware{FirebaseAuth: deps.FirebaseAuth}

	if deps.IngredientUC != nil {
		h := handlers.NewIngredientHandler(deps.IngredientUC)
		mux.Handle("/ingredients", auth.Handler(h))
		mux.Handle("/ingredients/", auth.Handler(h))
	}

	if deps.StatsRegistry != nil {
		h := handlers.NewDashboardHandler(deps.StatsRegistry)
		mux.Handle("/dashboard/stats", auth.Handler(h))
		mux.Handle("/dashboard/stats/", auth.Handler(h))
	}

	if deps.RecipeUC != nil {
		h := handlers.NewRecipeHandler(deps.RecipeUC)
		mux.Handle("/recipes/generate", auth.Handler(h))
	}

	return middleware.Recover(mux)
}
