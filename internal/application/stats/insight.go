// internal/application/stats/insight.go
package stats

// SuggestionState identifies which arm of the insight rule fired.
type SuggestionState string

const (
	SuggestionEmpty   SuggestionState = "empty"
	SuggestionLow     SuggestionState = "low_stock"
	SuggestionHealthy SuggestionState = "healthy"
)

// Suggestion is the dashboard's "Sugestão do Dia" card: a message plus
// the route the call-to-action points at.
type Suggestion struct {
	State   SuggestionState `json:"state"`
	Message string          `json:"message"`
	Action  string          `json:"action"`
	Target  string          `json:"target"`
}

// Insight maps a snapshot onto one of three mutually exclusive
// suggestions, evaluated in priority order: empty inventory, then low
// stock present, then healthy. Pure function of (TotalItems, LowStock).
func Insight(s Snapshot) Suggestion {
	switch {
	case s.TotalItems == 0:
		return Suggestion{
			State:   SuggestionEmpty,
			Message: "Seu estoque está vazio. Comece adicionando farinha e outros insumos básicos no controle de estoque!",
			Action:  "Ir para Estoque",
			Target:  "/estoque",
		}
	case s.LowStock > 0:
		return Suggestion{
			State:   SuggestionLow,
			Message: "Você tem itens com estoque baixo. Considere utilizar o Assistente Criativo para criar receitas com o que resta!",
			Action:  "Falar com Chef",
			Target:  "/chef",
		}
	default:
		return Suggestion{
			State:   SuggestionHealthy,
			Message: "Seu estoque está saudável. É um ótimo momento para testar uma nova receita de pão artesanal.",
			Action:  "Falar com Chef",
			Target:  "/chef",
		}
	}
}
