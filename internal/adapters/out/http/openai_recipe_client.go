// internal/adapters/out/http/openai_recipe_client.go
package httpout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	recdom "padoca/internal/domain/recipe"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"

	chefSystemMessage = "Você é um chef assistente expert especializado em padarias inteligentes."
)

// OpenAIRecipeClient calls the chat-completions endpoint in JSON mode.
// One request per Generate call, no retry.
type OpenAIRecipeClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ recdom.Generator = (*OpenAIRecipeClient)(nil)

// NewOpenAIRecipeClient builds the client. Empty baseURL/model fall
// back to the OpenAI defaults.
func NewOpenAIRecipeClient(apiKey, baseURL, model string) *OpenAIRecipeClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIRecipeClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAIRecipeClient) Generate(ctx context.Context, prompt string) (recdom.Recipe, error) {
	if c == nil {
		return recdom.Recipe{}, fmt.Errorf("openai recipe client is nil")
	}
	if c.apiKey == "" {
		return recdom.Recipe{}, fmt.Errorf("%w: OPENAI_API_KEY is not configured", recdom.ErrGeneration)
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: chefSystemMessage},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return recdom.Recipe{}, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return recdom.Recipe{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return recdom.Recipe{}, fmt.Errorf("%w: %v", recdom.ErrGeneration, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return recdom.Recipe{}, fmt.Errorf("%w: read response: %v", recdom.ErrGeneration, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return recdom.Recipe{}, fmt.Errorf("%w: decode response: %v", recdom.ErrGeneration, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return recdom.Recipe{}, fmt.Errorf("%w: status=%d: %s", recdom.ErrGeneration, res.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return recdom.Recipe{}, fmt.Errorf("%w: empty choices", recdom.ErrGeneration)
	}

	var rec recdom.Recipe
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &rec); err != nil {
		return recdom.Recipe{}, fmt.Errorf("%w: decode recipe json: %v", recdom.ErrGeneration, err)
	}
	return rec, nil
}
