package advisor

import (
	"context"
	"fmt"
	"net/http"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
	llmx "github.com/tanpawarit/krishi-mitra/agent/llm"
	openrouterx "github.com/tanpawarit/krishi-mitra/pkg/openrouter"
	"google.golang.org/genai"
)

// New builds the conversational advisor for the configured provider.
func New(ctx context.Context, cfg llmx.Config) (contractx.Advisor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.ProviderName() {
	case llmx.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: create gemini client: %v", contractx.ErrCollaboratorUnavailable, err)
		}
		return newGemini(client.Models, cfg.ModelName(), cfg.Temperature), nil

	case llmx.ProviderOpenRouter:
		orCfg := cfg.OpenRouter()
		chatModel, err := orCfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create openrouter model: %v", contractx.ErrCollaboratorUnavailable, err)
		}
		return newChatModelAdvisor(chatModel), nil

	case llmx.ProviderOpenAI:
		orCfg := cfg.OpenRouter()
		client := openrouterx.NewClient(orCfg)
		if client == nil {
			return nil, fmt.Errorf("%w: openai api key is required", contractx.ErrValidation)
		}
		return newOpenAI(&client.Chat.Completions, orCfg.Model, cfg.Temperature, cfg.MaxCompletionToken), nil

	default:
		return nil, fmt.Errorf("%w: unsupported llm provider=%q", contractx.ErrValidation, cfg.Provider)
	}
}

func unavailable(provider string, err error) error {
	return fmt.Errorf("%w: %s: %v", contractx.ErrCollaboratorUnavailable, provider, err)
}
