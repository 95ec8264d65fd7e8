package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
	openrouterx "github.com/tanpawarit/krishi-mitra/pkg/openrouter"
)

type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOpenAI     Provider = "openai"
)

var defaultModels = map[Provider]string{
	ProviderGemini:     "gemini-1.5-flash",
	ProviderOpenRouter: "google/gemini-flash-1.5",
	ProviderOpenAI:     "gpt-4",
}

var defaultBaseURLs = map[Provider]string{
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
	ProviderOpenAI:     "https://api.openai.com/v1",
}

type Config struct {
	Provider           string        `split_words:"true" default:"gemini"`
	APIKey             string        `split_words:"true"`
	Model              string        `split_words:"true"`
	BaseURL            string        `split_words:"true"`
	MaxCompletionToken int           `split_words:"true" default:"2000"`
	Temperature        float32       `split_words:"true" default:"0.5"`
	Timeout            time.Duration `split_words:"true" default:"30s"`
	SiteURL            string        `split_words:"true"`
	SiteName           string        `split_words:"true"`
}

func (c Config) ProviderName() Provider {
	p := Provider(strings.ToLower(strings.TrimSpace(c.Provider)))
	if p == "" {
		return ProviderGemini
	}
	return p
}

func (c Config) Validate() error {
	switch c.ProviderName() {
	case ProviderGemini, ProviderOpenRouter, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: unsupported llm provider=%q", contractx.ErrValidation, c.Provider)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: %s api key is required", contractx.ErrValidation, c.ProviderName())
	}
	return nil
}

// ModelName returns the configured model or the provider default.
func (c Config) ModelName() string {
	if v := strings.TrimSpace(c.Model); v != "" {
		return v
	}
	return defaultModels[c.ProviderName()]
}

func (c Config) baseURL() string {
	if v := strings.TrimSpace(c.BaseURL); v != "" {
		return v
	}
	return defaultBaseURLs[c.ProviderName()]
}

// OpenRouter maps the config onto the OpenRouter-compatible client config.
// The OpenAI provider reuses it with the OpenAI base URL.
func (c Config) OpenRouter() openrouterx.Config {
	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            c.baseURL(),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              c.ModelName(),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
