package cli

import (
	"context"

	"github.com/rs/zerolog/log"

	advisorx "github.com/tanpawarit/krishi-mitra/agent/agents/advisor"
	orchestratorx "github.com/tanpawarit/krishi-mitra/agent/agents/orchestrator"
	llmx "github.com/tanpawarit/krishi-mitra/agent/llm"
	storex "github.com/tanpawarit/krishi-mitra/agent/store"
	configx "github.com/tanpawarit/krishi-mitra/pkg/config"
	weatherx "github.com/tanpawarit/krishi-mitra/pkg/weather"
)

func openStore(ctx context.Context) (*storex.SQLiteStore, error) {
	dbCfg, err := configx.New[storex.Config]("DB")
	if err != nil {
		return nil, err
	}
	store, err := storex.Open(ctx, *dbCfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", dbCfg.Path).Msg("database opened")
	return store, nil
}

func newOrchestrator(ctx context.Context, store *storex.SQLiteStore) (*orchestratorx.Orchestrator, error) {
	weatherCfg, err := configx.New[weatherx.Config]("WEATHER")
	if err != nil {
		return nil, err
	}
	weather, err := weatherx.NewClient(*weatherCfg)
	if err != nil {
		return nil, err
	}

	llmCfg, err := configx.New[llmx.Config]("LLM")
	if err != nil {
		return nil, err
	}
	advisor, err := advisorx.New(ctx, *llmCfg)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("provider", string(llmCfg.ProviderName())).
		Str("model", llmCfg.ModelName()).
		Str("weather_url", weatherCfg.URL).
		Msg("collaborators configured")

	return orchestratorx.New(store, weather, advisor, orchestratorx.Config{})
}
