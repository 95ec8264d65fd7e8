package advisor

import (
	"context"
	"errors"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

type chatCompleter interface {
	New(ctx context.Context, body openaisdk.ChatCompletionNewParams, opts ...option.RequestOption) (*openaisdk.ChatCompletion, error)
}

type openAIAdvisor struct {
	completions chatCompleter
	model       string
	temperature float32
	maxTokens   int
}

func newOpenAI(completions chatCompleter, model string, temperature float32, maxTokens int) *openAIAdvisor {
	return &openAIAdvisor{
		completions: completions,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (a *openAIAdvisor) Advise(ctx context.Context, req contractx.AdviceRequest) (string, error) {
	msgs := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if sys := strings.TrimSpace(req.SystemInstruction); sys != "" {
		msgs = append(msgs, openaisdk.SystemMessage(sys))
	}
	for _, turn := range req.History {
		if turn.Role == contractx.RoleModel {
			msgs = append(msgs, openaisdk.AssistantMessage(turn.Text))
			continue
		}
		msgs = append(msgs, openaisdk.UserMessage(turn.Text))
	}
	msgs = append(msgs, openaisdk.UserMessage(req.Prompt))

	params := openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(a.model),
		Messages:    msgs,
		Temperature: openaisdk.Float(float64(a.temperature)),
	}
	if a.maxTokens > 0 {
		params.MaxCompletionTokens = openaisdk.Int(int64(a.maxTokens))
	}

	resp, err := a.completions.New(ctx, params)
	if err != nil {
		return "", unavailable("openai chat completion", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", unavailable("openai chat completion", errors.New("no choices"))
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", unavailable("openai chat completion", errors.New("empty reply"))
	}
	return text, nil
}
