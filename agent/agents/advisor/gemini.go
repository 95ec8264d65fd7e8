package advisor

import (
	"context"
	"errors"
	"strings"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiAdvisor struct {
	models      contentGenerator
	model       string
	temperature float32
}

func newGemini(models contentGenerator, model string, temperature float32) *geminiAdvisor {
	return &geminiAdvisor{
		models:      models,
		model:       model,
		temperature: temperature,
	}
}

func (g *geminiAdvisor) Advise(ctx context.Context, req contractx.AdviceRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := genai.RoleUser
		if turn.Role == contractx.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(role)))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if sys := strings.TrimSpace(req.SystemInstruction); sys != "" {
		config.SystemInstruction = genai.NewContentFromText(sys, genai.RoleUser)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", unavailable("gemini generate", err)
	}
	if resp == nil {
		return "", unavailable("gemini generate", errors.New("empty response"))
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", unavailable("gemini generate", errors.New("empty reply"))
	}
	return text, nil
}
