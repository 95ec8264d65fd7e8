package advisor

import (
	"context"
	"errors"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

// chatModelAdvisor talks to any eino chat model; the OpenRouter provider uses it.
type chatModelAdvisor struct {
	chatModel einomodel.BaseChatModel
}

func newChatModelAdvisor(chatModel einomodel.BaseChatModel) *chatModelAdvisor {
	return &chatModelAdvisor{chatModel: chatModel}
}

func (a *chatModelAdvisor) Advise(ctx context.Context, req contractx.AdviceRequest) (string, error) {
	msgs := make([]*schema.Message, 0, len(req.History)+2)
	if sys := strings.TrimSpace(req.SystemInstruction); sys != "" {
		msgs = append(msgs, schema.SystemMessage(sys))
	}
	for _, turn := range req.History {
		if turn.Role == contractx.RoleModel {
			msgs = append(msgs, schema.AssistantMessage(turn.Text, nil))
			continue
		}
		msgs = append(msgs, schema.UserMessage(turn.Text))
	}
	msgs = append(msgs, schema.UserMessage(req.Prompt))

	out, err := a.chatModel.Generate(ctx, msgs)
	if err != nil {
		return "", unavailable("chat model generate", err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", unavailable("chat model generate", errors.New("empty reply"))
	}
	return out.Content, nil
}
