package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
	promptx "github.com/tanpawarit/krishi-mitra/agent/prompt"
)

func RespondAdvice(
	ctx context.Context,
	in *GraphState,
	advisor contractx.Advisor,
	instructionTemplate string,
) (*GraphState, error) {
	if in == nil || in.Context == nil {
		return nil, fmt.Errorf("%w: farmer context is missing", contractx.ErrValidation)
	}

	reply, err := advise(ctx, in, advisor, instructionTemplate)
	if err != nil {
		log.Warn().
			Err(err).
			Str("request_id", in.RequestID).
			Int64("farmer_id", in.FarmerID).
			Str("intent", string(in.Intent)).
			Msg("language service call failed")
		in.Reply = AdviceUnavailableReply
		return in, nil
	}

	in.Reply = reply
	return in, nil
}

func advise(
	ctx context.Context,
	in *GraphState,
	advisor contractx.Advisor,
	instructionTemplate string,
) (string, error) {
	instruction, err := promptx.AdvisorInstruction(ctx, instructionTemplate, in.Context, in.Now)
	if err != nil {
		return "", err
	}

	return advisor.Advise(ctx, contractx.AdviceRequest{
		SystemInstruction: instruction,
		History:           in.Context.History,
		Prompt:            promptx.Question(in.Text),
	})
}
