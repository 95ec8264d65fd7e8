package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: responder produced empty reply", contractx.ErrValidation)
	}
	return GraphOutput{
		Reply:    in.Reply,
		Intent:   in.Intent,
		Recorded: in.Recorded,
	}, nil
}
