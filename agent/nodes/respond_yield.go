package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

// RespondYield has no collaborator yet.
func RespondYield(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Reply = YieldPlaceholderReply
	return in, nil
}
