package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

// RecordExchange persists the reply actually shown. Storage errors propagate.
func RecordExchange(
	ctx context.Context,
	in *GraphState,
	store contractx.ContextStore,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	if err := store.AppendExchange(ctx, in.FarmerID, in.Text, in.Reply); err != nil {
		return nil, err
	}
	in.Recorded = true
	return in, nil
}
