package orchestratornode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

// LoadContext fetches the farmer context. An unknown farmer is answered with
// FarmerNotFoundReply instead of an error.
func LoadContext(
	ctx context.Context,
	in *GraphState,
	store contractx.ContextStore,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	fc, err := store.GetContext(ctx, in.FarmerID)
	if errors.Is(err, contractx.ErrNotFound) {
		log.Info().
			Str("request_id", in.RequestID).
			Int64("farmer_id", in.FarmerID).
			Msg("farmer profile not found")
		in.Reply = FarmerNotFoundReply
		return in, nil
	}
	if err != nil {
		return nil, err
	}

	in.Context = fc
	return in, nil
}

// RouteAfterLoad skips straight to the reply when no context was found.
func RouteAfterLoad(in *GraphState) (string, error) {
	if in == nil {
		return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Context == nil {
		return NodeFinalizeReply, nil
	}
	return NodeClassifyIntent, nil
}
