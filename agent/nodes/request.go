package orchestratornode

import (
	"time"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

// Graph node names.
const (
	NodeNewRequest      = "new_request"
	NodeLoadContext     = "load_context"
	NodeClassifyIntent  = "classify_intent"
	NodeRespondWeather  = string(contractx.IntentWeatherForecast)
	NodeRespondYield    = string(contractx.IntentYieldPrediction)
	NodeRespondAdvice   = string(contractx.IntentGeneralAdvice)
	NodeRecordExchange  = "record_exchange"
	NodeFinalizeReply   = "finalize_reply"
)

type GraphInput struct {
	FarmerID int64
	Text     string
}

type GraphOutput struct {
	Reply    string
	Intent   contractx.Intent
	Recorded bool
}

type GraphState struct {
	RequestID string
	FarmerID  int64
	Text      string
	Now       time.Time

	Context *contractx.FarmerContext
	Intent  contractx.Intent

	Reply    string
	Recorded bool
}

// NewRequestState stamps the request. Any farmer id and any utterance,
// including an empty one, is accepted; unknown farmers are answered later.
func NewRequestState(in GraphInput, nowFn func() time.Time, newID func() string) (*GraphState, error) {
	return &GraphState{
		RequestID: newID(),
		FarmerID:  in.FarmerID,
		Text:      in.Text,
		Now:       nowFn().UTC(),
	}, nil
}
