package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

func ClassifyIntent(in *GraphState, classifier contractx.IntentClassifier) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Intent = classifier.Classify(in.Text)
	return in, nil
}

// RouteByIntent picks the responder node. Intents without a dedicated
// responder fall back to general advice.
func RouteByIntent(in *GraphState) (string, error) {
	if in == nil {
		return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	switch in.Intent {
	case contractx.IntentWeatherForecast:
		return NodeRespondWeather, nil
	case contractx.IntentYieldPrediction:
		return NodeRespondYield, nil
	default:
		return NodeRespondAdvice, nil
	}
}
