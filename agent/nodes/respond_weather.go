package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

func RespondWeather(
	ctx context.Context,
	in *GraphState,
	weather contractx.WeatherService,
) (*GraphState, error) {
	if in == nil || in.Context == nil {
		return nil, fmt.Errorf("%w: farmer context is missing", contractx.ErrValidation)
	}

	location := in.Context.Profile.Location
	out, err := weather.Forecast(ctx, contractx.ForecastRequest{Location: location})
	if err != nil {
		log.Warn().
			Err(err).
			Str("request_id", in.RequestID).
			Int64("farmer_id", in.FarmerID).
			Str("intent", string(in.Intent)).
			Msg("weather service call failed")
		in.Reply = WeatherUnavailableReply
		return in, nil
	}

	in.Reply = fmt.Sprintf("The weather forecast for %s is: %s.", location, out.Forecast)
	return in, nil
}
