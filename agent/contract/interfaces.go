package contract

import "context"

// ContextStore persists farmer profiles, crops and chat history.
type ContextStore interface {
	UpsertFarmer(ctx context.Context, phoneNumber, name, location string) (*Farmer, error)
	GetContext(ctx context.Context, farmerID int64) (*FarmerContext, error)
	AppendExchange(ctx context.Context, farmerID int64, userMessage, botResponse string) error
	AddCrop(ctx context.Context, farmerID int64, crop NewCrop) (int64, error)
}

type WeatherService interface {
	Forecast(ctx context.Context, req ForecastRequest) (Forecast, error)
}

type Advisor interface {
	Advise(ctx context.Context, req AdviceRequest) (string, error)
}

type IntentClassifier interface {
	Classify(utterance string) Intent
}
