package contract

import "time"

const DefaultLanguage = "en"

type Intent string

const (
	IntentWeatherForecast Intent = "weather_forecast"
	IntentYieldPrediction Intent = "yield_prediction"
	IntentGeneralAdvice   Intent = "general_advice"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Farmer struct {
	ID                int64     `json:"id"`
	PhoneNumber       string    `json:"phone_number"`
	Name              string    `json:"name"`
	Location          string    `json:"location"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
}

type Crop struct {
	ID                  int64      `json:"id"`
	FarmerID            int64      `json:"farmer_id"`
	CropName            string     `json:"crop_name"`
	PlantingDate        *time.Time `json:"planting_date,omitempty"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date,omitempty"`
	AreaAcres           *float64   `json:"area_acres,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// NewCrop carries the fields accepted by AddCrop. Only CropName is required.
type NewCrop struct {
	CropName            string
	PlantingDate        *time.Time
	ExpectedHarvestDate *time.Time
	AreaAcres           *float64
}

type ChatExchange struct {
	ID          int64     `json:"id"`
	FarmerID    int64     `json:"farmer_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Timestamp   time.Time `json:"timestamp"`
}

// Turn is one message of a replayed conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

type FarmerContext struct {
	Profile Farmer `json:"profile"`
	Crops   []Crop `json:"crops"`
	History []Turn `json:"history"`
}

type ForecastRequest struct {
	Location string `json:"location"`
}

type Forecast struct {
	Forecast string `json:"forecast"`
}

type AdviceRequest struct {
	SystemInstruction string `json:"system_instruction"`
	History           []Turn `json:"history,omitempty"`
	Prompt            string `json:"prompt"`
}
