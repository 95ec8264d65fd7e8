package store

import (
	"time"

	"github.com/uptrace/bun"
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

type farmerModel struct {
	bun.BaseModel `bun:"table:farmers,alias:f"`

	ID                int64     `bun:"id,pk,autoincrement"`
	PhoneNumber       string    `bun:"phone_number,notnull,unique"`
	Name              string    `bun:"name,notnull"`
	Location          string    `bun:"location,notnull"`
	PreferredLanguage string    `bun:"preferred_language,notnull,default:'en'"`
	CreatedAt         time.Time `bun:"created_at,notnull"`
}

func (m *farmerModel) toContract() *contractx.Farmer {
	return &contractx.Farmer{
		ID:                m.ID,
		PhoneNumber:       m.PhoneNumber,
		Name:              m.Name,
		Location:          m.Location,
		PreferredLanguage: m.PreferredLanguage,
		CreatedAt:         m.CreatedAt.UTC(),
	}
}

type cropModel struct {
	bun.BaseModel `bun:"table:crops,alias:c"`

	ID                  int64      `bun:"id,pk,autoincrement"`
	FarmerID            int64      `bun:"farmer_id,notnull"`
	CropName            string     `bun:"crop_name,notnull"`
	PlantingDate        *time.Time `bun:"planting_date"`
	ExpectedHarvestDate *time.Time `bun:"expected_harvest_date"`
	AreaAcres           *float64   `bun:"area_acres"`
	CreatedAt           time.Time  `bun:"created_at,notnull"`
}

func (m *cropModel) toContract() contractx.Crop {
	return contractx.Crop{
		ID:                  m.ID,
		FarmerID:            m.FarmerID,
		CropName:            m.CropName,
		PlantingDate:        m.PlantingDate,
		ExpectedHarvestDate: m.ExpectedHarvestDate,
		AreaAcres:           m.AreaAcres,
		CreatedAt:           m.CreatedAt.UTC(),
	}
}

type exchangeModel struct {
	bun.BaseModel `bun:"table:chat_history,alias:h"`

	ID          int64     `bun:"id,pk,autoincrement"`
	FarmerID    int64     `bun:"farmer_id,notnull"`
	UserMessage string    `bun:"user_message,notnull"`
	BotResponse string    `bun:"bot_response,notnull"`
	Timestamp   time.Time `bun:"timestamp,notnull"`
}

func (m *exchangeModel) toContract() contractx.ChatExchange {
	return contractx.ChatExchange{
		ID:          m.ID,
		FarmerID:    m.FarmerID,
		UserMessage: m.UserMessage,
		BotResponse: m.BotResponse,
		Timestamp:   m.Timestamp.UTC(),
	}
}
