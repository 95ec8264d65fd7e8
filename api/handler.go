package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

const (
	dateLayout    = "2006-01-02"
	healthMessage = "Chatbot API is running!"
)

// Responder answers one farmer utterance.
type Responder interface {
	HandleRequest(ctx context.Context, farmerID int64, utterance string) (string, error)
}

type Handler struct {
	store     contractx.ContextStore
	responder Responder
}

func NewHandler(store contractx.ContextStore, responder Responder) (*Handler, error) {
	if store == nil {
		return nil, errors.New("context store is required")
	}
	if responder == nil {
		return nil, errors.New("responder is required")
	}
	return &Handler{store: store, responder: responder}, nil
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.health)

	g := e.Group("/farmers")
	g.POST("", h.upsertFarmer)
	g.POST("/:id/crops", h.addCrop)
	g.GET("/:id/context", h.getContext)

	e.POST("/chatbot/message", h.message)
}

type upsertFarmerReq struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Location    string `json:"location"`
}

type addCropReq struct {
	CropName            string   `json:"crop_name"`
	PlantingDate        string   `json:"planting_date"`
	ExpectedHarvestDate string   `json:"expected_harvest_date"`
	AreaAcres           *float64 `json:"area_acres"`
}

type messageReq struct {
	FarmerID int64  `json:"farmer_id"`
	Text     string `json:"text"`
}

type messageResp struct {
	Reply string `json:"reply"`
}

func (h *Handler) health(c echo.Context) error {
	return c.String(http.StatusOK, healthMessage)
}

func (h *Handler) upsertFarmer(c echo.Context) error {
	var req upsertFarmerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	farmer, err := h.store.UpsertFarmer(c.Request().Context(), req.PhoneNumber, req.Name, req.Location)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, farmer)
}

func (h *Handler) addCrop(c echo.Context) error {
	farmerID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid farmer id"})
	}

	var req addCropReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	crop := contractx.NewCrop{CropName: req.CropName, AreaAcres: req.AreaAcres}
	if crop.PlantingDate, err = parseDate(req.PlantingDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "planting_date must be YYYY-MM-DD"})
	}
	if crop.ExpectedHarvestDate, err = parseDate(req.ExpectedHarvestDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected_harvest_date must be YYYY-MM-DD"})
	}

	id, err := h.store.AddCrop(c.Request().Context(), farmerID, crop)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (h *Handler) getContext(c echo.Context) error {
	farmerID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid farmer id"})
	}

	fc, err := h.store.GetContext(c.Request().Context(), farmerID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, fc)
}

func (h *Handler) message(c echo.Context) error {
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	reply, err := h.responder.HandleRequest(c.Request().Context(), req.FarmerID, req.Text)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, messageResp{Reply: reply})
}

func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, contractx.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, contractx.ErrMissingProfileData):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, contractx.ErrValidation):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
