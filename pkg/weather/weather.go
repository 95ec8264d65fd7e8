package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

const (
	defaultTimeout       = 10 * time.Second
	maxResponseSizeBytes = 1 << 20

	// NotAvailable is used when the service answers without a forecast.
	NotAvailable = "Not available"
)

var _ contractx.WeatherService = (*Client)(nil)

type Config struct {
	URL     string        `split_words:"true" default:"http://127.0.0.1:5001/predict_weather"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

// Option customizes Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client calls the weather forecast service over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type forecastResponse struct {
	Forecast *string `json:"forecast"`
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.URL)
	if endpoint == "" {
		return nil, errors.New("weather service url is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid weather service url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Forecast posts {"location": ...} and reads {"forecast": ...}. Every
// transport, status or decoding failure wraps ErrCollaboratorUnavailable.
func (c *Client) Forecast(ctx context.Context, req contractx.ForecastRequest) (contractx.Forecast, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return contractx.Forecast{}, fmt.Errorf("marshal forecast request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return contractx.Forecast{}, fmt.Errorf("build forecast request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return contractx.Forecast{}, fmt.Errorf("%w: weather request: %v", contractx.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return contractx.Forecast{}, fmt.Errorf("%w: read weather response: %v", contractx.ErrCollaboratorUnavailable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return contractx.Forecast{}, fmt.Errorf("%w: weather http status=%d body=%s",
			contractx.ErrCollaboratorUnavailable, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed forecastResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return contractx.Forecast{}, fmt.Errorf("%w: decode weather response: %v", contractx.ErrCollaboratorUnavailable, err)
	}

	forecast := NotAvailable
	if parsed.Forecast != nil {
		forecast = *parsed.Forecast
	}
	return contractx.Forecast{Forecast: forecast}, nil
}
