package orchestratornode

import (
	"context"
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

type stubWeather struct {
	forecast string
	err      error
}

func (s stubWeather) Forecast(ctx context.Context, req contractx.ForecastRequest) (contractx.Forecast, error) {
	if s.err != nil {
		return contractx.Forecast{}, s.err
	}
	return contractx.Forecast{Forecast: s.forecast}, nil
}

func stateFor(location string) *GraphState {
	return &GraphState{
		RequestID: "req-1",
		FarmerID:  1,
		Text:      "weather?",
		Context: &contractx.FarmerContext{
			Profile: contractx.Farmer{ID: 1, Location: location},
		},
	}
}

func TestNewRequestStateKeepsInputAsGiven(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 14, 14, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	newID := func() string { return "req-42" }

	st, err := NewRequestState(GraphInput{FarmerID: 3, Text: "  spacing?  "}, func() time.Time { return now }, newID)
	if err != nil {
		t.Fatalf("NewRequestState() error = %v", err)
	}
	if st.Text != "  spacing?  " || st.RequestID != "req-42" || st.FarmerID != 3 {
		t.Fatalf("unexpected state: %+v", st)
	}
	if st.Now.Location() != time.UTC || !st.Now.Equal(now) {
		t.Fatalf("Now = %v, want %v in UTC", st.Now, now)
	}

	for _, in := range []GraphInput{{FarmerID: 0, Text: "hello"}, {FarmerID: -1, Text: "x"}, {FarmerID: 1, Text: ""}} {
		if _, err := NewRequestState(in, time.Now, newID); err != nil {
			t.Fatalf("NewRequestState(%+v) error = %v", in, err)
		}
	}
}

type stubAdvisor struct {
	calls int
}

func (s *stubAdvisor) Advise(ctx context.Context, req contractx.AdviceRequest) (string, error) {
	s.calls++
	return "ok", nil
}

func TestRespondAdviceBadTemplateApologizes(t *testing.T) {
	t.Parallel()

	advisor := &stubAdvisor{}
	st, err := RespondAdvice(context.Background(), stateFor("Modasa"), advisor, "Advise on {profile")
	if err != nil {
		t.Fatalf("RespondAdvice() error = %v", err)
	}
	if st.Reply != AdviceUnavailableReply {
		t.Fatalf("reply = %q, want apology", st.Reply)
	}
	if advisor.calls != 0 {
		t.Fatalf("advisor called %d times with an unrendered prompt", advisor.calls)
	}
}

func TestRouteAfterLoad(t *testing.T) {
	t.Parallel()

	if got, _ := RouteAfterLoad(&GraphState{}); got != NodeFinalizeReply {
		t.Fatalf("missing context routes to %q", got)
	}
	if got, _ := RouteAfterLoad(stateFor("Modasa")); got != NodeClassifyIntent {
		t.Fatalf("loaded context routes to %q", got)
	}
}

func TestRouteByIntent(t *testing.T) {
	t.Parallel()

	cases := map[contractx.Intent]string{
		contractx.IntentWeatherForecast: NodeRespondWeather,
		contractx.IntentYieldPrediction: NodeRespondYield,
		contractx.IntentGeneralAdvice:   NodeRespondAdvice,
		"market_price":                  NodeRespondAdvice,
	}
	for intent, want := range cases {
		got, err := RouteByIntent(&GraphState{Intent: intent})
		if err != nil || got != want {
			t.Errorf("RouteByIntent(%s) = %q, %v; want %q", intent, got, err, want)
		}
	}
}

func TestRespondWeather(t *testing.T) {
	t.Parallel()

	st, err := RespondWeather(context.Background(), stateFor("Modasa"), stubWeather{forecast: "light rain, 24°C"})
	if err != nil {
		t.Fatalf("RespondWeather() error = %v", err)
	}
	if st.Reply != "The weather forecast for Modasa is: light rain, 24°C." {
		t.Fatalf("reply = %q", st.Reply)
	}

	st, err = RespondWeather(context.Background(), stateFor("Modasa"), stubWeather{err: contractx.ErrCollaboratorUnavailable})
	if err != nil {
		t.Fatalf("RespondWeather() error = %v", err)
	}
	if st.Reply != WeatherUnavailableReply {
		t.Fatalf("reply = %q", st.Reply)
	}
}

func TestFinalizeReplyRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := FinalizeReply(&GraphState{}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("FinalizeReply() err = %v, want ErrValidation", err)
	}
	out, err := FinalizeReply(&GraphState{Reply: YieldPlaceholderReply, Intent: contractx.IntentYieldPrediction, Recorded: true})
	if err != nil || out.Reply != YieldPlaceholderReply || !out.Recorded {
		t.Fatalf("FinalizeReply() = %+v, %v", out, err)
	}
}
