package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
	storex "github.com/tanpawarit/krishi-mitra/agent/store"
)

type fakeResponder struct {
	reply    string
	err      error
	farmerID int64
	text     string
}

func (f *fakeResponder) HandleRequest(ctx context.Context, farmerID int64, utterance string) (string, error) {
	f.farmerID = farmerID
	f.text = utterance
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestServer(t *testing.T, responder Responder) (*echo.Echo, *storex.SQLiteStore) {
	t.Helper()

	store, err := storex.Open(context.Background(), storex.Config{Path: filepath.Join(t.TempDir(), "api.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	h, err := NewHandler(store, responder)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return NewEcho(h), store
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	e, _ := newTestServer(t, &fakeResponder{})
	rec := do(e, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || rec.Body.String() != healthMessage {
		t.Fatalf("GET / = %d %q", rec.Code, rec.Body.String())
	}
}

func TestUpsertFarmer(t *testing.T) {
	t.Parallel()

	e, _ := newTestServer(t, &fakeResponder{})

	rec := do(e, http.MethodPost, "/farmers", `{"phone_number":"+919123456789","name":"Sanjay","location":"Ahmedabad"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /farmers = %d %s", rec.Code, rec.Body.String())
	}
	var farmer contractx.Farmer
	if err := json.Unmarshal(rec.Body.Bytes(), &farmer); err != nil {
		t.Fatalf("decode farmer: %v", err)
	}
	if farmer.ID <= 0 || farmer.PreferredLanguage != "en" {
		t.Fatalf("unexpected farmer: %+v", farmer)
	}

	rec = do(e, http.MethodPost, "/farmers", `{"phone_number":"+919123456789"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("existing phone lookup = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/farmers", `{"phone_number":"+910000000009","name":"Asha"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing location = %d, want 422", rec.Code)
	}

	rec = do(e, http.MethodPost, "/farmers", `{"name":"Asha","location":"Anand"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing phone = %d, want 400", rec.Code)
	}
}

func TestAddCropAndGetContext(t *testing.T) {
	t.Parallel()

	e, store := newTestServer(t, &fakeResponder{})
	farmer, err := store.UpsertFarmer(context.Background(), "+910000000001", "Ramesh", "Gandhinagar")
	if err != nil {
		t.Fatalf("UpsertFarmer() error = %v", err)
	}
	base := "/farmers/" + itoa(farmer.ID)

	rec := do(e, http.MethodPost, base+"/crops", `{"crop_name":"Cotton","planting_date":"2025-06-01","area_acres":5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST crops = %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.ID <= 0 {
		t.Fatalf("unexpected crop response %q (%v)", rec.Body.String(), err)
	}

	rec = do(e, http.MethodGet, base+"/context", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET context = %d %s", rec.Code, rec.Body.String())
	}
	var fc contractx.FarmerContext
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatalf("decode context: %v", err)
	}
	if len(fc.Crops) != 1 || fc.Crops[0].CropName != "Cotton" || fc.Crops[0].PlantingDate == nil {
		t.Fatalf("unexpected crops: %+v", fc.Crops)
	}
}

func TestAddCropErrors(t *testing.T) {
	t.Parallel()

	e, store := newTestServer(t, &fakeResponder{})
	farmer, err := store.UpsertFarmer(context.Background(), "+910000000002", "Meena", "Mehsana")
	if err != nil {
		t.Fatalf("UpsertFarmer() error = %v", err)
	}
	base := "/farmers/" + itoa(farmer.ID)

	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown farmer", "/farmers/999/crops", `{"crop_name":"Wheat"}`, http.StatusNotFound},
		{"bad id", "/farmers/abc/crops", `{"crop_name":"Wheat"}`, http.StatusBadRequest},
		{"empty name", base + "/crops", `{"crop_name":""}`, http.StatusBadRequest},
		{"bad date", base + "/crops", `{"crop_name":"Wheat","planting_date":"01/06/2025"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if rec := do(e, http.MethodPost, tc.path, tc.body); rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d (%s)", tc.name, rec.Code, tc.want, rec.Body.String())
		}
	}

	if rec := do(e, http.MethodGet, "/farmers/999/context", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown context = %d, want 404", rec.Code)
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	responder := &fakeResponder{reply: "The weather forecast for Modasa is: sunny."}
	e, _ := newTestServer(t, responder)

	rec := do(e, http.MethodPost, "/chatbot/message", `{"farmer_id":1,"text":"weather?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST message = %d %s", rec.Code, rec.Body.String())
	}
	var resp messageResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if resp.Reply != responder.reply {
		t.Fatalf("reply = %q", resp.Reply)
	}
	if responder.farmerID != 1 || responder.text != "weather?" {
		t.Fatalf("responder got farmer=%d text=%q", responder.farmerID, responder.text)
	}
}

func TestMessageErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", contractx.ErrValidation, http.StatusBadRequest},
		{"storage", contractx.ErrStorage, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		e, _ := newTestServer(t, &fakeResponder{err: tc.err})
		if rec := do(e, http.MethodPost, "/chatbot/message", `{"farmer_id":1,"text":"hi"}`); rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestMessageForwardsRawInput(t *testing.T) {
	t.Parallel()

	responder := &fakeResponder{reply: "Could not find farmer profile."}
	e, _ := newTestServer(t, responder)

	rec := do(e, http.MethodPost, "/chatbot/message", `{"farmer_id":0,"text":"  "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST message = %d %s", rec.Code, rec.Body.String())
	}
	if responder.farmerID != 0 || responder.text != "  " {
		t.Fatalf("responder got farmer=%d text=%q", responder.farmerID, responder.text)
	}
}

func TestNewHandlerRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(nil, &fakeResponder{}); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
