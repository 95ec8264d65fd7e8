package prompt

import (
	"context"
	"strings"
	"testing"
	"time"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

func TestLoadPromptSetNotEmpty(t *testing.T) {
	t.Parallel()

	if LoadPromptSet().Advisor == "" {
		t.Fatal("advisor prompt must not be empty")
	}
}

func TestAdvisorInstructionEmbedsContext(t *testing.T) {
	t.Parallel()

	acres := 5.0
	planted := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fc := &contractx.FarmerContext{
		Profile: contractx.Farmer{
			Name:              "Ramesh",
			Location:          "Gandhinagar",
			PhoneNumber:       "+910000000001",
			PreferredLanguage: "gu",
		},
		Crops: []contractx.Crop{
			{CropName: "Cotton", AreaAcres: &acres, PlantingDate: &planted},
			{CropName: "Wheat"},
		},
	}

	got, err := AdvisorInstruction(context.Background(), LoadPromptSet().Advisor, fc,
		time.Date(2025, 9, 14, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("AdvisorInstruction() error = %v", err)
	}

	for _, want := range []string{
		"Krishi-Mitra",
		"name=Ramesh, location=Gandhinagar",
		"Cotton (5 acres, planted 2025-06-01); Wheat",
		"preferred language: gu.",
		"Today's date is 14 September 2025.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q:\n%s", want, got)
		}
	}
}

func TestAdvisorInstructionDefaultsLanguageAndCrops(t *testing.T) {
	t.Parallel()

	got, err := AdvisorInstruction(context.Background(), LoadPromptSet().Advisor,
		&contractx.FarmerContext{Profile: contractx.Farmer{Name: "Asha", Location: "Anand"}}, time.Now())
	if err != nil {
		t.Fatalf("AdvisorInstruction() error = %v", err)
	}
	if !strings.Contains(got, "preferred language: en.") {
		t.Errorf("expected default language en:\n%s", got)
	}
	if !strings.Contains(got, "crops are: none recorded") {
		t.Errorf("expected empty crop marker:\n%s", got)
	}
}

func TestQuestion(t *testing.T) {
	t.Parallel()

	if got := Question("  What fertilizer should I use? "); got != "Farmer's question:   What fertilizer should I use? " {
		t.Fatalf("Question() = %q", got)
	}
	if got := Question(""); got != "Farmer's question: " {
		t.Fatalf("Question(empty) = %q", got)
	}
}
