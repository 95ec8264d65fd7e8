package prompt

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

var (
	//go:embed template/advisor.txt
	advisorRaw string
)

const dateLayout = "2 January 2006"

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Advisor string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Advisor: strings.TrimSpace(advisorRaw),
	}
}

// AdvisorInstruction renders the general-advice system instruction for a
// farmer context.
func AdvisorInstruction(ctx context.Context, template string, fc *contractx.FarmerContext, now time.Time) (string, error) {
	if fc == nil {
		return "", fmt.Errorf("%w: farmer context is nil", contractx.ErrValidation)
	}

	language := strings.TrimSpace(fc.Profile.PreferredLanguage)
	if language == "" {
		language = contractx.DefaultLanguage
	}

	tpl := einoprompt.FromMessages(schema.FString, schema.SystemMessage(template))
	msgs, err := tpl.Format(ctx, map[string]any{
		"profile":  describeProfile(fc.Profile),
		"crops":    describeCrops(fc.Crops),
		"language": language,
		"today":    now.Format(dateLayout),
	})
	if err != nil {
		return "", fmt.Errorf("%w: render advisor prompt: %v", contractx.ErrValidation, err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("%w: advisor prompt rendered empty", contractx.ErrValidation)
	}
	return strings.TrimSpace(msgs[0].Content), nil
}

// Question wraps the farmer's utterance, as given, as the new prompt.
func Question(utterance string) string {
	return "Farmer's question: " + utterance
}

func describeProfile(f contractx.Farmer) string {
	return fmt.Sprintf("name=%s, location=%s, phone=%s", f.Name, f.Location, f.PhoneNumber)
}

func describeCrops(crops []contractx.Crop) string {
	if len(crops) == 0 {
		return "none recorded"
	}

	parts := make([]string, 0, len(crops))
	for _, c := range crops {
		var b strings.Builder
		b.WriteString(c.CropName)

		details := make([]string, 0, 3)
		if c.AreaAcres != nil {
			details = append(details, strconv.FormatFloat(*c.AreaAcres, 'f', -1, 64)+" acres")
		}
		if c.PlantingDate != nil {
			details = append(details, "planted "+c.PlantingDate.Format(time.DateOnly))
		}
		if c.ExpectedHarvestDate != nil {
			details = append(details, "harvest "+c.ExpectedHarvestDate.Format(time.DateOnly))
		}
		if len(details) > 0 {
			b.WriteString(" (" + strings.Join(details, ", ") + ")")
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "; ")
}
