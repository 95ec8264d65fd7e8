package intent

import (
	"strings"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

// Rule maps any of its keywords to an intent. Keywords are matched as
// lower-case substrings.
type Rule struct {
	Intent   contractx.Intent
	Keywords []string
}

// DefaultRules is ordered: weather is checked before yield.
var DefaultRules = []Rule{
	{Intent: contractx.IntentWeatherForecast, Keywords: []string{"weather", "rain", "forecast"}},
	{Intent: contractx.IntentYieldPrediction, Keywords: []string{"yield", "harvest", "production"}},
}

type Classifier struct {
	rules    []Rule
	fallback contractx.Intent
}

// NewClassifier builds a classifier over rules in priority order. With no
// rules it uses DefaultRules.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		normalized = append(normalized, Rule{Intent: r.Intent, Keywords: keywords})
	}
	return &Classifier{
		rules:    normalized,
		fallback: contractx.IntentGeneralAdvice,
	}
}

// Classify returns the intent of the first matching rule, or general advice.
func (c *Classifier) Classify(utterance string) contractx.Intent {
	text := strings.ToLower(utterance)
	for _, r := range c.rules {
		for _, k := range r.Keywords {
			if strings.Contains(text, k) {
				return r.Intent
			}
		}
	}
	return c.fallback
}
