package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
	intentx "github.com/tanpawarit/krishi-mitra/agent/intent"
	nodex "github.com/tanpawarit/krishi-mitra/agent/nodes"
	promptx "github.com/tanpawarit/krishi-mitra/agent/prompt"
)

type Config struct {
	// Classifier defaults to the keyword rules in agent/intent.
	Classifier contractx.IntentClassifier
	// AdvisorPrompt overrides the embedded general-advice instruction template.
	AdvisorPrompt string
}

// Orchestrator answers one farmer utterance per call: load context, classify,
// call at most one collaborator, record the exchange.
type Orchestrator struct {
	store      contractx.ContextStore
	weather    contractx.WeatherService
	advisor    contractx.Advisor
	classifier contractx.IntentClassifier

	advisorPrompt string

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now   func() time.Time
	newID func() string
}

func New(
	store contractx.ContextStore,
	weather contractx.WeatherService,
	advisor contractx.Advisor,
	cfg Config,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("context store is required")
	}
	if weather == nil {
		return nil, errors.New("weather service is required")
	}
	if advisor == nil {
		return nil, errors.New("advisor is required")
	}

	classifier := cfg.Classifier
	if classifier == nil {
		classifier = intentx.NewClassifier()
	}
	advisorPrompt := strings.TrimSpace(cfg.AdvisorPrompt)
	if advisorPrompt == "" {
		advisorPrompt = promptx.LoadPromptSet().Advisor
	}

	o := &Orchestrator{
		store:         store,
		weather:       weather,
		advisor:       advisor,
		classifier:    classifier,
		advisorPrompt: advisorPrompt,
		now:           time.Now,
		newID:         uuid.NewString,
	}

	graphRunner, err := o.compileHandleRequestGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleRequest returns the reply for utterance. An unknown farmer yields a
// fixed reply, collaborator failures yield fixed apologies, and only storage
// failures are returned as errors.
func (o *Orchestrator) HandleRequest(ctx context.Context, farmerID int64, utterance string) (string, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		FarmerID: farmerID,
		Text:     utterance,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
