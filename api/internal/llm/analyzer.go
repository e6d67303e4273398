package llm

import (
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/rs/zerolog"

	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

// ErrMissingAPIKey is returned by engines built without credentials.
var ErrMissingAPIKey = errors.New("llm api key is not set")

// ErrEmptyResponse is returned when the model answers with no candidates.
var ErrEmptyResponse = errors.New("llm returned no candidates")

type Analyzer struct {
	engine Engine
	prompt *template.Template
	log    zerolog.Logger
}

func NewAnalyzer(engine Engine, prompt *template.Template, logger zerolog.Logger) *Analyzer {
	return &Analyzer{engine: engine, prompt: prompt, log: logger}
}

func (a *Analyzer) Engine() Engine { return a.engine }

// Analyze renders the prompt for rec and asks the engine for a structured
// analysis. Transport and API failures are errors; a reply without usable
// JSON is not, it comes back with ParseError set.
func (a *Analyzer) Analyze(ctx context.Context, rec *survey.Record) (types.Analysis, error) {
	if a.engine == nil {
		return types.Analysis{}, errors.New("no llm engine configured")
	}
	prompt, err := RenderPrompt(a.prompt, rec)
	if err != nil {
		return types.Analysis{}, err
	}
	text, err := a.engine.Complete(ctx, prompt)
	if err != nil {
		return types.Analysis{}, fmt.Errorf("%s analysis: %w", a.engine.Name(), err)
	}
	res := types.ParseAnalysis(text)
	if res.ParseError {
		a.log.Warn().
			Str("engine", a.engine.Name()).
			Str("model", a.engine.GetModel()).
			Int("reply_bytes", len(text)).
			Msg("model reply carried no decodable JSON")
	}
	return res, nil
}
