package relay

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"survey-relay/api/internal/chart"
	"survey-relay/api/internal/llm"
	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/notify"
	"survey-relay/api/internal/survey"
)

// ErrMissingLLMKey is returned when the selected engine has no API key.
var ErrMissingLLMKey = llm.ErrMissingAPIKey

// Outcome is what one processed submission produced.
type Outcome struct {
	ID       string
	Record   *survey.Record
	Analysis types.Analysis
	Chart    string
}

// Service runs one submission end to end.
// It holds no per-request state.
type Service struct {
	analyzer    *llm.Analyzer
	primary     notify.Channel
	staff       []notify.Channel
	log         zerolog.Logger
	responseCap int
	timeout     time.Duration
	now         func() time.Time
}

type Option func(*Service)

// WithResponseCap bounds the raw-answer log attached to the clinician message.
func WithResponseCap(n int) Option { return func(s *Service) { s.responseCap = n } }

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) Option { return func(s *Service) { s.timeout = d } }

// WithStaff adds best-effort reception channels.
func WithStaff(chs ...notify.Channel) Option {
	return func(s *Service) { s.staff = append(s.staff, chs...) }
}

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(analyzer *llm.Analyzer, primary notify.Channel, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		analyzer:    analyzer,
		primary:     primary,
		log:         logger,
		responseCap: survey.DefaultResponseCap,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process handles one webhook submission. A failed clinician delivery fails
// the submission; staff deliveries are logged and skipped.
func (s *Service) Process(ctx context.Context, p survey.Payload) (Outcome, error) {
	start := time.Now()
	rec := survey.Parse(p, survey.WithResponseCap(s.responseCap))

	out := Outcome{ID: rec.ResponseID, Record: rec}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	log := s.log.With().Str("submission", out.ID).Str("survey_type", rec.SurveyType).Logger()
	log.Info().
		Str("patient", rec.Get(survey.Name)).
		Int("fields", len(p.Data.Fields)).
		Int("attrs", rec.Len()).
		Msg("submission parsed")
	if u := rec.Unmatched(); len(u) > 0 {
		log.Debug().Strs("labels", u).Msg("unclassified labels")
	}

	a, err := s.Analyze(ctx, rec)
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		return out, err
	}
	out.Analysis = a

	now := s.now()
	out.Chart = chart.FormatAt(rec, a, now)

	if s.primary == nil {
		return out, notify.ErrMissingWebhook
	}
	if err := s.primary.Send(ctx, notify.Clinician(rec, a, out.Chart, now)); err != nil {
		log.Error().Err(err).Str("channel", s.primary.Name()).Msg("clinician notification failed")
		return out, err
	}

	staff := notify.Staff(rec, a, now)
	for _, ch := range s.staff {
		if err := ch.Send(ctx, staff); err != nil {
			log.Warn().Err(err).Str("channel", ch.Name()).Msg("staff notification failed")
		}
	}

	log.Info().
		Str("constitution", a.Constitution.Type.String()).
		Bool("parse_error", a.ParseError).
		Dur("elapsed", time.Since(start)).
		Msg("submission relayed")
	return out, nil
}

// Analyze runs the model on an already-built record.
func (s *Service) Analyze(ctx context.Context, rec *survey.Record) (types.Analysis, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.analyzer.Analyze(ctx, rec)
}

// Chart renders the clinician chart for rec, dated by the service clock.
func (s *Service) Chart(rec *survey.Record, a types.Analysis) string {
	return chart.FormatAt(rec, a, s.now())
}

// ReportFailure tells the clinical channel that a submission failed. It is
// best effort: delivery errors are logged, never returned.
func (s *Service) ReportFailure(ctx context.Context, cause error) {
	if s.primary == nil || cause == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.primary.Send(ctx, notify.Failure(cause)); err != nil {
		if !errors.Is(err, notify.ErrMissingWebhook) {
			s.log.Error().Err(err).Msg("error notification failed")
		}
	}
}
