package handle

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/relay"
	"survey-relay/api/internal/survey"
)

// maxBody bounds webhook and analysis request bodies.
const maxBody = 4 << 20

// Relay is the part of relay.Service the handlers drive.
type Relay interface {
	Process(ctx context.Context, p survey.Payload) (relay.Outcome, error)
	Analyze(ctx context.Context, rec *survey.Record) (types.Analysis, error)
	Chart(rec *survey.Record, a types.Analysis) string
	ReportFailure(ctx context.Context, cause error)
}

type Handle struct {
	svc     Relay
	log     zerolog.Logger
	origins []string
}

func New(svc Relay, logger zerolog.Logger, corsOrigins []string) *Handle {
	return &Handle{svc: svc, log: logger, origins: corsOrigins}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func failure(c echo.Context, code int, err error) error {
	return c.JSON(code, errorResponse{Success: false, Error: err.Error()})
}

func decode(r io.Reader, v any) error {
	return json.NewDecoder(io.LimitReader(r, maxBody)).Decode(v)
}

func (h *Handle) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
