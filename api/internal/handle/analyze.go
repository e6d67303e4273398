package handle

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"survey-relay/api/internal/chart"
	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

type analyzeResponse struct {
	Success     bool           `json:"success"`
	Analysis    types.Analysis `json:"analysis"`
	ChartOutput string         `json:"chartOutput"`
	SimpleChart string         `json:"simpleChart"`
}

// Analyze runs the model on an already-canonical record, e.g.
// {"name":"홍길동","mainSymptom1":"두통"}, and returns the charts without
// notifying anyone.
func (h *Handle) Analyze(c echo.Context) error {
	var body map[string]any
	if err := decode(c.Request().Body, &body); err != nil {
		return failure(c, http.StatusBadRequest, fmt.Errorf("bad json: %w", err))
	}
	values := make(map[string]string, len(body))
	for k, v := range body {
		if s, ok := survey.ExtractValue(survey.RawField{Value: v}); ok {
			values[k] = s
		}
	}
	rec := survey.NewRecord(values)

	a, err := h.svc.Analyze(c.Request().Context(), rec)
	if err != nil {
		h.log.Error().Err(err).Msg("manual analysis failed")
		return failure(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, analyzeResponse{
		Success:     true,
		Analysis:    a,
		ChartOutput: h.svc.Chart(rec, a),
		SimpleChart: chart.FormatSimple(rec, a),
	})
}
