package handle

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"survey-relay/api/internal/survey"
)

type webhookResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Patient      string `json:"patient"`
	Constitution string `json:"constitution"`
}

// Webhook receives a form submission. The same path answers preflight and
// health probes; any other method is rejected.
func (h *Handle) Webhook(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodPost:
	case http.MethodOptions:
		h.preflight(c)
		return c.NoContent(http.StatusOK)
	case http.MethodGet:
		return h.Health(c)
	default:
		return c.JSON(http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	}

	var p survey.Payload
	if err := decode(c.Request().Body, &p); err != nil {
		return failure(c, http.StatusBadRequest, fmt.Errorf("bad json: %w", err))
	}

	ctx := c.Request().Context()
	out, err := h.svc.Process(ctx, p)
	if err != nil {
		h.svc.ReportFailure(ctx, err)
		return failure(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, webhookResponse{
		Success:      true,
		Message:      "설문 분석 완료",
		Patient:      out.Record.Get(survey.Name),
		Constitution: out.Analysis.Constitution.Type.String(),
	})
}

// preflight answers a CORS preflight for the webhook path.
func (h *Handle) preflight(c echo.Context) {
	hdr := c.Response().Header()
	origin := c.Request().Header.Get(echo.HeaderOrigin)
	for _, o := range h.origins {
		if o == "*" || (origin != "" && strings.EqualFold(o, origin)) {
			if o == "*" {
				origin = "*"
			}
			hdr.Set(echo.HeaderAccessControlAllowOrigin, origin)
			break
		}
	}
	hdr.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
	hdr.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, X-Request-ID")
}
