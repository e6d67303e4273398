package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"survey-relay/api/internal/config"
	"survey-relay/api/internal/llm"
	"survey-relay/api/internal/llm/gemini"
	"survey-relay/api/internal/llm/openai"
	"survey-relay/api/internal/notify"
	"survey-relay/api/internal/relay"
)

func buildAnalyzer(cfg *config.Config, logger zerolog.Logger) (*llm.Analyzer, error) {
	engines := &llm.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMAttempts),
		OpenAI: openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
	}
	engine, err := engines.GetEngine(cfg.LLMProvider)
	if err != nil {
		return nil, err
	}
	prompt, err := llm.LoadPrompt(cfg.PromptDir)
	if err != nil {
		return nil, err
	}
	return llm.NewAnalyzer(engine, prompt, logger), nil
}

// staffChannels returns the configured reception channels. A Telegram bot
// that fails to authenticate is logged and left out.
func staffChannels(cfg *config.Config, logger zerolog.Logger) []notify.Channel {
	httpc := &http.Client{Timeout: 15 * time.Second}
	var out []notify.Channel
	if cfg.SlackStaffWebhookURL != "" {
		out = append(out, notify.NewSlack(cfg.SlackStaffWebhookURL, httpc))
	}
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramStaffChatID, "", httpc)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram staff channel disabled")
		} else {
			out = append(out, tg)
		}
	}
	return out
}

func buildService(cfg *config.Config, logger zerolog.Logger) (*relay.Service, error) {
	analyzer, err := buildAnalyzer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	primary := notify.NewSlack(cfg.SlackWebhookURL, &http.Client{Timeout: 15 * time.Second})
	return relay.New(analyzer, primary, logger,
		relay.WithResponseCap(cfg.RawResponsesMaxBytes),
		relay.WithTimeout(cfg.LLMTimeout),
		relay.WithStaff(staffChannels(cfg, logger)...),
	), nil
}
