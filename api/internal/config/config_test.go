package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range keys {
		t.Setenv(k, "")
	}
	// empty variables count as unset
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.LLMProvider != "gemini" || cfg.GeminiModel != "gemini-2.5-flash" || cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("unexpected llm defaults %+v", cfg)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Errorf("expected 120s timeout, got %s", cfg.LLMTimeout)
	}
	if cfg.LLMAttempts != 1 || cfg.RawResponsesMaxBytes != 2900 {
		t.Errorf("unexpected numeric defaults %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected CORS *, got %v", cfg.CORSOrigins)
	}
	if !cfg.IsDev() {
		t.Error("expected development by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/X")
	t.Setenv("CORS_ORIGINS", "https://tally.so, https://clinic.example")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_STAFF_CHAT_ID", "-1001234")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.LLMProvider != "openai" || cfg.LLMTimeout != 45*time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.SlackWebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("unexpected webhook %s", cfg.SlackWebhookURL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://clinic.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.TelegramStaffChatID != -1001234 {
		t.Errorf("unexpected chat id %d", cfg.TelegramStaffChatID)
	}
}

func validConfig() *Config {
	return &Config{
		LLMProvider:          "gemini",
		LogLevel:             "info",
		LLMTimeout:           time.Minute,
		LLMAttempts:          1,
		RawResponsesMaxBytes: 2900,
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"valid", func(*Config) {}, ""},
		{"provider", func(c *Config) { c.LLMProvider = "claude" }, "LLM_PROVIDER"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"timeout", func(c *Config) { c.LLMTimeout = 0 }, "LLM_TIMEOUT"},
		{"attempts", func(c *Config) { c.LLMAttempts = 0 }, "LLM_ATTEMPTS"},
		{"raw cap", func(c *Config) { c.RawResponsesMaxBytes = 5000 }, "RAW_RESPONSES_MAX_BYTES"},
		{"telegram half", func(c *Config) { c.TelegramBotToken = "x" }, "TELEGRAM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			if tc.errSub == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("expected error containing %q, got %v", tc.errSub, err)
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	if got := NewLogger("production", "debug").GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("expected debug, got %s", got)
	}
	if got := NewLogger("production", "bogus").GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("expected info fallback, got %s", got)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
