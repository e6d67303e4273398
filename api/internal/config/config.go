package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	LLMProvider  string        `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string        `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string        `mapstructure:"OPENAI_MODEL"`
	LLMTimeout   time.Duration `mapstructure:"LLM_TIMEOUT"`
	LLMAttempts  int           `mapstructure:"LLM_ATTEMPTS"`
	PromptDir    string        `mapstructure:"PROMPT_DIR"`

	SlackWebhookURL      string `mapstructure:"SLACK_WEBHOOK_URL"`
	SlackStaffWebhookURL string `mapstructure:"SLACK_STAFF_WEBHOOK_URL"`
	TelegramBotToken     string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramStaffChatID  int64  `mapstructure:"TELEGRAM_STAFF_CHAT_ID"`

	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
	RawResponsesMaxBytes int      `mapstructure:"RAW_RESPONSES_MAX_BYTES"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"LLM_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL",
	"LLM_TIMEOUT", "LLM_ATTEMPTS", "PROMPT_DIR",
	"SLACK_WEBHOOK_URL", "SLACK_STAFF_WEBHOOK_URL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_STAFF_CHAT_ID",
	"CORS_ORIGINS", "RAW_RESPONSES_MAX_BYTES",
}

// Load reads .env when present, then the environment. Secrets are not
// required here: a missing API key or webhook URL fails the request that
// needs it, not the process.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_TIMEOUT", "120s")
	v.SetDefault("LLM_ATTEMPTS", 1)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RAW_RESPONSES_MAX_BYTES", 2900)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks value shapes. Presence of secrets is checked at use.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "gemini", "gpt", "openai":
	default:
		return fmt.Errorf("LLM_PROVIDER must be \"gemini\" or \"openai\", got %q", c.LLMProvider)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLMTimeout)
	}
	if c.LLMAttempts < 1 {
		return fmt.Errorf("LLM_ATTEMPTS must be at least 1, got %d", c.LLMAttempts)
	}
	if c.RawResponsesMaxBytes < 100 || c.RawResponsesMaxBytes > 2900 {
		return fmt.Errorf("RAW_RESPONSES_MAX_BYTES must be between 100 and 2900, got %d", c.RawResponsesMaxBytes)
	}
	if (c.TelegramBotToken == "") != (c.TelegramStaffChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_STAFF_CHAT_ID must be set together")
	}
	return nil
}

// Logger builds the process logger: JSON to stdout, console output in
// development.
func (c *Config) Logger() zerolog.Logger {
	return NewLogger(c.Env, c.LogLevel)
}
