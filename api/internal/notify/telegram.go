package notify

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramLimit keeps messages under the 4096-character Bot API cap.
const telegramLimit = 3900

// Telegram sends plain-text notices to one chat.
type Telegram struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

// NewTelegram authenticates the bot. An empty endpoint uses the public Bot API.
func NewTelegram(token string, chatID int64, endpoint string, httpc *http.Client) (*Telegram, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if httpc == nil {
		httpc = &http.Client{}
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{Bot: bot, ChatID: chatID}, nil
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := m.Text
	if parts := Chunks(text, telegramLimit); len(parts) > 1 {
		text = parts[0] + "\n…"
	}
	if _, err := t.Bot.Send(tgbotapi.NewMessage(t.ChatID, text)); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	return nil
}
