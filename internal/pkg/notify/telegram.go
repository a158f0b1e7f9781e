// Package notify sends optional run summaries over Telegram.
package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"oddsharvest/internal/pkg/models"
)

// TelegramNotifier reports season scrape summaries to a chat. A nil
// notifier is valid and does nothing, so callers never need to branch.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = false
	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("telegram bot unavailable: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// SeasonDone sends a one-line summary for a populated season. Send failures
// are logged and swallowed.
func (n *TelegramNotifier) SeasonDone(season *models.Season) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("Season %s: %d pages, %d games scraped",
		season.Name, len(season.URLs), len(season.Games))
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		slog.Warn("Failed to send telegram notification", "season", season.Name, "error", err)
	}
}
