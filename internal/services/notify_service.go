package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aipipeline/internal/models"
)

// Notifier announces deals that reach a terminal stage. Implementations must
// never block a request on delivery problems; callers only log failures.
type Notifier interface {
	DealClosed(deal *models.Deal) error
}

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier returns nil (notifications disabled) when token or chat
// id are not configured.
func NewTelegramNotifier(token string, chatID int64) (Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg] notifier enabled, bot=%s", bot.Self.UserName)
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *telegramNotifier) DealClosed(deal *models.Deal) error {
	verb := "won"
	if deal.Stage == models.StageClosedLost {
		verb = "lost"
	}
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf(
		"Deal %s: %q (%s), $%.2f", verb, deal.Title, deal.Company, deal.Value))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
