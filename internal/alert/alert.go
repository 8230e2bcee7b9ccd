package alert

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/models"
)

// Toggles controls which buybox-status transitions produce an alert.
type Toggles struct {
	Losing  bool
	Winning bool
	Amazon  bool
}

// Notifier sends buybox-change alerts over Telegram. A Notifier with a nil
// bot is valid and silently drops messages, so callers never need to branch
// on whether alerting is configured.
type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	toggles Toggles
}

// New creates a Notifier. token may be empty, in which case the notifier is
// a no-op.
func New(token string, chatID int64, toggles Toggles) (*Notifier, error) {
	n := &Notifier{chatID: chatID, toggles: toggles}
	if token == "" || chatID == 0 {
		return n, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	n.bot = bot
	return n, nil
}

// CheckAndAlert fires an alert when the buybox status changed between the
// previously stored snapshot and the new one. old may be nil (first
// observation), which never alerts: there is no transition yet.
func (n *Notifier) CheckAndAlert(old *models.ProductSnapshot, cur models.ProductSnapshot) {
	if old == nil || old.BuyboxStatus == cur.BuyboxStatus {
		return
	}

	msg := n.composeMessage(cur)
	if msg == "" {
		return
	}
	n.send(msg)
}

func (n *Notifier) composeMessage(cur models.ProductSnapshot) string {
	title := cur.Title
	if title == "" {
		title = cur.ASIN
	}
	title = truncate(title, 40)
	price := "unknown"
	if cur.Price != nil {
		price = fmt.Sprintf("%s %.2f", cur.Currency, *cur.Price)
	}

	switch cur.BuyboxStatus {
	case models.StatusLosing:
		if !n.toggles.Losing {
			return ""
		}
		return fmt.Sprintf("🔴 LOSING BUYBOX\n%s\nASIN: %s\nPrice: %s\nWinner: %s",
			title, cur.ASIN, price, cur.Seller)
	case models.StatusWinning:
		if !n.toggles.Winning {
			return ""
		}
		return fmt.Sprintf("🟢 YOU WON BUYBOX\n%s\nASIN: %s\nPrice: %s",
			title, cur.ASIN, price)
	case models.StatusAmazon:
		if !n.toggles.Amazon {
			return ""
		}
		return fmt.Sprintf("🟡 AMAZON TOOK BUYBOX\n%s\nASIN: %s\nPrice: %s",
			title, cur.ASIN, price)
	default:
		return ""
	}
}

func (n *Notifier) send(text string) {
	if n.bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("telegram alert failed: %v", err)
		return
	}
	log.Printf("telegram alert sent to chat %d", n.chatID)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
