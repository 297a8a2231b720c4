package alert

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"whale-alert-bot/internal/telegram"
	"whale-alert-bot/internal/types"
	"whale-alert-bot/lib/helpers"
	"whale-alert-bot/lib/translation"
)

const (
	messageFormat = "🔥 Whale Alert on %s 🔥\nAmount: $%s\nWin Rate: %s%%\nTransaction: %s"
	unknownHash   = "unknown"
)

// Sender delivers a single message. *telegram.Bot satisfies it.
type Sender interface {
	SendMessage(m telegram.Message) error
}

// Notifier posts one plain-text message per transaction to a fixed chat.
type Notifier struct {
	sender Sender
	chat   string
}

func NewNotifier(sender Sender, chat string) *Notifier {
	return &Notifier{sender: sender, chat: chat}
}

// Format renders the alert text for tx. A record without a hash shows
// "unknown" in its place.
func Format(tx types.Transaction) string {
	hash := strings.TrimSpace(tx.Hash)
	if hash == "" {
		hash = translation.Translate(unknownHash)
	}
	return translation.Translate(messageFormat,
		strings.ToUpper(tx.Source),
		helpers.FormatNumber(tx.AmountUSD),
		helpers.FormatNumber(tx.WinRate),
		hash,
	)
}

// Notify sends the alert for tx. Delivery errors are returned unchanged in
// cause so the caller can stop the cycle.
func (n *Notifier) Notify(ctx context.Context, tx types.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := n.sender.SendMessage(telegram.Message{
		Chat: n.chat,
		Text: Format(tx),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to send whale alert for %s", tx.Hash)
	}

	log.WithFields(log.Fields{
		"source": tx.Source,
		"hash":   tx.Hash,
		"amount": tx.AmountUSD,
	}).Info("✅ Whale alert sent")
	return nil
}
