package telegram

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig) (*Bot, error) {
	var (
		bot *tgbotapi.BotAPI
		err error
	)
	if c.APIEndpoint != "" {
		bot, err = tgbotapi.NewBotAPIWithAPIEndpoint(c.Token, c.APIEndpoint)
	} else {
		bot, err = tgbotapi.NewBotAPI(c.Token)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug
	log.Infof("Authorized on account %s", bot.Self.UserName)

	return &Bot{
		Bot:    bot,
		Config: c,
	}, nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg, err := newMessageConfig(m.Chat, m.Text)
	if err != nil {
		return err
	}
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = m.ParseMode

	_, err = b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message to %s", m.Chat)
}

func newMessageConfig(chat, text string) (tgbotapi.MessageConfig, error) {
	chat = strings.TrimSpace(chat)
	if strings.HasPrefix(chat, "@") {
		return tgbotapi.NewMessageToChannel(chat, text), nil
	}

	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, errors.Errorf("invalid chat id %q: expected a number or @channel", chat)
	}
	return tgbotapi.NewMessage(chatID, text), nil
}
