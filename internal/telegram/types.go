package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// BotConfig configuration of the bot
type BotConfig struct {
	Token string
	Debug bool
	// APIEndpoint overrides the Bot API URL format, e.g. for a local Bot API server.
	APIEndpoint string
}

// Bot telegram interaction client
type Bot struct {
	Bot    *tgbotapi.BotAPI
	Config BotConfig
}

// Message a telegram message struct. Chat is either a numeric chat id or a
// public channel username starting with "@".
type Message struct {
	Chat      string
	MessageID int
	Text      string
	ParseMode string
}
