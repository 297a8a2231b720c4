package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"whale-alert-bot/internal/types"
)

// Config is built once at startup and handed to every component by value.
type Config struct {
	TelegramBotToken    string
	TelegramChatID      string
	TelegramAPIEndpoint string

	WhaleAlertAPIKey  string
	WhaleAlertBaseURL string
	Sources           []types.Source

	MinTransactionAmount float64
	MinWinRate           float64

	PollInterval   time.Duration
	RequestTimeout time.Duration
	WindowStart    time.Duration
	WindowEnd      time.Duration
	Location       *time.Location

	MetricsPort  int
	DatabasePath string
	Debug        bool
	Lang         string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram_chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("telegram_api_endpoint", "TELEGRAM_API_ENDPOINT")
	v.BindEnv("whale_alert_api_key", "WHALE_ALERT_API_KEY")
	v.BindEnv("whale_alert_base_url", "WHALE_ALERT_BASE_URL")
	v.BindEnv("blockchains", "BLOCKCHAINS")
	v.BindEnv("min_transaction_amount", "MIN_TRANSACTION_AMOUNT")
	v.BindEnv("min_win_rate", "MIN_WIN_RATE")
	v.BindEnv("poll_interval", "POLL_INTERVAL")
	v.BindEnv("request_timeout", "REQUEST_TIMEOUT")
	v.BindEnv("active_window_start", "ACTIVE_WINDOW_START")
	v.BindEnv("active_window_end", "ACTIVE_WINDOW_END")
	v.BindEnv("timezone", "TIMEZONE")
	v.BindEnv("metrics_port", "METRICS_PORT")
	v.BindEnv("database_path", "DATABASE_PATH")
	v.BindEnv("debug", "DEBUG")
	v.BindEnv("lang", "LANG")

	v.SetDefault("whale_alert_base_url", "https://api.whale-alert.io/v1/transactions")
	v.SetDefault("blockchains", "ethereum,bsc,solana,ripple")
	v.SetDefault("min_transaction_amount", 15000)
	v.SetDefault("min_win_rate", 90)
	v.SetDefault("poll_interval", 5*time.Minute)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("active_window_start", "06:00")
	v.SetDefault("active_window_end", "02:00")
	v.SetDefault("timezone", "Local")
	v.SetDefault("metrics_port", 9090)
	v.SetDefault("database_path", "/app/data/whale-bot.db")
	v.SetDefault("debug", false)
	v.SetDefault("lang", "en")

	return v
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return Config{}, errors.Wrap(err, "could not read .env file")
	}
	return fromViper(newViper())
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		TelegramBotToken:     v.GetString("telegram_bot_token"),
		TelegramChatID:       v.GetString("telegram_chat_id"),
		TelegramAPIEndpoint:  v.GetString("telegram_api_endpoint"),
		WhaleAlertAPIKey:     v.GetString("whale_alert_api_key"),
		WhaleAlertBaseURL:    v.GetString("whale_alert_base_url"),
		MinTransactionAmount: v.GetFloat64("min_transaction_amount"),
		MinWinRate:           v.GetFloat64("min_win_rate"),
		PollInterval:         v.GetDuration("poll_interval"),
		RequestTimeout:       v.GetDuration("request_timeout"),
		MetricsPort:          v.GetInt("metrics_port"),
		DatabasePath:         v.GetString("database_path"),
		Debug:                v.GetBool("debug"),
		Lang:                 strings.ToLower(v.GetString("lang")),
	}

	var err error
	if cfg.WindowStart, err = ParseTimeOfDay(v.GetString("active_window_start")); err != nil {
		return Config{}, errors.Wrap(err, "active_window_start")
	}
	if cfg.WindowEnd, err = ParseTimeOfDay(v.GetString("active_window_end")); err != nil {
		return Config{}, errors.Wrap(err, "active_window_end")
	}
	if cfg.Location, err = time.LoadLocation(v.GetString("timezone")); err != nil {
		return Config{}, errors.Wrapf(err, "unknown timezone %q", v.GetString("timezone"))
	}
	if cfg.Sources, err = BuildSources(cfg.WhaleAlertBaseURL, v.GetString("blockchains")); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first missing or unusable setting.
func (c Config) Validate() error {
	switch {
	case c.TelegramBotToken == "":
		return errors.New("TELEGRAM_BOT_TOKEN is not set")
	case c.TelegramChatID == "":
		return errors.New("TELEGRAM_CHAT_ID is not set")
	case !validChatID(c.TelegramChatID):
		return errors.Errorf("TELEGRAM_CHAT_ID %q must be a numeric chat id or an @channel username", c.TelegramChatID)
	case c.WhaleAlertAPIKey == "":
		return errors.New("WHALE_ALERT_API_KEY is not set")
	case len(c.Sources) == 0:
		return errors.New("no blockchains configured")
	case c.PollInterval <= 0:
		return errors.Errorf("poll interval must be positive, got %s", c.PollInterval)
	case c.RequestTimeout < 0:
		return errors.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

func validChatID(chat string) bool {
	chat = strings.TrimSpace(chat)
	if strings.HasPrefix(chat, "@") {
		return len(chat) > 1
	}
	_, err := strconv.ParseInt(chat, 10, 64)
	return err == nil
}

// BuildSources turns a comma separated blockchain list into sources whose
// endpoint is baseURL with a blockchain query parameter.
func BuildSources(baseURL, blockchains string) ([]types.Source, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url %q", baseURL)
	}

	var sources []types.Source
	seen := make(map[string]bool)
	for _, name := range strings.Split(blockchains, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		endpoint := *base
		q := endpoint.Query()
		q.Set("blockchain", name)
		endpoint.RawQuery = q.Encode()

		sources = append(sources, types.Source{Name: name, Endpoint: endpoint.String()})
	}
	return sources, nil
}

// ParseTimeOfDay parses "HH:MM" into an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid time of day %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
