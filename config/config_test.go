package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234")
	t.Setenv("WHALE_ALERT_API_KEY", "key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("LANG", "")

	cfg, err := fromViper(newViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MinTransactionAmount != 15000 {
		t.Errorf("expected min amount 15000, got %v", cfg.MinTransactionAmount)
	}
	if cfg.MinWinRate != 90 {
		t.Errorf("expected min win rate 90, got %v", cfg.MinWinRate)
	}
	if cfg.PollInterval != 300*time.Second {
		t.Errorf("expected 300s interval, got %s", cfg.PollInterval)
	}
	if cfg.WindowStart != 6*time.Hour || cfg.WindowEnd != 2*time.Hour {
		t.Errorf("expected 06:00-02:00 window, got %s-%s", cfg.WindowStart, cfg.WindowEnd)
	}
	if cfg.MetricsPort != 9090 {
		t.Errorf("expected metrics port 9090, got %d", cfg.MetricsPort)
	}
	if cfg.Lang != "en" {
		t.Errorf("expected lang en, got %q", cfg.Lang)
	}

	names := make([]string, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		names = append(names, s.Name)
	}
	if got := strings.Join(names, ","); got != "ethereum,bsc,solana,ripple" {
		t.Errorf("unexpected sources %q", got)
	}
	if cfg.Sources[0].Endpoint != "https://api.whale-alert.io/v1/transactions?blockchain=ethereum" {
		t.Errorf("unexpected endpoint %q", cfg.Sources[0].Endpoint)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BLOCKCHAINS", "Bitcoin, tron")
	t.Setenv("MIN_TRANSACTION_AMOUNT", "50000")
	t.Setenv("MIN_WIN_RATE", "75.5")
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("ACTIVE_WINDOW_START", "22:30")
	t.Setenv("ACTIVE_WINDOW_END", "04:15")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("DEBUG", "true")

	cfg, err := fromViper(newViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Sources) != 2 || cfg.Sources[0].Name != "bitcoin" || cfg.Sources[1].Name != "tron" {
		t.Errorf("unexpected sources %+v", cfg.Sources)
	}
	if cfg.MinTransactionAmount != 50000 || cfg.MinWinRate != 75.5 {
		t.Errorf("unexpected thresholds %v/%v", cfg.MinTransactionAmount, cfg.MinWinRate)
	}
	if cfg.PollInterval != time.Minute {
		t.Errorf("expected 1m interval, got %s", cfg.PollInterval)
	}
	if cfg.WindowStart != 22*time.Hour+30*time.Minute || cfg.WindowEnd != 4*time.Hour+15*time.Minute {
		t.Errorf("unexpected window %s-%s", cfg.WindowStart, cfg.WindowEnd)
	}
	if cfg.Location != time.UTC {
		t.Errorf("expected UTC location, got %v", cfg.Location)
	}
	if !cfg.Debug {
		t.Error("expected debug to be enabled")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "bot token", key: "TELEGRAM_BOT_TOKEN", wantErr: "TELEGRAM_BOT_TOKEN"},
		{name: "chat id", key: "TELEGRAM_CHAT_ID", wantErr: "TELEGRAM_CHAT_ID"},
		{name: "chat id without @", key: "TELEGRAM_CHAT_ID", value: "whales", wantErr: "TELEGRAM_CHAT_ID"},
		{name: "bare @", key: "TELEGRAM_CHAT_ID", value: "@", wantErr: "TELEGRAM_CHAT_ID"},
		{name: "api key", key: "WHALE_ALERT_API_KEY", wantErr: "WHALE_ALERT_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := fromViper(newViper())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadAcceptsChannelUsername(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_CHAT_ID", "@whale_alerts")

	cfg, err := fromViper(newViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TelegramChatID != "@whale_alerts" {
		t.Errorf("unexpected chat id %q", cfg.TelegramChatID)
	}
}

func TestLoadInvalidWindow(t *testing.T) {
	setRequired(t)
	t.Setenv("ACTIVE_WINDOW_START", "6am")

	if _, err := fromViper(newViper()); err == nil {
		t.Fatal("expected an error for an unparseable window bound")
	}
}

func TestBuildSourcesKeepsExistingQuery(t *testing.T) {
	sources, err := BuildSources("https://example.test/v1/tx?min_value=500000", "ethereum,ethereum,,bsc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	want := "https://example.test/v1/tx?blockchain=bsc&min_value=500000"
	if sources[1].Endpoint != want {
		t.Errorf("expected %q, got %q", want, sources[1].Endpoint)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "06:00", want: 6 * time.Hour},
		{in: "23:59", want: 23*time.Hour + 59*time.Minute},
		{in: " 02:00 ", want: 2 * time.Hour},
		{in: "24:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
