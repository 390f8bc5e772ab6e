package config

import "time"

// Config is the root configuration for hargaemas.
type Config struct {
	App       AppConfig       `toml:"app"`
	Pegadaian PegadaianConfig `toml:"pegadaian"`
	UBS       UBSConfig       `toml:"ubs"`
	Notify    NotifyConfig    `toml:"notify"`
	Watch     WatchConfig     `toml:"watch"`

	loc *time.Location
}

type AppConfig struct {
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
	Timezone string `toml:"timezone"`
}

// PegadaianConfig drives the headless-browser acquisition of the retail page.
type PegadaianConfig struct {
	URL               string   `toml:"url"`
	OutputCSV         string   `toml:"output_csv"`
	ArtifactDir       string   `toml:"artifact_dir"`
	ArtifactPrefix    string   `toml:"artifact_prefix"`
	UserAgent         string   `toml:"user_agent"`
	InterstitialTitle string   `toml:"interstitial_title"`
	PriceMarker       string   `toml:"price_marker"`
	ExpectedPrices    int      `toml:"expected_prices"`
	AntiBotTimeoutSec int      `toml:"anti_bot_timeout_seconds"`
	PollIntervalSec   int      `toml:"poll_interval_seconds"`
	PollTimeoutSec    int      `toml:"poll_timeout_seconds"`
	LoadingIndicators []string `toml:"loading_indicators"`
	ProxyFile         string   `toml:"proxy_file"`
}

func (p PegadaianConfig) AntiBotTimeout() time.Duration {
	return time.Duration(p.AntiBotTimeoutSec) * time.Second
}

func (p PegadaianConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalSec) * time.Second
}

func (p PegadaianConfig) PollTimeout() time.Duration {
	return time.Duration(p.PollTimeoutSec) * time.Second
}

// UBSConfig drives the chart-endpoint fetch of the buyback series.
type UBSConfig struct {
	Endpoint          string `toml:"endpoint"`
	Action            string `toml:"action"`
	Instrument        string `toml:"instrument"`
	OutputCSV         string `toml:"output_csv"`
	TimeoutSec        int    `toml:"timeout_seconds"`
	RequestsPerSecond int    `toml:"requests_per_second"`
}

func (u UBSConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSec) * time.Second
}

type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

// WatchConfig schedules the two acquisition paths in daemon mode. Cron
// expressions are evaluated in the configured timezone.
type WatchConfig struct {
	Pegadaian WatchJob `toml:"pegadaian"`
	UBS       WatchJob `toml:"ubs"`
}

type WatchJob struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"`
}

// Location returns the source-locale zone resolved from app.timezone.
// Falls back to the process-local zone when resolution fails.
func (c *Config) Location() *time.Location {
	if c.loc != nil {
		return c.loc
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil || loc == nil {
		return time.Local
	}
	c.loc = loc
	return loc
}
