package app

import (
	"time"

	"hargaemas/internal/config"
	"hargaemas/internal/notifier"
	"hargaemas/internal/pegadaian"
	"hargaemas/internal/proxy"
	"hargaemas/internal/ubs"
)

func provideLocation(cfg *config.Config) *time.Location {
	return cfg.Location()
}

func provideRegistry(cfg *config.Config) *proxy.Registry {
	return proxy.NewRegistry(cfg.Pegadaian.ProxyFile)
}

func provideAcquirer(cfg *config.Config, loc *time.Location) *pegadaian.Acquirer {
	return pegadaian.NewAcquirer(cfg.Pegadaian, loc)
}

func provideExtractor(cfg *config.Config) *pegadaian.Extractor {
	return pegadaian.NewExtractor(cfg.Pegadaian)
}

func provideUBSClient(cfg *config.Config) (*ubs.Client, error) {
	return ubs.NewClient(cfg.UBS)
}

// provideNotifier returns nil when no channel is enabled; notify guards.
func provideNotifier(cfg *config.Config) notifier.TextNotifier {
	if !cfg.Notify.Telegram.Enabled {
		return nil
	}
	return notifier.NewTelegram(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
}
