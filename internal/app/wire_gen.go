//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject

package app

import (
	"hargaemas/internal/config"
)

func buildAppWithWire(cfg *config.Config) (*App, error) {
	location := provideLocation(cfg)
	registry := provideRegistry(cfg)
	acquirer := provideAcquirer(cfg, location)
	extractor := provideExtractor(cfg)
	client, err := provideUBSClient(cfg)
	if err != nil {
		return nil, err
	}
	textNotifier := provideNotifier(cfg)
	appApp := New(cfg, location, registry, acquirer, extractor, client, textNotifier)
	return appApp, nil
}
