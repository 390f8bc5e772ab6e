//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"hargaemas/internal/config"
)

func buildAppWithWire(cfg *config.Config) (*App, error) {
	wire.Build(
		provideLocation,
		provideRegistry,
		provideAcquirer,
		provideExtractor,
		provideUBSClient,
		provideNotifier,
		New,
	)
	return nil, nil
}
