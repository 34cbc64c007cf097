//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"hnblocks/internal"
	"hnblocks/internal/console"
	"hnblocks/internal/controllers"
	"hnblocks/internal/providers"
	"hnblocks/internal/refresh"
	"hnblocks/internal/services"
	"hnblocks/internal/storage"
	"hnblocks/internal/structures"
	"hnblocks/internal/upstream"
)

var baseSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,

	storage.NewZstdCompressor,
	storage.NewFileStore,
	upstream.NewAlgoliaClient,
	services.NewStoryService,
	services.NewSettingsService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		baseSet,
		refresh.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitConsole(cfg *structures.CliFlags) (*console.Console, error) {

	wire.Build(
		baseSet,
		console.NewConsole,
	)

	return nil, nil
}
