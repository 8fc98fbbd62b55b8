//go:build wireinject
// +build wireinject

package main

import (
	"qsmart/qsmart-crowd-server/pkg/baseline"
	"qsmart/qsmart-crowd-server/pkg/client"
	"qsmart/qsmart-crowd-server/pkg/config"
	"qsmart/qsmart-crowd-server/pkg/crowd"
	"qsmart/qsmart-crowd-server/pkg/infra"
	"qsmart/qsmart-crowd-server/pkg/registration"

	"github.com/google/wire"
)

func Setup() (*Server, error) {
	wire.Build(wire.NewSet(
		ProvideServer,
		ProvideApplication,
		client.ProvideHub,
		crowd.ProvideService,
		crowd.ProvideClock,
		registration.ProvideSweeper,
		registration.ProvideStore,
		baseline.ProvideTable,
		infra.ProvideHttpClient,
		infra.ProvideLoggerFactory,
		config.ProvideConfig,
	))
	return nil, nil
}
