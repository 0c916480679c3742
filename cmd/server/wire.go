//go:build wireinject

package main

import (
	"geofora/ai-gateway/internal/infrastructure"
	"geofora/ai-gateway/internal/interfaces"
	"geofora/ai-gateway/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
