package routes

import (
	"github.com/google/wire"

	"geofora/ai-gateway/internal/interfaces/httpserver/handlers"
	v1 "geofora/ai-gateway/internal/interfaces/httpserver/routes/v1"
)

var RouteProvider = wire.NewSet(
	// Handlers
	handlers.NewGenerateHandler,
	handlers.NewProviderHandler,
	handlers.NewPersonaHandler,
	handlers.NewUsageHandler,

	// Routes
	v1.NewV1Route,
	v1.NewGenerateRoute,
	v1.NewProviderRoute,
	v1.NewPersonaRoute,
	v1.NewUsageRoute,
)
