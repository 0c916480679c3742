package interfaces

import (
	"github.com/google/wire"

	"geofora/ai-gateway/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
