package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"geofora/ai-gateway/internal/config"
)

type V1Route struct {
	generate *GenerateRoute
	provider *ProviderRoute
	persona  *PersonaRoute
	usage    *UsageRoute
}

func NewV1Route(
	generate *GenerateRoute,
	provider *ProviderRoute,
	persona *PersonaRoute,
	usage *UsageRoute,
) *V1Route {
	return &V1Route{
		generate,
		provider,
		persona,
		usage,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", GetReadyz)

	v1Route.generate.RegisterRouter(v1Router)
	v1Route.provider.RegisterRouter(v1Router)
	v1Route.persona.RegisterRouter(v1Router)
	v1Route.usage.RegisterRouter(v1Router)
}

// GetVersion returns the current build version and environment reload timestamp.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetEnvReloadedAt().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetHealthz reports liveness for orchestrators and monitoring systems.
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz reports whether the service is ready to accept traffic.
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
