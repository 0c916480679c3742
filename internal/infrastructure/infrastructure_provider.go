package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"geofora/ai-gateway/internal/config"
	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/domain/usage"
	"geofora/ai-gateway/internal/infrastructure/database"
	"geofora/ai-gateway/internal/infrastructure/database/repository/usagerepo"
	"geofora/ai-gateway/internal/infrastructure/inference"
	"geofora/ai-gateway/internal/infrastructure/logger"
	"geofora/ai-gateway/internal/infrastructure/prober"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection. Usage tracking is optional;
// without DATABASE_URL the gateway serves traffic with accounting disabled.
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	if !cfg.UsageTrackingEnabled() {
		log.Info().Msg("DATABASE_URL not set, usage tracking disabled")
		return nil, nil
	}

	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideGateway builds the dispatch gateway from the provider registry and
// the configured persona set.
func ProvideGateway(cfg *config.Config, log zerolog.Logger) (*gateway.Gateway, error) {
	registry := inference.BuildRegistry(cfg)

	entries := cfg.PersonaEntries()
	personas := make([]*gateway.Persona, 0, len(entries))
	for _, e := range entries {
		personas = append(personas, &gateway.Persona{
			ID:             e.ID,
			Name:           e.Name,
			ProviderID:     e.Provider,
			Model:          e.Model,
			SystemPrompt:   e.SystemPrompt,
			Temperature:    e.Temperature,
			MaxTokens:      e.MaxTokens,
			KnowledgeLevel: gateway.KnowledgeLevel(e.KnowledgeLevel),
		})
	}

	return gateway.New(
		gateway.Config{
			RateWindow:       cfg.RateWindow,
			FailureThreshold: cfg.BreakerFailureThreshold,
			Cooldown:         cfg.BreakerCooldown,
		},
		registry.Providers,
		registry.Adapters,
		gateway.NewPersonaRegistry(personas),
		log,
	)
}

// ProvideUsageService provides call accounting, disabled when no database is
// configured.
func ProvideUsageService(db *gorm.DB, log zerolog.Logger) *usage.Service {
	if db == nil {
		return usage.NewService(nil, log)
	}
	return usage.NewService(usagerepo.NewUsageRepository(db), log)
}

// ProvideProber provides the background health prober.
func ProvideProber(gw *gateway.Gateway) *prober.Prober {
	return prober.NewProber(gw)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB           *gorm.DB
	Gateway      *gateway.Gateway
	UsageService *usage.Service
	Logger       zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	gw *gateway.Gateway,
	usageService *usage.Service,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:           db,
		Gateway:      gw,
		UsageService: usageService,
		Logger:       logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,

	// Gateway and accounting
	ProvideGateway,
	ProvideUsageService,

	// Health prober
	ProvideProber,

	// Logger
	logger.GetLogger,

	NewInfrastructure,
)
