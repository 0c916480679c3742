package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for packages that cannot take the config by injection.
var globalConfig *Config

// Config holds all environment backed configuration for ai-gateway.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Provider credentials. A provider with no key is constructed inactive
	// and skipped during dispatch.
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GoogleAIAPIKey  string `env:"GOOGLE_AI_API_KEY"`

	// Provider endpoints, overridable for proxies and test doubles.
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
	GoogleAIBaseURL  string `env:"GOOGLE_AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`

	// Rate limiting (fixed window, per provider)
	RateWindow                 time.Duration `env:"RATE_WINDOW" envDefault:"60s"`
	OpenAIRequestsPerWindow    int           `env:"OPENAI_REQUESTS_PER_WINDOW" envDefault:"60"`
	OpenAITokensPerWindow      int           `env:"OPENAI_TOKENS_PER_WINDOW" envDefault:"90000"`
	AnthropicRequestsPerWindow int           `env:"ANTHROPIC_REQUESTS_PER_WINDOW" envDefault:"50"`
	AnthropicTokensPerWindow   int           `env:"ANTHROPIC_TOKENS_PER_WINDOW" envDefault:"80000"`
	GoogleRequestsPerWindow    int           `env:"GOOGLE_REQUESTS_PER_WINDOW" envDefault:"60"`
	GoogleTokensPerWindow      int           `env:"GOOGLE_TOKENS_PER_WINDOW" envDefault:"120000"`

	// Circuit breaker
	BreakerFailureThreshold int           `env:"BREAKER_FAILURE_THRESHOLD" envDefault:"5"`
	BreakerCooldown         time.Duration `env:"BREAKER_COOLDOWN" envDefault:"5m"`

	// Health prober
	ProbeEnabled bool `env:"PROBE_ENABLED" envDefault:"true"`

	// Personas
	PersonaConfigFile string         `env:"PERSONA_CONFIG_FILE"`
	PersonaConfigSet  string         `env:"PERSONA_CONFIG_SET" envDefault:"default"`
	PersonaBootstrap  *PersonaConfig `env:"-"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"ai-gateway"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"geofora"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.PersonaConfigSet = strings.TrimSpace(cfg.PersonaConfigSet)
	if cfg.PersonaConfigSet == "" {
		cfg.PersonaConfigSet = "default"
	}

	configFile := strings.TrimSpace(cfg.PersonaConfigFile)
	if configFile == "" {
		configFile = DefaultPersonaConfigFile
	}
	bootstrap, err := LoadPersonaConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("load persona configs: %w", err)
	}
	cfg.PersonaBootstrap = bootstrap
	if len(bootstrap.PersonasForSet(cfg.PersonaConfigSet)) == 0 {
		return nil, fmt.Errorf("persona config set %q is missing or empty in %s", cfg.PersonaConfigSet, configFile)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// PersonaEntries returns the configured persona definitions for the active set.
func (c *Config) PersonaEntries() []PersonaEntry {
	if c == nil || c.PersonaBootstrap == nil {
		return nil
	}
	return c.PersonaBootstrap.PersonasForSet(c.PersonaConfigSet)
}

// UsageTrackingEnabled reports whether call accounting should be persisted.
func (c *Config) UsageTrackingEnabled() bool {
	return c.DatabaseURL != ""
}

// GetGlobal returns the global config instance.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

// GetEnvReloadedAt returns when the environment was last loaded.
func GetEnvReloadedAt() time.Time {
	if globalConfig == nil {
		return time.Time{}
	}
	return globalConfig.EnvReloadedAt
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
