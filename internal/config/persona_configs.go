package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"geofora/ai-gateway/internal/infrastructure/logger"
)

const DefaultPersonaConfigFile = "config/personas.yml"

var validKnowledgeLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"expert":       true,
}

var validProviders = map[string]bool{
	"openai":    true,
	"anthropic": true,
	"google":    true,
}

// PersonaEntry describes a persona that should be registered on startup.
type PersonaEntry struct {
	ID             string
	Name           string
	Provider       string
	Model          string
	SystemPrompt   string
	Temperature    float32
	MaxTokens      int
	KnowledgeLevel string
}

// PersonaConfig maintains all configured persona sets.
type PersonaConfig struct {
	sets map[string][]PersonaEntry
}

// PersonasForSet returns a copy of the personas defined for the requested set.
func (c *PersonaConfig) PersonasForSet(name string) []PersonaEntry {
	if c == nil {
		return nil
	}
	set := strings.TrimSpace(name)
	if set == "" {
		set = "default"
	}
	list := c.sets[set]
	if len(list) == 0 {
		return nil
	}
	result := make([]PersonaEntry, len(list))
	copy(result, list)
	return result
}

// LoadPersonaConfig parses the yaml file at the provided path.
func LoadPersonaConfig(path string) (*PersonaConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("persona config path is empty")
	}

	log := logger.GetLogger()
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read persona config %q: %w", cleanPath, err)
	}
	log.Info().Str("path", cleanPath).Msg("loading persona config file")

	var doc personaConfigDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse persona config %q: %w", cleanPath, err)
	}

	if len(doc.Personas) == 0 {
		return nil, fmt.Errorf("persona config %q has no personas defined", cleanPath)
	}

	result := &PersonaConfig{
		sets: make(map[string][]PersonaEntry),
	}

	for rawSet, entries := range doc.Personas {
		setName := strings.TrimSpace(rawSet)
		if setName == "" || len(entries) == 0 {
			continue
		}
		seen := make(map[string]bool, len(entries))
		for idx, entry := range entries {
			normalized, err := normalizePersonaEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("personas.%s[%d]: %w", setName, idx, err)
			}
			if seen[normalized.ID] {
				return nil, fmt.Errorf("personas.%s[%d]: duplicate persona id %q", setName, idx, normalized.ID)
			}
			seen[normalized.ID] = true
			log.Debug().
				Str("set", setName).
				Str("persona", normalized.ID).
				Str("provider", normalized.Provider).
				Str("model", normalized.Model).
				Msg("including persona for bootstrap")
			result.sets[setName] = append(result.sets[setName], normalized)
		}
	}

	if len(result.sets) == 0 {
		return nil, fmt.Errorf("persona config %q has no valid persona entries", cleanPath)
	}

	return result, nil
}

type personaConfigDocument struct {
	Personas map[string][]personaConfigEntry `yaml:"personas"`
}

type personaConfigEntry struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Provider       string   `yaml:"provider"`
	Model          string   `yaml:"model"`
	SystemPrompt   string   `yaml:"system_prompt"`
	Temperature    *float32 `yaml:"temperature"`
	MaxTokens      *int     `yaml:"max_tokens"`
	KnowledgeLevel string   `yaml:"knowledge_level"`
}

func normalizePersonaEntry(entry personaConfigEntry) (PersonaEntry, error) {
	id := strings.TrimSpace(entry.ID)
	if id == "" {
		return PersonaEntry{}, errors.New("persona id is required")
	}

	provider := strings.ToLower(strings.TrimSpace(entry.Provider))
	if !validProviders[provider] {
		return PersonaEntry{}, fmt.Errorf("unknown provider %q", entry.Provider)
	}

	model := strings.TrimSpace(entry.Model)
	if model == "" {
		return PersonaEntry{}, errors.New("persona model is required")
	}

	level := strings.ToLower(strings.TrimSpace(entry.KnowledgeLevel))
	if !validKnowledgeLevels[level] {
		return PersonaEntry{}, fmt.Errorf("unknown knowledge level %q", entry.KnowledgeLevel)
	}

	name := strings.TrimSpace(entry.Name)
	if name == "" {
		name = id
	}

	temperature := float32(0.7)
	if entry.Temperature != nil {
		temperature = *entry.Temperature
	}
	if temperature < 0 || temperature > 2 {
		return PersonaEntry{}, fmt.Errorf("temperature %v out of range [0, 2]", temperature)
	}

	maxTokens := 1024
	if entry.MaxTokens != nil {
		maxTokens = *entry.MaxTokens
	}
	if maxTokens <= 0 {
		return PersonaEntry{}, fmt.Errorf("max_tokens %d must be positive", maxTokens)
	}

	return PersonaEntry{
		ID:             id,
		Name:           name,
		Provider:       provider,
		Model:          model,
		SystemPrompt:   strings.TrimSpace(entry.SystemPrompt),
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		KnowledgeLevel: level,
	}, nil
}
