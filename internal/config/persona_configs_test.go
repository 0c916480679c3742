package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePersonaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "personas.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPersonaConfig(t *testing.T) {
	path := writePersonaFile(t, `
personas:
  default:
    - id: tech-expert
      name: Tech Expert
      provider: openai
      model: gpt-4o
      system_prompt: be precise
      temperature: 0.4
      max_tokens: 900
      knowledge_level: expert
    - id: gemini-tutor
      provider: google
      model: gemini-2.0-flash
      knowledge_level: intermediate
  alt:
    - id: solo
      provider: anthropic
      model: claude-sonnet-4-20250514
      knowledge_level: beginner
`)

	cfg, err := LoadPersonaConfig(path)
	require.NoError(t, err)

	personas := cfg.PersonasForSet("default")
	require.Len(t, personas, 2)
	assert.Equal(t, "tech-expert", personas[0].ID)
	assert.Equal(t, "Tech Expert", personas[0].Name)
	assert.Equal(t, float32(0.4), personas[0].Temperature)
	assert.Equal(t, 900, personas[0].MaxTokens)

	// Omitted fields fall back to defaults; name falls back to the id.
	assert.Equal(t, "gemini-tutor", personas[1].Name)
	assert.Equal(t, float32(0.7), personas[1].Temperature)
	assert.Equal(t, 1024, personas[1].MaxTokens)

	assert.Len(t, cfg.PersonasForSet("alt"), 1)
	assert.Nil(t, cfg.PersonasForSet("missing"))
	assert.Len(t, cfg.PersonasForSet(""), 2, "empty set name falls back to default")
}

func TestLoadPersonaConfigRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"missing id": `
personas:
  default:
    - provider: openai
      model: gpt-4o
      knowledge_level: expert
`,
		"unknown provider": `
personas:
  default:
    - id: p1
      provider: mistral
      model: mistral-large
      knowledge_level: expert
`,
		"unknown knowledge level": `
personas:
  default:
    - id: p1
      provider: openai
      model: gpt-4o
      knowledge_level: guru
`,
		"temperature out of range": `
personas:
  default:
    - id: p1
      provider: openai
      model: gpt-4o
      knowledge_level: expert
      temperature: 3.5
`,
		"duplicate id": `
personas:
  default:
    - id: p1
      provider: openai
      model: gpt-4o
      knowledge_level: expert
    - id: p1
      provider: google
      model: gemini-2.0-flash
      knowledge_level: expert
`,
		"no personas": `
personas: {}
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writePersonaFile(t, content)
			_, err := LoadPersonaConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadPersonaConfigMissingFile(t *testing.T) {
	_, err := LoadPersonaConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)

	_, err = LoadPersonaConfig("  ")
	assert.Error(t, err)
}
