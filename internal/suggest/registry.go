// Package suggest produces AI-generated titles, tags, and summaries for
// pasted text. Suggestions are advisory: callers treat failures here as
// non-fatal and never block a save on them.
package suggest

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ModelConfig describes one model a provider exposes for suggestions.
type ModelConfig struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
	MaxTokens   int    `yaml:"max_tokens"`
}

// ProviderConfig is a provider's embedded suggestion configuration.
type ProviderConfig struct {
	Provider string        `yaml:"provider"`
	Models   []ModelConfig `yaml:"models"`
	Prompt   string        `yaml:"prompt"`
}

// Registry holds the suggestion configuration loaded from embedded YAML.
type Registry struct {
	providers map[string]*ProviderConfig
}

// NewRegistry loads the embedded provider YAML files.
func NewRegistry() (*Registry, error) {
	r := &Registry{providers: make(map[string]*ProviderConfig)}

	if err := r.loadProviderFile("anthropic"); err != nil {
		return nil, fmt.Errorf("failed to load anthropic suggestion config: %w", err)
	}

	return r, nil
}

func (r *Registry) loadProviderFile(provider string) error {
	filename := fmt.Sprintf("config/%s.yaml", provider)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var cfg ProviderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.providers[provider] = &cfg
	return nil
}

// Provider returns a provider's configuration.
func (r *Registry) Provider(name string) (*ProviderConfig, error) {
	cfg, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown suggestion provider %q", name)
	}
	return cfg, nil
}

// Model returns the model config for an ID, searching all providers.
func (r *Registry) Model(id string) (*ModelConfig, error) {
	for _, cfg := range r.providers {
		for i := range cfg.Models {
			if cfg.Models[i].ID == id {
				return &cfg.Models[i], nil
			}
		}
	}
	return nil, fmt.Errorf("unknown suggestion model %q", id)
}
