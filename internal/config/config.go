// Package config loads llm-council settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Realcryptoplato/llm-council/internal/models"
)

const (
	EnvAPIKey           = "OPENROUTER_API_KEY"
	EnvAPIURL           = "OPENROUTER_API_URL"
	EnvUseDynamicModels = "USE_DYNAMIC_MODELS"
	EnvTier             = "USE_BUDGET_MODELS"
)

// DefaultDataDir is where conversations are stored unless overridden.
const DefaultDataDir = "data/conversations"

// Settings holds the environment-derived configuration. Flags may override
// individual fields after loading.
type Settings struct {
	APIKey           string
	APIURL           string
	UseDynamicModels bool
	Tier             models.Tier
	DataDir          string
}

// FromEnv reads settings from the environment. Nothing is validated here;
// commands that require an API key call Validate before using it.
func FromEnv() Settings {
	return Settings{
		APIKey:           os.Getenv(EnvAPIKey),
		APIURL:           os.Getenv(EnvAPIURL),
		UseDynamicModels: parseBool(os.Getenv(EnvUseDynamicModels), true),
		Tier:             models.ParseTier(os.Getenv(EnvTier)),
		DataDir:          DefaultDataDir,
	}
}

// Validate checks the settings needed to reach OpenRouter.
func (s *Settings) Validate() error {
	if s.APIKey == "" {
		return fmt.Errorf("%s is not set", EnvAPIKey)
	}
	return nil
}

// parseBool treats exactly "true" (any case) as true, everything else as
// false, and an unset value as the default.
func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	return strings.EqualFold(s, "true")
}
