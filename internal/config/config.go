package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`
	Model        string `env:"STORY_ATLAS_MODEL" envDefault:"gemini-2.5-flash"`
	SaveDir      string `env:"STORY_ATLAS_SAVE_DIR" envDefault:".saves"`
	// ArchiveDB names the BoltDB file, relative to SaveDir, that mirrors
	// world and character snapshots. Empty disables the archive.
	ArchiveDB string `env:"STORY_ATLAS_ARCHIVE_DB" envDefault:"atlas.db"`
	// MinimalMap keeps the world map sparse by skipping direct exits between
	// locations an indirect route already connects.
	MinimalMap bool `env:"STORY_ATLAS_MINIMAL_MAP" envDefault:"false"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
