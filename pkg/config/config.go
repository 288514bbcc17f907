// Package config loads application settings from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when no explicit config file is given.
const DefaultPath = "./wordlist.yaml"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	CSV      CSVConfig      `yaml:"csv"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Harvest  HarvestConfig  `yaml:"harvest"`
}

// DatabaseConfig selects where the collection is persisted.
type DatabaseConfig struct {
	Path     string `yaml:"path"      env:"WORDLIST_DB"        env-default:"wordlist.db"`
	InMemory bool   `yaml:"in_memory" env:"WORDLIST_IN_MEMORY" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// CSVConfig tunes CSV import.
type CSVConfig struct {
	LenientTypes bool `yaml:"lenient_types" env:"CSV_LENIENT_TYPES" env-default:"false"`
}

// QuizConfig holds quiz settings.
type QuizConfig struct {
	Options int `yaml:"options" env:"QUIZ_OPTIONS" env-default:"4"`
}

// HarvestConfig bounds example sentence harvesting.
type HarvestConfig struct {
	Workers      int           `yaml:"workers"        env:"HARVEST_WORKERS"        env-default:"4"`
	Timeout      time.Duration `yaml:"timeout"        env:"HARVEST_TIMEOUT"        env-default:"30s"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" env:"HARVEST_MAX_BODY_BYTES" env-default:"10485760"`
	UserAgent    string        `yaml:"user_agent"     env:"HARVEST_USER_AGENT"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An explicit path must exist. Otherwise DefaultPath is used when present,
// and ENV + defaults when it is not.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
