package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultBaseURL is the single place the remote API host is configured.
const DefaultBaseURL = "https://api.vitalog.app"

type Config struct {
	APIBaseURL     string        `yaml:"api_base_url" env:"VITALOG_API_BASE_URL"`
	DataDir        string        `yaml:"data_dir" env:"VITALOG_DATA_DIR"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"VITALOG_REQUEST_TIMEOUT" env-default:"15s"`
	RetryCount     int           `yaml:"retry_count" env:"VITALOG_RETRY_COUNT" env-default:"2"`
	Timezone       string        `yaml:"timezone" env:"TZ" env-default:"UTC"`
}

// Load reads the optional YAML config file and environment overrides.
// A missing file is not an error; defaults apply.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
			}
			return applyDefaults(cfg)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment config: %w", err)
	}
	return applyDefaults(cfg)
}

func applyDefaults(cfg Config) (Config, error) {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultBaseURL
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".vitalog")
	}
	return cfg, nil
}

// DatabasePath is the local store location inside the data directory.
func (cfg Config) DatabasePath() string {
	return filepath.Join(cfg.DataDir, "vitalog.db")
}
