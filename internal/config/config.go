package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the taskboard.yaml configuration structure
type Config struct {
	Version string `yaml:"version"`
	Project string `yaml:"project"`

	Server struct {
		Addr            string   `yaml:"addr"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Database struct {
		Driver         string `yaml:"driver"`
		URL            string `yaml:"url"`
		MaxConnections int    `yaml:"max_connections"`
	} `yaml:"database"`

	Sessions struct {
		Lifetime    Duration `yaml:"lifetime"`
		IdleTimeout Duration `yaml:"idle_timeout"`
		Secure      bool     `yaml:"secure"`
	} `yaml:"sessions"`

	Migrations struct {
		AutoApply bool `yaml:"auto_apply"`
	} `yaml:"migrations"`
}

// Load reads the configuration file at path, falling back to the default
// locations when path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var config Config

	if path == "" {
		path = FindPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&config)
	applyEnvOverrides(&config)

	return &config, nil
}

// FindPath locates a config file via TASKBOARD_CONFIG or the default locations
func FindPath() string {
	if path := os.Getenv("TASKBOARD_CONFIG"); path != "" {
		return path
	}

	locations := []string{"taskboard.yaml", "taskboard.yml", ".taskboard.yaml", ".taskboard.yml"}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

func applyDefaults(config *Config) {
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = Duration(30 * time.Second)
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = Duration(15 * time.Second)
	}
	if config.Database.Driver == "" {
		config.Database.Driver = "postgres"
	}
	if config.Database.MaxConnections == 0 {
		config.Database.MaxConnections = 25
	}
	if config.Sessions.Lifetime == 0 {
		config.Sessions.Lifetime = Duration(24 * time.Hour)
	}
	if config.Sessions.IdleTimeout == 0 {
		config.Sessions.IdleTimeout = Duration(2 * time.Hour)
	}
}

func applyEnvOverrides(config *Config) {
	if url := os.Getenv("TASKBOARD_DATABASE_URL"); url != "" {
		config.Database.URL = url
	}
	if addr := os.Getenv("TASKBOARD_ADDR"); addr != "" {
		config.Server.Addr = addr
	}
}
