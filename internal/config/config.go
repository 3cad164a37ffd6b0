package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Time    TimeConfig    `yaml:"time"`
	Refresh RefreshConfig `yaml:"refresh"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TimeConfig pins the viewer's zone: the instant-to-day conversion is
// explicit, never a platform default.
type TimeConfig struct {
	Zone string `yaml:"zone"`
}

type RefreshConfig struct {
	Enabled bool   `yaml:"enabled"`
	Owner   string `yaml:"owner"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "wellspring.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Time: TimeConfig{
			Zone: "UTC",
		},
		Refresh: RefreshConfig{
			Enabled: true,
			Owner:   "local",
		},
	}

	if path := os.Getenv("WELLSPRING_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("WELLSPRING_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("WELLSPRING_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WELLSPRING_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("WELLSPRING_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("WELLSPRING_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if zone := os.Getenv("WELLSPRING_TIME_ZONE"); zone != "" {
		cfg.Time.Zone = zone
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
