// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Server holds everything cmd/server reads from the environment
type Server struct {
	Host        string `env:"FFSCORE_HOST"`
	Port        int    `env:"FFSCORE_PORT"         envDefault:"8080"`
	StorageType string `env:"FFSCORE_STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"FFSCORE_REDIS_URL"`
	// ArchivePath is the SQLite file for round records; empty keeps them in memory
	ArchivePath string `env:"FFSCORE_ARCHIVE_PATH"`
	RecentLimit int    `env:"FFSCORE_RECENT_LIMIT" envDefault:"10"`
	Timezone    string `env:"FFSCORE_TIMEZONE"     envDefault:"Local"`
	LogLevel    string `env:"FFSCORE_LOG_LEVEL"    envDefault:"info"`
	// PublicURL is the externally reachable base used in QR links
	PublicURL string `env:"FFSCORE_PUBLIC_URL"`
}

// Load parses the environment and validates the result
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express
func (c Server) Validate() error {
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("FFSCORE_REDIS_URL required when FFSCORE_STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid FFSCORE_STORAGE_TYPE %q: must be %q or %q", c.StorageType, StorageMemory, StorageRedis)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid FFSCORE_PORT %d", c.Port)
	}
	if c.RecentLimit <= 0 {
		return fmt.Errorf("invalid FFSCORE_RECENT_LIMIT %d", c.RecentLimit)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Addr is the listen address
func (c Server) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Location resolves Timezone; "Local" is the host's zone
func (c Server) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid FFSCORE_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level maps LogLevel to a slog level
func (c Server) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid FFSCORE_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// BaseURL is PublicURL, or a localhost URL for the listen port
func (c Server) BaseURL() string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	host := c.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port))
}
