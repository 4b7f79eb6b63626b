// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, asset loader) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the hrdesk API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), used for fetched font and logo bytes
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Identity tokens are issued by the external auth provider; only the
	// public key is held here.
	AuthPublicKeyPath string `env:"AUTH_PUBLIC_KEY_PATH,required,notEmpty"`
	AuthIssuer        string `env:"AUTH_ISSUER"`

	// Document assets
	FontRegularURL    string        `env:"FONT_REGULAR_URL" envDefault:"file:///usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"`
	FontBoldURL       string        `env:"FONT_BOLD_URL"    envDefault:"file:///usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"`
	AssetFetchTimeout time.Duration `env:"ASSET_FETCH_TIMEOUT" envDefault:"10s"`
	AssetCacheTTL     time.Duration `env:"ASSET_CACHE_TTL"     envDefault:"24h"`
	AssetMaxBytes     int64         `env:"ASSET_MAX_BYTES"     envDefault:"5242880"`

	// Document layout
	PageSize           string `env:"PAGE_SIZE"             envDefault:"A4"`
	BlankNotTickedMode string `env:"BLANK_NOT_TICKED_MODE" envDefault:"fixed"`
	DeclarationOwnPage bool   `env:"DECLARATION_OWN_PAGE"  envDefault:"true"`

	// Object Storage (Google Cloud Storage). Empty disables archiving.
	ArchiveBucket          string `env:"ARCHIVE_BUCKET"`
	ArchivePrefix          string `env:"ARCHIVE_PREFIX"           envDefault:"hrdesk"`
	ArchiveCredentialsFile string `env:"ARCHIVE_CREDENTIALS_FILE"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.PageSize {
	case "A4", "Letter":
	default:
		return fmt.Errorf("config: PAGE_SIZE must be A4 or Letter, got %q", c.PageSize)
	}

	switch c.BlankNotTickedMode {
	case "fixed", "random":
	default:
		return fmt.Errorf("config: BLANK_NOT_TICKED_MODE must be fixed or random, got %q", c.BlankNotTickedMode)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins splits EXTRA_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
