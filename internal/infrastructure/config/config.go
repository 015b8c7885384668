// Package config loads the client settings from environment variables.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// androidLoopback is the Android emulator's alias for the host machine.
const androidLoopback = "10.0.2.2"

type Config struct {
	// APIURL is the REST backend root; /api/v1 is appended by the client.
	APIURL string `env:"NEXUS_API_URL,     default=http://localhost:8080"`
	// GraphQLURL defaults to <APIURL>/graphql when unset.
	GraphQLURL  string        `env:"NEXUS_GRAPHQL_URL"`
	HTTPTimeout time.Duration `env:"NEXUS_HTTP_TIMEOUT, default=15s"`
	// Platform is web, android or ios. On android in development the
	// localhost host is remapped to the emulator loopback alias.
	Platform string `env:"NEXUS_PLATFORM,  default=web"`
	Env      string `env:"NEXUS_ENV,       default=development"`
	LogLevel string `env:"NEXUS_LOG_LEVEL, default=info"`
	Pretty   bool   `env:"NEXUS_LOG_PRETTY, default=true"`
	// CredentialsFile is where the session token and profile persist.
	// Defaults to <user config dir>/nexus/credentials.json.
	CredentialsFile string `env:"NEXUS_CREDENTIALS_FILE"`
}

// Load reads configuration from environment variables and resolves the
// derived fields.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.Platform == "android" && cfg.Env == "development" {
		cfg.APIURL = remapLoopback(cfg.APIURL)
		if cfg.GraphQLURL != "" {
			cfg.GraphQLURL = remapLoopback(cfg.GraphQLURL)
		}
	}

	if cfg.GraphQLURL == "" {
		cfg.GraphQLURL = strings.TrimRight(cfg.APIURL, "/") + "/graphql"
	}

	if cfg.CredentialsFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.CredentialsFile = filepath.Join(dir, "nexus", "credentials.json")
	}

	return &cfg, nil
}

// remapLoopback rewrites a localhost host to the Android emulator alias,
// preserving scheme, port and path. Malformed URLs pass through untouched
// and fail later with a clearer transport error.
func remapLoopback(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := u.Hostname()
	if host != "localhost" && host != "127.0.0.1" {
		return raw
	}
	if port := u.Port(); port != "" {
		u.Host = androidLoopback + ":" + port
	} else {
		u.Host = androidLoopback
	}
	return u.String()
}
