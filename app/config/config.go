// Package config loads client and dev-server settings from the environment,
// with an optional .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultAPIURL     = "http://127.0.0.1:3000"
	defaultListenAddr = ":3000"
	defaultDataDir    = "data/badger"
)

// Config holds runtime settings.
type Config struct {
	// APIURL is the base origin of the blog backend.
	APIURL string
	// ListenAddr is the bind address for the dev server.
	ListenAddr string
	// DataDir is the dev server's Badger directory.
	DataDir string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present; real environment variables win.
func Load() Config {
	// Ignore a missing .env file; it is only a development convenience.
	_ = godotenv.Load()

	return Config{
		APIURL:     envOr("BLOG_API_URL", defaultAPIURL),
		ListenAddr: envOr("BLOG_LISTEN_ADDR", defaultListenAddr),
		DataDir:    envOr("BLOG_DATA_DIR", defaultDataDir),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
