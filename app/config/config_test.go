package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOG_API_URL", "")
	t.Setenv("BLOG_LISTEN_ADDR", "")
	t.Setenv("BLOG_DATA_DIR", "")

	cfg := Load()
	assert.Equal(t, "http://127.0.0.1:3000", cfg.APIURL)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "data/badger", cfg.DataDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BLOG_API_URL", "https://blog.example.com")
	t.Setenv("BLOG_LISTEN_ADDR", ":8080")

	cfg := Load()
	assert.Equal(t, "https://blog.example.com", cfg.APIURL)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}
