package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TestContext creates a test context with timeout
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// CreateTempConfig creates a temporary configuration file
func CreateTempConfig(t *testing.T, content string) afero.Fs {
	fs := afero.NewMemMapFs()
	err := afero.WriteFile(fs, "/config.toml", []byte(content), 0644)
	require.NoError(t, err)
	return fs
}

// LoadFixtureConfig loads a configuration fixture file
func LoadFixtureConfig(t *testing.T, filename string) string {
	content := `[server]
port = 8080
upstream = "http://127.0.0.1:3000"

[platform]
app_domain = "sharetribe.com"
always_use_ssl = true

[paths]
community_not_found_url = "https://www.sharetribe.com/not-found"
new_community_route = "new_community"

[routes]
new_community = "/communities/new"
community_not_found = "/not-found"

[database]
path = "signpost.db"

[logging]
enabled = true
level = "info"`

	switch filename {
	case "minimal.toml":
		return `[platform]
app_domain = "sharetribe.com"`
	case "invalid.toml":
		return `[platform
app_domain = "sharetribe.com"`
	default:
		return content
	}
}
