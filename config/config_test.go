package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A bare environment must produce a bootable config: cors.New panics on an
// empty origin list, so the default may never be empty.
func TestLoadDefaultCORSOriginsNotEmpty(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()
	origins := cfg.CORSOrigins()
	require.NotEmpty(t, origins)
	assert.Equal(t, []string{"http://localhost:3000"}, origins)
}

func TestCORSOriginsSplitsAndTrims(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")

	cfg := Load()
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins())
}
