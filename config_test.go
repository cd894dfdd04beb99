package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetOnCleanup removes variables a .env file may have added to the
// process environment.
func unsetOnCleanup(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if _, ok := os.LookupEnv(k); ok {
			t.Fatalf("%s is already set in the environment", k)
		}
		t.Cleanup(func() { os.Unsetenv(k) })
	}
}

func TestLoadConfigFromDotenv(t *testing.T) {
	unsetOnCleanup(t, "SITE_NAME", "SITE_URL", "POSTS_DIR", "SHUTDOWN_TIMEOUT")
	t.Setenv("SITE_AUTHOR", "Env Author")

	path := filepath.Join(t.TempDir(), ".env")
	content := "SITE_NAME=Dotenv Site\nSITE_URL=https://example.com/\nPOSTS_DIR=posts\nSHUTDOWN_TIMEOUT=3s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Dotenv Site", cfg.Name)
	assert.Equal(t, "https://example.com", cfg.URL, "trailing slash trimmed")
	assert.Equal(t, "posts", cfg.PostsDir)
	assert.Equal(t, "Env Author", cfg.Author)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.False(t, cfg.PreviewEnabled())
}

func TestLoadConfigIgnoresMissingDotenv(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Name)
	assert.NotEmpty(t, cfg.PostsDir)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestSetDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()

	assert.Equal(t, "Aris Club", cfg.Name)
	assert.Equal(t, "http://localhost:3000", cfg.URL)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "content/posts", cfg.PostsDir)
	assert.Equal(t, 50, cfg.ExcerptWords)
	assert.Equal(t, "dist", cfg.ExportDir)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestNewRequiresSessionSecretForPreview(t *testing.T) {
	_, err := New(SiteConfig{PreviewPassword: "letmein"}, WithLogger(quietLogger()))
	assert.ErrorContains(t, err, "SESSION_SECRET")

	app, err := New(previewConfig(), WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.NoError(t, app.Close())
}
