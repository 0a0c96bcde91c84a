package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `oekobox:
  shop_id: amperhof
  username: user@example.com
  password: secret
  timeout_seconds: 10.5
  requests_per_second: 5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "amperhof", cfg.Oekobox.ShopID)
	assert.Equal(t, "user@example.com", cfg.Oekobox.Username)
	assert.Equal(t, "secret", cfg.Oekobox.Password)
	assert.Equal(t, 10500*time.Millisecond, cfg.Oekobox.Timeout())
	assert.Equal(t, 5.0, cfg.Oekobox.RequestsPerSecond)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Setenv("OEKOBOX_SHOP_ID", "amperhof")
	t.Setenv("OEKOBOX_USERNAME", "user")
	t.Setenv("OEKOBOX_PASSWORD", "pw")
	t.Setenv("OEKOBOX_TIMEOUT_SECONDS", "12")
	t.Setenv("OEKOBOX_REQUESTS_PER_SECOND", "not a number")

	cfg := GetConfig()
	assert.Equal(t, "amperhof", cfg.ShopID)
	assert.Equal(t, "user", cfg.Username)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, 12.0, cfg.TimeoutSeconds)
	// Unparseable values fall back to the default.
	assert.Equal(t, 0.0, cfg.RequestsPerSecond)
}

func TestValidate(t *testing.T) {
	cfg := &OekoboxConfig{ShopID: "s", Username: "u", Password: "p"}
	assert.NoError(t, cfg.Validate())

	assert.ErrorContains(t, (&OekoboxConfig{Username: "u", Password: "p"}).Validate(), "shop_id")
	assert.ErrorContains(t, (&OekoboxConfig{ShopID: "s", Password: "p"}).Validate(), "username")
	assert.ErrorContains(t, (&OekoboxConfig{ShopID: "s", Username: "u"}).Validate(), "password")
}

func TestTimeoutDefault(t *testing.T) {
	cfg := &OekoboxConfig{}
	assert.Equal(t, DefaultTimeout, cfg.Timeout())

	cfg.TimeoutSeconds = -5
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
}

func TestResolvedBaseURL(t *testing.T) {
	cfg := &OekoboxConfig{ShopID: "amperhof"}
	assert.Equal(t, "https://oekobox-online.de/v3/shop/amperhof", cfg.ResolvedBaseURL())

	cfg.BaseURL = "http://localhost:8080///"
	assert.Equal(t, "http://localhost:8080", cfg.ResolvedBaseURL())
}
