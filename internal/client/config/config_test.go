package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, BackendSQLite, c.CacheBackend)
	assert.Equal(t, "tokenkeeper.db", c.CacheDSN)
	assert.False(t, c.DeriveExpiry)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"server_endpoint_addr": "json:1",
		"cache_backend":        "redis",
	})
	os.Args = []string{"testbin", "-c", path, "-a", "flag:2"}

	cfg := LoadConfig()

	assert.Equal(t, "flag:2", cfg.ServerEndpointAddr)
	assert.Equal(t, BackendRedis, cfg.CacheBackend)
}

func TestLoadConfig_SubSecondJSONTimeoutSurvivesFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, v := range []struct {
		raw  string
		want time.Duration
	}{
		{"500ms", 500 * time.Millisecond},
		{"1500ms", 1500 * time.Millisecond},
	} {
		path := writeTempJSON(t, "", "", map[string]any{"request_timeout": v.raw})
		os.Args = []string{"testbin", "-c", path}

		cfg := LoadConfig()

		assert.Equal(t, v.want, cfg.RequestTimeout, v.raw)
	}
}

func TestLoadConfig_TimeoutFlagOverridesJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{"request_timeout": "500ms"})
	os.Args = []string{"testbin", "-c", path, "-t", "2"}

	cfg := LoadConfig()

	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}
