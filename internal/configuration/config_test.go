package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	require.Equal(t, 8080, config.Server.AppPort)
	require.Equal(t, "http://localhost:3001", config.Backend.BaseURL)
	require.True(t, config.Demo.Enabled)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": {"app_port": 9000},
		"backend": {"base_url": "http://backend:3001"},
		"demo": {"enabled": false}
	}`), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9000, config.Server.AppPort)
	require.Equal(t, "http://backend:3001", config.Backend.BaseURL)
	require.False(t, config.Demo.Enabled)
	// untouched sections keep their defaults
	require.Equal(t, 8081, config.Server.SocketPort)
}

func TestLoadConfig_EnvWinsOverFile(t *testing.T) {
	t.Setenv("STREAMMATCH_API_URL", "http://env-backend:3001")
	t.Setenv("STREAMMATCH_APP_PORT", "9100")
	t.Setenv("STREAMMATCH_DEMO", "false")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend": {"base_url": "http://file-backend:3001"}}`), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "http://env-backend:3001", config.Backend.BaseURL)
	require.Equal(t, 9100, config.Server.AppPort)
	require.False(t, config.Demo.Enabled)
}

func TestLoadConfig_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
