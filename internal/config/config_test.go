package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pagewright/pagewright/internal/types"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".pagewright/pagewright.db", cfg.Database.Path)
	assert.Equal(t, "dist", cfg.Output.Dir)
	assert.True(t, cfg.Grid.Enabled)
	assert.Equal(t, 8.0, cfg.Grid.Unit)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, types.DefaultCodeOptions(), cfg.CodeOptions())
}

func TestLoadFromYAMLFile(t *testing.T) {
	resetViper(t)

	fixture := map[string]interface{}{
		"grid": map[string]interface{}{"enabled": true, "unit": 4},
		"code": map[string]interface{}{"style_mode": "inline", "pretty_print": false},
		"server": map[string]interface{}{"port": 9000},
	}
	raw, err := yaml.Marshal(fixture)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ".pagewright.yml")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Grid.Unit)
	assert.Equal(t, "inline", cfg.Code.StyleMode)
	assert.False(t, cfg.Code.PrettyPrint)
	assert.Equal(t, 9000, cfg.Server.Port)
	// untouched sections keep their defaults
	assert.Equal(t, "dist", cfg.Output.Dir)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	resetViper(t)
	viper.SetEnvPrefix("PAGEWRIGHT")
	viper.SetEnvKeyReplacer(envKeyReplacer())
	viper.AutomaticEnv()
	t.Setenv("PAGEWRIGHT_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadRejectsBadGrid(t *testing.T) {
	resetViper(t)
	viper.Set("grid.unit", 0)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid config")

	// a disabled grid does not care about the unit
	viper.Set("grid.enabled", false)
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadRejectsBadStyleMode(t *testing.T) {
	resetViper(t)
	viper.Set("code.style_mode", "tailwind")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "style_mode")
}

func TestLoadRejectsBadPort(t *testing.T) {
	resetViper(t)
	viper.Set("server.port", 70000)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestLoadRejectsPathTraversal(t *testing.T) {
	resetViper(t)
	viper.Set("output.dir", "../../etc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "traversal")
}

func TestGridOptionsConversion(t *testing.T) {
	resetViper(t)
	viper.Set("grid.unit", 12)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, types.GridConfig{Enabled: true, Unit: 12, Visible: true}, cfg.GridOptions())
}
