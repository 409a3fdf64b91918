package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "zguest.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Remote())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "zguest.yaml", `
assets_dir: /opt/zguest/assets
log_level: debug
host:
  address: 10.0.0.5
  user: admin
  ssh_key_path: /home/admin/.ssh/id_ed25519
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/zguest/assets", cfg.AssetsDir)
	assert.Equal(t, "/native", cfg.NativeDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "10.0.0.5", cfg.Host.Address)
	assert.Equal(t, 22, cfg.Host.Port)
	assert.True(t, cfg.Remote())
}

func TestLoadConfig_TemplateWithDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "ZGUEST_TEST_HOST_USER=deploy\n")
	t.Cleanup(func() { os.Unsetenv("ZGUEST_TEST_HOST_USER") })

	path := writeFile(t, dir, "zguest.yaml", `
native_dir: {{ env "ZGUEST_TEST_UNSET_NATIVE" | default "/native64" }}
host:
  address: lx01
  user: {{ env "ZGUEST_TEST_HOST_USER" }}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/native64", cfg.NativeDir)
	assert.Equal(t, "deploy", cfg.Host.User)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad template", "assets_dir: {{ env \n"},
		{"bad yaml", "assets_dir: [unterminated\n"},
		{"bad level", "log_level: loud\n"},
		{"relative native dir", "native_dir: native\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "zguest.yaml", tt.content)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_EmptyNativeDirKeepsDefault(t *testing.T) {
	path := writeFile(t, t.TempDir(), "zguest.yaml", "native_dir: \"\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/native", cfg.NativeDir)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.NativeDir = "usr/native"
	assert.ErrorContains(t, cfg.Validate(), "absolute")
}
