package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	gopath "path"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/melih-ucgun/zguest/internal/consts"
	"github.com/melih-ucgun/zguest/internal/core"
)

// Host describes a remote machine whose filesystem holds the guest root.
type Host struct {
	Address    string `yaml:"address"`
	User       string `yaml:"user"`
	Port       int    `yaml:"port"`
	SSHKeyPath string `yaml:"ssh_key_path"`
}

// Config is the optional zguest.yaml.
type Config struct {
	AssetsDir string `yaml:"assets_dir"`
	NativeDir string `yaml:"native_dir"`
	LogLevel  string `yaml:"log_level"`
	Host      Host   `yaml:"host"`
}

// Default returns the configuration used when no file is present.
// An empty AssetsDir selects the embedded bundle.
func Default() *Config {
	return &Config{
		NativeDir: core.DefaultNativeDir,
		LogLevel:  "info",
		Host:      Host{Port: 22},
	}
}

// LoadConfig reads path on top of the defaults. A missing file is not an
// error. A .env next to the file is loaded first and the file is rendered as
// a template, so values may use {{ env "X" | default "y" }}.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	envFile := filepath.Join(filepath.Dir(path), consts.EnvFileName)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	rendered, err := core.ExecuteTemplate(string(data), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to render config %s: %w", path, err)
	}

	if err := yaml.Unmarshal([]byte(rendered), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.NativeDir == "" {
		cfg.NativeDir = core.DefaultNativeDir
	}
	if cfg.Host.Port == 0 {
		cfg.Host.Port = 22
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise produce a broken guest.
func (c *Config) Validate() error {
	// the metadata links point here from inside the guest
	if !gopath.IsAbs(c.NativeDir) {
		return fmt.Errorf("native_dir %q must be an absolute guest path", c.NativeDir)
	}
	if _, err := core.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Remote reports whether the guest root lives on a remote host.
func (c *Config) Remote() bool {
	return c.Host.Address != ""
}
