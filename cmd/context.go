package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/zguest/assets"
	"github.com/melih-ucgun/zguest/internal/adapters/ui"
	"github.com/melih-ucgun/zguest/internal/config"
	"github.com/melih-ucgun/zguest/internal/core"
	"github.com/melih-ucgun/zguest/internal/transport"
)

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("assets"); v != "" {
		cfg.AssetsDir = v
	}
	if v, _ := flags.GetString("native"); v != "" {
		cfg.NativeDir = v
	}
	if v, _ := flags.GetString("host"); v != "" {
		cfg.Host.Address = v
	}
	if v, _ := flags.GetString("user"); v != "" {
		cfg.Host.User = v
	}
	if v, _ := flags.GetString("key"); v != "" {
		cfg.Host.SSHKeyPath = v
	}
	if v, _ := flags.GetInt("port"); v != 0 {
		cfg.Host.Port = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// localFS opens the filesystem of a locally mounted guest root.
var localFS = func() core.FileSystem { return &core.RealFS{} }

// logLevel combines the configured level with -v flags.
func logLevel(cfg *config.Config) core.LogLevel {
	level, _ := core.ParseLevel(cfg.LogLevel)
	switch {
	case verboseCount >= 2:
		return core.LevelTrace
	case verboseCount == 1 && level > core.LevelDebug:
		return core.LevelDebug
	}
	return level
}

func assetFS(cfg *config.Config) (fs.FS, error) {
	if cfg.AssetsDir == "" {
		return assets.FS, nil
	}
	info, err := os.Stat(cfg.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("asset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset directory %s is not a directory", cfg.AssetsDir)
	}
	return os.DirFS(cfg.AssetsDir), nil
}

// newSystemContext builds the run context for root. The returned close
// function releases the remote connection, if any.
func newSystemContext(cmd *cobra.Command, root string) (*core.SystemContext, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	bundle, err := assetFS(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := core.NewDefaultLogger(os.Stderr, logLevel(cfg))
	ctx := core.NewSystemContext(root, bundle, logger)
	ctx.Context = cmd.Context()
	ctx.FS = localFS()
	ctx.NativeDir = cfg.NativeDir
	ctx.UI = ui.NewPtermUI().WithWriter(cmd.ErrOrStderr())

	closeFn := func() error { return nil }
	if cfg.Remote() {
		t, err := transport.NewSSHTransport(ctx, cfg.Host)
		if err != nil {
			return nil, nil, err
		}
		remote, err := t.FS()
		if err != nil {
			t.Close()
			return nil, nil, err
		}
		ctx.FS = remote
		closeFn = t.Close
		logger.Debug("using remote guest root", "host", cfg.Host.Address)
	}

	if _, err := ctx.FS.Stat(root); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("guest root: %w", err)
	}
	return ctx, closeFn, nil
}
