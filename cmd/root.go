package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/melih-ucgun/zguest/internal/consts"
)

var rootCmd = &cobra.Command{
	Use:   "zguest",
	Short: "Provision guest tooling into an lx zone root.",
	Long: `zguest installs the metadata commands, helper scripts and init-system
integration an lx branded zone needs, writing into the zone's root
filesystem from the host.`,
	SilenceUsage: true,
}

var verboseCount int

// Execute runs the CLI; Ctrl+C cancels the run context.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	// PTerm output to Stderr (to keep Stdout clean for piping)
	pterm.SetDefaultOutput(os.Stderr)
	pterm.Success.Writer = os.Stderr
	pterm.Info.Writer = os.Stderr
	pterm.Error.Writer = os.Stderr
	pterm.Warning.Writer = os.Stderr
	pterm.DefaultHeader.Writer = os.Stderr

	rootCmd.PersistentFlags().StringP("config", "c", consts.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "Increase verbosity level (-v, -vv)")

	rootCmd.PersistentFlags().String("assets", "", "asset directory (default: embedded bundle)")
	rootCmd.PersistentFlags().String("native", "", "native overlay path inside the guest (default /native)")
	rootCmd.PersistentFlags().String("host", "", "remote host holding the zone root (SFTP)")
	rootCmd.PersistentFlags().String("user", "", "ssh user for --host")
	rootCmd.PersistentFlags().String("key", "", "ssh private key for --host")
	rootCmd.PersistentFlags().Int("port", 0, "ssh port for --host")
}
