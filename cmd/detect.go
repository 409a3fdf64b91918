package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/zguest/internal/core"
	"github.com/melih-ucgun/zguest/internal/system"
)

var detectCmd = &cobra.Command{
	Use:   "detect ROOT",
	Short: "Print the distribution detected in a zone root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, closeFn, err := newSystemContext(cmd, args[0])
		if err != nil {
			return err
		}
		defer closeFn()

		d := system.Detect(ctx)
		if d == system.Unknown {
			return core.ErrUnsupportedDistribution
		}
		// stdout carries only the answer, for scripts
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d, d.InitSystem())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
