package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/zguest/internal/core"
	"github.com/melih-ucgun/zguest/internal/guest"
)

var diffCmd = &cobra.Command{
	Use:   "diff ROOT",
	Short: "Show what install would change in a zone root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, closeFn, err := newSystemContext(cmd, args[0])
		if err != nil {
			return err
		}
		defer closeFn()

		phases, d, planErr := guest.Plan(ctx)
		if planErr != nil && !errors.Is(planErr, core.ErrUnsupportedDistribution) {
			return planErr
		}

		pending := 0
		out := cmd.OutOrStdout()
		for _, p := range phases {
			for _, s := range p.Steps {
				needsAction, err := s.Check(ctx)
				if err != nil {
					return fmt.Errorf("%s: %s: %w", p.Name, s.GetName(), err)
				}
				if !needsAction {
					continue
				}
				pending++

				if differ, ok := s.(core.Differ); ok {
					text, err := differ.Diff(ctx)
					if err != nil {
						return err
					}
					fmt.Fprint(out, text)
					continue
				}
				fmt.Fprintf(out, "~ %s (%s)\n", s.GetName(), s.GetType())
			}
		}

		if planErr != nil {
			ctx.UI.Warning(fmt.Sprintf("distribution %s: integration steps not shown", d))
			return planErr
		}
		if pending == 0 {
			ctx.UI.Success("guest is up to date")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
