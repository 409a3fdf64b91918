package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/zguest/internal/core"
	"github.com/melih-ucgun/zguest/internal/guest"
)

var installCmd = &cobra.Command{
	Use:   "install ROOT",
	Short: "Install guest tooling into a zone root",
	Long: `Links the metadata commands, copies the manpath profile script and the
shared helper scripts, then installs the integration for the detected
distribution. The first failure aborts; nothing is rolled back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, closeFn, err := newSystemContext(cmd, args[0])
		if err != nil {
			return err
		}
		defer closeFn()

		ctx.DryRun, _ = cmd.Flags().GetBool("dry-run")
		if ctx.DryRun {
			ctx.UI.Title("zguest install (dry run)")
		} else {
			ctx.UI.Title("zguest install")
		}

		e, err := guest.Run(ctx)
		if tableErr := ctx.UI.Table(reportRows(e.Reports)); tableErr != nil {
			ctx.Logger.Warn("failed to render report", "error", tableErr)
		}
		if err != nil {
			ctx.UI.Error(err.Error())
			return err
		}

		if ctx.DryRun {
			ctx.UI.Success(fmt.Sprintf("%d step(s) would change the guest", e.Changed()))
		} else {
			ctx.UI.Success(fmt.Sprintf("guest tools installed, %d step(s) changed", e.Changed()))
		}
		return nil
	},
}

func reportRows(reports []core.StepReport) [][]string {
	rows := [][]string{{"PHASE", "STEP", "TYPE", "RESULT"}}
	for _, r := range reports {
		status := "ok"
		switch {
		case r.Result.Failed:
			status = "failed"
		case r.Result.Changed:
			status = "changed"
		}
		rows = append(rows, []string{r.Phase, r.Name, r.Type, status})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().Bool("dry-run", false, "check every step without touching the guest")
}
