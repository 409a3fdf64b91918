package guest

import (
	"fmt"
	"path"

	"github.com/melih-ucgun/zguest/internal/adapters/file"
	"github.com/melih-ucgun/zguest/internal/consts"
	"github.com/melih-ucgun/zguest/internal/core"
	"github.com/melih-ucgun/zguest/internal/system"
)

// Phase is a named, ordered group of steps.
type Phase struct {
	Name  string
	Steps []core.Step
}

// basePhases are the distro-independent phases, in run order.
func basePhases(ctx *core.SystemContext) []Phase {
	links := make([]core.Step, 0, len(consts.MdataCommands))
	for _, name := range consts.MdataCommands {
		links = append(links, file.NewSymlinkStep(
			path.Join(consts.GuestSbin, name),
			path.Join(ctx.NativeDir, "usr/sbin", name),
			true,
		))
	}

	return []Phase{
		{Name: "metadata links", Steps: links},
		{Name: "manpath", Steps: []core.Step{file.NewFileStep(consts.AssetManpath, consts.GuestManpath, 0o744)}},
		{Name: "smartdc", Steps: []core.Step{file.NewDirStep(consts.AssetSmartDC, consts.GuestSmartDC, 0o755)}},
	}
}

// InstallTools provisions the guest tooling into ctx.Root: metadata command
// links, the manpath profile script, the shared helper scripts and finally
// the distribution integration. The first failure aborts the run.
func InstallTools(ctx *core.SystemContext) error {
	_, err := Run(ctx)
	return err
}

// Run is InstallTools returning the engine, whose reports describe every
// step attempted.
func Run(ctx *core.SystemContext) (*core.Engine, error) {
	e := core.NewEngine(ctx)
	ctx.Logger.Debug("installing guest tools", "dry_run", ctx.DryRun)

	for _, p := range basePhases(ctx) {
		if err := e.Run(p.Name, p.Steps); err != nil {
			return e, err
		}
	}

	// last: distro hooks may reference anything installed above
	d := system.Detect(ctx)
	if err := installDistro(e, d); err != nil {
		return e, fmt.Errorf("distro integration: %w", err)
	}
	return e, nil
}

// Plan lists every step a run against ctx.Root would apply, without touching
// the guest. For an Unknown guest the base phases are returned together with
// core.ErrUnsupportedDistribution.
func Plan(ctx *core.SystemContext) ([]Phase, system.Distribution, error) {
	phases := basePhases(ctx)
	d := system.Detect(ctx)
	steps, err := DistroSteps(d)
	if err != nil {
		return phases, d, err
	}
	return append(phases, Phase{Name: "distro " + d.String(), Steps: steps}), d, nil
}
