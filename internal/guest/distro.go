package guest

import (
	"github.com/melih-ucgun/zguest/internal/adapters/file"
	"github.com/melih-ucgun/zguest/internal/consts"
	"github.com/melih-ucgun/zguest/internal/core"
	"github.com/melih-ucgun/zguest/internal/system"
)

var (
	rcLocal  = file.NewFileStep(consts.AssetRCLocal, consts.GuestRCLocal, 0o755)
	shutdown = file.NewFileStep(consts.AssetShutdown, consts.GuestShutdown, 0o744)
)

// distroSteps is the fixed integration table. Steps are stateless, so the
// same values serve every run. Unknown is deliberately absent.
var distroSteps = map[system.Distribution][]core.Step{
	system.Alpine: {rcLocal, shutdown},
	system.Arch: {
		file.NewMkdirStep(consts.GuestUnitDir, 0o755),
		file.NewFileStep(consts.AssetUnit, consts.GuestUnit, 0o755),
		file.NewSymlinkStep(consts.GuestUnitWants, consts.UnitWantsTarget, false),
	},
	system.Debian: {rcLocal},
	system.Redhat: {rcLocal},
	system.Void:   {rcLocal, shutdown},
}

// DistroSteps returns the integration steps for d, or
// core.ErrUnsupportedDistribution.
func DistroSteps(d system.Distribution) ([]core.Step, error) {
	steps, ok := distroSteps[d]
	if !ok {
		return nil, core.ErrUnsupportedDistribution
	}
	return steps, nil
}

// InstallDistro applies the integration steps for d to the guest root.
// Unknown fails before anything is touched.
func InstallDistro(ctx *core.SystemContext, d system.Distribution) error {
	return installDistro(core.NewEngine(ctx), d)
}

func installDistro(e *core.Engine, d system.Distribution) error {
	steps, err := DistroSteps(d)
	if err != nil {
		e.Context.Logger.Error("distribution not supported", "distro", d.String())
		return err
	}
	return e.Run("distro "+d.String(), steps)
}
