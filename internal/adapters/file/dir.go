package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/melih-ucgun/zguest/internal/core"
)

// errChanged stops the walk as soon as one entry needs copying.
var errChanged = errors.New("changed")

// DirStep recursively copies a bundled asset directory into the guest root.
type DirStep struct {
	core.BaseStep
	Source string
	Dest   string
	UID    int
	GID    int
	Mode   os.FileMode // applied to every regular file
}

func NewDirStep(source, dest string, mode os.FileMode) *DirStep {
	return &DirStep{
		BaseStep: core.BaseStep{Name: dest, Type: "dir"},
		Source:   source,
		Dest:     dest,
		Mode:     mode,
	}
}

func (r *DirStep) Check(ctx *core.SystemContext) (bool, error) {
	err := fs.WalkDir(ctx.Assets, r.Source, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return &core.FSError{Op: "walk", Path: p, Err: err}
		}
		dst := ctx.GuestPath(path.Join(r.Dest, strings.TrimPrefix(p, r.Source)))

		if d.IsDir() {
			info, err := ctx.FS.Lstat(dst)
			if err != nil || !info.IsDir() || info.Mode().Perm() != core.DirMode {
				return errChanged
			}
			return nil
		}

		desired, err := fs.ReadFile(ctx.Assets, p)
		if err != nil {
			return &core.FSError{Op: "open", Path: p, Err: err}
		}
		changed, err := needsCopy(ctx, desired, dst, r.Mode)
		if err != nil {
			return err
		}
		if changed {
			return errChanged
		}
		return nil
	})

	if errors.Is(err, errChanged) {
		return true, nil
	}
	return false, err
}

func (r *DirStep) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "Failed to read asset directory"), err
	}

	// always re-applied so ownership and modes are enforced on every file and directory
	if err := core.CopyDir(ctx, r.Source, ctx.GuestPath(r.Dest), r.UID, r.GID, r.Mode); err != nil {
		return core.Failure(err, "Failed to copy directory"), err
	}

	if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("Directory %s is up to date", r.Dest)), nil
	}
	return core.SuccessChange(fmt.Sprintf("Directory %s copied from %s", r.Dest, r.Source)), nil
}
