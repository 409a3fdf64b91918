package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/melih-ucgun/zguest/internal/core"
)

// MkdirStep ensures a directory exists in the guest root.
type MkdirStep struct {
	core.BaseStep
	Dest string
	UID  int
	GID  int
	Mode os.FileMode
}

func NewMkdirStep(dest string, mode os.FileMode) *MkdirStep {
	return &MkdirStep{
		BaseStep: core.BaseStep{Name: dest, Type: "mkdir"},
		Dest:     dest,
		Mode:     mode,
	}
}

func (r *MkdirStep) Check(ctx *core.SystemContext) (bool, error) {
	dst := ctx.GuestPath(r.Dest)
	info, err := ctx.FS.Lstat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, &core.FSError{Op: "stat", Path: dst, Err: err}
	}
	if !info.IsDir() {
		return false, &core.FSError{Op: "mkdir", Path: dst, Err: syscall.ENOTDIR}
	}
	return info.Mode().Perm() != r.Mode, nil
}

func (r *MkdirStep) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "Failed to inspect directory"), err
	}

	dst := ctx.GuestPath(r.Dest)
	if !needsAction {
		// mode matches; ownership is still enforced
		if err := ctx.FS.Chown(dst, r.UID, r.GID); err != nil {
			err = &core.FSError{Op: "chown", Path: dst, Err: err}
			return core.Failure(err, "Failed to set owner"), err
		}
		return core.SuccessNoChange(fmt.Sprintf("Directory %s exists", r.Dest)), nil
	}

	if err := core.EnsureDir(ctx, dst, r.UID, r.GID, r.Mode); err != nil {
		return core.Failure(err, "Failed to create directory"), err
	}
	return core.SuccessChange(fmt.Sprintf("Directory %s ensured with mode %o", r.Dest, r.Mode)), nil
}
