package file

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/melih-ucgun/zguest/internal/core"
)

// FileStep copies one bundled asset into the guest root.
type FileStep struct {
	core.BaseStep
	Source string // path inside the asset bundle
	Dest   string // path relative to the guest root
	UID    int
	GID    int
	Mode   os.FileMode
}

// NewFileStep returns a root-owned file copy.
func NewFileStep(source, dest string, mode os.FileMode) *FileStep {
	return &FileStep{
		BaseStep: core.BaseStep{Name: dest, Type: "file"},
		Source:   source,
		Dest:     dest,
		Mode:     mode,
	}
}

func (r *FileStep) Check(ctx *core.SystemContext) (bool, error) {
	desired, err := fs.ReadFile(ctx.Assets, r.Source)
	if err != nil {
		return false, &core.FSError{Op: "open", Path: r.Source, Err: err}
	}
	return needsCopy(ctx, desired, ctx.GuestPath(r.Dest), r.Mode)
}

func (r *FileStep) Diff(ctx *core.SystemContext) (string, error) {
	desired, err := fs.ReadFile(ctx.Assets, r.Source)
	if err != nil {
		return "", &core.FSError{Op: "open", Path: r.Source, Err: err}
	}
	current, _ := ctx.FS.ReadFile(ctx.GuestPath(r.Dest))
	return core.GenerateDiff(r.Dest, string(current), string(desired)), nil
}

func (r *FileStep) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "Failed to read asset"), err
	}

	dst := ctx.GuestPath(r.Dest)
	if !needsAction {
		// content and mode match; ownership is still enforced
		if err := ctx.FS.Chown(dst, r.UID, r.GID); err != nil {
			err = &core.FSError{Op: "chown", Path: dst, Err: err}
			return core.Failure(err, "Failed to set owner"), err
		}
		return core.SuccessNoChange(fmt.Sprintf("File %s is up to date", r.Dest)), nil
	}

	if err := core.CopyFile(ctx, r.Source, dst, r.UID, r.GID, r.Mode); err != nil {
		return core.Failure(err, "Failed to copy file"), err
	}
	return core.SuccessChange(fmt.Sprintf("File %s copied from %s", r.Dest, r.Source)), nil
}

// needsCopy reports whether dst differs from desired in type, mode or content.
func needsCopy(ctx *core.SystemContext, desired []byte, dst string, mode os.FileMode) (bool, error) {
	info, err := ctx.FS.Lstat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, &core.FSError{Op: "stat", Path: dst, Err: err}
	}
	if !info.Mode().IsRegular() || info.Mode().Perm() != mode {
		return true, nil
	}

	current, err := ctx.FS.ReadFile(dst)
	if err != nil {
		return false, &core.FSError{Op: "read", Path: dst, Err: err}
	}
	return !bytes.Equal(current, desired), nil
}
