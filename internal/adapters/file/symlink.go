package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/melih-ucgun/zguest/internal/core"
)

// SymlinkStep creates a link in the guest root. Target is written verbatim,
// so it is interpreted from inside the guest.
type SymlinkStep struct {
	core.BaseStep
	Link   string // path relative to the guest root
	Target string
	UID    int
	GID    int

	// Replace removes whatever sits at Link before linking. Without it an
	// existing link is accepted only when it already points at Target.
	Replace bool
}

func NewSymlinkStep(link, target string, replace bool) *SymlinkStep {
	return &SymlinkStep{
		BaseStep: core.BaseStep{Name: link, Type: "symlink"},
		Link:     link,
		Target:   target,
		Replace:  replace,
	}
}

func (r *SymlinkStep) Check(ctx *core.SystemContext) (bool, error) {
	link := ctx.GuestPath(r.Link)
	info, err := ctx.FS.Lstat(link)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, &core.FSError{Op: "stat", Path: link, Err: err}
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return true, nil
	}

	current, err := ctx.FS.Readlink(link)
	if err != nil {
		return false, &core.FSError{Op: "readlink", Path: link, Err: err}
	}
	return current != r.Target, nil
}

func (r *SymlinkStep) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "Failed to inspect link"), err
	}
	link := ctx.GuestPath(r.Link)

	if r.Replace {
		if _, err := ctx.FS.Lstat(link); err == nil {
			if err := ctx.FS.Remove(link); err != nil {
				err = &core.UnlinkError{Path: link, Err: err}
				return core.Failure(err, "Failed to unlink"), err
			}
			ctx.Logger.Info("unlinked "+link, "path", link)
		}
	} else if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("Symlink %s -> %s correct", r.Link, r.Target)), nil
	}

	if err := core.CreateSymlink(ctx, r.Target, link, r.UID, r.GID); err != nil {
		return core.Failure(err, "Failed to create symlink"), err
	}

	if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("Symlink %s -> %s recreated", r.Link, r.Target)), nil
	}
	return core.SuccessChange(fmt.Sprintf("Symlink created: %s -> %s", r.Link, r.Target)), nil
}
