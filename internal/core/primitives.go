package core

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// DirMode is applied to CopyDir directories and to implicitly created link parents.
const DirMode os.FileMode = 0o755

// CopyFile copies src from the asset bundle to dst on the guest filesystem,
// then sets ownership and permission bits on dst. A symlink already sitting at
// dst is replaced rather than written through, since its target would resolve
// against the host.
func CopyFile(ctx *SystemContext, src, dst string, uid, gid int, mode os.FileMode) error {
	in, err := ctx.Assets.Open(src)
	if err != nil {
		return fsErr("open", src, err)
	}
	defer in.Close()

	if info, err := ctx.FS.Lstat(dst); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if err := ctx.FS.Remove(dst); err != nil {
			return fsErr("remove", dst, err)
		}
	}

	out, err := ctx.FS.Create(dst)
	if err != nil {
		return fsErr("create", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fsErr("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return fsErr("close", dst, err)
	}

	return setOwnerMode(ctx, dst, uid, gid, mode)
}

// CopyDir recursively copies srcDir from the asset bundle so that dstDir
// becomes its copy. Regular files get mode; directories get 0755. Owner and
// mode are enforced on every entry of the copy, including directories that
// already existed.
func CopyDir(ctx *SystemContext, srcDir, dstDir string, uid, gid int, mode os.FileMode) error {
	return fs.WalkDir(ctx.Assets, srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fsErr("walk", p, err)
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, srcDir), "/")
		dst := filepath.Join(dstDir, filepath.FromSlash(rel))

		if d.IsDir() {
			return EnsureDir(ctx, dst, uid, gid, DirMode)
		}
		return CopyFile(ctx, p, dst, uid, gid, mode)
	})
}

// Mkdirp creates path and any missing ancestors, applying ownership and mode
// to every directory it created. Existing directories are left untouched.
func Mkdirp(ctx *SystemContext, path string, uid, gid int, mode os.FileMode) error {
	var missing []string
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		_, err := ctx.FS.Lstat(p)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fsErr("stat", p, err)
		}
		missing = append(missing, p)
		if filepath.Dir(p) == p {
			break
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if err := ctx.FS.MkdirAll(path, mode); err != nil {
		return fsErr("mkdir", path, err)
	}

	// outermost first, so a failure leaves the deepest directories unowned rather than the top
	for i := len(missing) - 1; i >= 0; i-- {
		if err := setOwnerMode(ctx, missing[i], uid, gid, mode); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir is Mkdirp followed by setting owner and mode on path itself,
// whether or not it existed. Pre-existing ancestors are still left alone.
// A non-directory at path, symlinks included, is an error.
func EnsureDir(ctx *SystemContext, path string, uid, gid int, mode os.FileMode) error {
	if err := Mkdirp(ctx, path, uid, gid, mode); err != nil {
		return err
	}
	info, err := ctx.FS.Lstat(path)
	if err != nil {
		return fsErr("stat", path, err)
	}
	if !info.IsDir() {
		return fsErr("mkdir", path, syscall.ENOTDIR)
	}
	return setOwnerMode(ctx, path, uid, gid, mode)
}

// CreateSymlink creates link pointing at target. It fails if link already
// exists; a missing parent directory is created with mode 0755.
func CreateSymlink(ctx *SystemContext, target, link string, uid, gid int) error {
	if _, err := ctx.FS.Lstat(link); err == nil {
		return fsErr("symlink", link, fs.ErrExist)
	}

	if err := Mkdirp(ctx, filepath.Dir(link), uid, gid, DirMode); err != nil {
		return err
	}

	if err := ctx.FS.Symlink(target, link); err != nil {
		return fsErr("symlink", link, err)
	}
	if err := ctx.FS.Lchown(link, uid, gid); err != nil {
		return fsErr("lchown", link, err)
	}
	return nil
}

func setOwnerMode(ctx *SystemContext, path string, uid, gid int, mode os.FileMode) error {
	if err := ctx.FS.Chown(path, uid, gid); err != nil {
		return fsErr("chown", path, err)
	}
	if err := ctx.FS.Chmod(path, mode); err != nil {
		return fsErr("chmod", path, err)
	}
	return nil
}
