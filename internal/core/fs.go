package core

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem is the guest-side filesystem every install step writes through.
// RealFS serves a locally mounted guest root, transport.SFTPFS a remote one.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	Remove(name string) error
	Readlink(name string) (string, error)
	Symlink(oldname, newname string) error
	Chmod(name string, mode os.FileMode) error
	Chown(name string, uid, gid int) error
	Lchown(name string, uid, gid int) error
	Create(name string) (File, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

// File is a minimal interface for a file object
type File interface {
	io.Writer
	io.Closer
}

// RealFS is a real filesystem implementation using os package
type RealFS struct{}

func (f *RealFS) Stat(name string) (fs.FileInfo, error)  { return os.Stat(name) }
func (f *RealFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (f *RealFS) ReadFile(name string) ([]byte, error)   { return os.ReadFile(name) }
func (f *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
func (f *RealFS) Remove(name string) error                  { return os.Remove(name) }
func (f *RealFS) Readlink(name string) (string, error)      { return os.Readlink(name) }
func (f *RealFS) Symlink(oldname, newname string) error     { return os.Symlink(oldname, newname) }
func (f *RealFS) Chmod(name string, mode os.FileMode) error { return os.Chmod(name, mode) }
func (f *RealFS) Chown(name string, uid, gid int) error     { return os.Chown(name, uid, gid) }
func (f *RealFS) Lchown(name string, uid, gid int) error    { return os.Lchown(name, uid, gid) }
func (f *RealFS) Create(name string) (File, error)          { return os.Create(name) }
func (f *RealFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}
