package transport

import (
	"io"
	"os"

	"github.com/pkg/sftp"

	"github.com/melih-ucgun/zguest/internal/core"
)

// SFTPFS implements core.FileSystem over an SFTP connection.
type SFTPFS struct {
	client *sftp.Client
}

var _ core.FileSystem = (*SFTPFS)(nil)

func NewSFTPFS(client *sftp.Client) *SFTPFS {
	return &SFTPFS{client: client}
}

func (fs *SFTPFS) Create(name string) (core.File, error) {
	f, err := fs.client.Create(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (fs *SFTPFS) Stat(name string) (os.FileInfo, error) {
	return fs.client.Stat(name)
}

func (fs *SFTPFS) Lstat(name string) (os.FileInfo, error) {
	return fs.client.Lstat(name)
}

// MkdirAll ignores perm; callers chmod what they create.
func (fs *SFTPFS) MkdirAll(path string, perm os.FileMode) error {
	return fs.client.MkdirAll(path)
}

func (fs *SFTPFS) Remove(name string) error {
	return fs.client.Remove(name)
}

func (fs *SFTPFS) Readlink(name string) (string, error) {
	return fs.client.ReadLink(name)
}

func (fs *SFTPFS) Symlink(oldname, newname string) error {
	return fs.client.Symlink(oldname, newname)
}

func (fs *SFTPFS) Chmod(name string, mode os.FileMode) error {
	return fs.client.Chmod(name, mode)
}

func (fs *SFTPFS) Chown(name string, uid, gid int) error {
	return fs.client.Chown(name, uid, gid)
}

// Lchown is a no-op: SFTP setstat follows links, and a link target inside the
// guest must never be resolved against the host.
func (fs *SFTPFS) Lchown(name string, uid, gid int) error {
	return nil
}

func (fs *SFTPFS) ReadDir(dirname string) ([]os.DirEntry, error) {
	infos, err := fs.client.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	entries := make([]os.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &sftpDirEntry{info}
	}
	return entries, nil
}

func (fs *SFTPFS) ReadFile(filename string) ([]byte, error) {
	f, err := fs.client.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// sftpDirEntry wraps os.FileInfo to satisfy os.DirEntry
type sftpDirEntry struct {
	os.FileInfo
}

func (d *sftpDirEntry) Type() os.FileMode {
	return d.Mode().Type()
}

func (d *sftpDirEntry) Info() (os.FileInfo, error) {
	return d.FileInfo, nil
}
