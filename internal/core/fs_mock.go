package core

import (
	"os"
	"sync"
)

// RecordingFS wraps RealFS for tests. Ownership changes are recorded instead
// of applied, so tests asserting the 0/0 policy run unprivileged. Every
// mutating call is logged in Mutations.
type RecordingFS struct {
	RealFS

	mu        sync.Mutex
	Owners    map[string][2]int
	Mutations []string

	// RemoveErr, when set, is returned by Remove.
	RemoveErr error
}

func NewRecordingFS() *RecordingFS {
	return &RecordingFS{Owners: make(map[string][2]int)}
}

func (f *RecordingFS) note(op, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Mutations = append(f.Mutations, op+" "+name)
}

func (f *RecordingFS) Chown(name string, uid, gid int) error {
	if _, err := os.Stat(name); err != nil {
		return err
	}
	f.note("chown", name)
	f.mu.Lock()
	f.Owners[name] = [2]int{uid, gid}
	f.mu.Unlock()
	return nil
}

func (f *RecordingFS) Lchown(name string, uid, gid int) error {
	if _, err := os.Lstat(name); err != nil {
		return err
	}
	f.note("lchown", name)
	f.mu.Lock()
	f.Owners[name] = [2]int{uid, gid}
	f.mu.Unlock()
	return nil
}

func (f *RecordingFS) Remove(name string) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.note("remove", name)
	return f.RealFS.Remove(name)
}

func (f *RecordingFS) MkdirAll(path string, perm os.FileMode) error {
	f.note("mkdir", path)
	return f.RealFS.MkdirAll(path, perm)
}

func (f *RecordingFS) Symlink(oldname, newname string) error {
	f.note("symlink", newname)
	return f.RealFS.Symlink(oldname, newname)
}

func (f *RecordingFS) Chmod(name string, mode os.FileMode) error {
	f.note("chmod", name)
	return f.RealFS.Chmod(name, mode)
}

func (f *RecordingFS) Create(name string) (File, error) {
	f.note("create", name)
	return f.RealFS.Create(name)
}

// Owner returns the uid/gid last recorded for name.
func (f *RecordingFS) Owner(name string) (uid, gid int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.Owners[name]
	return o[0], o[1], ok
}
