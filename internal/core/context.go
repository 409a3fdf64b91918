package core

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultNativeDir is the host-provided overlay the metadata commands link into.
const DefaultNativeDir = "/native"

// SystemContext carries everything one provisioning run needs: the guest
// root, the filesystem it lives on, the asset bundle to copy from and the
// run's logger. It wraps the standard context for the SSH dial and logging.
type SystemContext struct {
	context.Context

	// Root is the guest root every destination path is joined onto.
	Root string

	// FS is the guest-side filesystem; Assets is the tool's own bundle.
	FS     FileSystem
	Assets fs.FS

	// NativeDir is the overlay path as seen from inside the guest.
	NativeDir string

	// DryRun checks every step without mutating the guest.
	DryRun bool

	RunID  string
	Logger Logger
	UI     UI
}

// NewSystemContext builds a context for root on the local filesystem.
// A nil logger discards all output.
func NewSystemContext(root string, assets fs.FS, logger Logger) *SystemContext {
	if logger == nil {
		logger = NewDefaultLogger(io.Discard, LevelError)
	}
	runID := uuid.New().String()

	return &SystemContext{
		Context:   context.Background(),
		Root:      root,
		FS:        &RealFS{},
		Assets:    assets,
		NativeDir: DefaultNativeDir,
		RunID:     runID,
		Logger:    logger.With("run", runID, "root", root),
		UI:        &NoOpUI{},
	}
}

// GuestPath joins a guest-relative path onto Root.
func (c *SystemContext) GuestPath(rel string) string {
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}
