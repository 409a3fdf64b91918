package system

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/zguest/internal/core"
)

func guestWithMarkers(t *testing.T, markers ...string) *core.SystemContext {
	t.Helper()
	root := t.TempDir()
	for _, m := range markers {
		p := filepath.Join(root, m)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("1\n"), 0o644))
	}
	return core.NewSystemContext(root, nil, nil)
}

func TestDetect_SingleMarker(t *testing.T) {
	for _, m := range Markers {
		t.Run(m.Distribution.String(), func(t *testing.T) {
			ctx := guestWithMarkers(t, m.Path)
			assert.Equal(t, m.Distribution, Detect(ctx))
		})
	}
}

func TestDetect_NoMarker(t *testing.T) {
	ctx := guestWithMarkers(t, "etc/hostname", "etc/os-release")
	assert.Equal(t, Unknown, Detect(ctx))
}

func TestDetect_TableOrderWins(t *testing.T) {
	tests := []struct {
		markers []string
		want    Distribution
	}{
		{[]string{"etc/debian_version", "etc/alpine-release"}, Alpine},
		{[]string{"etc/void-release", "etc/arch-release"}, Arch},
		{[]string{"etc/redhat-release", "etc/debian_version"}, Debian},
		{[]string{"etc/void-release", "etc/redhat-release"}, Redhat},
	}

	for _, tt := range tests {
		ctx := guestWithMarkers(t, tt.markers...)
		assert.Equal(t, tt.want, Detect(ctx), "%v", tt.markers)
	}
}

func TestDetect_DanglingMarkerSymlink(t *testing.T) {
	ctx := guestWithMarkers(t)
	require.NoError(t, os.MkdirAll(ctx.GuestPath("etc"), 0o755))
	require.NoError(t, os.Symlink("/usr/lib/os-release-does-not-exist", ctx.GuestPath("etc/redhat-release")))

	assert.Equal(t, Redhat, Detect(ctx))
}

func TestDetect_LogsDiagnostics(t *testing.T) {
	ctx := guestWithMarkers(t, "etc/arch-release")
	require.NoError(t, os.WriteFile(ctx.GuestPath("etc/os-release"), []byte("NAME=\"Arch Linux\"\nID=arch\n"), 0o644))

	var buf bytes.Buffer
	ctx.Logger = core.NewDefaultLogger(&buf, core.LevelInfo)

	assert.Equal(t, Arch, Detect(ctx))
	assert.Contains(t, buf.String(), "distro=Arch")
	assert.Contains(t, buf.String(), "os_release_id=arch")
}

func TestDistribution_InitSystem(t *testing.T) {
	assert.Equal(t, InitSystemd, Arch.InitSystem())
	assert.Equal(t, InitOpenRC, Alpine.InitSystem())
	assert.Equal(t, InitUnknown, Unknown.InitSystem())
	assert.Equal(t, "Unknown", Unknown.String())
}
