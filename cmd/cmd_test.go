package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/zguest/internal/core"
)

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.LocalFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	pterm.DisableColor()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "-c", filepath.Join(t.TempDir(), "none.yaml")))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
		pterm.EnableColor()
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// recordOwnership swaps the local guest filesystem for one that records
// chown calls, so installs run unprivileged.
func recordOwnership(t *testing.T) *core.RecordingFS {
	t.Helper()
	rfs := core.NewRecordingFS()
	prev := localFS
	localFS = func() core.FileSystem { return rfs }
	t.Cleanup(func() { localFS = prev })
	return rfs
}

func guestRoot(t *testing.T, marker string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "etc/profile.d"), 0o755))
	if marker != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, marker), nil, 0o644))
	}
	return root
}

func TestDetectCommand(t *testing.T) {
	out, _, err := runCLI(t, "detect", guestRoot(t, "etc/alpine-release"))
	require.NoError(t, err)
	assert.Equal(t, "Alpine openrc\n", out)

	_, _, err = runCLI(t, "detect", guestRoot(t, ""))
	assert.ErrorIs(t, err, core.ErrUnsupportedDistribution)
}

func TestDetectCommand_MissingRoot(t *testing.T) {
	_, _, err := runCLI(t, "detect", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "guest root")
}

func TestInstallCommand(t *testing.T) {
	rfs := recordOwnership(t)
	root := guestRoot(t, "etc/debian_version")

	_, stderr, err := runCLI(t, "install", root)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "etc/rc.local"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	target, err := os.Readlink(filepath.Join(root, "usr/sbin/mdata-get"))
	require.NoError(t, err)
	assert.Equal(t, "/native/usr/sbin/mdata-get", target)
	_, _, ok := rfs.Owner(filepath.Join(root, "etc/rc.local"))
	assert.True(t, ok)

	assert.Contains(t, stderr, "etc/rc.local")
	assert.Contains(t, stderr, "changed")
	assert.Contains(t, stderr, "guest tools installed")

	t.Run("second run changes nothing", func(t *testing.T) {
		_, stderr, err := runCLI(t, "install", root)
		require.NoError(t, err)
		assert.Contains(t, stderr, "0 step(s) changed")
	})
}

func TestInstallCommand_DryRun(t *testing.T) {
	rfs := recordOwnership(t)
	root := guestRoot(t, "etc/debian_version")

	_, stderr, err := runCLI(t, "install", root, "--dry-run")
	require.NoError(t, err)

	assert.Empty(t, rfs.Mutations)
	assert.NoFileExists(t, filepath.Join(root, "etc/rc.local"))
	assert.NoFileExists(t, filepath.Join(root, "usr/sbin/mdata-get"))
	assert.Contains(t, stderr, "would change the guest")
}

func TestInstallCommand_UnknownFails(t *testing.T) {
	recordOwnership(t)
	root := guestRoot(t, "")

	_, _, err := runCLI(t, "install", root)

	assert.ErrorIs(t, err, core.ErrUnsupportedDistribution)
	assert.NoFileExists(t, filepath.Join(root, "etc/rc.local"))
}

func TestInstallCommand_FailedStepIsReported(t *testing.T) {
	recordOwnership(t)
	root := guestRoot(t, "etc/debian_version")
	require.NoError(t, os.Remove(filepath.Join(root, "etc/profile.d")))

	_, stderr, err := runCLI(t, "install", root)

	var fe *core.FSError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, stderr, "etc/profile.d/native_manpath.sh")
	assert.Contains(t, stderr, "failed")
	assert.NoFileExists(t, filepath.Join(root, "etc/rc.local"))
}

func TestInstallCommand_RejectsRelativeNativeDir(t *testing.T) {
	rfs := recordOwnership(t)

	_, _, err := runCLI(t, "install", guestRoot(t, "etc/debian_version"), "--native", "native")

	assert.ErrorContains(t, err, "absolute")
	assert.Empty(t, rfs.Mutations)
}

func TestDiffCommand_ListsPendingChanges(t *testing.T) {
	root := guestRoot(t, "etc/debian_version")

	out, _, err := runCLI(t, "diff", root)
	require.NoError(t, err)
	assert.Contains(t, out, "--- etc/rc.local")
	assert.Contains(t, out, "--- etc/profile.d/native_manpath.sh")
	assert.Contains(t, out, "~ usr/sbin/mdata-get (symlink)")
	assert.Contains(t, out, "~ lib/smartdc (dir)")
	assert.NoFileExists(t, filepath.Join(root, "etc/rc.local"))
}

func TestReportRows(t *testing.T) {
	rows := reportRows([]core.StepReport{
		{Phase: "manpath", Name: "etc/profile.d/native_manpath.sh", Type: "file", Result: core.SuccessChange("copied")},
		{Phase: "smartdc", Name: "lib/smartdc", Type: "dir", Result: core.SuccessNoChange("up to date")},
		{Phase: "distro Debian", Name: "etc/rc.local", Type: "file", Result: core.Failure(os.ErrPermission, "failed")},
	})
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"PHASE", "STEP", "TYPE", "RESULT"}, rows[0])
	assert.Equal(t, "changed", rows[1][3])
	assert.Equal(t, "ok", rows[2][3])
	assert.Equal(t, "failed", rows[3][3])
}
