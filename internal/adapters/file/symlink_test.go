package file

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/zguest/internal/core"
)

func TestSymlinkStep_Replace(t *testing.T) {
	ctx, rfs := newGuest(t)
	step := NewSymlinkStep("usr/sbin/mdata-get", "/native/usr/sbin/mdata-get", true)

	res, err := step.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	target, err := os.Readlink(ctx.GuestPath("usr/sbin/mdata-get"))
	require.NoError(t, err)
	assert.Equal(t, "/native/usr/sbin/mdata-get", target)
	_, _, ok := rfs.Owner(ctx.GuestPath("usr/sbin/mdata-get"))
	assert.True(t, ok)

	t.Run("existing link is removed and recreated", func(t *testing.T) {
		before := len(rfs.Mutations)
		res, err := step.Apply(ctx)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Contains(t, rfs.Mutations[before:], "remove "+ctx.GuestPath("usr/sbin/mdata-get"))
	})

	t.Run("stale regular file is replaced", func(t *testing.T) {
		p := ctx.GuestPath("usr/sbin/mdata-put")
		require.NoError(t, os.WriteFile(p, []byte("old binary"), 0o755))

		res, err := NewSymlinkStep("usr/sbin/mdata-put", "/native/usr/sbin/mdata-put", true).Apply(ctx)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		target, err := os.Readlink(p)
		require.NoError(t, err)
		assert.Equal(t, "/native/usr/sbin/mdata-put", target)
	})
}

func TestSymlinkStep_UnlinkFailure(t *testing.T) {
	ctx, rfs := newGuest(t)
	p := ctx.GuestPath("usr/sbin/mdata-list")
	require.NoError(t, os.MkdirAll(ctx.GuestPath("usr/sbin"), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("old"), 0o755))
	rfs.RemoveErr = fs.ErrPermission

	_, err := NewSymlinkStep("usr/sbin/mdata-list", "/native/usr/sbin/mdata-list", true).Apply(ctx)

	var ue *core.UnlinkError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, p, ue.Path)
	assert.True(t, errors.Is(err, fs.ErrPermission))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestSymlinkStep_NoReplace(t *testing.T) {
	ctx, _ := newGuest(t)
	link := "etc/systemd/system/multi-user.target.wants/joyent.service"
	step := NewSymlinkStep(link, "../joyent.service", false)

	res, err := step.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = step.Apply(ctx)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	t.Run("foreign link is an error", func(t *testing.T) {
		other := NewSymlinkStep(link, "/usr/lib/systemd/system/other.service", false)
		_, err := other.Apply(ctx)
		var fe *core.FSError
		require.ErrorAs(t, err, &fe)
		assert.ErrorIs(t, err, fs.ErrExist)
	})
}
