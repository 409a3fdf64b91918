package system

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/melih-ucgun/zguest/internal/core"
)

// Distribution is the Linux distribution installed in a guest root.
type Distribution int

const (
	Unknown Distribution = iota
	Alpine
	Arch
	Debian
	Redhat
	Void
)

func (d Distribution) String() string {
	switch d {
	case Alpine:
		return "Alpine"
	case Arch:
		return "Arch"
	case Debian:
		return "Debian"
	case Redhat:
		return "Redhat"
	case Void:
		return "Void"
	}
	return "Unknown"
}

// Marker ties a distribution to the file whose presence identifies it.
type Marker struct {
	Distribution Distribution
	Path         string
}

// Markers is checked in order; the first marker present wins.
var Markers = []Marker{
	{Alpine, "etc/alpine-release"},
	{Arch, "etc/arch-release"},
	{Debian, "etc/debian_version"},
	{Redhat, "etc/redhat-release"},
	{Void, "etc/void-release"},
}

// Detect inspects the guest root for marker files. It never fails: a root
// without any marker is Unknown.
func Detect(ctx *core.SystemContext) Distribution {
	for _, m := range Markers {
		// Lstat: an absolute symlink inside the guest would resolve against the host
		if _, err := ctx.FS.Lstat(ctx.GuestPath(m.Path)); err != nil {
			continue
		}

		args := []any{"distro", m.Distribution.String(), "marker", m.Path}
		if id := readOSRelease(ctx)["ID"]; id != "" {
			args = append(args, "os_release_id", id)
		}
		ctx.Logger.Info("detected distro as "+m.Distribution.String(), args...)
		return m.Distribution
	}

	ctx.Logger.Warn("no supported distribution marker found")
	return Unknown
}

// readOSRelease parses the guest's etc/os-release for diagnostics only.
func readOSRelease(ctx *core.SystemContext) map[string]string {
	info := make(map[string]string)
	data, err := ctx.FS.ReadFile(ctx.GuestPath("etc/os-release"))
	if err != nil {
		return info
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if parts := strings.SplitN(scanner.Text(), "=", 2); len(parts) == 2 {
			info[parts[0]] = strings.Trim(parts[1], "\"'")
		}
	}
	return info
}
