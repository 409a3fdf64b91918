package core

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDistribution is returned when no distribution marker matched the guest root.
var ErrUnsupportedDistribution = errors.New("failed to detect supported Linux distribution")

// FSError reports a failed filesystem primitive together with the path it acted on.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error {
	return e.Err
}

// UnlinkError reports a pre-existing metadata command that could not be removed.
type UnlinkError struct {
	Path string
	Err  error
}

func (e *UnlinkError) Error() string {
	return fmt.Sprintf("failed to unlink %s: %v", e.Path, e.Err)
}

func (e *UnlinkError) Unwrap() error {
	return e.Err
}

func fsErr(op, path string, err error) error {
	return &FSError{Op: op, Path: path, Err: err}
}
