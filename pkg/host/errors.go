package host

import (
	"errors"

	"github.com/justyntemme/frei0rgo/pkg/param"
)

var (
	// ErrInvalidDimensions means a requested frame size is out of range or
	// not a multiple of 8. No native code is called in that case.
	ErrInvalidDimensions = errors.New("host: dimensions must be multiples of 8 in 1..2048")

	// ErrConstructFailed means the native f0r_construct returned no instance.
	ErrConstructFailed = errors.New("host: native construct failed")

	// ErrUnknownParameter means a parameter index or name matched nothing.
	ErrUnknownParameter = errors.New("host: unknown parameter")

	// ErrTypeMismatch means a value's shape does not match the parameter's
	// declared type.
	ErrTypeMismatch = param.ErrTypeMismatch

	// ErrUnsupportedOperation means the requested update path is not
	// available on this plugin.
	ErrUnsupportedOperation = errors.New("host: operation not supported by plugin")

	// ErrInstancesAlive means Close was called while instances spawned from
	// the handle had not been destroyed.
	ErrInstancesAlive = errors.New("host: plugin still has live instances")

	// ErrClosed means the plugin handle was already closed.
	ErrClosed = errors.New("host: plugin is closed")

	// ErrDestroyed means the instance was already destroyed.
	ErrDestroyed = errors.New("host: instance is destroyed")

	// ErrFrameSize means a frame buffer's length does not match the
	// instance's width*height.
	ErrFrameSize = errors.New("host: frame length does not match instance dimensions")
)
