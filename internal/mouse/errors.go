package mouse

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform is returned when no raw mouse backend
	// exists for the current OS.
	ErrUnsupportedPlatform = errors.New("raw mouse input not supported on this platform")

	// ErrControllerClosed is returned when hold is requested on a
	// controller whose window was already torn down.
	ErrControllerClosed = errors.New("controller is closed")

	errWindowGone = errors.New("native window handle is gone")
)

// ErrorKind classifies a failed native call.
type ErrorKind int

const (
	// LockFailed: cursor confinement could not be established or released.
	LockFailed ErrorKind = iota
	// WarpFailed: the cursor could not be moved. Centering is best
	// effort; this kind is logged and never aborts a sequence.
	WarpFailed
	// RawEnableFailed: the input source could not be switched to raw deltas.
	RawEnableFailed
	// RawDisableFailed: raw delta reporting could not be reverted.
	RawDisableFailed
	// InvalidWindow: the window has no valid native handle.
	InvalidWindow
)

func (k ErrorKind) String() string {
	switch k {
	case LockFailed:
		return "lock failed"
	case WarpFailed:
		return "warp failed"
	case RawEnableFailed:
		return "raw enable failed"
	case RawDisableFailed:
		return "raw disable failed"
	case InvalidWindow:
		return "invalid window"
	default:
		return "unknown"
	}
}

// PlatformError wraps a failed native cursor or raw-input call.
type PlatformError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

func platformErr(kind ErrorKind, op string, err error) *PlatformError {
	return &PlatformError{Kind: kind, Op: op, Err: err}
}
