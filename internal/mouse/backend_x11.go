//go:build linux

package mouse

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X11 backend, diff-based. Confinement is an active pointer grab with
// ConfineTo and warping is WarpPointer. X11 has no core-protocol way to
// switch a client to relative reporting, so raw mode is synthesized:
// the grab routes every MotionNotify to us, Translate diffs the
// absolute root coordinates against the controller's baseline, and the
// per-event re-warp keeps that baseline anchored at the window center
// so the cursor can never saturate at a grab-region edge.

// X11Backend implements Backend on top of an existing X connection.
type X11Backend struct {
	conn *xgb.Conn
	root xproto.Window
}

// NewX11Backend wraps the connection that also pumps the window's
// events. The grab must be issued from that same client or the server
// would route motion away from the application's event loop.
func NewX11Backend(conn *xgb.Conn) (*X11Backend, error) {
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("x11: connection has no default screen")
	}
	return &X11Backend{conn: conn, root: screen.Root}, nil
}

func (b *X11Backend) Name() string { return "x11" }

func (b *X11Backend) windowOf(w Window) (xproto.Window, error) {
	h, ok := w.Native()
	if !ok || h == 0 {
		return 0, platformErr(InvalidWindow, "window handle", errWindowGone)
	}
	return xproto.Window(h), nil
}

// LockCursor grabs the pointer with the window as the confinement
// region. Re-grabbing an already owned grab reports AlreadyGrabbed,
// which is treated as success to keep the call idempotent.
func (b *X11Backend) LockCursor(w Window) error {
	win, err := b.windowOf(w)
	if err != nil {
		return err
	}
	reply, err := xproto.GrabPointer(b.conn, true, win,
		uint16(xproto.EventMaskPointerMotion|xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		win, xproto.Cursor(0), xproto.TimeCurrentTime).Reply()
	if err != nil {
		return platformErr(LockFailed, "GrabPointer", err)
	}
	if reply.Status != xproto.GrabStatusSuccess && reply.Status != xproto.GrabStatusAlreadyGrabbed {
		return platformErr(LockFailed, "GrabPointer", fmt.Errorf("grab refused with status %d", reply.Status))
	}
	return nil
}

// UnlockCursor drops the grab. Ungrabbing without a grab in place is
// harmless on the wire.
func (b *X11Backend) UnlockCursor(Window) error {
	if err := xproto.UngrabPointerChecked(b.conn, xproto.TimeCurrentTime).Check(); err != nil {
		return platformErr(LockFailed, "UngrabPointer", err)
	}
	return nil
}

func (b *X11Backend) WarpCursorToCenter(w Window) (Point, error) {
	center, err := centerOf(w)
	if err != nil {
		return Point{}, err
	}
	werr := xproto.WarpPointerChecked(b.conn,
		xproto.Window(0), b.root,
		0, 0, 0, 0,
		int16(center.X), int16(center.Y)).Check()
	if werr != nil {
		return center, platformErr(WarpFailed, "WarpPointer", werr)
	}
	return center, nil
}

// EnableRawInput only validates the window: the grab established by
// LockCursor already delivers every motion event to this client, and
// the diff in Translate is what turns them into relative samples.
func (b *X11Backend) EnableRawInput(w Window) error {
	_, err := b.windowOf(w)
	return err
}

// DisableRawInput is a no-op; dropping the grab stops the deliveries.
func (b *X11Backend) DisableRawInput(Window) error {
	return nil
}

// Translate diffs MotionNotify root coordinates against the baseline.
// The warp echo lands exactly on the baseline and cancels to a zero
// delta, which the controller suppresses.
func (b *X11Backend) Translate(event any, st *MotionState) Translation {
	switch ev := event.(type) {
	case xproto.MotionNotifyEvent:
		return Translation{
			Kind: TranslateDelta,
			Delta: Delta{
				DX: int(ev.RootX) - st.Last.X,
				DY: int(ev.RootY) - st.Last.Y,
			},
		}
	default:
		return Translation{Kind: TranslateNone}
	}
}

var _ Backend = (*X11Backend)(nil)
