//go:build linux

package mouse

import (
	"context"
	"fmt"

	"github.com/bnema/wayland-virtual-input-go/pointer_constraints"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

// Wayland backend: push-delta with a unified lock. The
// pointer-constraints lock both confines and freezes the cursor, and
// compositors deliver unaccelerated motion through the relative-pointer
// protocol while it holds. Clients cannot move the cursor at all, so
// warping is a documented no-op and centering is satisfied by the lock
// itself.

// RelativeMotion is the native event value fed to the controller on
// Wayland: one relative-pointer sample with both the accelerated and
// the raw, unaccelerated deltas in surface coordinates.
type RelativeMotion struct {
	DX        float64
	DY        float64
	DXUnaccel float64
	DYUnaccel float64
}

// WaylandBackend implements Backend for wlroots-style compositors. One
// value serves one surface; the locked-pointer object is the only
// handle it owns. Relative-pointer deltas are fractional wl_fixed
// values, so the sub-unit remainder is carried between samples instead
// of being truncated away.
type WaylandBackend struct {
	mgr     pointer_constraints.PointerConstraintsManager
	surface *client.Surface
	pointer *client.Pointer
	locked  pointer_constraints.LockedPointer
	accX    float64
	accY    float64
}

// NewWaylandBackend binds the compositor's pointer-constraints global
// to the window's surface and seat pointer.
func NewWaylandBackend(ctx context.Context, surface *client.Surface, pointer *client.Pointer) (*WaylandBackend, error) {
	mgr, err := pointer_constraints.NewPointerConstraintsManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("wayland: pointer constraints unavailable: %w", err)
	}
	return &WaylandBackend{mgr: mgr, surface: surface, pointer: pointer}, nil
}

func (b *WaylandBackend) Name() string { return "wayland" }

// LockCursor validates the window; the constraint established by
// EnableRawInput is the confinement, there is no separate primitive.
func (b *WaylandBackend) LockCursor(w Window) error {
	if _, ok := w.Native(); !ok {
		return platformErr(InvalidWindow, "window handle", errWindowGone)
	}
	return nil
}

// UnlockCursor is a no-op: DisableRawInput destroys the lock.
func (b *WaylandBackend) UnlockCursor(Window) error {
	return nil
}

// WarpCursorToCenter reports the freshly computed center without moving
// anything. The compositor owns the cursor and a locked pointer cannot
// drift, so skipping the move counts as success.
func (b *WaylandBackend) WarpCursorToCenter(w Window) (Point, error) {
	return centerOf(w)
}

func (b *WaylandBackend) EnableRawInput(w Window) error {
	if _, ok := w.Native(); !ok {
		return platformErr(InvalidWindow, "window handle", errWindowGone)
	}
	if b.locked != nil {
		return nil
	}
	locked, err := pointer_constraints.LockPointerAtCurrentPosition(b.mgr, b.surface, b.pointer)
	if err != nil {
		return platformErr(RawEnableFailed, "lock pointer", err)
	}
	b.locked = locked
	b.accX, b.accY = 0, 0
	return nil
}

func (b *WaylandBackend) DisableRawInput(Window) error {
	if b.locked == nil {
		return nil
	}
	err := b.locked.Destroy()
	b.locked = nil
	if err != nil {
		return platformErr(RawDisableFailed, "destroy locked pointer", err)
	}
	return nil
}

// Close releases the constraints manager. The backend is unusable
// afterwards.
func (b *WaylandBackend) Close() error {
	if b.locked != nil {
		if err := b.locked.Destroy(); err != nil {
			logger.Warnf("wayland: destroy locked pointer: %v", err)
		}
		b.locked = nil
	}
	if b.mgr != nil {
		if err := b.mgr.Destroy(); err != nil {
			return fmt.Errorf("wayland: destroy constraints manager: %w", err)
		}
		b.mgr = nil
	}
	return nil
}

// Translate passes relative-pointer samples through, preferring the
// unaccelerated pair. Whole units are emitted and the fractional
// remainder rides along to the next sample, so slow motion accumulates
// instead of truncating to zero. Absolute surface positions are not
// authoritative while the pointer is locked.
func (b *WaylandBackend) Translate(event any, _ *MotionState) Translation {
	switch ev := event.(type) {
	case RelativeMotion:
		b.accX += ev.DXUnaccel
		b.accY += ev.DYUnaccel
		dx, dy := int(b.accX), int(b.accY)
		b.accX -= float64(dx)
		b.accY -= float64(dy)
		return Translation{
			Kind:  TranslateDelta,
			Delta: Delta{DX: dx, DY: dy},
		}
	case client.PointerMotionEvent:
		return Translation{Kind: TranslateIgnore}
	default:
		return Translation{Kind: TranslateNone}
	}
}

var _ Backend = (*WaylandBackend)(nil)
