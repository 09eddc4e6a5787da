//go:build darwin

package mouse

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

// Connect or disconnect the mouse from the on-screen cursor. While
// disconnected the cursor stays put and events keep their deltas.
static int associateCursor(int connected) {
    return CGAssociateMouseAndMouseCursorPosition(connected) == kCGErrorSuccess;
}

static int warpCursor(double x, double y) {
    return CGWarpMouseCursorPosition(CGPointMake(x, y)) == kCGErrorSuccess;
}

static int isMouseMotion(CGEventRef event) {
    CGEventType t = CGEventGetType(event);
    return t == kCGEventMouseMoved
        || t == kCGEventLeftMouseDragged
        || t == kCGEventRightMouseDragged
        || t == kCGEventOtherMouseDragged;
}

static void motionDeltas(CGEventRef event, int64_t *dx, int64_t *dy) {
    *dx = CGEventGetIntegerValueField(event, kCGMouseEventDeltaX);
    *dy = CGEventGetIntegerValueField(event, kCGMouseEventDeltaY);
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

// Quartz backend: push-delta. macOS has no cursor-confinement
// primitive; disassociating the cursor from the mouse freezes it in
// place and keeps deltas flowing, so EnableRawInput doubles as the lock
// and the per-event re-warp keeps the (hidden or visible) cursor at the
// window center. Motion events are CGEventRefs delivered by the
// application's event tap.

var errQuartzCall = errors.New("quartz call reported failure")

// TapEvent wraps one CoreGraphics event delivered by the embedding
// application's event tap. Ref is the CGEventRef.
type TapEvent struct {
	Ref uintptr
}

// QuartzBackend implements Backend for macOS.
type QuartzBackend struct{}

func NewQuartzBackend() *QuartzBackend {
	return &QuartzBackend{}
}

func (b *QuartzBackend) Name() string { return "quartz" }

// LockCursor only validates the window: the disassociation performed
// by EnableRawInput is what actually pins the cursor.
func (b *QuartzBackend) LockCursor(w Window) error {
	if _, ok := w.Native(); !ok {
		return platformErr(InvalidWindow, "window handle", errWindowGone)
	}
	return nil
}

func (b *QuartzBackend) UnlockCursor(Window) error {
	return nil
}

func (b *QuartzBackend) WarpCursorToCenter(w Window) (Point, error) {
	center, err := centerOf(w)
	if err != nil {
		return Point{}, err
	}
	if C.warpCursor(C.double(center.X), C.double(center.Y)) == 0 {
		return center, platformErr(WarpFailed, "CGWarpMouseCursorPosition", errQuartzCall)
	}
	return center, nil
}

func (b *QuartzBackend) EnableRawInput(w Window) error {
	if _, ok := w.Native(); !ok {
		return platformErr(InvalidWindow, "window handle", errWindowGone)
	}
	if C.associateCursor(0) == 0 {
		return platformErr(RawEnableFailed, "CGAssociateMouseAndMouseCursorPosition", errQuartzCall)
	}
	return nil
}

func (b *QuartzBackend) DisableRawInput(Window) error {
	if C.associateCursor(1) == 0 {
		return platformErr(RawDisableFailed, "CGAssociateMouseAndMouseCursorPosition", errQuartzCall)
	}
	return nil
}

// Translate reads the integer delta fields off mouse-motion events.
// Quartz reports right/down-positive deltas, matching the normalized
// convention.
func (b *QuartzBackend) Translate(event any, _ *MotionState) Translation {
	ev, ok := event.(TapEvent)
	if !ok || ev.Ref == 0 {
		return Translation{Kind: TranslateNone}
	}
	ref := C.CGEventRef(unsafe.Pointer(ev.Ref))
	if C.isMouseMotion(ref) == 0 {
		return Translation{Kind: TranslateNone}
	}
	var dx, dy C.int64_t
	C.motionDeltas(ref, &dx, &dy)
	return Translation{Kind: TranslateDelta, Delta: Delta{DX: int(dx), DY: int(dy)}}
}

var _ Backend = (*QuartzBackend)(nil)
