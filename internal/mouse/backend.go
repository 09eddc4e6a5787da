package mouse

// Backend is the per-platform capability set the controller drives. One
// implementation exists per OS target, selected at build time; all
// implementations are stateless apart from native handles and the
// process-wide raw-device registry.
type Backend interface {
	// Name identifies the backend in logs and diagnostics.
	Name() string

	// LockCursor confines the system cursor to the window's client
	// area. Idempotent. Returns a PlatformError of kind InvalidWindow
	// when the window has no native handle, and is a safe no-op on
	// backends where EnableRawInput itself locks the cursor.
	LockCursor(w Window) error

	// UnlockCursor releases confinement unconditionally. Safe to call
	// even if the cursor was never locked.
	UnlockCursor(w Window) error

	// WarpCursorToCenter moves the cursor to the center of the
	// window's client area in screen coordinates, recomputing geometry
	// at call time. It returns the computed center even when the move
	// fails, so the caller can still record it; on backends without a
	// warp primitive the move is skipped and reported as success.
	WarpCursorToCenter(w Window) (Point, error)

	// EnableRawInput switches the input source to relative raw deltas.
	EnableRawInput(w Window) error

	// DisableRawInput reverts to normal absolute cursor reporting.
	// Idempotent.
	DisableRawInput(w Window) error

	// Translate inspects one native platform event and reports whether
	// it carries a raw motion sample. st exposes the controller's warp
	// target and diff baseline; Translate never mutates it.
	Translate(event any, st *MotionState) Translation
}

// centerOf reads the window's current geometry and returns the screen
// coordinate of its client-area center.
func centerOf(w Window) (Point, error) {
	if _, ok := w.Native(); !ok {
		return Point{}, platformErr(InvalidWindow, "read window geometry", errWindowGone)
	}
	r, err := w.ClientRect()
	if err != nil {
		return Point{}, platformErr(InvalidWindow, "read window geometry", err)
	}
	return w.ToScreen(r.Center()), nil
}
