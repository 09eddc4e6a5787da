// Package mouse confines the system cursor to a window and switches the
// input source to relative, unaccelerated raw motion deltas, normalizing
// the divergent native primitives of each platform behind one backend
// contract.
package mouse

// Point is a coordinate in window or screen space.
type Point struct {
	X int
	Y int
}

// Rect is a rectangle in window or screen space.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Delta is one relative motion sample. Moving the physical mouse right
// or down yields positive DX/DY on every backend; a backend whose
// native API reports the inverse negates before returning.
type Delta struct {
	DX int
	DY int
}

// MotionEvent is a normalized motion sample ready to merge into the
// application's unified input event stream.
type MotionEvent struct {
	Delta Delta
	// Raw marks the sample as unaccelerated device motion rather than
	// cursor movement.
	Raw bool
}

// Window is a non-owning reference to a window owned by the embedding
// window subsystem. Implementations read live geometry; the controller
// never caches it across calls.
type Window interface {
	// Native returns the platform window handle. The second result is
	// false once the window has been destroyed.
	Native() (uintptr, bool)

	// ClientRect returns the window's client area in window space.
	ClientRect() (Rect, error)

	// ToScreen converts a window-space point to screen coordinates.
	ToScreen(Point) Point
}

// MotionState is the slice of controller state a backend may consult
// while translating native events.
type MotionState struct {
	// Center is the warp target, recomputed on every centering so it
	// always reflects the window's current geometry.
	Center Point
	// Last is the baseline for diff-based backends: the position the
	// cursor was left at after the previous sample. Reset to Center
	// after every re-warp.
	Last Point
}

// TranslationKind classifies the result of inspecting one native event.
type TranslationKind int

const (
	// TranslateNone marks an event that is not a motion event at all.
	TranslateNone TranslationKind = iota
	// TranslateIgnore marks a motion-related event that produces no
	// sample while raw mode is held.
	TranslateIgnore
	// TranslateDelta carries one raw motion sample.
	TranslateDelta
)

// Translation is the outcome of translating one native platform event.
type Translation struct {
	Kind  TranslationKind
	Delta Delta
}
