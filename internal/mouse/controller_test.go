package mouse

import (
	"errors"
	"testing"
)

// fakeWindow is a 200x200 window whose client origin maps straight to
// screen coordinates, putting the center at (100,100).
type fakeWindow struct {
	rect  Rect
	alive bool
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{rect: Rect{X: 0, Y: 0, W: 200, H: 200}, alive: true}
}

func (w *fakeWindow) Native() (uintptr, bool) {
	if !w.alive {
		return 0, false
	}
	return 1, true
}

func (w *fakeWindow) ClientRect() (Rect, error) { return w.rect, nil }

func (w *fakeWindow) ToScreen(p Point) Point { return p }

// fakeBackend records the backend call sequence and lets tests inject
// failures and translation behavior.
type fakeBackend struct {
	calls      []string
	lockErr    error
	enableErr  error
	warpErr    error
	translate  func(event any, st *MotionState) Translation
	translated int
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) LockCursor(Window) error {
	b.calls = append(b.calls, "lock")
	return b.lockErr
}

func (b *fakeBackend) UnlockCursor(Window) error {
	b.calls = append(b.calls, "unlock")
	return nil
}

func (b *fakeBackend) WarpCursorToCenter(w Window) (Point, error) {
	b.calls = append(b.calls, "warp")
	center, err := centerOf(w)
	if err != nil {
		return Point{}, err
	}
	return center, b.warpErr
}

func (b *fakeBackend) EnableRawInput(Window) error {
	b.calls = append(b.calls, "enable")
	return b.enableErr
}

func (b *fakeBackend) DisableRawInput(Window) error {
	b.calls = append(b.calls, "disable")
	return nil
}

func (b *fakeBackend) Translate(event any, st *MotionState) Translation {
	b.translated++
	if b.translate == nil {
		return Translation{Kind: TranslateNone}
	}
	return b.translate(event, st)
}

func (b *fakeBackend) count(op string) int {
	n := 0
	for _, c := range b.calls {
		if c == op {
			n++
		}
	}
	return n
}

// pushDelta treats the native event itself as a ready-made delta.
func pushDelta(event any, _ *MotionState) Translation {
	d, ok := event.(Delta)
	if !ok {
		return Translation{Kind: TranslateNone}
	}
	return Translation{Kind: TranslateDelta, Delta: d}
}

// diffAbsolute diffs absolute Point samples against the baseline, the
// way the X11 motion fallback does.
func diffAbsolute(event any, st *MotionState) Translation {
	p, ok := event.(Point)
	if !ok {
		return Translation{Kind: TranslateNone}
	}
	return Translation{
		Kind:  TranslateDelta,
		Delta: Delta{DX: p.X - st.Last.X, DY: p.Y - st.Last.Y},
	}
}

func TestHoldRunsEnableSequenceInOrder(t *testing.T) {
	b := &fakeBackend{}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	if c.State() != StateActive {
		t.Fatalf("expected active state, got %v", c.State())
	}
	want := []string{"lock", "warp", "enable"}
	if len(b.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, b.calls)
	}
	for i, op := range want {
		if b.calls[i] != op {
			t.Errorf("call %d: expected %q, got %q", i, op, b.calls[i])
		}
	}
	if c.motion.Center != (Point{X: 100, Y: 100}) {
		t.Errorf("expected center (100,100), got %+v", c.motion.Center)
	}
	if c.motion.Last != c.motion.Center {
		t.Errorf("expected baseline at center, got %+v", c.motion.Last)
	}
}

func TestHoldIsIdempotent(t *testing.T) {
	b := &fakeBackend{}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("first SetHeld(true) failed: %v", err)
	}
	once := len(b.calls)
	if err := c.SetHeld(true); err != nil {
		t.Fatalf("second SetHeld(true) failed: %v", err)
	}
	if len(b.calls) != once {
		t.Errorf("second SetHeld(true) issued backend calls: %v", b.calls[once:])
	}
}

func TestReleaseWithoutHoldIsNoop(t *testing.T) {
	b := &fakeBackend{}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(false); err != nil {
		t.Fatalf("SetHeld(false) failed: %v", err)
	}
	if len(b.calls) != 0 {
		t.Errorf("expected no backend calls, got %v", b.calls)
	}
	if c.State() != StateNormal {
		t.Errorf("expected normal state, got %v", c.State())
	}
}

func TestRoundTripReturnsToNormal(t *testing.T) {
	b := &fakeBackend{}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	if err := c.SetHeld(false); err != nil {
		t.Fatalf("SetHeld(false) failed: %v", err)
	}
	if c.State() != StateNormal {
		t.Fatalf("expected normal state, got %v", c.State())
	}
	if b.count("lock") != b.count("unlock") {
		t.Errorf("lock/unlock imbalance: %d locks, %d unlocks", b.count("lock"), b.count("unlock"))
	}
	if b.count("enable") != b.count("disable") {
		t.Errorf("enable/disable imbalance: %d enables, %d disables", b.count("enable"), b.count("disable"))
	}
}

func TestCallBalanceAcrossToggleSequences(t *testing.T) {
	b := &fakeBackend{}
	c := NewController(newFakeWindow(), b)

	sequence := []bool{true, true, false, true, false, false, true}
	for i, held := range sequence {
		if err := c.SetHeld(held); err != nil {
			t.Fatalf("step %d SetHeld(%v) failed: %v", i, held, err)
		}
		switch c.State() {
		case StateNormal, StateLocking, StateActive, StateUnlocking:
		default:
			t.Fatalf("step %d: undefined state %d", i, c.State())
		}
		pending := b.count("lock") - b.count("unlock")
		if pending < 0 || pending > 1 {
			t.Fatalf("step %d: lock/unlock pending count %d", i, pending)
		}
		pending = b.count("enable") - b.count("disable")
		if pending < 0 || pending > 1 {
			t.Fatalf("step %d: enable/disable pending count %d", i, pending)
		}
	}
}

func TestLockFailureReturnsToNormal(t *testing.T) {
	b := &fakeBackend{lockErr: platformErr(LockFailed, "grab", errors.New("busy"))}
	c := NewController(newFakeWindow(), b)

	err := c.SetHeld(true)
	if err == nil {
		t.Fatal("expected lock failure")
	}
	var perr *PlatformError
	if !errors.As(err, &perr) || perr.Kind != LockFailed {
		t.Fatalf("expected LockFailed platform error, got %v", err)
	}
	if c.State() != StateNormal {
		t.Errorf("expected normal state after rollback, got %v", c.State())
	}
	// Nothing completed, so nothing to roll back.
	if b.count("unlock") != 0 || b.count("enable") != 0 {
		t.Errorf("unexpected calls after failed lock: %v", b.calls)
	}
}

func TestEnableFailureRollsBackLock(t *testing.T) {
	b := &fakeBackend{enableErr: platformErr(RawEnableFailed, "register", errors.New("denied"))}
	c := NewController(newFakeWindow(), b)

	err := c.SetHeld(true)
	if err == nil {
		t.Fatal("expected enable failure")
	}
	var perr *PlatformError
	if !errors.As(err, &perr) || perr.Kind != RawEnableFailed {
		t.Fatalf("expected RawEnableFailed platform error, got %v", err)
	}
	if c.State() != StateNormal {
		t.Errorf("expected normal state after rollback, got %v", c.State())
	}
	if b.count("lock") != 1 || b.count("unlock") != 1 {
		t.Errorf("expected the completed lock to be rolled back, calls: %v", b.calls)
	}
	if b.count("disable") != 0 {
		t.Errorf("disable must not run for an enable that never completed, calls: %v", b.calls)
	}
}

func TestWarpFailureDoesNotAbortHold(t *testing.T) {
	b := &fakeBackend{warpErr: platformErr(WarpFailed, "warp", errors.New("denied"))}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("warp failure must not abort the hold: %v", err)
	}
	if c.State() != StateActive {
		t.Errorf("expected active state, got %v", c.State())
	}
}

func TestFailedWarpCenterIsNotAdopted(t *testing.T) {
	b := &fakeBackend{
		translate: pushDelta,
		warpErr:   platformErr(WarpFailed, "warp", errors.New("denied")),
	}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	if c.motion.Center != (Point{}) {
		t.Errorf("center from a failed warp must not be adopted, got %+v", c.motion.Center)
	}

	// The first successful re-warp establishes the real center.
	b.warpErr = nil
	if _, ok := c.OnNativeEvent(Delta{DX: 1, DY: 1}); !ok {
		t.Fatal("expected a delta")
	}
	if c.motion.Center != (Point{X: 100, Y: 100}) {
		t.Errorf("expected center (100,100) after re-warp, got %+v", c.motion.Center)
	}
}

func TestPushDeltaPassesThroughAndRecenters(t *testing.T) {
	b := &fakeBackend{translate: pushDelta}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	warps := b.count("warp")

	d, ok := c.OnNativeEvent(Delta{DX: 3, DY: -7})
	if !ok {
		t.Fatal("expected a delta")
	}
	if d != (Delta{DX: 3, DY: -7}) {
		t.Errorf("expected delta (3,-7), got %+v", d)
	}
	if b.count("warp") != warps+1 {
		t.Errorf("expected one re-warp per sampled event, warps went %d -> %d", warps, b.count("warp"))
	}
	if c.motion.Last != c.motion.Center {
		t.Errorf("baseline not reset to center: %+v vs %+v", c.motion.Last, c.motion.Center)
	}
}

func TestSignNormalizationBothPolarities(t *testing.T) {
	// An inverted-axis backend must negate before returning; a straight
	// backend passes through. Both must agree for the same physical
	// rightward-and-down motion.
	inverted := &fakeBackend{translate: func(event any, _ *MotionState) Translation {
		d := event.(Delta) // native sample, x axis inverted
		return Translation{Kind: TranslateDelta, Delta: Delta{DX: -d.DX, DY: d.DY}}
	}}
	straight := &fakeBackend{translate: pushDelta}

	for name, tc := range map[string]struct {
		backend *fakeBackend
		native  Delta
	}{
		"inverted": {inverted, Delta{DX: -5, DY: 3}},
		"straight": {straight, Delta{DX: 5, DY: 3}},
	} {
		c := NewController(newFakeWindow(), tc.backend)
		if err := c.SetHeld(true); err != nil {
			t.Fatalf("%s: SetHeld(true) failed: %v", name, err)
		}
		d, ok := c.OnNativeEvent(tc.native)
		if !ok {
			t.Fatalf("%s: expected a delta", name)
		}
		if d != (Delta{DX: 5, DY: 3}) {
			t.Errorf("%s: expected normalized delta (5,3), got %+v", name, d)
		}
	}
}

func TestDiffBackendResetsBaselineToCenter(t *testing.T) {
	b := &fakeBackend{translate: diffAbsolute}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	if c.motion.Last != (Point{X: 100, Y: 100}) {
		t.Fatalf("expected baseline (100,100), got %+v", c.motion.Last)
	}

	d, ok := c.OnNativeEvent(Point{X: 96, Y: 103})
	if !ok {
		t.Fatal("expected a delta")
	}
	if d != (Delta{DX: -4, DY: 3}) {
		t.Errorf("expected delta (-4,3), got %+v", d)
	}
	// The baseline snaps back to the warp target, never the reported
	// position: the cursor is already on its way back to center.
	if c.motion.Last != (Point{X: 100, Y: 100}) {
		t.Errorf("expected baseline reset to (100,100), got %+v", c.motion.Last)
	}
}

func TestZeroDeltaIsSuppressed(t *testing.T) {
	b := &fakeBackend{translate: pushDelta}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	warps := b.count("warp")

	if _, ok := c.OnNativeEvent(Delta{}); ok {
		t.Error("zero delta must not surface")
	}
	if b.count("warp") != warps {
		t.Error("zero delta must not trigger a re-warp")
	}
}

func TestEventsAfterReleaseAreDiscarded(t *testing.T) {
	b := &fakeBackend{translate: pushDelta}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	if err := c.SetHeld(false); err != nil {
		t.Fatalf("SetHeld(false) failed: %v", err)
	}

	if _, ok := c.OnNativeEvent(Delta{DX: 2, DY: 2}); ok {
		t.Error("in-flight event after release must be discarded")
	}
	if b.translated != 0 {
		t.Error("translate must not run while not active")
	}
}

func TestCloseWhileActiveTearsDownOnce(t *testing.T) {
	b := &fakeBackend{}
	c := NewController(newFakeWindow(), b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	c.Close()
	if c.State() != StateNormal {
		t.Errorf("expected normal state after close, got %v", c.State())
	}
	if b.count("disable") != 1 || b.count("unlock") != 1 {
		t.Errorf("expected exactly one teardown, calls: %v", b.calls)
	}

	c.Close()
	if b.count("disable") != 1 || b.count("unlock") != 1 {
		t.Errorf("second close must not tear down again, calls: %v", b.calls)
	}
	if err := c.SetHeld(true); !errors.Is(err, ErrControllerClosed) {
		t.Errorf("expected ErrControllerClosed, got %v", err)
	}
}

func TestInvalidWindowSurfacesFromLock(t *testing.T) {
	win := newFakeWindow()
	win.alive = false
	b := &fakeBackend{lockErr: platformErr(InvalidWindow, "window handle", errWindowGone)}
	c := NewController(win, b)

	err := c.SetHeld(true)
	var perr *PlatformError
	if !errors.As(err, &perr) || perr.Kind != InvalidWindow {
		t.Fatalf("expected InvalidWindow platform error, got %v", err)
	}
	if c.State() != StateNormal {
		t.Errorf("expected normal state, got %v", c.State())
	}
}

func TestCenterTracksCurrentGeometry(t *testing.T) {
	win := newFakeWindow()
	b := &fakeBackend{translate: pushDelta}
	c := NewController(win, b)

	if err := c.SetHeld(true); err != nil {
		t.Fatalf("SetHeld(true) failed: %v", err)
	}
	// Resize mid-hold: the next re-warp must see the new geometry.
	win.rect = Rect{X: 0, Y: 0, W: 400, H: 300}
	if _, ok := c.OnNativeEvent(Delta{DX: 1, DY: 1}); !ok {
		t.Fatal("expected a delta")
	}
	if c.motion.Center != (Point{X: 200, Y: 150}) {
		t.Errorf("expected recomputed center (200,150), got %+v", c.motion.Center)
	}
}
