package mouse

import (
	"github.com/kataras/golog"
)

var logger = golog.Child("[mouse]")

// State is the lifecycle state of a controller.
type State int

const (
	// StateNormal: regular absolute cursor behavior.
	StateNormal State = iota
	// StateLocking: the enable sequence is in progress.
	StateLocking
	// StateActive: cursor locked, raw deltas flowing.
	StateActive
	// StateUnlocking: teardown in progress.
	StateUnlocking
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateLocking:
		return "locking"
	case StateActive:
		return "active"
	case StateUnlocking:
		return "unlocking"
	default:
		return "unknown"
	}
}

// Controller owns the hold state for one window and drives its backend
// through the lock/enable/disable/unlock sequence.
//
// A controller has no internal concurrency: SetHeld, OnNativeEvent and
// Close must all be called from the goroutine that runs the window's
// native event loop. Controllers sharing a backend must share that
// goroutine too, since raw-device registration is counted without locks.
type Controller struct {
	win     Window
	backend Backend
	state   State
	motion  MotionState
	closed  bool
}

// NewController binds a window to its platform backend. The controller
// starts in StateNormal and must be Closed when the window is destroyed.
func NewController(win Window, backend Backend) *Controller {
	return &Controller{win: win, backend: backend, state: StateNormal}
}

// State reports the controller's current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Held reports whether raw mode is fully active.
func (c *Controller) Held() bool {
	return c.state == StateActive
}

// SetHeld enables or disables the hold. Enabling runs the full
// lock/warp/enable sequence and reports lock or raw-enable failures
// after rolling back, leaving the cursor unconfined. Disabling never
// fails: teardown errors are logged and the controller always returns
// to StateNormal. Redundant calls in either direction are no-ops.
func (c *Controller) SetHeld(held bool) error {
	if held {
		return c.hold()
	}
	c.release()
	return nil
}

func (c *Controller) hold() error {
	if c.closed {
		return ErrControllerClosed
	}
	switch c.state {
	case StateLocking, StateActive:
		return nil
	}
	c.state = StateLocking
	if err := c.backend.LockCursor(c.win); err != nil {
		c.state = StateNormal
		return err
	}
	if center, err := c.backend.WarpCursorToCenter(c.win); err != nil {
		// Centering is best effort; a missing warp primitive or a
		// transient failure never aborts the sequence. The reported
		// center is not adopted either, matching recenter.
		logger.Debugf("%s: center on lock: %v", c.backend.Name(), err)
	} else {
		c.motion.Center = center
	}
	c.motion.Last = c.motion.Center
	if err := c.backend.EnableRawInput(c.win); err != nil {
		if uerr := c.backend.UnlockCursor(c.win); uerr != nil {
			logger.Warnf("%s: unlock during rollback: %v", c.backend.Name(), uerr)
		}
		c.state = StateNormal
		return err
	}
	c.state = StateActive
	return nil
}

func (c *Controller) release() {
	switch c.state {
	case StateNormal, StateUnlocking:
		return
	}
	c.state = StateUnlocking
	if err := c.backend.DisableRawInput(c.win); err != nil {
		logger.Warnf("%s: disable raw input: %v", c.backend.Name(), err)
	}
	if err := c.backend.UnlockCursor(c.win); err != nil {
		logger.Warnf("%s: unlock cursor: %v", c.backend.Name(), err)
	}
	// Leaving the cursor confined is worse than a failed unregister
	// call, so the state machine advances regardless.
	c.state = StateNormal
}

// OnNativeEvent translates one native platform event into a normalized
// raw motion delta. The second result is false when the event produced
// no sample: hold not active, event not motion-related, or a spurious
// zero delta. In-flight events arriving after SetHeld(false) are
// discarded; state is authoritative.
func (c *Controller) OnNativeEvent(event any) (Delta, bool) {
	if c.state != StateActive {
		return Delta{}, false
	}
	tr := c.backend.Translate(event, &c.motion)
	if tr.Kind != TranslateDelta {
		return Delta{}, false
	}
	if tr.Delta.DX == 0 && tr.Delta.DY == 0 {
		// Some raw-input sources report zero samples; dropping them
		// also swallows the motion echo of our own warps.
		return Delta{}, false
	}
	c.recenter()
	return tr.Delta, true
}

// recenter re-warps the cursor after every sampled delta so the visible
// cursor can never saturate at a screen edge, then resets the diff
// baseline to the warp target rather than the reported position (the
// cursor is about to be moved anyway).
func (c *Controller) recenter() {
	center, err := c.backend.WarpCursorToCenter(c.win)
	if err != nil {
		logger.Debugf("%s: re-center: %v", c.backend.Name(), err)
	} else {
		c.motion.Center = center
	}
	c.motion.Last = c.motion.Center
}

// Close forces the controller back to StateNormal, releasing
// confinement and raw-device registration. It must be called when the
// window is destroyed, even if the application never disabled the hold,
// and tears down at most once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.release()
}
