package mouse

// Adapter merges the deltas a controller produces into an application
// event stream. It owns a bounded queue and drops samples when the
// consumer lags rather than stalling the native event loop.
type Adapter struct {
	ctrl   *Controller
	events chan MotionEvent
}

// NewAdapter wraps a controller with a merge queue of the given size.
func NewAdapter(ctrl *Controller, buffer int) *Adapter {
	if buffer <= 0 {
		buffer = 64
	}
	return &Adapter{
		ctrl:   ctrl,
		events: make(chan MotionEvent, buffer),
	}
}

// Controller returns the wrapped controller.
func (a *Adapter) Controller() *Controller {
	return a.ctrl
}

// Events is the merged stream of normalized raw motion events.
func (a *Adapter) Events() <-chan MotionEvent {
	return a.events
}

// Feed hands one native event to the controller and queues any delta it
// yields. The delta is also returned for callers that dispatch inline.
func (a *Adapter) Feed(event any) (Delta, bool) {
	d, ok := a.ctrl.OnNativeEvent(event)
	if !ok {
		return Delta{}, false
	}
	select {
	case a.events <- MotionEvent{Delta: d, Raw: true}:
	default:
		logger.Debugf("motion queue full, dropping sample")
	}
	return d, true
}
