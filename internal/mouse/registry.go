package mouse

// deviceRegistry reference-counts process-wide raw-device interest.
// Registration of a raw input device class is global to the process,
// not owned by any single window: the native register call fires only
// on the 0 -> 1 transition and the unregister call only on 1 -> 0.
//
// All controllers sharing a backend run on one event-loop goroutine
// (see Controller), so plain sequential mutation is sufficient.
type deviceRegistry struct {
	refs       int
	register   func() error
	unregister func() error
}

func newDeviceRegistry(register, unregister func() error) *deviceRegistry {
	return &deviceRegistry{register: register, unregister: unregister}
}

// acquire records one more window requesting raw input, issuing the
// native registration when this is the first. A failed registration
// leaves the count untouched so a later acquire retries.
func (r *deviceRegistry) acquire() error {
	if r.refs == 0 {
		if err := r.register(); err != nil {
			return err
		}
	}
	r.refs++
	return nil
}

// release drops one window's interest, unregistering natively when no
// window requires raw input anymore. Releasing below zero is a no-op.
func (r *deviceRegistry) release() error {
	if r.refs == 0 {
		return nil
	}
	r.refs--
	if r.refs == 0 {
		return r.unregister()
	}
	return nil
}

// active reports how many windows currently hold a registration.
func (r *deviceRegistry) active() int {
	return r.refs
}
