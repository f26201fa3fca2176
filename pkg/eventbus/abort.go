package eventbus

// AbortSignal groups every subscription registered against it so a single
// call to Abort detaches them all — the mechanism behind "all previously
// registered ... handlers installed via the layer wrappers are inactive"
// after a layer detaches.
type AbortSignal struct {
	aborted bool
	onAbort []func()
}

// NewAbortSignal creates a fresh, untripped signal.
func NewAbortSignal() *AbortSignal {
	return &AbortSignal{}
}

// Aborted reports whether Abort has already been called.
func (a *AbortSignal) Aborted() bool { return a.aborted }

// Abort detaches every subscription registered against this signal. It is
// idempotent; calling it twice is a no-op the second time.
func (a *AbortSignal) Abort() {
	if a.aborted {
		return
	}
	a.aborted = true
	cbs := a.onAbort
	a.onAbort = nil
	for _, cb := range cbs {
		cb()
	}
}

func (a *AbortSignal) track(unsubscribe func()) {
	a.onAbort = append(a.onAbort, unsubscribe)
}
