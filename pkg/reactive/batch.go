package reactive

// notifier is any reactive cell that can queue itself for a deferred
// listener flush; Signal[T] implements it via fireListeners.
type notifier interface {
	fireListeners()
}

var (
	batchDepth int
	pending    []notifier
	pendingSet = map[notifier]bool{}
)

// notify either fires a signal's listeners immediately (outside a batch) or
// queues it for the outermost Batch's flush, deduplicating so a signal
// written multiple times in one batch notifies exactly once.
func notify(n notifier) {
	if batchDepth > 0 {
		if !pendingSet[n] {
			pendingSet[n] = true
			pending = append(pending, n)
		}
		return
	}
	n.fireListeners()
}

// Batch defers listener notification until fn returns. Nested Batch calls
// only flush when the outermost one exits. Every signal changed during the
// batch fires its listeners exactly once, in the order it was first written,
// with its final value.
func Batch(fn func()) {
	batchDepth++
	defer func() {
		batchDepth--
		if batchDepth == 0 {
			flush()
		}
	}()
	fn()
}

func flush() {
	queue := pending
	pending = nil
	pendingSet = map[notifier]bool{}
	for _, n := range queue {
		n.fireListeners()
	}
}
