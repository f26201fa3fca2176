// Package eventbus implements the typed, cancellable domain event bus:
// on/emit with priority ordering, a default-action contract for the
// emitter's own built-in behaviour, and abort-scoped subscriptions for
// component/layer detach.
package eventbus

import "sort"

// Name identifies an event kind, e.g. "block-drag-start", "camera-change".
type Name string

// Handler receives an event's payload. Returning true cancels further
// propagation to lower-priority handlers and suppresses the default
// action, mirroring prevent_default() in the spec's vocabulary.
type Handler func(payload any) (preventDefault bool)

// Unsubscribe detaches a previously registered handler.
type Unsubscribe func()

// Priority orders handlers for the same event name; higher runs first.
// Ties preserve registration order.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityNormal Priority = 50
	PriorityHigh   Priority = 100
)

type subscription struct {
	id       int
	handler  Handler
	priority Priority
	once     bool
}

// Bus is a typed pub/sub dispatcher. The zero value is not usable; use New.
type Bus struct {
	handlers map[Name][]subscription
	nextID   int
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{handlers: make(map[Name][]subscription)}
}

// SubscribeOption configures one On call.
type SubscribeOption func(*subscription, *Bus, Name, *Unsubscribe)

// WithPriority sets the handler's priority (default PriorityNormal).
func WithPriority(p Priority) SubscribeOption {
	return func(s *subscription, _ *Bus, _ Name, _ *Unsubscribe) { s.priority = p }
}

// Once removes the handler after it runs once.
func Once() SubscribeOption {
	return func(s *subscription, _ *Bus, _ Name, _ *Unsubscribe) { s.once = true }
}

// WithAbort ties the subscription's lifetime to signal: calling
// signal.Abort() unsubscribes it, even if it never otherwise fires.
func WithAbort(signal *AbortSignal) SubscribeOption {
	return func(_ *subscription, b *Bus, name Name, unsub *Unsubscribe) {
		signal.track(func() { (*unsub)() })
	}
}

// On registers handler for name and returns a token to detach it.
func (b *Bus) On(name Name, handler Handler, opts ...SubscribeOption) Unsubscribe {
	sub := subscription{id: b.nextID, handler: handler, priority: PriorityNormal}
	b.nextID++

	var unsub Unsubscribe
	unsub = func() { b.remove(name, sub.id) }

	for _, opt := range opts {
		opt(&sub, b, name, &unsub)
	}

	b.handlers[name] = append(b.handlers[name], sub)
	sortHandlers(b.handlers[name])
	return unsub
}

func (b *Bus) remove(name Name, id int) {
	subs := b.handlers[name]
	for i, s := range subs {
		if s.id == id {
			b.handlers[name] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func sortHandlers(subs []subscription) {
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].priority > subs[j].priority })
}

// Emit runs every handler registered for name, highest priority first,
// stopping as soon as one returns true. It reports whether propagation was
// cancelled.
func (b *Bus) Emit(name Name, payload any) (cancelled bool) {
	subs := make([]subscription, len(b.handlers[name]))
	copy(subs, b.handlers[name])

	var onceIDs []int
	for _, s := range subs {
		if s.handler(payload) {
			cancelled = true
		}
		if s.once {
			onceIDs = append(onceIDs, s.id)
		}
		if cancelled {
			break
		}
	}
	for _, id := range onceIDs {
		b.remove(name, id)
	}
	return cancelled
}

// ExecuteDefaultAction runs Emit(name, payload), then calls defaultFn only
// if no handler cancelled — the "emitter supplies execute_default_action"
// contract.
func (b *Bus) ExecuteDefaultAction(name Name, payload any, defaultFn func()) {
	if cancelled := b.Emit(name, payload); !cancelled && defaultFn != nil {
		defaultFn()
	}
}
