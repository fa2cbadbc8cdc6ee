package libevent

import (
	"errors"
	"reflect"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

type Listener[V any] func(V)

// listenerEntry is one registration. Registering the same function twice
// produces two independent entries with distinct ids.
type listenerEntry[V any] struct {
	id    uint64
	fn    Listener[V]
	ptr   uintptr
	once  bool
	fired int32
}

// Dispatcher is an in-process event dispatcher. It maps events (of type K) to
// ordered lists of listeners, which are plain callbacks (of type V payload).
// Listeners fire synchronously, on the emitting goroutine, in registration
// order. All methods are safe for concurrent use.
type Dispatcher[K comparable, V any] struct {
	listeners map[K][]*listenerEntry[V]
	lock      sync.RWMutex
	nextID    uint64

	// isolate switches the failure policy of Emit: recover each listener's
	// panic and keep dispatching, instead of letting it unwind.
	isolate bool
	logger  logger
}

// New creates a new Dispatcher and returns a pointer to it. A panicking
// listener aborts the emit that invoked it; see NewIsolated for the
// recovering variant.
func New[K comparable, V any]() *Dispatcher[K, V] {
	return &Dispatcher[K, V]{
		listeners: make(map[K][]*listenerEntry[V]),
		logger:    NewNoopLogger(),
	}
}

// NewIsolated creates a Dispatcher whose Emit recovers each listener's panic,
// logs it, and keeps invoking the remaining listeners. Recovered panics are
// reported by Emit as ErrListenerPanic values after the whole dispatch ran.
func NewIsolated[K comparable, V any](log logger) *Dispatcher[K, V] {
	if log == nil {
		log = NewNoopLogger()
	}
	return &Dispatcher[K, V]{
		listeners: make(map[K][]*listenerEntry[V]),
		isolate:   true,
		logger:    log,
	}
}

// Subscribe registers a new listener for the given event, appending it after
// any listener already registered. The returned Subscription removes exactly
// that registration. The zero value of K is rejected, as is a nil listener.
func (d *Dispatcher[K, V]) Subscribe(event K, fn Listener[V]) (Subscription, error) {
	return d.subscribe(event, fn, false)
}

// Once registers a listener that is removed right after its first invocation.
// Even under concurrent emits of the same event it fires at most once.
func (d *Dispatcher[K, V]) Once(event K, fn Listener[V]) (Subscription, error) {
	return d.subscribe(event, fn, true)
}

func (d *Dispatcher[K, V]) subscribe(event K, fn Listener[V], once bool) (Subscription, error) {
	var zero K
	if event == zero {
		return nil, ErrEmptyEvent
	}
	if fn == nil {
		return nil, ErrNilListener
	}

	entry := &listenerEntry[V]{
		id:   atomic.AddUint64(&d.nextID, 1),
		fn:   fn,
		ptr:  reflect.ValueOf(fn).Pointer(),
		once: once,
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	d.listeners[event] = append(d.listeners[event], entry)

	return &subscription[K, V]{dispatcher: d, event: event, id: entry.id}, nil
}

// Emit invokes every listener currently registered for the given event, in
// registration order, passing payload to each. Dispatch iterates over a
// snapshot of the listener list taken when Emit starts, so listeners added or
// removed during the dispatch only affect future emits. Emitting an event
// nobody subscribed to is a no-op.
func (d *Dispatcher[K, V]) Emit(event K, payload V) error {
	var zero K
	if event == zero {
		return ErrEmptyEvent
	}

	d.lock.RLock()
	entries, found := d.listeners[event]
	var snapshot []*listenerEntry[V]
	if found {
		snapshot = make([]*listenerEntry[V], len(entries))
		copy(snapshot, entries)
	}
	d.lock.RUnlock()

	var errs []error

	for _, entry := range snapshot {
		if entry.once {
			if !atomic.CompareAndSwapInt32(&entry.fired, 0, 1) {
				continue
			}
			d.removeByID(event, entry.id)
		}

		if err := d.invoke(event, entry, payload); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// invoke runs a single listener. Under the isolated policy a panic is turned
// into an ErrListenerPanic instead of unwinding through Emit.
func (d *Dispatcher[K, V]) invoke(event K, entry *listenerEntry[V], payload V) (err error) {
	if d.isolate {
		defer func() {
			if r := recover(); r != nil {
				err = newErrListenerPanic(event, r, debug.Stack())
				d.logger.WithField("event", event).Errorf("listener panicked: %v", r)
			}
		}()
	}

	entry.fn(payload)

	return nil
}

// RemoveListener removes every registration of fn for the given event,
// comparing by function code pointer. If fn was registered N times, all N
// registrations are removed. The comparison cuts both ways: a closure built
// at a different call site never matches, leaving the registered listener
// firing, while method values share one code pointer per method regardless of
// receiver, so a method value bound to a different receiver removes the
// registered one. Subscriptions returned by Subscribe have neither hazard and
// are the recommended removal path.
func (d *Dispatcher[K, V]) RemoveListener(event K, fn Listener[V]) {
	if fn == nil {
		return
	}

	ptr := reflect.ValueOf(fn).Pointer()

	d.lock.Lock()
	defer d.lock.Unlock()

	d.removeLocked(event, func(entry *listenerEntry[V]) bool {
		return entry.ptr == ptr
	})
}

// RemoveAllListeners removes every listener registered for the given event.
func (d *Dispatcher[K, V]) RemoveAllListeners(event K) {
	d.lock.Lock()
	defer d.lock.Unlock()

	delete(d.listeners, event)
}

func (d *Dispatcher[K, V]) removeByID(event K, id uint64) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.removeLocked(event, func(entry *listenerEntry[V]) bool {
		return entry.id == id
	})
}

// removeLocked filters out every entry matching the predicate. An event whose
// last listener is removed disappears from the registry entirely: a present
// key always holds a non-empty list. Filtering into a fresh slice keeps the
// old backing array from pinning removed entries and their closed-over state.
func (d *Dispatcher[K, V]) removeLocked(event K, match func(*listenerEntry[V]) bool) {
	entries, found := d.listeners[event]
	if !found {
		return
	}

	kept := make([]*listenerEntry[V], 0, len(entries))
	for _, entry := range entries {
		if !match(entry) {
			kept = append(kept, entry)
		}
	}

	if len(kept) == 0 {
		delete(d.listeners, event)
		return
	}

	d.listeners[event] = kept
}

// ListenerCount returns how many registrations the given event currently has.
func (d *Dispatcher[K, V]) ListenerCount(event K) int {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return len(d.listeners[event])
}

// EventNames returns the events that currently have at least one listener.
func (d *Dispatcher[K, V]) EventNames() []K {
	d.lock.RLock()
	defer d.lock.RUnlock()

	names := make([]K, 0, len(d.listeners))
	for event := range d.listeners {
		names = append(names, event)
	}

	return names
}

// Len returns the number of events that currently have at least one listener.
func (d *Dispatcher[K, V]) Len() int {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return len(d.listeners)
}

// Close removes all listeners for all events to prevent memory leaks. The
// dispatcher stays usable afterwards.
func (d *Dispatcher[K, V]) Close() {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.listeners = make(map[K][]*listenerEntry[V])
}
