package libevent

type (
	// Emitter is the behavior of a dispatcher, for hosts that want to depend
	// on the operations rather than the concrete type, or to disable event
	// emission entirely via NewNoopEmitter.
	Emitter[K comparable, V any] interface {
		// Subscribe registers a new listener for the given event.
		Subscribe(event K, fn Listener[V]) (Subscription, error)

		// Once registers a listener removed right after its first invocation.
		Once(event K, fn Listener[V]) (Subscription, error)

		// Emit invokes all listeners registered for the given event
		// synchronously, in registration order, passing payload to each.
		Emit(event K, payload V) error

		// RemoveListener removes every registration of fn for the given event.
		RemoveListener(event K, fn Listener[V])

		// RemoveAllListeners removes every listener for the given event.
		RemoveAllListeners(event K)

		// ListenerCount returns how many registrations the event has.
		ListenerCount(event K) int

		// EventNames returns the events with at least one listener.
		EventNames() []K

		// Len returns the number of events with at least one listener.
		Len() int

		// Close removes all listeners for all events.
		Close()
	}

	noopEmitter[K comparable, V any] struct{}
)

// NewNoopEmitter returns an Emitter that accepts every call and does nothing.
func NewNoopEmitter[K comparable, V any]() Emitter[K, V] {
	return noopEmitter[K, V]{}
}

func (noopEmitter[K, V]) Subscribe(K, Listener[V]) (Subscription, error) {
	return noopSubscription{}, nil
}

func (noopEmitter[K, V]) Once(K, Listener[V]) (Subscription, error) {
	return noopSubscription{}, nil
}

func (noopEmitter[K, V]) Emit(K, V) error { return nil }

func (noopEmitter[K, V]) RemoveListener(K, Listener[V]) {}

func (noopEmitter[K, V]) RemoveAllListeners(K) {}

func (noopEmitter[K, V]) ListenerCount(K) int { return 0 }

func (noopEmitter[K, V]) EventNames() []K { return nil }

func (noopEmitter[K, V]) Len() int { return 0 }

func (noopEmitter[K, V]) Close() {}
