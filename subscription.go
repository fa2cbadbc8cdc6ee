package libevent

type (
	// Subscription is the handle returned by Subscribe and Once. Holding it is
	// the only thing needed to undo a registration, which sidesteps having to
	// keep the original function value around for removal.
	Subscription interface {
		// Unsubscribe removes the registration this handle stands for.
		// Calling it more than once, or after the listener was already
		// removed, is a no-op. It is safe to call from inside the listener
		// itself while a dispatch is running: the listeners snapshotted for
		// that dispatch still fire.
		Unsubscribe()
	}

	subscription[K comparable, V any] struct {
		dispatcher *Dispatcher[K, V]
		event      K
		id         uint64
	}

	noopSubscription struct{}
)

func (s *subscription[K, V]) Unsubscribe() {
	s.dispatcher.removeByID(s.event, s.id)
}

func (noopSubscription) Unsubscribe() {}
