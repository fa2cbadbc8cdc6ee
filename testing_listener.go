package libevent

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockListener[V any] struct {
	mock.Mock
}

func (m *mockListener[V]) Handle(payload V) {
	m.Called(payload)
}

// recordingListener accumulates every payload it receives, in order. tap, if
// set, runs on the dispatching goroutine before the payload is recorded.
type recordingListener[V any] struct {
	mu       sync.Mutex
	payloads []V

	tap func(V)
}

func (r *recordingListener[V]) Handle(payload V) {
	if r.tap != nil {
		r.tap(payload)
	}

	r.mu.Lock()
	r.payloads = append(r.payloads, payload)
	r.mu.Unlock()
}

func (r *recordingListener[V]) Payloads() []V {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]V, len(r.payloads))
	copy(out, r.payloads)
	return out
}

func (r *recordingListener[V]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.payloads)
}
