package libevent

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmptyEvent  = errors.New("event is the zero value")
	ErrNilListener = errors.New("listener is nil")
)

// ErrListenerPanic reports a panic recovered from a listener by a dispatcher
// running the isolated failure policy. It carries the event being dispatched,
// the recovered value and the stack captured at recovery time.
type ErrListenerPanic struct {
	event     any
	recovered any
	stack     []byte
}

func (e *ErrListenerPanic) Error() string {
	return fmt.Sprintf("listener panicked on event %v: %v", e.event, e.recovered)
}

// Unwrap exposes the recovered value when the listener panicked with an error.
func (e *ErrListenerPanic) Unwrap() error {
	if err, ok := e.recovered.(error); ok {
		return err
	}
	return nil
}

// Recovered returns the value the listener panicked with.
func (e *ErrListenerPanic) Recovered() any { return e.recovered }

// Stack returns the goroutine stack captured when the panic was recovered.
func (e *ErrListenerPanic) Stack() []byte { return e.stack }

func newErrListenerPanic(event, recovered any, stack []byte) *ErrListenerPanic {
	return &ErrListenerPanic{
		event:     event,
		recovered: recovered,
		stack:     stack,
	}
}
