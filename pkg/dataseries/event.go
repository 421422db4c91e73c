package dataseries

import (
	"time"
)

// Handler is invoked with the date time and value of a newly appended entry
type Handler[T any] func(dateTime time.Time, value T)

// Event is a synchronous observer list. Handlers run in-line, in subscription
// order, and Emit returns only after every handler has returned.
type Event[T any] struct {
	handlers []Handler[T]
}

// Subscribe registers a handler. Nil handlers are ignored.
func (e *Event[T]) Subscribe(handler Handler[T]) {
	if handler == nil {
		return
	}
	e.handlers = append(e.handlers, handler)
}

// Emit calls every subscribed handler with the given value
func (e *Event[T]) Emit(dateTime time.Time, value T) {
	for _, handler := range e.handlers {
		handler(dateTime, value)
	}
}

// Subscribers returns the number of registered handlers
func (e *Event[T]) Subscribers() int {
	return len(e.handlers)
}
