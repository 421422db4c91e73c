package indicator

// EventWindow is a fixed-capacity FIFO buffer of the most recent values.
// Once full, every push evicts the oldest value.
type EventWindow[T any] struct {
	buf   []T // ring buffer
	start int // index of the oldest value
	size  int
}

// NewEventWindow creates a window holding at most windowSize values
func NewEventWindow[T any](windowSize int) (*EventWindow[T], error) {
	if windowSize < 1 {
		return nil, invalidPeriod(windowSize)
	}
	return &EventWindow[T]{
		buf: make([]T, windowSize),
	}, nil
}

// PushBack appends a value, evicting the oldest one when the window is full
func (w *EventWindow[T]) PushBack(value T) {
	if w.size < len(w.buf) {
		w.buf[(w.start+w.size)%len(w.buf)] = value
		w.size++
		return
	}
	w.buf[w.start] = value
	w.start = (w.start + 1) % len(w.buf)
}

// Values returns the buffered values, oldest first
func (w *EventWindow[T]) Values() []T {
	values := make([]T, w.size)
	for i := 0; i < w.size; i++ {
		values[i] = w.buf[(w.start+i)%len(w.buf)]
	}
	return values
}

// Len returns the number of buffered values
func (w *EventWindow[T]) Len() int {
	return w.size
}

// WindowSize returns the capacity
func (w *EventWindow[T]) WindowSize() int {
	return len(w.buf)
}

// WindowFull reports whether the window holds WindowSize values
func (w *EventWindow[T]) WindowFull() bool {
	return w.size == len(w.buf)
}

// Reset empties the window
func (w *EventWindow[T]) Reset() {
	var zero T
	for i := range w.buf {
		w.buf[i] = zero
	}
	w.start = 0
	w.size = 0
}
