package lazyseq

import (
	"context"
	"sync"
)

// Writer is the write end of a channel created by NewChannel.
//
// Writes are never blocked: elements pushed ahead of the reader are buffered without limit.
// Once the channel has been closed or failed, further writes are dropped.
type Writer[T any] struct {
	mu sync.Mutex

	// pending is the link that the next write settles. It is nil once the channel has been terminated.
	pending *link[T]
}

// NewChannel returns the write end of a channel, and a sequence that produces the elements written to it,
// in the order they were pushed.
func NewChannel[T any]() (*Writer[T], *Seq[T]) {
	pending := newLink[T]()

	head := &node[T]{kind: headNode, next: pending}

	hist := &history[T]{
		pull: func(_ context.Context) (T, error) {
			panic("channel history has no producer")
		},
		detach: true,
	}

	return &Writer[T]{pending: pending}, newSeq(hist, head)
}

// Push writes elem to the channel.
// It returns false if the channel has already been terminated, in which case elem is dropped.
func (w *Writer[T]) Push(elem T) bool {
	next := newLink[T]()

	return w.settle(&node[T]{kind: valueNode, value: elem, next: next}, next, "push")
}

// Close terminates the channel. Readers observe ErrDone after all elements pushed before.
// It returns false if the channel has already been terminated.
func (w *Writer[T]) Close() bool {
	return w.settle(&node[T]{kind: doneNode}, nil, "close")
}

// Fail terminates the channel with err. The first reader to reach the end of the channel observes err,
// all others observe ErrDone.
// It returns false if the channel has already been terminated.
func (w *Writer[T]) Fail(err error) bool {
	return w.settle(&node[T]{kind: errorNode, err: err}, nil, "fail")
}

func (w *Writer[T]) settle(n *node[T], next *link[T], op string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		logger().Debug("dropping write to terminated channel", "op", op)
		return false
	}

	w.pending.settle(n)
	w.pending = next

	return true
}
