package lazyseq

import (
	"context"
	"sync"
	"sync/atomic"
)

type nodeKind uint8

const (
	// headNode is the position before the first element of a history.
	headNode nodeKind = iota
	valueNode
	doneNode
	errorNode
)

// node is one position in the history of a sequence.
// Apart from next, a node never changes after it has been created.
type node[T any] struct {
	kind  nodeKind
	value T
	err   error

	// reported is set once err has been returned to a cursor.
	reported atomic.Bool

	mu sync.Mutex
	// next is created by the first cursor advancing past this node, and shared by all others.
	next *link[T]
}

// link is the forward reference of a node. It is settled exactly once.
type link[T any] struct {
	settled chan struct{}
	node    *node[T]
}

// history is the state shared by all cursors of one sequence.
type history[T any] struct {
	pull ProducerFunc[T]

	// detach runs pull in its own goroutine, so that a cursor giving up on its context
	// does not abandon the producer call other cursors are waiting for.
	detach bool
}

func newLink[T any]() *link[T] {
	return &link[T]{
		settled: make(chan struct{}),
	}
}

func (l *link[T]) settle(n *node[T]) {
	l.node = n
	close(l.settled)
}

// terminal returns true if no position can follow n.
func (n *node[T]) terminal() bool {
	return n.kind == doneNode || n.kind == errorNode
}

// read returns the element held by n, ErrDone, or the error held by n if no cursor has seen it yet.
func (n *node[T]) read() (T, error) {
	var zero T

	switch n.kind {
	case valueNode:
		return n.value, nil

	case errorNode:
		if n.reported.CompareAndSwap(false, true) {
			return zero, n.err
		}

		return zero, ErrDone

	default:
		return zero, ErrDone
	}
}

// advance returns the node following n, asking the producer for it if no cursor has done so yet.
// If ctx is done before the node is settled, advance returns ctx's error and the caller must stay at n.
func (h *history[T]) advance(ctx context.Context, n *node[T]) (*node[T], error) {
	if n.terminal() {
		return n, nil
	}

	n.mu.Lock()

	l := n.next
	claimed := l == nil

	if claimed {
		l = newLink[T]()
		n.next = l
	}

	n.mu.Unlock()

	if claimed {
		if h.detach {
			go h.materialize(context.WithoutCancel(ctx), l)
		} else {
			h.materialize(ctx, l)
		}
	}

	select {
	case <-l.settled:
		return l.node, nil
	default:
	}

	select {
	case <-l.settled:
		return l.node, nil

	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

func (h *history[T]) materialize(ctx context.Context, l *link[T]) {
	elem, err := h.pull(ctx)

	switch {
	case err == nil:
		l.settle(&node[T]{kind: valueNode, value: elem})

	case isDone(err):
		l.settle(&node[T]{kind: doneNode})

	default:
		l.settle(&node[T]{kind: errorNode, err: err})
	}
}
