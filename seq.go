package lazyseq

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"
)

// ProducerFunc returns the next element of a sequence, or ErrDone if there are no more elements.
// It may block. A sequence calls its producer at most once per position, and never concurrently.
type ProducerFunc[T any] func(ctx context.Context) (T, error)

// Producer produces the elements of a sequence.
type Producer[T any] interface {
	// Next returns the next element, or ErrDone if there are no more elements.
	Next(ctx context.Context) (T, error)
}

// Source is implemented by Seq and SyncSeq.
type Source[T any] interface {
	// Async returns a sequence that produces the same elements as the source.
	Async() *Seq[T]
}

// Seq is a cursor over a lazy, multicast sequence of elements.
//
// Calls to Next on the same Seq are serialized. Use Copy to obtain independent cursors;
// all copies share the elements already produced, and the producer is never asked twice for the
// same position.
type Seq[T any] struct {
	hist *history[T]
	pos  atomic.Pointer[node[T]]

	// mu serializes Next.
	mu sync.Mutex
}

// FromFunc returns a sequence that produces the elements returned by prod.
func FromFunc[T any](prod ProducerFunc[T]) *Seq[T] {
	return newSeq(&history[T]{pull: prod, detach: true}, &node[T]{kind: headNode})
}

// From returns a sequence that produces the elements returned by prod.
func From[T any](prod Producer[T]) *Seq[T] {
	return FromFunc(prod.Next)
}

// Empty returns a sequence that produces no elements.
func Empty[T any]() *Seq[T] {
	return FromFunc(func(_ context.Context) (T, error) {
		var zero T
		return zero, ErrDone
	})
}

func newSeq[T any](hist *history[T], pos *node[T]) *Seq[T] {
	s := &Seq[T]{hist: hist}
	s.pos.Store(pos)

	return s
}

// derive returns a sequence produced by pull, running pull inline if s does.
func derive[T any, U any](s *Seq[T], pull ProducerFunc[U]) *Seq[U] {
	return newSeq(&history[U]{pull: pull, detach: s.hist.detach}, &node[U]{kind: headNode})
}

// Next advances the cursor and returns the next element.
// It returns ErrDone if there are no more elements.
// If ctx is done before the element is available, Next returns ctx's error and the cursor does not move.
func (s *Seq[T]) Next(ctx context.Context) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.hist.advance(ctx, s.pos.Load())
	if err != nil {
		var zero T
		return zero, err
	}

	s.pos.Store(next)

	return next.read()
}

// Copy returns a new cursor at the same position as s.
// The new cursor produces the same elements as s from this point on, sharing everything produced by either of them.
func (s *Seq[T]) Copy() *Seq[T] {
	return newSeq(s.hist, s.pos.Load())
}

// Async returns s.
func (s *Seq[T]) Async() *Seq[T] {
	return s
}

// All returns an iterator over the remaining elements of s.
// Iteration stops after the first error, which is yielded together with the zero value.
// Completion is not yielded.
func (s *Seq[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			elem, err := s.Next(ctx)

			switch {
			case isDone(err):
				return

			case err != nil:
				yield(elem, err)
				return
			}

			if !yield(elem, nil) {
				return
			}
		}
	}
}

