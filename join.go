package lazyseq

import (
	"context"
)

// Joined is an element produced by a sequence created by Join.
type Joined[T any] struct {
	// Value is the element produced by the source.
	Value T

	// Index is the position of the source in the arguments given to Join.
	Index int
}

type joinResult[T any] struct {
	index int
	elem  T
	err   error
}

// joiner keeps exactly one request in flight for every open source.
type joiner[T any] struct {
	cursors []*Seq[T]

	// results is buffered for one result per source, so requests never block on delivery,
	// even after the join has been abandoned.
	results chan joinResult[T]

	open    int
	started bool
}

// Join returns a sequence that produces the elements of all sources in the order they become available.
// The elements of each source are produced in order; there is no ordering between sources.
//
// The new sequence completes once all sources have completed. If any source fails, the new sequence
// fails immediately with a *JoinError, and the requests still in flight for the other sources are abandoned.
// Sources are read through their own cursors, so the given sequences do not advance.
func Join[T any](sources ...Source[T]) *Seq[Joined[T]] {
	j := &joiner[T]{
		cursors: make([]*Seq[T], len(sources)),
		results: make(chan joinResult[T], len(sources)),
	}

	for i, src := range sources {
		j.cursors[i] = src.Async().Copy()
	}

	return FromFunc(j.next)
}

func (j *joiner[T]) request(index int) {
	go func() {
		elem, err := j.cursors[index].Next(context.Background())

		j.results <- joinResult[T]{
			index: index,
			elem:  elem,
			err:   err,
		}
	}()
}

func (j *joiner[T]) next(ctx context.Context) (Joined[T], error) {
	if !j.started {
		j.started = true
		j.open = len(j.cursors)

		for i := range j.cursors {
			j.request(i)
		}
	}

	for j.open > 0 {
		select {
		case res := <-j.results:
			switch {
			case isDone(res.err):
				j.open--

			case res.err != nil:
				logger().Debug("join aborted", "source", res.index, "error", res.err, "abandoned", j.open-1)

				return Joined[T]{}, &JoinError{
					Index: res.index,
					Err:   res.err,
				}

			default:
				j.request(res.index)

				return Joined[T]{
					Value: res.elem,
					Index: res.index,
				}, nil
			}

		case <-ctx.Done():
			return Joined[T]{}, context.Cause(ctx)
		}
	}

	return Joined[T]{}, ErrDone
}
