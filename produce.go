package lazyseq

import (
	"context"
	"iter"
)

// Produce returns a sequence that produces the elements of the given slices, in order.
func Produce[T any](slices ...[]T) *Seq[T] {
	next := sliceProducer(slices)

	return FromFunc(func(_ context.Context) (T, error) {
		return next()
	})
}

// ProduceChannel returns a sequence that produces the elements received through the given channels, in order.
// Each channel is read until it is closed. A receive that has started is never abandoned,
// even if the reader that requested it gives up.
func ProduceChannel[T any](channels ...<-chan T) *Seq[T] {
	chIdx := 0

	return FromFunc(func(_ context.Context) (T, error) {
		for chIdx < len(channels) {
			if elem, ok := <-channels[chIdx]; ok {
				return elem, nil
			}

			chIdx++
		}

		var zero T

		return zero, ErrDone
	})
}

// FromIter returns a sequence that produces the elements of it.
// it is started on the first pull, and stopped once it is exhausted.
func FromIter[T any](it iter.Seq[T]) *Seq[T] {
	next := iterProducer(it)

	return FromFunc(func(_ context.Context) (T, error) {
		return next()
	})
}

func sliceProducer[T any](slices [][]T) SyncProducerFunc[T] {
	sliceIdx := 0
	elemIdx := 0

	return func() (T, error) {
		for sliceIdx < len(slices) {
			if elemIdx < len(slices[sliceIdx]) {
				elem := slices[sliceIdx][elemIdx]
				elemIdx++

				return elem, nil
			}

			sliceIdx++
			elemIdx = 0
		}

		var zero T

		return zero, ErrDone
	}
}

func iterProducer[T any](it iter.Seq[T]) SyncProducerFunc[T] {
	var (
		next func() (T, bool)
		stop func()
	)

	return func() (T, error) {
		if next == nil {
			next, stop = iter.Pull(it)
		}

		elem, ok := next()
		if !ok {
			stop()
			return elem, ErrDone
		}

		return elem, nil
	}
}
