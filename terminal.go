package lazyseq

import (
	"context"
)

// Collect advances s to the end and returns all elements it produced, in order.
// If s fails, Collect returns the elements produced so far, and the error.
// Collect never returns if s never completes.
func (s *Seq[T]) Collect(ctx context.Context) ([]T, error) {
	return Reduce(ctx, s, []T{}, CollectSlice[T]())
}

// On advances s to the end, calling each for every element.
// If s or each fail, On returns the error.
func (s *Seq[T]) On(ctx context.Context, each ConsumerFunc[T]) error {
	index := uint64(0)

	for {
		elem, err := s.Next(ctx)

		switch {
		case isDone(err):
			return nil

		case err != nil:
			return err
		}

		if err := each(ctx, elem, index); err != nil {
			return err
		}

		index++
	}
}

// Consume advances s to the end, discarding all elements.
// It is used to drive sequences for their side effects, for example those of Each.
func (s *Seq[T]) Consume(ctx context.Context) error {
	return s.On(ctx, func(_ context.Context, _ T, _ uint64) error {
		return nil
	})
}

// Reduce calls reduce for each element produced by s, folding it into accumulator acc, returning the final accumulator.
// If s or reduce fail, it returns the accumulator so far, and the error.
func Reduce[T any, A any](ctx context.Context, s *Seq[T], acc A, reduce AccumulatorFunc[T, A]) (A, error) {
	err := s.On(ctx, func(ctx context.Context, elem T, index uint64) error {
		next, err := reduce(ctx, elem, index, acc)
		if err != nil {
			return err
		}

		acc = next

		return nil
	})

	return acc, err
}

// AnyMatch returns true as soon as pred returns true for an element produced by s, that is, an element matches.
// The remaining elements are not requested.
func AnyMatch[T any](ctx context.Context, s *Seq[T], pred PredicateFunc[T]) (bool, error) {
	index := uint64(0)

	for {
		elem, err := s.Next(ctx)

		switch {
		case isDone(err):
			return false, nil

		case err != nil:
			return false, err
		}

		match, err := pred(ctx, elem, index)
		if err != nil {
			return false, err
		}

		if match {
			return true, nil
		}

		index++
	}
}

// AllMatch returns true if pred returns true for all elements produced by s, that is, all elements match.
// It stops as soon as an element does not match.
func AllMatch[T any](ctx context.Context, s *Seq[T], pred PredicateFunc[T]) (bool, error) {
	anyMismatch, err := AnyMatch(ctx, s, func(ctx context.Context, elem T, index uint64) (bool, error) {
		match, err := pred(ctx, elem, index)
		return !match, err
	})
	if err != nil {
		return false, err
	}

	return !anyMismatch, nil
}

// Count returns the number of elements produced by s.
func Count[T any](ctx context.Context, s *Seq[T]) (uint64, error) {
	return Reduce(ctx, s, uint64(0), func(_ context.Context, _ T, _ uint64, acc uint64) (uint64, error) {
		return acc + 1, nil
	})
}
