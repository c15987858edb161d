package lazyseq

import (
	"context"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Function returns the result of applying an operation to elem.
type Function[T any, U any] func(elem T) U

// MapperFunc maps element elem to type U.
// The index is the 0-based index of elem, in the order produced by the upstream sequence.
type MapperFunc[T any, U any] func(ctx context.Context, elem T, index uint64) (U, error)

// PredicateFunc returns true if elem matches a predicate.
// The index is the 0-based index of elem, in the order produced by the upstream sequence.
type PredicateFunc[T any] func(ctx context.Context, elem T, index uint64) (bool, error)

// ConsumerFunc consumes element elem.
// The index is the 0-based index of elem, in the order produced by the upstream sequence.
type ConsumerFunc[T any] func(ctx context.Context, elem T, index uint64) error

// AccumulatorFunc folds element elem into the accumulator acc, returning acc, or a new accumulator.
// The index is the 0-based index of elem, in the order produced by the upstream sequence.
type AccumulatorFunc[T any, A any] func(ctx context.Context, elem T, index uint64, acc A) (A, error)

// CompareFunc returns a negative number if a sorts before b, a positive number if a sorts after b,
// and zero if their order does not matter.
type CompareFunc[T any] func(a T, b T) int

// EqualFunc returns true if a and b are considered equal.
type EqualFunc[T any] func(a T, b T) bool

// FuncMapper returns a mapper that calls mapp for each element.
func FuncMapper[T any, U any](mapp Function[T, U]) MapperFunc[T, U] {
	return func(_ context.Context, elem T, _ uint64) (U, error) {
		return mapp(elem), nil
	}
}

// Identity returns a mapper that returns the same element it receives.
func Identity[T any]() MapperFunc[T, T] {
	return func(_ context.Context, elem T, _ uint64) (T, error) {
		return elem, nil
	}
}

// Ascending returns a comparator that sorts elements in ascending order.
func Ascending[T constraints.Ordered]() CompareFunc[T] {
	return func(a T, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}

// Descending returns a comparator that sorts elements in descending order.
func Descending[T constraints.Ordered]() CompareFunc[T] {
	asc := Ascending[T]()

	return func(a T, b T) int {
		return asc(b, a)
	}
}

// Map returns a sequence that calls mapp for each element produced by s, mapping it to type U.
func Map[T any, U any](s *Seq[T], mapp MapperFunc[T, U]) *Seq[U] {
	src := s.Copy()

	index := uint64(0)

	return derive(s, func(ctx context.Context) (U, error) {
		var zero U

		elem, err := src.Next(ctx)
		if err != nil {
			return zero, err
		}

		outElem, err := mapp(ctx, elem, index)
		if err != nil {
			return zero, err
		}

		index++

		return outElem, nil
	})
}

// FlatMap returns a sequence that calls mapp for each element produced by s, mapping it to an intermediate sequence
// that produces elements of type U.
// The new sequence produces all elements produced by the intermediate sequences, in order.
func FlatMap[T any, U any](s *Seq[T], mapp MapperFunc[T, *Seq[U]]) *Seq[U] {
	src := s.Copy()

	index := uint64(0)

	var inner *Seq[U]

	return derive(s, func(ctx context.Context) (U, error) {
		var zero U

		for {
			if inner != nil {
				elem, err := inner.Next(ctx)
				if !isDone(err) {
					return elem, err
				}

				inner = nil
			}

			elem, err := src.Next(ctx)
			if err != nil {
				return zero, err
			}

			next, err := mapp(ctx, elem, index)
			if err != nil {
				return zero, err
			}

			index++

			inner = next.Copy()
		}
	})
}

// Filter returns a sequence that calls filter for each element produced by s, and only produces elements for which
// filter returns true.
func (s *Seq[T]) Filter(filter PredicateFunc[T]) *Seq[T] {
	src := s.Copy()

	index := uint64(0)

	return derive(s, func(ctx context.Context) (T, error) {
		var zero T

		for {
			elem, err := src.Next(ctx)
			if err != nil {
				return zero, err
			}

			ok, err := filter(ctx, elem, index)
			if err != nil {
				return zero, err
			}

			index++

			if ok {
				return elem, nil
			}
		}
	})
}

// Each returns a sequence that calls each for each element produced by s, in order, and produces the same elements.
// each is called before the element is produced.
func (s *Seq[T]) Each(each ConsumerFunc[T]) *Seq[T] {
	src := s.Copy()

	index := uint64(0)

	return derive(s, func(ctx context.Context) (T, error) {
		elem, err := src.Next(ctx)
		if err != nil {
			return elem, err
		}

		if err := each(ctx, elem, index); err != nil {
			var zero T
			return zero, err
		}

		index++

		return elem, nil
	})
}

// Scan returns a sequence that folds each element produced by s into an accumulator, starting with seed,
// and produces every new accumulator.
func Scan[T any, A any](s *Seq[T], seed A, scan AccumulatorFunc[T, A]) *Seq[A] {
	src := s.Copy()

	index := uint64(0)
	acc := seed

	return derive(s, func(ctx context.Context) (A, error) {
		var zero A

		elem, err := src.Next(ctx)
		if err != nil {
			return zero, err
		}

		next, err := scan(ctx, elem, index, acc)
		if err != nil {
			return zero, err
		}

		index++
		acc = next

		return acc, nil
	})
}

// Sort returns a sequence that consumes all elements from s, sorts them using cmp, and produces them in sorted order.
// The order of elements that compare equal is preserved.
// s is drained on the first pull, even if only the first element is ever requested.
func (s *Seq[T]) Sort(cmp CompareFunc[T]) *Seq[T] {
	src := s.Copy()

	var (
		sorted []T
		index  int
		loaded bool
	)

	return derive(s, func(ctx context.Context) (T, error) {
		var zero T

		if !loaded {
			elems, err := src.Collect(ctx)
			if err != nil {
				return zero, err
			}

			slices.SortStableFunc(elems, cmp)

			sorted = elems
			loaded = true
		}

		if index >= len(sorted) {
			return zero, ErrDone
		}

		elem := sorted[index]
		sorted[index] = zero
		index++

		return elem, nil
	})
}

// Dedupe returns a sequence that produces the elements produced by s, skipping every element equal to
// the element produced before it. If equal is nil, Equal is used.
func (s *Seq[T]) Dedupe(equal EqualFunc[T]) *Seq[T] {
	if equal == nil {
		equal = func(a T, b T) bool {
			return Equal(a, b)
		}
	}

	src := s.Copy()

	var (
		prev    T
		hasPrev bool
	)

	return derive(s, func(ctx context.Context) (T, error) {
		for {
			elem, err := src.Next(ctx)
			if err != nil {
				return elem, err
			}

			if hasPrev && equal(prev, elem) {
				continue
			}

			prev = elem
			hasPrev = true

			return elem, nil
		}
	})
}

// Limit returns a sequence that produces the same elements as s, in order, up to max elements.
func (s *Seq[T]) Limit(max uint64) *Seq[T] {
	src := s.Copy()

	done := uint64(0)

	return derive(s, func(ctx context.Context) (T, error) {
		if done == max {
			var zero T
			return zero, ErrDone
		}

		elem, err := src.Next(ctx)
		if err != nil {
			return elem, err
		}

		done++

		return elem, nil
	})
}

// Skip returns a sequence that produces the same elements as s, in order, skipping the first num elements.
func (s *Seq[T]) Skip(num uint64) *Seq[T] {
	src := s.Copy()

	skipped := uint64(0)

	return derive(s, func(ctx context.Context) (T, error) {
		for skipped < num {
			if _, err := src.Next(ctx); err != nil {
				var zero T
				return zero, err
			}

			skipped++
		}

		return src.Next(ctx)
	})
}
