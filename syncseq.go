package lazyseq

import (
	"context"
	"iter"
)

// SyncProducerFunc returns the next element of a sequence, or ErrDone if there are no more elements.
// It must not block.
type SyncProducerFunc[T any] func() (T, error)

// SyncMapperFunc maps element elem to type U.
// The index is the 0-based index of elem, in the order produced by the upstream sequence.
type SyncMapperFunc[T any, U any] func(elem T, index uint64) (U, error)

// SyncPredicateFunc returns true if elem matches a predicate.
type SyncPredicateFunc[T any] func(elem T, index uint64) (bool, error)

// SyncConsumerFunc consumes element elem.
type SyncConsumerFunc[T any] func(elem T, index uint64) error

// SyncAccumulatorFunc folds element elem into the accumulator acc, returning acc, or a new accumulator.
type SyncAccumulatorFunc[T any, A any] func(elem T, index uint64, acc A) (A, error)

// SyncSeq is a cursor over a lazy, multicast sequence whose elements are available without blocking.
// It supports the same operations as Seq; producers and functions are called inline by the cursor that
// first needs their result.
type SyncSeq[T any] struct {
	seq *Seq[T]
}

// SyncGroup is a run of consecutive elements sharing the same key.
type SyncGroup[K any, T any] struct {
	// Key is the key shared by all elements of the group.
	Key K

	// Items produces the elements of the group. It completes when the key changes.
	Items *SyncSeq[T]
}

// SyncFromFunc returns a sequence that produces the elements returned by prod.
func SyncFromFunc[T any](prod SyncProducerFunc[T]) *SyncSeq[T] {
	hist := &history[T]{
		pull: func(_ context.Context) (T, error) {
			return prod()
		},
	}

	return &SyncSeq[T]{seq: newSeq(hist, &node[T]{kind: headNode})}
}

// SyncProduce returns a sequence that produces the elements of the given slices, in order.
func SyncProduce[T any](slices ...[]T) *SyncSeq[T] {
	return SyncFromFunc(sliceProducer(slices))
}

// SyncFromIter returns a sequence that produces the elements of it.
func SyncFromIter[T any](it iter.Seq[T]) *SyncSeq[T] {
	return SyncFromFunc(iterProducer(it))
}

// Next advances the cursor and returns the next element.
// It returns ErrDone if there are no more elements.
func (s *SyncSeq[T]) Next() (T, error) {
	return s.seq.Next(context.Background())
}

// Copy returns a new cursor at the same position as s.
func (s *SyncSeq[T]) Copy() *SyncSeq[T] {
	return &SyncSeq[T]{seq: s.seq.Copy()}
}

// All returns an iterator over the remaining elements of s.
// Iteration stops after the first error, which is yielded together with the zero value.
func (s *SyncSeq[T]) All() iter.Seq2[T, error] {
	return s.seq.All(context.Background())
}

// Async returns a sequence that produces the remaining elements of s.
// s itself does not advance.
func (s *SyncSeq[T]) Async() *Seq[T] {
	src := s.Copy()

	return FromFunc(func(_ context.Context) (T, error) {
		return src.Next()
	})
}

// SyncMap returns a sequence that calls mapp for each element produced by s, mapping it to type U.
func SyncMap[T any, U any](s *SyncSeq[T], mapp SyncMapperFunc[T, U]) *SyncSeq[U] {
	return &SyncSeq[U]{seq: Map(s.seq, mapp.async())}
}

// SyncScan returns a sequence that folds each element produced by s into an accumulator, starting with seed,
// and produces every new accumulator.
func SyncScan[T any, A any](s *SyncSeq[T], seed A, scan SyncAccumulatorFunc[T, A]) *SyncSeq[A] {
	return &SyncSeq[A]{seq: Scan(s.seq, seed, scan.async())}
}

// SyncGroupBy returns a sequence that partitions the elements produced by s into runs of consecutive elements
// for which key returns equal keys. See GroupBy.
func SyncGroupBy[T any, K any](s *SyncSeq[T], key SyncMapperFunc[T, K]) *SyncSeq[SyncGroup[K, T]] {
	groups := Map(GroupBy(s.seq, key.async()), func(_ context.Context, grp Group[K, T], _ uint64) (SyncGroup[K, T], error) {
		return SyncGroup[K, T]{Key: grp.Key, Items: &SyncSeq[T]{seq: grp.Items}}, nil
	})

	return &SyncSeq[SyncGroup[K, T]]{seq: groups}
}

// SyncBatch returns a sequence that produces the elements produced by s in slices of size elements.
func SyncBatch[T any](s *SyncSeq[T], size uint64) *SyncSeq[[]T] {
	return &SyncSeq[[]T]{seq: Batch(s.seq, size)}
}

// SyncReduce calls reduce for each element produced by s, folding it into accumulator acc, returning the final accumulator.
func SyncReduce[T any, A any](s *SyncSeq[T], acc A, reduce SyncAccumulatorFunc[T, A]) (A, error) {
	return Reduce(context.Background(), s.seq, acc, reduce.async())
}

// Filter returns a sequence that only produces the elements of s for which filter returns true.
func (s *SyncSeq[T]) Filter(filter SyncPredicateFunc[T]) *SyncSeq[T] {
	return &SyncSeq[T]{seq: s.seq.Filter(filter.async())}
}

// Each returns a sequence that calls each for each element produced by s, and produces the same elements.
func (s *SyncSeq[T]) Each(each SyncConsumerFunc[T]) *SyncSeq[T] {
	return &SyncSeq[T]{seq: s.seq.Each(each.async())}
}

// Sort returns a sequence that produces the elements of s sorted using cmp. See Seq.Sort.
func (s *SyncSeq[T]) Sort(cmp CompareFunc[T]) *SyncSeq[T] {
	return &SyncSeq[T]{seq: s.seq.Sort(cmp)}
}

// Dedupe returns a sequence that skips every element equal to the element produced before it.
// If equal is nil, Equal is used.
func (s *SyncSeq[T]) Dedupe(equal EqualFunc[T]) *SyncSeq[T] {
	return &SyncSeq[T]{seq: s.seq.Dedupe(equal)}
}

// Limit returns a sequence that produces the same elements as s, up to max elements.
func (s *SyncSeq[T]) Limit(max uint64) *SyncSeq[T] {
	return &SyncSeq[T]{seq: s.seq.Limit(max)}
}

// Skip returns a sequence that produces the same elements as s, skipping the first num elements.
func (s *SyncSeq[T]) Skip(num uint64) *SyncSeq[T] {
	return &SyncSeq[T]{seq: s.seq.Skip(num)}
}

// Collect advances s to the end and returns all elements it produced, in order.
func (s *SyncSeq[T]) Collect() ([]T, error) {
	return s.seq.Collect(context.Background())
}

// On advances s to the end, calling each for every element.
func (s *SyncSeq[T]) On(each SyncConsumerFunc[T]) error {
	return s.seq.On(context.Background(), each.async())
}

// Consume advances s to the end, discarding all elements.
func (s *SyncSeq[T]) Consume() error {
	return s.seq.Consume(context.Background())
}

func (f SyncMapperFunc[T, U]) async() MapperFunc[T, U] {
	return func(_ context.Context, elem T, index uint64) (U, error) {
		return f(elem, index)
	}
}

func (f SyncPredicateFunc[T]) async() PredicateFunc[T] {
	return func(_ context.Context, elem T, index uint64) (bool, error) {
		return f(elem, index)
	}
}

func (f SyncConsumerFunc[T]) async() ConsumerFunc[T] {
	return func(_ context.Context, elem T, index uint64) error {
		return f(elem, index)
	}
}

func (f SyncAccumulatorFunc[T, A]) async() AccumulatorFunc[T, A] {
	return func(_ context.Context, elem T, index uint64, acc A) (A, error) {
		return f(elem, index, acc)
	}
}
