package lazyseq

import (
	"context"
	"sync"
)

// Group is a run of consecutive elements sharing the same key.
type Group[K any, T any] struct {
	// Key is the key shared by all elements of the group.
	Key K

	// Items produces the elements of the group. It completes when the key changes.
	// Items does not need to be drained: the sequence of groups skips whatever was left.
	Items *Seq[T]
}

// keyed is an element together with its key.
type keyed[K any, T any] struct {
	key  K
	elem T
}

// groupCursor is the single source cursor shared by a sequence of groups and by the Items of every group.
// Only the Items of the current generation may read from it.
type groupCursor[K any, T any] struct {
	mu sync.Mutex

	src   *Seq[T]
	key   MapperFunc[T, K]
	index uint64

	// gen is the generation of the current group, 0 before the first group.
	gen     uint64
	current K

	// lookahead is the first element of the next group, once it has been read.
	lookahead *keyed[K, T]

	// closed is set once the source or the key function failed or completed.
	// The failure is reported by the read that hit it; every later read returns ErrDone.
	closed bool
}

// GroupBy returns a sequence that partitions the elements produced by s into runs of consecutive elements
// for which key returns equal keys, as determined by Equal.
// Reading the next group skips the remaining elements of the previous group.
func GroupBy[T any, K any](s *Seq[T], key MapperFunc[T, K]) *Seq[Group[K, T]] {
	cur := &groupCursor[K, T]{
		src: s.Copy(),
		key: key,
	}

	return derive(s, func(ctx context.Context) (Group[K, T], error) {
		first, gen, err := cur.nextGroup(ctx)
		if err != nil {
			return Group[K, T]{}, err
		}

		return Group[K, T]{
			Key:   first.key,
			Items: cur.items(s.hist.detach, first.elem, gen),
		}, nil
	})
}

// Batch returns a sequence that produces the elements produced by s in slices of size elements.
// The last slice may be shorter.
func Batch[T any](s *Seq[T], size uint64) *Seq[[]T] {
	if size == 0 {
		return derive(s, func(_ context.Context) ([]T, error) {
			return nil, ErrInvalidSize
		})
	}

	groups := GroupBy(s, func(_ context.Context, _ T, index uint64) (uint64, error) {
		return index / size, nil
	})

	return Map(groups, func(ctx context.Context, grp Group[uint64, T], _ uint64) ([]T, error) {
		return grp.Items.Collect(ctx)
	})
}

func (c *groupCursor[K, T]) pull(ctx context.Context) (*keyed[K, T], error) {
	if c.closed {
		return nil, ErrDone
	}

	elem, err := c.src.Next(ctx)
	if err != nil {
		c.closed = true
		return nil, err
	}

	key, err := c.key(ctx, elem, c.index)
	if err != nil {
		c.closed = true
		return nil, err
	}

	c.index++

	return &keyed[K, T]{key: key, elem: elem}, nil
}

// nextGroup starts the next group, skipping the undrained elements of the current one.
func (c *groupCursor[K, T]) nextGroup(ctx context.Context) (*keyed[K, T], uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.lookahead == nil {
		kv, err := c.pull(ctx)
		if err != nil {
			return nil, 0, err
		}

		if c.gen == 0 || !Equal(kv.key, c.current) {
			c.lookahead = kv
		}
	}

	first := c.lookahead
	c.lookahead = nil

	c.current = first.key
	c.gen++

	return first, c.gen, nil
}

// nextItem returns the next element of the group of generation gen.
func (c *groupCursor[K, T]) nextItem(ctx context.Context, gen uint64) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T

	if c.gen != gen || c.lookahead != nil {
		return zero, ErrDone
	}

	kv, err := c.pull(ctx)
	if err != nil {
		return zero, err
	}

	if !Equal(kv.key, c.current) {
		c.lookahead = kv
		return zero, ErrDone
	}

	return kv.elem, nil
}

func (c *groupCursor[K, T]) items(detach bool, first T, gen uint64) *Seq[T] {
	sentFirst := false

	pull := func(ctx context.Context) (T, error) {
		if !sentFirst {
			sentFirst = true
			return first, nil
		}

		return c.nextItem(ctx, gen)
	}

	return newSeq(&history[T]{pull: pull, detach: detach}, &node[T]{kind: headNode})
}
