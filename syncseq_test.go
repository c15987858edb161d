package lazyseq

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/matryer/is"
)

func TestSyncSeq_CopyReplays(t *testing.T) {
	is := is.New(t)

	calls := 0
	next := 0

	ints := SyncFromFunc(func() (int, error) {
		calls++

		if next == 3 {
			return 0, ErrDone
		}

		next++

		return next, nil
	})

	other := ints.Copy()

	result, err := ints.Collect()
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 3})

	result, err = other.Collect()
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 3})

	is.Equal(calls, 4)
}

func TestSyncSeq_Algebra(t *testing.T) {
	is := is.New(t)

	ints := SyncProduce([]int{5, 1, 4, 4, 2, 3, 3})

	sum := 0

	strs := SyncMap(
		ints.
			Dedupe(nil).
			Filter(func(elem int, _ uint64) (bool, error) { return elem > 1, nil }).
			Sort(Ascending[int]()).
			Each(func(elem int, _ uint64) error {
				sum += elem
				return nil
			}),
		func(elem int, _ uint64) (string, error) { return strconv.Itoa(elem), nil })

	result, err := strs.Collect()
	is.NoErr(err)
	is.Equal(result, []string{"2", "3", "4", "5"})
	is.Equal(sum, 14)
}

func TestSyncSeq_Limit_Skip(t *testing.T) {
	is := is.New(t)

	result, err := SyncProduce([]int{1, 2, 3, 4, 5}).Skip(1).Limit(2).Collect()
	is.NoErr(err)
	is.Equal(result, []int{2, 3})
}

func TestSyncScan(t *testing.T) {
	is := is.New(t)

	result, err := SyncScan(SyncProduce([]int{1, 2, 3}), 0, func(elem int, _ uint64, acc int) (int, error) {
		return acc + elem, nil
	}).Collect()

	is.NoErr(err)
	is.Equal(result, []int{1, 3, 6})
}

func TestSyncGroupBy(t *testing.T) {
	is := is.New(t)

	groups := SyncGroupBy(SyncProduce([]int{1, 1, 2, 2, 2, 3}), func(elem int, _ uint64) (int, error) {
		return elem, nil
	})

	keys := []int{}
	items := [][]int{}

	err := groups.On(func(grp SyncGroup[int, int], _ uint64) error {
		keys = append(keys, grp.Key)

		// leave the 2 group undrained
		if grp.Key == 2 {
			return nil
		}

		elems, err := grp.Items.Collect()
		items = append(items, elems)

		return err
	})

	is.NoErr(err)
	is.Equal(keys, []int{1, 2, 3})
	is.Equal(items, [][]int{{1, 1}, {3}})
}

func TestSyncBatch(t *testing.T) {
	is := is.New(t)

	result, err := SyncBatch(SyncProduce([]string{"a", "b", "c", "d", "e"}), 2).Collect()
	is.NoErr(err)
	is.Equal(result, [][]string{{"a", "b"}, {"c", "d"}, {"e"}})
}

func TestSyncReduce(t *testing.T) {
	is := is.New(t)

	sum, err := SyncReduce(SyncProduce([]int{1, 2, 3}), 0, func(elem int, _ uint64, acc int) (int, error) {
		return acc + elem, nil
	})

	is.NoErr(err)
	is.Equal(sum, 6)
}

func TestSyncSeq_Error(t *testing.T) {
	is := is.New(t)

	errBoom := errors.New("boom")

	ints := SyncMap(SyncProduce([]int{1, 2, 3}), func(elem int, _ uint64) (int, error) {
		if elem == 2 {
			return 0, errBoom
		}

		return elem, nil
	})

	err := ints.Copy().Consume()
	is.True(errors.Is(err, errBoom))

	result, err := ints.Collect()
	is.NoErr(err)
	is.Equal(result, []int{1})
}

func TestSyncSeq_Async(t *testing.T) {
	is := is.New(t)

	ints := SyncProduce([]int{1, 2, 3})

	first, err := ints.Next()
	is.NoErr(err)
	is.Equal(first, 1)

	result, err := ints.Async().Collect(context.Background())
	is.NoErr(err)
	is.Equal(result, []int{2, 3})

	// promoting does not advance the synchronous cursor
	result, err = ints.Collect()
	is.NoErr(err)
	is.Equal(result, []int{2, 3})
}

func TestSyncFromIter(t *testing.T) {
	is := is.New(t)

	ints := SyncFromIter(slices.Values([]int{1, 2, 3}))

	result := []int{}
	for elem, err := range ints.All() {
		is.NoErr(err)

		result = append(result, elem)
	}

	is.Equal(result, []int{1, 2, 3})
}
