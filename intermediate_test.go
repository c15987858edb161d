package lazyseq

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matryer/is"
)

func even(_ context.Context, elem int, _ uint64) (bool, error) {
	return elem%2 == 0, nil
}

func TestMap(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 4, 5})

	ints = Map(ints, func(_ context.Context, elem int, index uint64) (int, error) {
		is.Equal(index, uint64(elem-1))

		return elem * 2, nil
	})

	result, err := ints.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{2, 4, 6, 8, 10})
}

func TestMap_Blocking(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	strs := Map(Produce([]int{3, 1, 2}), func(_ context.Context, elem int, _ uint64) (string, error) {
		time.Sleep(time.Duration(elem) * time.Millisecond)
		return strconv.Itoa(elem), nil
	})

	result, err := strs.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []string{"3", "1", "2"})
}

func TestMap_Error(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	errBoom := errors.New("boom")

	ints := Map(Produce([]int{1, 2, 3, 4, 5}), func(_ context.Context, elem int, _ uint64) (int, error) {
		is.True(elem <= 3)

		if elem == 3 {
			return 0, errBoom
		}

		return elem * 2, nil
	})

	other := ints.Copy()

	result, err := ints.Collect(ctx)
	is.Equal(result, []int{2, 4})
	is.True(errors.Is(err, errBoom))

	result, err = other.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{2, 4})
}

func TestMap_ErrorPropagatesOnce(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	errBoom := errors.New("boom")

	calls := 0
	ints := FromFunc(func(_ context.Context) (int, error) {
		calls++
		if calls > 2 {
			return 0, errBoom
		}

		return calls, nil
	})

	doubled := Map(ints, FuncMapper(func(elem int) int { return elem * 2 }))
	strs := Map(doubled, FuncMapper(strconv.Itoa))

	result, err := strs.Collect(ctx)
	is.Equal(result, []string{"2", "4"})
	is.True(errors.Is(err, errBoom))

	// the error has been observed through the chain, the stages in between only complete
	result2, err := doubled.Collect(ctx)
	is.NoErr(err)
	is.Equal(result2, []int{2, 4})
}

func TestMap_Multicast(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	calls := atomic.Int64{}
	ints := FromFunc(countingProducer(3, &calls))

	doubled := Map(ints, FuncMapper(func(elem int) int { return elem * 2 }))
	strs := Map(ints, FuncMapper(strconv.Itoa))

	result1, err := doubled.Collect(ctx)
	is.NoErr(err)
	is.Equal(result1, []int{0, 2, 4})

	result2, err := strs.Collect(ctx)
	is.NoErr(err)
	is.Equal(result2, []string{"0", "1", "2"})

	is.Equal(calls.Load(), int64(4))
}

func TestFlatMap(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := FlatMap(Produce([]int{1, 2, 3}), func(_ context.Context, elem int, _ uint64) (*Seq[int], error) {
		elems := make([]int, elem)
		for i := range elems {
			elems[i] = elem
		}

		return Produce(elems), nil
	})

	result, err := ints.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 2, 3, 3, 3})
}

func TestFilter(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 4, 5}).Filter(even)

	result, err := ints.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{2, 4})
}

func TestFilter_Error(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	errBoom := errors.New("boom")

	ints := Produce([]int{1, 2, 3, 4, 5}).Filter(func(_ context.Context, elem int, index uint64) (bool, error) {
		is.True(elem <= 3)
		is.Equal(index, uint64(elem-1))

		if elem == 3 {
			return false, errBoom
		}

		return elem%2 == 0, nil
	})

	result, err := ints.Collect(ctx)
	is.Equal(result, []int{2})
	is.True(errors.Is(err, errBoom))
}

func TestEach(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	sum := 0

	ints := Produce([]int{1, 2, 3, 4, 5}).Each(func(_ context.Context, elem int, index uint64) error {
		is.Equal(index, uint64(elem-1))

		sum += elem

		return nil
	})

	result, err := ints.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 3, 4, 5})
	is.Equal(sum, 15)
}

func TestEach_RunsBeforeYield(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	seen := 0

	ints := Produce([]int{1, 2, 3}).Each(func(_ context.Context, _ int, _ uint64) error {
		seen++
		return nil
	})

	elem, err := ints.Next(ctx)
	is.NoErr(err)
	is.Equal(elem, 1)
	is.Equal(seen, 1)
}

func TestScan(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	sums := Scan(Produce([]int{1, 2, 3, 4}), 10, func(_ context.Context, elem int, _ uint64, acc int) (int, error) {
		return acc + elem, nil
	})

	result, err := sums.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{11, 13, 16, 20})
}

func TestSort(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	result, err := Produce([]int{3, 1, 2}).Sort(Ascending[int]()).Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 3})

	result, err = Produce([]int{3, 1, 2}).Sort(Descending[int]()).Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{3, 2, 1})
}

func TestSort_DrainsSource(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	calls := atomic.Int64{}
	sorted := FromFunc(countingProducer(3, &calls)).Sort(Descending[int]())

	elem, err := sorted.Next(ctx)
	is.NoErr(err)
	is.Equal(elem, 2)
	is.Equal(calls.Load(), int64(4))
}

func TestSort_Stable(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	type pair struct {
		key   int
		value string
	}

	pairs := Produce([]pair{{2, "a"}, {1, "b"}, {2, "c"}, {1, "d"}})

	sorted := pairs.Sort(func(a pair, b pair) int {
		return a.key - b.key
	})

	result, err := sorted.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []pair{{1, "b"}, {1, "d"}, {2, "a"}, {2, "c"}})
}

func TestDedupe(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	result, err := Produce([]int{1, 1, 2, 2, 1, 1}).Dedupe(nil).Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 1})
}

func TestDedupe_ZeroValueFirst(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	result, err := Produce([]int{0, 0, 1}).Dedupe(nil).Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{0, 1})
}

func TestDedupe_Func(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	sameParity := func(a int, b int) bool {
		return a%2 == b%2
	}

	result, err := Produce([]int{1, 3, 2, 4, 5}).Dedupe(sameParity).Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 5})
}

func TestLimit(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	calls := atomic.Int64{}
	ints := FromFunc(countingProducer(100, &calls)).Limit(3)

	result, err := ints.Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{0, 1, 2})
	is.Equal(calls.Load(), int64(3))
}

func TestLimit_Zero(t *testing.T) {
	is := is.New(t)

	result, err := Produce([]int{1, 2}).Limit(0).Collect(context.Background())
	is.NoErr(err)
	is.Equal(result, []int{})
}

func TestSkip(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	result, err := Produce([]int{1, 2, 3, 4, 5}).Skip(2).Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{3, 4, 5})

	result, err = Produce([]int{1, 2}).Skip(5).Collect(ctx)
	is.NoErr(err)
	is.Equal(result, []int{})
}

func TestIdentity(t *testing.T) {
	is := is.New(t)

	result, err := Map(Produce([]int{1, 2}), Identity[int]()).Collect(context.Background())
	is.NoErr(err)
	is.Equal(result, []int{1, 2})
}
