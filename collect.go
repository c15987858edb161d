package lazyseq

import "context"

// CollectSlice returns an accumulator that collects elements into a slice.
func CollectSlice[T any]() AccumulatorFunc[T, []T] {
	return func(_ context.Context, elem T, _ uint64, acc []T) ([]T, error) {
		return append(acc, elem), nil
	}
}

// CollectMap returns an accumulator that collects elements into a map.
// Elements are mapped using key and value, respectively.
// If a key is already in the map, the map entry will be overwritten.
func CollectMap[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) AccumulatorFunc[T, map[K]V] {
	return func(ctx context.Context, elem T, index uint64, acc map[K]V) (map[K]V, error) {
		k, v, err := keyValue(ctx, elem, index, key, value)
		if err != nil {
			return acc, err
		}

		acc[k] = v

		return acc, nil
	}
}

// CollectMapNoDuplicateKeys returns an accumulator that collects elements into a map.
// Elements are mapped using key and value, respectively.
// If a key is already in the map, the accumulator fails with a *DuplicateKeyError.
func CollectMapNoDuplicateKeys[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) AccumulatorFunc[T, map[K]V] {
	return func(ctx context.Context, elem T, index uint64, acc map[K]V) (map[K]V, error) {
		k, err := key(ctx, elem, index)
		if err != nil {
			return acc, err
		}

		if _, ok := acc[k]; ok {
			return acc, &DuplicateKeyError[T, K]{
				Element: elem,
				Key:     k,
			}
		}

		v, err := value(ctx, elem, index)
		if err != nil {
			return acc, err
		}

		acc[k] = v

		return acc, nil
	}
}

// CollectGroup returns an accumulator that collects elements into a group map.
// Elements will be grouped into slices according to key. Unlike GroupBy, elements do not need to be consecutive.
func CollectGroup[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) AccumulatorFunc[T, map[K][]V] {
	return func(ctx context.Context, elem T, index uint64, acc map[K][]V) (map[K][]V, error) {
		k, v, err := keyValue(ctx, elem, index, key, value)
		if err != nil {
			return acc, err
		}

		acc[k] = append(acc[k], v)

		return acc, nil
	}
}

// CollectPartition returns an accumulator that collects elements into a partition map.
// Elements will be grouped into slices according to pred.
func CollectPartition[T any, V any](pred PredicateFunc[T], value MapperFunc[T, V]) AccumulatorFunc[T, map[bool][]V] {
	return CollectGroup(MapperFunc[T, bool](pred), value)
}

func keyValue[T any, K any, V any](ctx context.Context, elem T, index uint64, key MapperFunc[T, K], value MapperFunc[T, V]) (K, V, error) {
	var zeroV V

	k, err := key(ctx, elem, index)
	if err != nil {
		return k, zeroV, err
	}

	v, err := value(ctx, elem, index)

	return k, v, err
}
