package pure_utils

import (
	"cmp"
	"maps"
	"slices"
)

// Map returns a new slice with the same length as src, but with values transformed by f
func Map[T, U any](src []T, f func(T) U) []U {
	us := make([]U, len(src))
	for i := range src {
		us[i] = f(src[i])
	}
	return us
}

// Filter returns the elements of src for which keep returns true, in their original order.
func Filter[T any](src []T, keep func(T) bool) []T {
	out := make([]T, 0, len(src))
	for _, item := range src {
		if keep(item) {
			out = append(out, item)
		}
	}
	return slices.Clip(out)
}

func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

func MapSliceToMap[T, V any, K comparable](input []T, f func(v T) (K, V)) map[K]V {
	output := make(map[K]V, len(input))
	for _, item := range input {
		k, v := f(item)
		output[k] = v
	}
	return output
}
