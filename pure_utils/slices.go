package pure_utils

import "github.com/hashicorp/go-set/v2"

// Distinct removes duplicates, keeping the first occurrence of each element.
func Distinct[T comparable](input []T) []T {
	seen := set.New[T](len(input))
	out := make([]T, 0, len(input))
	for _, item := range input {
		if seen.Insert(item) {
			out = append(out, item)
		}
	}
	return out
}
