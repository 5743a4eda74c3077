package nbplot

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Float | constraints.Integer
}

func Filter[T any](slice []T, predicate func(T) bool) []T {
	filtered := make([]T, 0, len(slice))
	for _, elem := range slice {
		if predicate(elem) {
			filtered = append(filtered, elem)
		}
	}
	return filtered
}

// Converts any numeric slice into a Series. Integer inputs are widened to
// float64, which is what the chart data ends up as in JSON anyway.
func SeriesOf[T Number](values []T) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = float64(v)
	}
	return s
}

// Returns a slice of n missing-value markers.
func missingSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = Missing()
	}
	return s
}
