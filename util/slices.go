// Package util holds small generic helpers shared across the compiler.
package util

// Map returns the result of applying f to every element of s.
func Map[T, R any](s []T, f func(T) R) []R {
	out := make([]R, 0, len(s))
	for _, x := range s {
		out = append(out, f(x))
	}

	return out
}

// MapErr is Map for functions that can fail.  It stops at the first error.
func MapErr[T, R any](s []T, f func(T) (R, error)) ([]R, error) {
	out := make([]R, 0, len(s))
	for _, x := range s {
		r, err := f(x)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	return out, nil
}

// Contains returns whether s contains x.
func Contains[T comparable](s []T, x T) bool {
	for _, y := range s {
		if y == x {
			return true
		}
	}

	return false
}
