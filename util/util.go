package util

// Coalesce returns the first non-zero value, or the zero value if all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// RemoveFirst deletes the first element equal to v, keeping the order of
// the rest, and reports whether one was found. The input slice is reused.
func RemoveFirst[T comparable](slice []T, v T) ([]T, bool) {
	for i, item := range slice {
		if item == v {
			return append(slice[:i], slice[i+1:]...), true
		}
	}
	return slice, false
}
