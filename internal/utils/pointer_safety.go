package utils

// First returns the first element of slice, or the zero value when empty.
func First[T any](slice []T) T {
	if len(slice) == 0 {
		return *new(T)
	}
	return slice[0]
}
