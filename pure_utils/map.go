package pure_utils

// Map returns a slice of len(src) holding f applied to every element.
func Map[T, U any](src []T, f func(T) U) []U {
	us := make([]U, len(src))
	for i := range src {
		us[i] = f(src[i])
	}
	return us
}

func MapSliceToMap[T, V any, K comparable](input []T, f func(v T) (K, V)) map[K]V {
	output := make(map[K]V, len(input))
	for _, item := range input {
		k, v := f(item)
		output[k] = v
	}
	return output
}
