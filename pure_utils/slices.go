package pure_utils

// Chunk splits src in consecutive slices of at most size elements.
func Chunk[T any](src []T, size int) [][]T {
	if size <= 0 || len(src) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(src)+size-1)/size)
	for start := 0; start < len(src); start += size {
		end := min(start+size, len(src))
		chunks = append(chunks, src[start:end])
	}
	return chunks
}

// Unique keeps the first occurrence of each element.
func Unique[T comparable](src []T) []T {
	seen := make(map[T]struct{}, len(src))
	out := make([]T, 0, len(src))
	for _, v := range src {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
