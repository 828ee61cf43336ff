package common

// UnknownStr is the String() result for out-of-range enum values.
const UnknownStr = "unknown"

// MergeInto copies every entry of src into dst, overriding existing keys.
func MergeInto[M ~map[K]V, K comparable, V any](dst, src M) {
	for k, v := range src {
		dst[k] = v
	}
}
