package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given format string.
// It is used to key the compiled-format cache.
func ID(format string) uint64 {
	return xxhash.Sum64String(format)
}
