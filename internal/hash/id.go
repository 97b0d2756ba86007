// Package hash derives the 64-bit series IDs stored in dataset indexes.
package hash

import "github.com/cespare/xxhash/v2"

// SeriesID returns the xxHash64 of a series name.
func SeriesID(name string) uint64 {
	return xxhash.Sum64String(name)
}
