package section

import "math"

const (
	// Option bits of Flag.Options.
	BigEndianMask    = 0x0001 // 0=little-endian, 1=big-endian
	ReservedBitsMask = 0xFFFE // must be zero in version 1

	// Magic is the file signature at header bytes 4-7.
	Magic = "MSRA"
)

// Sizes and limits of the dataset layout.
const (
	HeaderSize     = 32             // fixed header size in bytes
	IndexEntrySize = 16             // fixed index entry size in bytes
	TrailerSize    = 4              // CRC32 of everything before it
	IndexOffset    = HeaderSize     // the index always follows the header
	MaxOffset      = math.MaxUint32 // largest offset or count an index entry can hold
)
