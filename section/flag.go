package section

import (
	"fmt"

	"github.com/arloliu/mensura/endian"
	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/format"
)

// Flag is the first 4 bytes of the header.
type Flag struct {
	// Options is a packed field. Bit 0 is the byte order of every other
	// multi-byte field, the remaining bits are reserved. Options itself is
	// always stored little-endian.
	Options uint16

	// Encoding is the value encoding of the payload.
	Encoding format.EncodingType

	// Compression is the codec applied to the encoded payload.
	Compression format.CompressionType
}

// NewFlag returns a little-endian flag with Gorilla values and Zstd
// compression.
func NewFlag() Flag {
	return Flag{
		Encoding:    format.TypeGorilla,
		Compression: format.CompressionZstd,
	}
}

// IsBigEndian returns whether the dataset is big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&BigEndianMask != 0
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= BigEndianMask
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= BigEndianMask
}

// EndianEngine returns the engine matching the byte order bit.
func (f Flag) EndianEngine() endian.EndianEngine {
	return endian.Select(f.IsBigEndian())
}

// Validate checks the reserved bits, the encoding and the compression.
func (f Flag) Validate() error {
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits 0x%04x", errs.ErrInvalidHeaderFlags, f.Options&ReservedBitsMask)
	}

	if !f.Encoding.Valid() {
		return fmt.Errorf("%w: value encoding 0x%02x", errs.ErrInvalidHeaderFlags, uint8(f.Encoding))
	}

	if !f.Compression.Valid() {
		return fmt.Errorf("%w: compression 0x%02x", errs.ErrInvalidHeaderFlags, uint8(f.Compression))
	}

	return nil
}
