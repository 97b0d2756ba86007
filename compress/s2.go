package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/mensura/errs"
)

// S2Compressor implements S2, the Snappy-compatible codec from
// klauspost/compress. It is the fastest of the built-in codecs.
//
// Payloads are encoded with s2.EncodeBetter: float64 columns repeat long
// exponent and mantissa prefixes that the better matcher finds at little
// extra cost.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data as a single S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrInvalidPayload, len(data), MaxDecodedSize)
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes an S2 block after checking its declared size.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("%w: s2 decoded size %d exceeds %d", errs.ErrInvalidPayload, size, MaxDecodedSize)
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
