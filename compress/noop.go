package compress

import (
	"fmt"

	"github.com/arloliu/mensura/errs"
)

// NoOpCompressor stores payloads uncompressed. It is the codec behind
// format.CompressionNone.
//
// Compress returns the input slice itself. Decompress returns a copy, so a
// decoded dataset never aliases the file bytes it was read from.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrInvalidPayload, len(data), MaxDecodedSize)
	}

	return data, nil
}

// Decompress returns a copy of data.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return append([]byte(nil), data...), nil
}
