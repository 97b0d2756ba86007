package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/mensura/errs"
)

// LZ4 block modes, stored after the decoded length.
const (
	lz4ModeStored byte = 0
	lz4ModeBlock  byte = 1
)

// lz4CompressorPool pools lz4.Compressor instances; each carries a hash table
// that is expensive to allocate.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor implements LZ4 block compression.
//
// A compressed payload is laid out as
//
//	uvarint(decoded length) | mode (1 byte) | data
//
// where mode is 1 for an LZ4 block and 0 for data stored as-is. Short or
// noisy payloads, such as a few raw readings, often do not compress at all;
// lz4.CompressBlock reports those with n == 0 and they are stored instead.
// The length prefix lets Decompress allocate its output once.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data with a pooled lz4.Compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrInvalidPayload, len(data), MaxDecodedSize)
	}

	dst := make([]byte, 0, binary.MaxVarintLen64+1+lz4.CompressBlockBound(len(data)))
	dst = binary.AppendUvarint(dst, uint64(len(data)))
	hdrLen := len(dst) + 1

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[hdrLen:cap(dst)])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	if n == 0 || n >= len(data) {
		dst = append(dst, lz4ModeStored)
		return append(dst, data...), nil
	}

	dst = append(dst, lz4ModeBlock)

	return dst[:hdrLen+n], nil
}

// Decompress reverses Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, n := binary.Uvarint(data)
	if n <= 0 || n >= len(data) {
		return nil, fmt.Errorf("%w: lz4 header", errs.ErrInvalidPayload)
	}
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("%w: lz4 decoded size %d exceeds %d", errs.ErrInvalidPayload, size, MaxDecodedSize)
	}

	mode, body := data[n], data[n+1:]
	switch mode {
	case lz4ModeStored:
		if uint64(len(body)) != size {
			return nil, fmt.Errorf("%w: stored lz4 block has %d bytes, want %d", errs.ErrInvalidPayload, len(body), size)
		}

		return append([]byte(nil), body...), nil
	case lz4ModeBlock:
		out := make([]byte, size)
		m, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(m) != size {
			return nil, fmt.Errorf("%w: lz4 block decoded to %d bytes, want %d", errs.ErrInvalidPayload, m, size)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown lz4 mode 0x%02x", errs.ErrInvalidPayload, mode)
	}
}
