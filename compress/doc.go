// Package compress provides the block codecs applied to dataset payloads.
//
// A dataset payload is encoded first (raw or Gorilla, see internal/encoding)
// and then compressed as a single block with one of:
//
//   - None: pass-through
//   - Zstd: best ratio, the default for `mensura pack`
//   - S2: faster, somewhat larger
//   - LZ4: fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(packed)
//
// Measurement columns are mostly float64 values with a few significant
// digits, which leaves long runs of zero mantissa bits. Raw payloads of such
// data typically shrink to a third with Zstd; Gorilla payloads are already
// dense and gain less.
//
// # Thread Safety
//
// All built-in codecs are stateless values. Zstd and LZ4 draw their encoder
// state from sync.Pool, so one codec may be shared across goroutines.
package compress
