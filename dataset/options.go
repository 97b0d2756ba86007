package dataset

import (
	"fmt"

	"github.com/arloliu/mensura/format"
	"github.com/arloliu/mensura/internal/options"
	"github.com/arloliu/mensura/section"
)

// encoderConfig holds the header flag chosen through options.
type encoderConfig struct {
	flag section.Flag
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*encoderConfig]

// WithCompression sets the codec applied to the encoded payload.
// The default is Zstd.
func WithCompression(c format.CompressionType) EncoderOption {
	return options.New(func(cfg *encoderConfig) error {
		if !c.Valid() {
			return fmt.Errorf("invalid compression: %v", c)
		}
		cfg.flag.Compression = c

		return nil
	})
}

// WithValueEncoding sets how values are encoded before compression.
// The default is Gorilla.
func WithValueEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(cfg *encoderConfig) error {
		if !enc.Valid() {
			return fmt.Errorf("invalid value encoding: %v", enc)
		}
		cfg.flag.Encoding = enc

		return nil
	})
}

// WithBigEndian writes all multi-byte fields big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.flag.WithBigEndian()
	})
}

// WithLittleEndian writes all multi-byte fields little-endian. This is the
// default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.flag.WithLittleEndian()
	})
}
