package section

import (
	"fmt"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/format"
)

// Header is the fixed-size section at the start of a dataset file.
//
// Layout (32 bytes):
//
//	0-3    Flag
//	4-7    Magic "MSRA"
//	8-11   SeriesCount
//	12-15  IndexOffset
//	16-19  NamesOffset
//	20-23  PayloadOffset
//	24-27  PayloadLength
//	28-31  reserved, zero
type Header struct {
	Flag Flag

	// SeriesCount is the number of series, and of index entries.
	SeriesCount uint32
	// IndexOffset is the byte offset of the index section, always HeaderSize.
	IndexOffset uint32
	// NamesOffset is the byte offset of the series names section.
	NamesOffset uint32
	// PayloadOffset is the byte offset of the compressed payload.
	PayloadOffset uint32
	// PayloadLength is the compressed payload size in bytes.
	PayloadLength uint32
}

// NewHeader creates a header with the default flag. Counts and offsets are
// filled in by the encoder when it finishes.
func NewHeader() *Header {
	return &Header{
		Flag:        NewFlag(),
		IndexOffset: IndexOffset,
	}
}

// Parse decodes the header from exactly HeaderSize bytes and validates the
// magic, flag and section offsets.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	if string(data[4:8]) != Magic {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagicNumber, data[4:8])
	}

	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Encoding = format.EncodingType(data[2])
	h.Flag.Compression = format.CompressionType(data[3])
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.EndianEngine()
	h.SeriesCount = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.NamesOffset = engine.Uint32(data[16:20])
	h.PayloadOffset = engine.Uint32(data[20:24])
	h.PayloadLength = engine.Uint32(data[24:28])

	return h.validateOffsets()
}

func (h *Header) validateOffsets() error {
	if h.IndexOffset != IndexOffset {
		return fmt.Errorf("%w: index offset %d", errs.ErrInvalidIndexOffsets, h.IndexOffset)
	}

	indexEnd := uint64(h.IndexOffset) + uint64(h.SeriesCount)*IndexEntrySize
	if uint64(h.NamesOffset) != indexEnd {
		return fmt.Errorf("%w: names offset %d, index ends at %d", errs.ErrInvalidIndexOffsets, h.NamesOffset, indexEnd)
	}

	if h.PayloadOffset < h.NamesOffset {
		return fmt.Errorf("%w: payload offset %d before names offset %d",
			errs.ErrInvalidIndexOffsets, h.PayloadOffset, h.NamesOffset)
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.EndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = uint8(h.Flag.Encoding)
	b[3] = uint8(h.Flag.Compression)
	copy(b[4:8], Magic)
	engine.PutUint32(b[8:12], h.SeriesCount)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.NamesOffset)
	engine.PutUint32(b[20:24], h.PayloadOffset)
	engine.PutUint32(b[24:28], h.PayloadLength)

	return b
}

// ParseHeader parses a Header from the first HeaderSize bytes of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
