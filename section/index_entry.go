package section

import (
	"fmt"

	"github.com/arloliu/mensura/endian"
	"github.com/arloliu/mensura/errs"
)

// IndexEntry describes one series. It is a fixed 16 bytes on disk:
//
//	0-7    SeriesID (xxHash64 of the series name)
//	8-11   Offset into the decompressed payload
//	12-15  Count of values
type IndexEntry struct {
	SeriesID uint64
	Offset   uint32
	Count    uint32
}

// NewIndexEntry creates an entry for a series starting at offset.
func NewIndexEntry(seriesID uint64, offset, count int) (IndexEntry, error) {
	if offset < 0 || offset > MaxOffset {
		return IndexEntry{}, fmt.Errorf("%w: offset %d out of range", errs.ErrOffsetOutOfRange, offset)
	}

	if count < 0 || count > MaxOffset {
		return IndexEntry{}, fmt.Errorf("%w: count %d out of range", errs.ErrInvalidIndexEntry, count)
	}

	return IndexEntry{
		SeriesID: seriesID,
		Offset:   uint32(offset), //nolint:gosec // checked above
		Count:    uint32(count),  //nolint:gosec // checked above
	}, nil
}

// AppendTo appends the serialized entry to dst.
func (e IndexEntry) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint64(dst, e.SeriesID)
	dst = engine.AppendUint32(dst, e.Offset)

	return engine.AppendUint32(dst, e.Count)
}

// ParseIndexEntry parses an entry from the first IndexEntrySize bytes of data.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidIndexEntry, IndexEntrySize, len(data))
	}

	return IndexEntry{
		SeriesID: engine.Uint64(data[0:8]),
		Offset:   engine.Uint32(data[8:12]),
		Count:    engine.Uint32(data[12:16]),
	}, nil
}
