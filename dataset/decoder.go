package dataset

import (
	"fmt"
	"hash/crc32"
	"os"

	"github.com/arloliu/mensura/compress"
	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/format"
	ienc "github.com/arloliu/mensura/internal/encoding"
	"github.com/arloliu/mensura/internal/hash"
	"github.com/arloliu/mensura/section"
)

// Decode parses a dataset file produced by Encoder.Finish.
//
// Decode checks the CRC32 trailer, the header, every index entry and the
// names, and decompresses the payload. The returned Dataset does not alias
// data unless the payload is stored uncompressed.
//
// Returns errors wrapping errs.ErrChecksumMismatch, the header errors of
// package section, errs.ErrInvalidIndexEntry, errs.ErrInvalidNamesPayload or
// errs.ErrOffsetOutOfRange.
func Decode(data []byte) (*Dataset, error) {
	if len(data) < section.HeaderSize+section.TrailerSize {
		return nil, fmt.Errorf("%w: file of %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	engine := header.Flag.EndianEngine()

	body := data[:len(data)-section.TrailerSize]
	if want, got := engine.Uint32(data[len(body):]), crc32.ChecksumIEEE(body); want != got {
		return nil, fmt.Errorf("%w: stored 0x%08x, computed 0x%08x", errs.ErrChecksumMismatch, want, got)
	}

	payloadEnd := uint64(header.PayloadOffset) + uint64(header.PayloadLength)
	if payloadEnd != uint64(len(body)) {
		return nil, fmt.Errorf("%w: payload ends at %d, file body is %d bytes",
			errs.ErrInvalidIndexOffsets, payloadEnd, len(body))
	}

	count := int(header.SeriesCount)
	entries := make([]section.IndexEntry, count)
	ids := make([]uint64, count)
	for i := range entries {
		off := int(header.IndexOffset) + i*section.IndexEntrySize
		entries[i], err = section.ParseIndexEntry(body[off:], engine)
		if err != nil {
			return nil, err
		}
		ids[i] = entries[i].SeriesID
	}

	names, n, err := ienc.DecodeSeriesNames(body[header.NamesOffset:header.PayloadOffset], count)
	if err != nil {
		return nil, err
	}
	if n != int(header.PayloadOffset-header.NamesOffset) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidNamesPayload, int(header.PayloadOffset-header.NamesOffset)-n)
	}
	if err := ienc.VerifySeriesIDs(names, ids, hash.SeriesID); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Flag.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(body[header.PayloadOffset:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}

	ds := &Dataset{
		header:   header,
		entries:  entries,
		names:    names,
		byName:   make(map[string]int, count),
		payload:  payload,
		fileSize: len(data),
	}

	switch header.Flag.Encoding { //nolint:exhaustive
	case format.TypeRaw:
		ds.decoder = ienc.NewRawDecoder(engine)
	default:
		ds.decoder = ienc.NewGorillaDecoder()
	}

	for i, name := range names {
		if err := ds.checkEntry(entries[i]); err != nil {
			return nil, fmt.Errorf("series %q: %w", name, err)
		}
		ds.byName[name] = i
	}

	return ds, nil
}

// ReadFile reads and decodes the dataset file at path.
func ReadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	ds, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return ds, nil
}

// WriteFile encodes series into a dataset file at path.
func WriteFile(path string, series []Series, opts ...EncoderOption) error {
	data, err := Pack(series, opts...)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // datasets are not secrets
		return fmt.Errorf("write dataset: %w", err)
	}

	return nil
}

// checkEntry makes sure the entry's values lie inside the payload.
func (d *Dataset) checkEntry(entry section.IndexEntry) error {
	if entry.Count == 0 {
		return fmt.Errorf("%w: empty series", errs.ErrInvalidIndexEntry)
	}

	if int(entry.Offset) > len(d.payload) {
		return fmt.Errorf("%w: offset %d beyond payload of %d bytes", errs.ErrOffsetOutOfRange, entry.Offset, len(d.payload))
	}

	if d.byteLength(entry) < 0 {
		return fmt.Errorf("%w: %d values do not fit in the payload", errs.ErrOffsetOutOfRange, entry.Count)
	}

	return nil
}
