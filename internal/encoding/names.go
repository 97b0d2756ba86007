package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/mensura/errs"
)

// EncodeSeriesNames appends each name as a uvarint length followed by its
// UTF-8 bytes. The count is not stored; it comes from the dataset header.
func EncodeSeriesNames(dst []byte, names []string) []byte {
	for _, name := range names {
		dst = binary.AppendUvarint(dst, uint64(len(name)))
		dst = append(dst, name...)
	}

	return dst
}

// DecodeSeriesNames reads count names written by EncodeSeriesNames.
//
// Returns the names and the number of bytes consumed. Truncated data or an
// overflowing length returns an error wrapping errs.ErrInvalidNamesPayload.
func DecodeSeriesNames(data []byte, count int) ([]string, int, error) {
	names := make([]string, count)
	offset := 0

	for i := range count {
		nameLen, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, 0, fmt.Errorf("%w: cannot read length of name %d at offset %d",
				errs.ErrInvalidNamesPayload, i, offset)
		}
		offset += n

		if nameLen > uint64(len(data)-offset) {
			return nil, 0, fmt.Errorf("%w: name %d needs %d bytes at offset %d, have %d",
				errs.ErrInvalidNamesPayload, i, nameLen, offset, len(data)-offset)
		}

		end := offset + int(nameLen) //nolint:gosec // bounded by len(data)
		names[i] = string(data[offset:end])
		offset = end
	}

	return names, offset, nil
}

// VerifySeriesIDs checks that hashFunc(names[i]) == ids[i] for every series.
func VerifySeriesIDs(names []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d names for %d series", errs.ErrInvalidNamesPayload, len(names), len(ids))
	}

	for i, name := range names {
		if got := hashFunc(name); got != ids[i] {
			return fmt.Errorf("%w: series %q at index %d: expected id 0x%016x, got 0x%016x",
				errs.ErrInvalidNamesPayload, name, i, ids[i], got)
		}
	}

	return nil
}
