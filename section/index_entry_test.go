package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mensura/endian"
	"github.com/arloliu/mensura/errs"
)

func TestIndexEntryRoundTrip(t *testing.T) {
	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		t.Run(engine.String(), func(t *testing.T) {
			entry, err := NewIndexEntry(0x1234567890abcdef, 4096, 50)
			require.NoError(t, err)

			data := entry.AppendTo(nil, engine)
			require.Len(t, data, IndexEntrySize)

			parsed, err := ParseIndexEntry(data, engine)
			require.NoError(t, err)
			require.Equal(t, entry, parsed)
		})
	}
}

func TestIndexEntryAppendsSequentially(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	var buf []byte
	for i := range 3 {
		entry, err := NewIndexEntry(uint64(i+1), i*80, 10)
		require.NoError(t, err)
		buf = entry.AppendTo(buf, engine)
	}
	require.Len(t, buf, 3*IndexEntrySize)

	last, err := ParseIndexEntry(buf[2*IndexEntrySize:], engine)
	require.NoError(t, err)
	require.Equal(t, IndexEntry{SeriesID: 3, Offset: 160, Count: 10}, last)
}

func TestIndexEntryLimits(t *testing.T) {
	_, err := NewIndexEntry(1, -1, 1)
	require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)

	_, err = NewIndexEntry(1, math.MaxUint32+1, 1)
	require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)

	_, err = NewIndexEntry(1, 0, math.MaxUint32+1)
	require.ErrorIs(t, err, errs.ErrInvalidIndexEntry)

	_, err = ParseIndexEntry(make([]byte, IndexEntrySize-1), endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrInvalidIndexEntry)
}
