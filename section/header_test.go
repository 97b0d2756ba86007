package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/format"
)

func validHeader() *Header {
	h := NewHeader()
	h.SeriesCount = 3
	h.NamesOffset = HeaderSize + 3*IndexEntrySize
	h.PayloadOffset = h.NamesOffset + 12
	h.PayloadLength = 200

	return h
}

func TestNewHeader(t *testing.T) {
	h := NewHeader()

	require.Equal(t, uint32(IndexOffset), h.IndexOffset)
	require.False(t, h.Flag.IsBigEndian())
	require.Equal(t, format.TypeGorilla, h.Flag.Encoding)
	require.Equal(t, format.CompressionZstd, h.Flag.Compression)
	require.NoError(t, h.Flag.Validate())
}

func TestHeaderRoundTrip(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		original := validHeader()
		original.Flag.Encoding = format.TypeRaw
		original.Flag.Compression = format.CompressionLZ4
		if bigEndian {
			original.Flag.WithBigEndian()
		}

		data := original.Bytes()
		require.Len(t, data, HeaderSize)
		require.Equal(t, Magic, string(data[4:8]))

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, *original, parsed)
		require.Equal(t, bigEndian, parsed.Flag.IsBigEndian())
	}
}

func TestHeaderByteOrder(t *testing.T) {
	h := validHeader()
	little := h.Bytes()
	require.Equal(t, []byte{3, 0, 0, 0}, little[8:12])

	h.Flag.WithBigEndian()
	big := h.Bytes()
	require.Equal(t, []byte{0, 0, 0, 3}, big[8:12])
	require.Equal(t, byte(1), big[0])

	h.Flag.WithLittleEndian()
	require.Equal(t, little, h.Bytes())
}

func TestHeaderParseErrors(t *testing.T) {
	corrupt := func(mutate func([]byte)) []byte {
		data := validHeader().Bytes()
		mutate(data)

		return data
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", make([]byte, 10), errs.ErrInvalidHeaderSize},
		{"magic", corrupt(func(b []byte) { copy(b[4:8], "MEBO") }), errs.ErrInvalidMagicNumber},
		{"reserved bits", corrupt(func(b []byte) { b[0] |= 0x04 }), errs.ErrInvalidHeaderFlags},
		{"encoding", corrupt(func(b []byte) { b[2] = 0x2 }), errs.ErrInvalidHeaderFlags},
		{"compression", corrupt(func(b []byte) { b[3] = 0x9 }), errs.ErrInvalidHeaderFlags},
		{"index offset", corrupt(func(b []byte) { b[12] = 0 }), errs.ErrInvalidIndexOffsets},
		{"names offset", corrupt(func(b []byte) { b[16]++ }), errs.ErrInvalidIndexOffsets},
		{"payload before names", corrupt(func(b []byte) { b[20] = 0 }), errs.ErrInvalidIndexOffsets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHeaderParseExactSize(t *testing.T) {
	data := append(validHeader().Bytes(), 0xff)

	var h Header
	require.ErrorIs(t, h.Parse(data), errs.ErrInvalidHeaderSize)

	_, err := ParseHeader(data)
	require.NoError(t, err)
}
