package encoding

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mensura/endian"
)

func TestRawRoundTrip(t *testing.T) {
	values := []float64{0.45, -1.25, math.Inf(1), 0, 1e-300}

	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		t.Run(engine.String(), func(t *testing.T) {
			enc := NewRawEncoder(engine)
			defer enc.Finish()

			enc.Write(values[0])
			enc.WriteSlice(values[1:])
			enc.EndSeries()

			require.Equal(t, len(values), enc.Len())
			require.Equal(t, RawByteLength(len(values)), enc.Size())

			dec := NewRawDecoder(engine)
			require.Equal(t, values, slices.Collect(dec.All(enc.Bytes(), len(values))))

			v, ok := dec.At(enc.Bytes(), 2, len(values))
			require.True(t, ok)
			require.True(t, math.IsInf(v, 1))
		})
	}
}

func TestRawByteOrder(t *testing.T) {
	little := NewRawEncoder(endian.GetLittleEndianEngine())
	defer little.Finish()
	big := NewRawEncoder(endian.GetBigEndianEngine())
	defer big.Finish()

	little.Write(1)
	big.Write(1)

	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, little.Bytes())
	require.Equal(t, []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}, big.Bytes())
}

func TestRawDecoderBounds(t *testing.T) {
	dec := NewRawDecoder(endian.GetLittleEndianEngine())
	data := make([]byte, 12)

	require.Len(t, slices.Collect(dec.All(data, 3)), 1)

	_, ok := dec.At(data, 1, 3)
	require.False(t, ok)
	_, ok = dec.At(data, 3, 3)
	require.False(t, ok)
}

func TestRawFinish(t *testing.T) {
	enc := NewRawEncoder(endian.GetLittleEndianEngine())
	enc.Finish()

	require.Panics(t, func() { enc.Write(1) })
	require.Panics(t, func() { enc.Size() })
}
