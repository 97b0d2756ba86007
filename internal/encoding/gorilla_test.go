package encoding

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeGorilla(t *testing.T, series ...[]float64) ([]byte, []int) {
	t.Helper()

	enc := NewGorillaEncoder()
	defer enc.Finish()

	offsets := make([]int, 0, len(series))
	for _, values := range series {
		offsets = append(offsets, enc.Size())
		enc.WriteSlice(values)
		enc.EndSeries()
	}

	return slices.Clone(enc.Bytes()), offsets
}

func requireSameBits(t *testing.T, want, got []float64) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, math.Float64bits(want[i]), math.Float64bits(got[i]), "value %d", i)
	}
}

func TestGorillaRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"single", []float64{0.45}},
		{"timer readings", timerReadings(40)},
		{"constant", []float64{9.81, 9.81, 9.81, 9.81}},
		{"long constant run", slices.Repeat([]float64{1.5}, 200)},
		{"drifting", driftingReadings(300)},
		{"adjacent floats", []float64{1, math.Nextafter(1, 2), 1, math.Nextafter(1, 0)}},
		{"special values", []float64{0, math.Copysign(0, -1), math.Inf(1), math.Inf(-1), math.NaN(), math.MaxFloat64, math.SmallestNonzeroFloat64}},
		{"sign changes", []float64{-3.25, 3.25, -1e-300, 1e300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := encodeGorilla(t, tt.values)

			got := slices.Collect(NewGorillaDecoder().All(data, len(tt.values)))
			requireSameBits(t, tt.values, got)
		})
	}
}

func TestGorillaWriteMatchesWriteSlice(t *testing.T) {
	values := append(repeatedReadings(60), timerReadings(20)...)

	single := NewGorillaEncoder()
	defer single.Finish()
	for _, v := range values {
		single.Write(v)
	}
	single.EndSeries()

	bulk := NewGorillaEncoder()
	defer bulk.Finish()
	bulk.WriteSlice(values[:7])
	bulk.WriteSlice(values[7:])
	bulk.EndSeries()

	require.Equal(t, single.Bytes(), bulk.Bytes())
	require.Equal(t, len(values), single.Len())
	require.Equal(t, len(values), bulk.Len())
}

func TestGorillaMultipleSeries(t *testing.T) {
	series := [][]float64{
		timerReadings(25),
		{42},
		repeatedReadings(100),
		driftingReadings(33),
	}

	data, offsets := encodeGorilla(t, series...)
	dec := NewGorillaDecoder()

	for i, values := range series {
		got := slices.Collect(dec.All(data[offsets[i]:], len(values)))
		requireSameBits(t, values, got)

		end := len(data)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		require.Equal(t, end-offsets[i], dec.ByteLength(data[offsets[i]:], len(values)), "series %d", i)
	}
}

func TestGorillaCompressesReadings(t *testing.T) {
	values := repeatedReadings(1000)
	data, _ := encodeGorilla(t, values)

	require.Less(t, len(data), RawByteLength(len(values))/4)
}

func TestGorillaAt(t *testing.T) {
	values := driftingReadings(64)
	data, _ := encodeGorilla(t, values)
	dec := NewGorillaDecoder()

	for _, idx := range []int{0, 1, 31, 63} {
		v, ok := dec.At(data, idx, len(values))
		require.True(t, ok)
		require.Equal(t, values[idx], v)
	}

	_, ok := dec.At(data, 64, len(values))
	require.False(t, ok)
	_, ok = dec.At(data, -1, len(values))
	require.False(t, ok)
}

func TestGorillaTruncatedData(t *testing.T) {
	values := driftingReadings(50)
	data, _ := encodeGorilla(t, values)
	short := data[:len(data)/2]
	dec := NewGorillaDecoder()

	got := slices.Collect(dec.All(short, len(values)))
	require.NotEmpty(t, got)
	require.Less(t, len(got), len(values))
	requireSameBits(t, values[:len(got)], got)

	require.Equal(t, -1, dec.ByteLength(short, len(values)))
	require.Empty(t, slices.Collect(dec.All(nil, 3)))
	require.Equal(t, 0, dec.ByteLength(nil, 0))
}

func TestGorillaEarlyBreak(t *testing.T) {
	values := timerReadings(10)
	data, _ := encodeGorilla(t, values)

	var got []float64
	for v := range NewGorillaDecoder().All(data, len(values)) {
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	require.Equal(t, values[:3], got)
}

func TestGorillaFinish(t *testing.T) {
	enc := NewGorillaEncoder()
	enc.Write(1)
	enc.Finish()
	enc.Finish()

	require.Panics(t, func() { enc.Write(2) })
	require.Panics(t, func() { enc.WriteSlice([]float64{2}) })
	require.Panics(t, func() { enc.Bytes() })
	require.Panics(t, func() { enc.EndSeries() })
}
