package compensated

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumEmpty(t *testing.T) {
	var s Sum[float64]
	require.Equal(t, 0.0, s.Result())
}

func TestSumCancellation(t *testing.T) {
	terms := []float64{1.0, 1e100, 1.0, -1e100}

	naive := 0.0
	for _, v := range terms {
		naive += v
	}
	require.Equal(t, 0.0, naive, "naive summation loses both small terms")

	var s Sum[float64]
	for _, v := range terms {
		s.Add(v)
	}
	require.Equal(t, 2.0, s.Result())
}

func TestSumManySmallTerms(t *testing.T) {
	var s Sum[float64]
	s.Add(1.0)
	for range 1_000_000 {
		s.Add(1e-16)
	}

	require.InDelta(t, 1.0+1e-10, s.Result(), 1e-15)
	require.NotEqual(t, 1.0, s.Result())
}

func TestSumFloat32(t *testing.T) {
	var s Sum[float32]
	for _, v := range []float32{1e8, 1, -1e8, 1} {
		s.Add(v)
	}
	require.Equal(t, float32(2), s.Result())
}
