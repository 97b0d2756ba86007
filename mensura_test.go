package mensura

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mensura/dataset"
	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/format"
	"github.com/arloliu/mensura/regression"
)

// TestNewDefaultEncoder verifies the default encoder round trips a series
func TestNewDefaultEncoder(t *testing.T) {
	enc, err := NewDefaultEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.AddSeries("gate1", []float64{0.512, 0.509, 0.515}))

	data, err := enc.Finish()
	require.NoError(t, err)

	ds, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.TypeGorilla, ds.Encoding())
	require.Equal(t, format.CompressionZstd, ds.Compression())
	require.False(t, ds.IsBigEndian())
}

// TestNewEncoder verifies custom options are applied
func TestNewEncoder(t *testing.T) {
	enc, err := NewEncoder(
		dataset.WithValueEncoding(format.TypeRaw),
		dataset.WithCompression(format.CompressionS2),
	)
	require.NoError(t, err)
	require.NoError(t, enc.AddSeries("x", []float64{1, 2}))

	data, err := enc.Finish()
	require.NoError(t, err)

	ds, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.TypeRaw, ds.Encoding())
	require.Equal(t, format.CompressionS2, ds.Compression())
}

func TestPackOverridesDefaults(t *testing.T) {
	data, err := Pack([]dataset.Series{{Name: "a", Values: []float64{1, 2, 3}}}, dataset.WithBigEndian())
	require.NoError(t, err)

	ds, err := Decode(data)
	require.NoError(t, err)
	require.True(t, ds.IsBigEndian())
	require.Equal(t, format.TypeGorilla, ds.Encoding())
}

func TestSummarize(t *testing.T) {
	data, err := Pack([]dataset.Series{
		{Name: "gate1", Values: []float64{1, 2, 3, 4, 5}},
		{Name: "gate2", Values: []float64{10, 20}},
	})
	require.NoError(t, err)

	ds, err := Decode(data)
	require.NoError(t, err)

	s, err := Summarize(ds, "gate1")
	require.NoError(t, err)
	require.Equal(t, 5, s.Count())
	require.InDelta(t, 3.0, s.Mean(), 1e-12)
	require.InDelta(t, 2.5, s.Variance(), 1e-12)

	_, err = Summarize(ds, "gate3")
	require.ErrorIs(t, err, errs.ErrSeriesNotFound)
}

func TestSeriesID(t *testing.T) {
	data, err := Pack([]dataset.Series{{Name: "gate1", Values: []float64{1}}})
	require.NoError(t, err)

	ds, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, SeriesID("gate1"), ds.Info().Series[0].ID)
	require.NotEqual(t, SeriesID("gate1"), SeriesID("gate2"))
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "times.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n4 5\n"), 0o600))

	s, err := AnalyzeFile(path)
	require.NoError(t, err)
	require.Equal(t, 5, s.Count())
	require.InDelta(t, 3.0, s.Mean(), 1e-12)

	_, err = AnalyzeFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestFitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "line.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n2 4\n3 6\n"), 0o600))

	r, err := FitFile(path)
	require.NoError(t, err)
	require.InDelta(t, 2.0, r.Slope(), 1e-12)
	require.InDelta(t, 0.0, r.Intercept(), 1e-12)
	require.InDelta(t, 1.0, r.R2(), 1e-12)

	r, err = FitFile(path, regression.WithKnownVariance(0.04))
	require.NoError(t, err)
	require.InDelta(t, 0.04/2, r.SlopeVariance(), 1e-12)

	short := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(short, []byte("1 2\n2 4\n"), 0o600))
	_, err = FitFile(short)
	require.ErrorIs(t, err, errs.ErrInsufficientSamples)
}
