package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeriesID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, SeriesID(tt.data))
		})
	}
}

func TestSeriesIDDistinguishesGates(t *testing.T) {
	assert.NotEqual(t, SeriesID("gate1"), SeriesID("gate2"))
	assert.Equal(t, SeriesID("gate1"), SeriesID("gate1"))
}

func BenchmarkSeriesID(b *testing.B) {
	name := "incline_30deg/gate3/run-0042"
	for b.Loop() {
		SeriesID(name)
	}
}
