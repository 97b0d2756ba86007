package dataset

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/mensura/compress"
	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/format"
	ienc "github.com/arloliu/mensura/internal/encoding"
	"github.com/arloliu/mensura/section"
)

// Series is a named sequence of measurements.
type Series struct {
	Name   string
	Values []float64
}

// Pack encodes series, in order, into a dataset file.
func Pack(series []Series, opts ...EncoderOption) ([]byte, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	for _, s := range series {
		if err := enc.AddSeries(s.Name, s.Values); err != nil {
			_, _ = enc.Finish()
			return nil, err
		}
	}

	return enc.Finish()
}

// Dataset is a decoded dataset file. It is read-only and safe for
// concurrent use.
type Dataset struct {
	header   section.Header
	entries  []section.IndexEntry
	names    []string
	byName   map[string]int
	payload  []byte
	decoder  ienc.ValueDecoder
	fileSize int
}

// Len returns the number of series.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Names returns the series names in file order.
func (d *Dataset) Names() []string {
	return slices.Clone(d.names)
}

// Has reports whether the dataset holds a series called name.
func (d *Dataset) Has(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// Count returns the number of values of series name, or 0 if it is absent.
func (d *Dataset) Count(name string) int {
	i, ok := d.byName[name]
	if !ok {
		return 0
	}

	return int(d.entries[i].Count)
}

// All iterates over the values of series name. An absent series yields
// nothing.
func (d *Dataset) All(name string) iter.Seq[float64] {
	i, ok := d.byName[name]
	if !ok {
		return func(func(float64) bool) {}
	}

	entry := d.entries[i]

	return d.decoder.All(d.payload[entry.Offset:], int(entry.Count))
}

// Values returns a copy of the values of series name.
func (d *Dataset) Values(name string) ([]float64, error) {
	i, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrSeriesNotFound, name)
	}

	values := make([]float64, 0, d.entries[i].Count)
	for v := range d.All(name) {
		values = append(values, v)
	}

	return values, nil
}

// ValueAt returns the value at index of series name.
func (d *Dataset) ValueAt(name string, index int) (float64, bool) {
	i, ok := d.byName[name]
	if !ok {
		return 0, false
	}

	entry := d.entries[i]

	return d.decoder.At(d.payload[entry.Offset:], index, int(entry.Count))
}

// Series returns every series in file order.
func (d *Dataset) Series() []Series {
	out := make([]Series, 0, len(d.names))
	for _, name := range d.names {
		values, _ := d.Values(name)
		out = append(out, Series{Name: name, Values: values})
	}

	return out
}

// Encoding returns the value encoding of the file.
func (d *Dataset) Encoding() format.EncodingType {
	return d.header.Flag.Encoding
}

// Compression returns the payload codec of the file.
func (d *Dataset) Compression() format.CompressionType {
	return d.header.Flag.Compression
}

// IsBigEndian reports the byte order of the file.
func (d *Dataset) IsBigEndian() bool {
	return d.header.Flag.IsBigEndian()
}

// SeriesInfo describes one series of a dataset.
type SeriesInfo struct {
	Name string
	ID   uint64
	// Count is the number of values.
	Count int
	// EncodedSize is the number of payload bytes the series occupies before
	// compression.
	EncodedSize int
}

// Info summarizes a dataset file.
type Info struct {
	Encoding    format.EncodingType
	Compression format.CompressionType
	BigEndian   bool
	FileSize    int
	Payload     compress.CompressionStats
	Series      []SeriesInfo
}

// Info returns the layout and sizes of the dataset.
func (d *Dataset) Info() Info {
	info := Info{
		Encoding:    d.Encoding(),
		Compression: d.Compression(),
		BigEndian:   d.IsBigEndian(),
		FileSize:    d.fileSize,
		Payload: compress.CompressionStats{
			Algorithm:      d.Compression(),
			OriginalSize:   int64(len(d.payload)),
			CompressedSize: int64(d.header.PayloadLength),
		},
		Series: make([]SeriesInfo, len(d.entries)),
	}

	for i, entry := range d.entries {
		info.Series[i] = SeriesInfo{
			Name:        d.names[i],
			ID:          entry.SeriesID,
			Count:       int(entry.Count),
			EncodedSize: d.byteLength(entry),
		}
	}

	return info
}

// byteLength returns the encoded size of a series, or -1 if it does not fit
// in the payload.
func (d *Dataset) byteLength(entry section.IndexEntry) int {
	data := d.payload[entry.Offset:]
	count := int(entry.Count)

	if d.header.Flag.Encoding == format.TypeRaw {
		if n := ienc.RawByteLength(count); n <= len(data) {
			return n
		}

		return -1
	}

	return ienc.NewGorillaDecoder().ByteLength(data, count)
}
