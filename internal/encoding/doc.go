// Package encoding implements the value and name codecs of the dataset
// payload.
//
// Values:
//   - RawEncoder / RawDecoder: 8 bytes per float64 in the file's byte order.
//   - GorillaEncoder / GorillaDecoder: XOR bit-packing per series.
//
// Both encoders write every series of a dataset into one pooled buffer and
// satisfy ValueEncoder. A series starts at the Size() observed before its
// first Write and ends with EndSeries; the dataset index keeps that offset
// and the value count.
//
// Names are stored once per dataset with EncodeSeriesNames so that lookups
// by name can be verified against the xxHash64 IDs in the index.
package encoding
