// Package dataset stores and loads the raw measurement series that feed the
// statistics packages.
//
// Two input forms are supported:
//
//   - Plain text: ReadValues and ReadPairs parse whitespace-separated numbers
//     with '#' comments, one reading (or one x y pair) per line.
//   - Binary .msr files: Encoder packs named float64 series into a single
//     file with a fixed header, a 16-byte index entry per series, the series
//     names, a Raw or Gorilla encoded payload compressed with None, Zstd, S2
//     or LZ4, and a CRC32 trailer. Decode and ReadFile load it back.
//
// Example:
//
//	data, err := dataset.Pack([]dataset.Series{
//	    {Name: "t1", Values: t1},
//	    {Name: "t2", Values: t2},
//	}, dataset.WithCompression(format.CompressionS2))
//	if err != nil {
//	    return err
//	}
//
//	ds, err := dataset.Decode(data)
//	if err != nil {
//	    return err
//	}
//	summary := sample.Analyze(ds.All("t1"))
package dataset
