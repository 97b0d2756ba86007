package encoding

import "iter"

// ValueEncoder appends float64 series into one shared payload buffer.
//
// Values of consecutive series are written back to back. EndSeries closes the
// current series so the next Write starts a fresh, independently decodable
// run at Size().
type ValueEncoder interface {
	// Write appends a single value to the current series.
	Write(v float64)

	// WriteSlice appends values to the current series.
	WriteSlice(values []float64)

	// EndSeries closes the current series and aligns the payload so that the
	// next series starts on a byte boundary.
	EndSeries()

	// Bytes returns the encoded payload. The slice is valid until the next
	// Write or Finish and must not be modified.
	Bytes() []byte

	// Len returns the number of values written in total.
	Len() int

	// Size returns the payload size in bytes.
	Size() int

	// Finish returns the buffer to its pool. The encoder is unusable afterwards.
	Finish()
}

// ValueDecoder reads one series back from the bytes starting at its offset.
type ValueDecoder interface {
	// All yields up to count values. Malformed or short data yields fewer.
	All(data []byte, count int) iter.Seq[float64]

	// At returns the value at index, or false if index is out of range or the
	// data is short.
	At(data []byte, index int, count int) (float64, bool)
}
