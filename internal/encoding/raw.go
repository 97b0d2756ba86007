package encoding

import (
	"iter"
	"math"

	"github.com/arloliu/mensura/endian"
	"github.com/arloliu/mensura/internal/pool"
)

const rawValueSize = 8

// RawEncoder stores each value as its 8-byte IEEE 754 representation in the
// engine's byte order.
type RawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ValueEncoder = (*RawEncoder)(nil)

// NewRawEncoder creates a raw encoder writing in the byte order of engine.
func NewRawEncoder(engine endian.EndianEngine) *RawEncoder {
	return &RawEncoder{
		buf:    pool.GetPayloadBuffer(),
		engine: engine,
	}
}

// Write appends a single value.
func (e *RawEncoder) Write(v float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.engine.PutUint64(e.buf.ExtendOrGrow(rawValueSize), math.Float64bits(v))
}

// WriteSlice appends values with a single buffer growth.
func (e *RawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if len(values) == 0 {
		return
	}

	e.count += len(values)
	region := e.buf.ExtendOrGrow(len(values) * rawValueSize)
	for i, v := range values {
		e.engine.PutUint64(region[i*rawValueSize:], math.Float64bits(v))
	}
}

// EndSeries is a no-op: raw values are always byte aligned.
func (e *RawEncoder) EndSeries() {}

// Bytes returns the encoded payload.
func (e *RawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *RawEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *RawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Finish returns the buffer to the pool.
func (e *RawEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
}

// RawDecoder decodes values written by RawEncoder. It is stateless.
type RawDecoder struct {
	engine endian.EndianEngine
}

var _ ValueDecoder = RawDecoder{}

// NewRawDecoder creates a raw decoder reading in the byte order of engine.
func NewRawDecoder(engine endian.EndianEngine) RawDecoder {
	return RawDecoder{engine: engine}
}

// All yields min(count, len(data)/8) values.
func (d RawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := min(count, len(data)/rawValueSize)
		for i := range n {
			if !yield(math.Float64frombits(d.engine.Uint64(data[i*rawValueSize:]))) {
				return
			}
		}
	}
}

// At returns the value at index in O(1).
func (d RawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	offset := index * rawValueSize
	if offset+rawValueSize > len(data) {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[offset:])), true
}

// RawByteLength returns the number of bytes count raw values occupy.
func RawByteLength(count int) int {
	return count * rawValueSize
}
