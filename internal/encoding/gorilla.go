package encoding

import (
	"encoding/binary"
	"iter"
	"math"
	"math/bits"

	"github.com/arloliu/mensura/internal/pool"
)

// GorillaEncoder compresses float64 series with the XOR scheme from
// Facebook's Gorilla paper.
//
// Per series, the first value is stored in full and every following value is
// XORed with its predecessor:
//   - unchanged value: '0'
//   - meaningful bits inside the previous window: '10' + bits
//   - new window: '11' + 5-bit leading zeros + 6-bit length-1 + bits
//
// Repeated measurements of a stable quantity share sign, exponent and most of
// the mantissa, so a run of readings usually costs 12-30 bits per value
// instead of 64.
type GorillaEncoder struct {
	bitBuf        uint64
	prevValue     uint64
	bitCount      int
	seriesCount   int
	prevLeading   int
	prevTrailing  int
	prevBlockSize int
	count         int

	buf *pool.ByteBuffer
}

var _ ValueEncoder = (*GorillaEncoder)(nil)

// NewGorillaEncoder creates a Gorilla encoder backed by a pooled payload buffer.
func NewGorillaEncoder() *GorillaEncoder {
	return &GorillaEncoder{buf: pool.GetPayloadBuffer()}
}

// Write appends a single value to the current series.
func (e *GorillaEncoder) Write(v float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.write(math.Float64bits(v))
}

// WriteSlice appends values to the current series. Runs of a repeated value
// are written as a block of zero bits.
func (e *GorillaEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	for i := 0; i < len(values); {
		valBits := math.Float64bits(values[i])
		if e.seriesCount == 0 || valBits != e.prevValue {
			e.write(valBits)
			i++

			continue
		}

		j := i + 1
		for j < len(values) && math.Float64bits(values[j]) == valBits {
			j++
		}

		run := j - i
		for rest := run; rest > 0; rest -= 64 {
			e.writeBits(0, min(rest, 64))
		}
		e.seriesCount += run
		e.count += run
		i = j
	}
}

func (e *GorillaEncoder) write(valBits uint64) {
	e.count++
	e.seriesCount++

	if e.seriesCount == 1 {
		e.prevValue = valBits
		e.writeBits(valBits, 64)

		return
	}

	xor := valBits ^ e.prevValue
	e.prevValue = valBits

	if xor == 0 {
		e.writeBits(0, 1)
		return
	}

	leading := bits.LeadingZeros64(xor)
	trailing := bits.TrailingZeros64(xor)

	// Leading zeros are stored in 5 bits.
	if leading > 31 {
		leading = 31
	}

	if e.prevBlockSize > 0 && leading >= e.prevLeading && trailing >= e.prevTrailing {
		e.writeBits(0b10, 2)
		e.writeBits(xor>>e.prevTrailing, e.prevBlockSize)

		return
	}

	blockSize := 64 - leading - trailing
	e.writeBits(0b11, 2)
	e.writeBits(uint64(leading), 5)     //nolint:gosec // 0-31
	e.writeBits(uint64(blockSize-1), 6) //nolint:gosec // 0-63
	e.writeBits(xor>>trailing, blockSize)

	e.prevLeading = leading
	e.prevTrailing = trailing
	e.prevBlockSize = blockSize
}

// writeBits appends the numBits (1-64) low bits of value.
func (e *GorillaEncoder) writeBits(value uint64, numBits int) {
	if numBits < 64 {
		value &= (1 << numBits) - 1
	}

	available := 64 - e.bitCount
	if numBits < available {
		e.bitBuf = (e.bitBuf << numBits) | value
		e.bitCount += numBits

		return
	}

	// Fill the buffer, flush it, keep the remainder.
	rest := numBits - available
	if available == 64 {
		e.bitBuf = value >> rest
	} else {
		e.bitBuf = (e.bitBuf << available) | (value >> rest)
	}
	e.bitCount = 64
	e.flushBits()

	if rest > 0 {
		e.bitBuf = value & ((1 << rest) - 1)
		e.bitCount = rest
	}
}

// flushBits writes the pending bits, padded with zeros to a byte boundary.
func (e *GorillaEncoder) flushBits() {
	if e.bitCount == 0 {
		return
	}

	numBytes := (e.bitCount + 7) / 8
	aligned := e.bitBuf << (64 - e.bitCount)
	out := e.buf.ExtendOrGrow(numBytes)

	if numBytes == 8 {
		binary.BigEndian.PutUint64(out, aligned)
	} else {
		for i := range numBytes {
			out[i] = byte(aligned >> (56 - i*8))
		}
	}

	e.bitBuf = 0
	e.bitCount = 0
}

// EndSeries flushes the current series and resets the XOR state, so the next
// value starts a new series at Size().
func (e *GorillaEncoder) EndSeries() {
	if e.buf == nil {
		panic("encoder already finished - cannot end series after Finish()")
	}

	e.flushBits()
	e.prevValue = 0
	e.seriesCount = 0
	e.prevLeading = 0
	e.prevTrailing = 0
	e.prevBlockSize = 0
}

// Bytes returns the encoded payload, flushing any pending bits first.
func (e *GorillaEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	e.flushBits()

	return e.buf.Bytes()
}

// Len returns the number of values written across all series.
func (e *GorillaEncoder) Len() int {
	return e.count
}

// Size returns the number of bytes flushed so far. Pending bits of an open
// series are not included until EndSeries or Bytes.
func (e *GorillaEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Finish returns the buffer to the pool.
func (e *GorillaEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
}

// GorillaDecoder decodes series written by GorillaEncoder. It is stateless
// and safe for concurrent use.
type GorillaDecoder struct{}

var _ ValueDecoder = GorillaDecoder{}

// NewGorillaDecoder returns a Gorilla decoder.
func NewGorillaDecoder() GorillaDecoder {
	return GorillaDecoder{}
}

// All yields up to count values from data.
func (d GorillaDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		d.walk(data, count, func(_ int, v float64) bool {
			return yield(v)
		})
	}
}

// At decodes sequentially up to index. Gorilla has no random access.
func (d GorillaDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	var (
		found bool
		value float64
	)
	d.walk(data, index+1, func(i int, v float64) bool {
		if i == index {
			found = true
			value = v
		}

		return true
	})

	return value, found
}

// ByteLength returns the number of bytes the first count values occupy in
// data, or -1 if data is too short.
func (d GorillaDecoder) ByteLength(data []byte, count int) int {
	if count == 0 {
		return 0
	}

	br := newBitReader(data)
	decoded := d.walkReader(br, count, func(int, float64) bool { return true })
	if decoded != count {
		return -1
	}

	return br.consumedBytes()
}

func (d GorillaDecoder) walk(data []byte, count int, fn func(int, float64) bool) {
	if len(data) == 0 || count <= 0 {
		return
	}

	d.walkReader(newBitReader(data), count, fn)
}

// walkReader decodes up to count values and returns how many it produced.
func (GorillaDecoder) walkReader(br *bitReader, count int, fn func(int, float64) bool) int {
	prev, ok := br.readBits(64)
	if !ok {
		return 0
	}
	if !fn(0, math.Float64frombits(prev)) {
		return 1
	}

	trailing, blockSize := 0, 0
	for i := 1; i < count; i++ {
		control, ok := br.readBit()
		if !ok {
			return i
		}

		if control == 1 {
			window, ok := br.readBit()
			if !ok {
				return i
			}

			if window == 1 {
				leading, ok1 := br.readBits(5)
				size, ok2 := br.readBits(6)
				if !ok1 || !ok2 {
					return i
				}
				blockSize = int(size) + 1 //nolint:gosec // 1-64
				trailing = 64 - int(leading) - blockSize //nolint:gosec // 0-31
				if trailing < 0 {
					return i
				}
			} else if blockSize == 0 {
				return i
			}

			meaningful, ok := br.readBits(blockSize)
			if !ok {
				return i
			}
			prev ^= meaningful << trailing
		}

		if !fn(i, math.Float64frombits(prev)) {
			return i + 1
		}
	}

	return count
}

// bitReader reads a big-endian bit stream.
type bitReader struct {
	data     []byte
	bytePos  int
	bitBuf   uint64
	bitCount int
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (br *bitReader) readBit() (uint64, bool) {
	if br.bitCount == 0 && !br.fill() {
		return 0, false
	}

	bit := br.bitBuf >> 63
	br.bitBuf <<= 1
	br.bitCount--

	return bit, true
}

// readBits reads numBits (0-64) bits, right aligned.
func (br *bitReader) readBits(numBits int) (uint64, bool) {
	var result uint64
	for numBits > 0 {
		if br.bitCount == 0 && !br.fill() {
			return 0, false
		}

		n := min(numBits, br.bitCount)
		chunk := br.bitBuf >> (64 - n)
		if n == 64 {
			result = chunk
			br.bitBuf = 0
		} else {
			result = (result << n) | chunk
			br.bitBuf <<= n
		}
		br.bitCount -= n
		numBits -= n
	}

	return result, true
}

// fill loads up to 8 bytes, left aligned.
func (br *bitReader) fill() bool {
	remaining := len(br.data) - br.bytePos
	if remaining <= 0 {
		return false
	}

	if remaining >= 8 {
		br.bitBuf = binary.BigEndian.Uint64(br.data[br.bytePos:])
		br.bytePos += 8
		br.bitCount = 64

		return true
	}

	br.bitBuf = 0
	for i := range remaining {
		br.bitBuf |= uint64(br.data[br.bytePos+i]) << (56 - i*8)
	}
	br.bytePos += remaining
	br.bitCount = remaining * 8

	return true
}

// consumedBytes returns the bytes read so far, rounded up to a whole byte.
func (br *bitReader) consumedBytes() int {
	return br.bytePos - br.bitCount/8
}
