package dataset

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/arloliu/mensura/compress"
	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/format"
	"github.com/arloliu/mensura/internal/collision"
	ienc "github.com/arloliu/mensura/internal/encoding"
	"github.com/arloliu/mensura/internal/options"
	"github.com/arloliu/mensura/internal/pool"
	"github.com/arloliu/mensura/section"
)

// Encoder builds a dataset file from named float64 series.
//
// Usage:
//
//	enc, err := dataset.NewEncoder(dataset.WithCompression(format.CompressionS2))
//	if err != nil {
//	    return err
//	}
//	_ = enc.StartSeries("t1")
//	_ = enc.AddValues(readings)
//	_ = enc.EndSeries()
//	data, err := enc.Finish()
//
// Note: The Encoder is NOT thread-safe and NOT reusable after Finish.
type Encoder struct {
	header     section.Header
	codec      compress.Codec
	valEncoder ienc.ValueEncoder
	tracker    *collision.Tracker
	entries    []section.IndexEntry

	curID     uint64
	curName   string
	curOffset int
	curStart  int
	started   bool
	finished  bool
}

// NewEncoder creates an encoder. Without options it writes little-endian,
// Gorilla-encoded, Zstd-compressed datasets.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := &encoderConfig{flag: section.NewFlag()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header := section.NewHeader()
	header.Flag = cfg.flag

	codec, err := compress.GetCodec(header.Flag.Compression)
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		header:  *header,
		codec:   codec,
		tracker: collision.NewTracker(),
	}

	switch header.Flag.Encoding { //nolint:exhaustive
	case format.TypeRaw:
		e.valEncoder = ienc.NewRawEncoder(header.Flag.EndianEngine())
	case format.TypeGorilla:
		e.valEncoder = ienc.NewGorillaEncoder()
	default:
		return nil, fmt.Errorf("invalid value encoding: %s", header.Flag.Encoding)
	}

	return e, nil
}

// StartSeries begins a new series called name.
//
// Returns:
//   - errs.ErrEncoderFinished after Finish
//   - errs.ErrSeriesAlreadyStarted if the previous series was not ended
//   - errs.ErrInvalidSeriesName, errs.ErrDuplicateSeries or errs.ErrHashCollision
func (e *Encoder) StartSeries(name string) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	if e.started {
		return fmt.Errorf("%w: series %q is still open", errs.ErrSeriesAlreadyStarted, e.curName)
	}

	id, err := e.tracker.Track(name)
	if err != nil {
		return err
	}

	e.curID = id
	e.curName = name
	e.curOffset = e.valEncoder.Size()
	e.curStart = e.valEncoder.Len()
	e.started = true

	return nil
}

// AddValue appends one value to the open series.
func (e *Encoder) AddValue(v float64) error {
	if err := e.checkOpen(); err != nil {
		return err
	}

	e.valEncoder.Write(v)

	return nil
}

// AddValues appends values to the open series.
func (e *Encoder) AddValues(values []float64) error {
	if err := e.checkOpen(); err != nil {
		return err
	}

	e.valEncoder.WriteSlice(values)

	return nil
}

func (e *Encoder) checkOpen() error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	if !e.started {
		return errs.ErrSeriesNotStarted
	}

	return nil
}

// EndSeries closes the open series and records its index entry. A series
// must hold at least one value.
func (e *Encoder) EndSeries() error {
	if err := e.checkOpen(); err != nil {
		return err
	}

	count := e.valEncoder.Len() - e.curStart
	if count == 0 {
		return fmt.Errorf("%w: series %q has no values", errs.ErrValueCountMismatch, e.curName)
	}

	e.valEncoder.EndSeries()

	entry, err := section.NewIndexEntry(e.curID, e.curOffset, count)
	if err != nil {
		return fmt.Errorf("series %q: %w", e.curName, err)
	}
	e.entries = append(e.entries, entry)
	e.started = false

	return nil
}

// AddSeries is StartSeries, AddValues and EndSeries in one call.
func (e *Encoder) AddSeries(name string, values []float64) error {
	if err := e.StartSeries(name); err != nil {
		return err
	}

	if err := e.AddValues(values); err != nil {
		return err
	}

	return e.EndSeries()
}

// SeriesCount returns the number of completed series.
func (e *Encoder) SeriesCount() int {
	return len(e.entries)
}

// Finish compresses the payload and returns the complete dataset file.
// The encoder releases its buffers and cannot be used afterwards.
//
// Returns:
//   - errs.ErrSeriesNotEnded if a series is still open
//   - errs.ErrNoSeriesAdded if no series was added
//   - errs.ErrOffsetOutOfRange if the file would exceed 4 GiB
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true
	defer e.valEncoder.Finish()

	if e.started {
		return nil, fmt.Errorf("%w: %q", errs.ErrSeriesNotEnded, e.curName)
	}

	if len(e.entries) == 0 {
		return nil, errs.ErrNoSeriesAdded
	}

	payload, err := e.codec.Compress(e.valEncoder.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}

	engine := e.header.Flag.EndianEngine()
	names := ienc.EncodeSeriesNames(nil, e.tracker.Names())

	header := e.header
	header.SeriesCount = uint32(len(e.entries))                                            //nolint:gosec // bounded by MaxOffset below
	header.NamesOffset = header.IndexOffset + uint32(len(e.entries)*section.IndexEntrySize) //nolint:gosec
	header.PayloadOffset = header.NamesOffset + uint32(len(names))                         //nolint:gosec
	header.PayloadLength = uint32(len(payload))                                            //nolint:gosec

	size := section.HeaderSize + len(e.entries)*section.IndexEntrySize + len(names) + len(payload) + section.TrailerSize
	if size > math.MaxUint32 {
		return nil, fmt.Errorf("%w: dataset of %d bytes", errs.ErrOffsetOutOfRange, size)
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	buf.Grow(size)
	_, _ = buf.Write(header.Bytes())
	for _, entry := range e.entries {
		buf.B = entry.AppendTo(buf.B, engine)
	}
	_, _ = buf.Write(names)
	_, _ = buf.Write(payload)
	buf.B = engine.AppendUint32(buf.B, crc32.ChecksumIEEE(buf.Bytes()))

	return bytes.Clone(buf.Bytes()), nil
}
