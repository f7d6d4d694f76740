// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/parlance-dev/parlance/lib/codec"
	"github.com/parlance-dev/parlance/lib/parser"
)

// Span is one component's parse span within a dispatch. Start and End
// index the line the component parsed against; when a flag scan
// removed tokens, that is the residual line rather than Record.Line.
type Span struct {
	Component string        `cbor:"component"`
	Success   bool          `cbor:"success"`
	Start     int           `cbor:"start"`
	End       int           `cbor:"end"`
	Consumed  string        `cbor:"consumed,omitempty"`
	Duration  time.Duration `cbor:"duration_ns"`
}

// Record is one dispatched command line with its outcome.
type Record struct {
	Time    time.Time     `cbor:"time"`
	Sender  string        `cbor:"sender"`
	Line    string        `cbor:"line"`
	Command string        `cbor:"command,omitempty"`
	Error   string        `cbor:"error,omitempty"`
	Elapsed time.Duration `cbor:"elapsed_ns"`
	Spans   []Span        `cbor:"spans,omitempty"`
}

// spansFrom converts the context's parsing records, in first-parse
// order.
func spansFrom(ctx *parser.Context) []Span {
	records := ctx.ParsingRecords()
	if len(records) == 0 {
		return nil
	}
	spans := make([]Span, len(records))
	for i, record := range records {
		spans[i] = Span{
			Component: record.Component,
			Success:   record.Success,
			Start:     record.Start,
			End:       record.End,
			Consumed:  record.Consumed,
			Duration:  record.Duration,
		}
	}
	return spans
}

// Writer appends records to a zstd-compressed CBOR stream. Safe for
// concurrent Write calls, so one writer can serve a pool
// coordinator.
type Writer struct {
	mu      sync.Mutex
	zstd    *zstd.Encoder
	encoder *codec.Encoder
	closed  bool
}

// NewWriter wraps out. Close must be called to flush the compressor's
// final frame.
func NewWriter(out io.Writer) (*Writer, error) {
	compressor, err := zstd.NewWriter(out)
	if err != nil {
		return nil, fmt.Errorf("trace: create compressor: %w", err)
	}
	return &Writer{
		zstd:    compressor,
		encoder: codec.NewEncoder(compressor),
	}, nil
}

// Write appends one record.
func (w *Writer) Write(record Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New("trace: writer is closed")
	}
	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("trace: encode record: %w", err)
	}
	return nil
}

// Close flushes and finalizes the compressed stream. The underlying
// writer is not closed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.zstd.Close(); err != nil {
		return fmt.Errorf("trace: close compressor: %w", err)
	}
	return nil
}

// Reader iterates a stream produced by Writer.
type Reader struct {
	zstd    *zstd.Decoder
	decoder *codec.Decoder
}

// NewReader wraps in.
func NewReader(in io.Reader) (*Reader, error) {
	decompressor, err := zstd.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("trace: create decompressor: %w", err)
	}
	return &Reader{
		zstd:    decompressor,
		decoder: codec.NewDecoder(decompressor.IOReadCloser()),
	}, nil
}

// Read returns the next record, or io.EOF at end of stream.
func (r *Reader) Read() (Record, error) {
	var record Record
	if err := r.decoder.Decode(&record); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("trace: decode record: %w", err)
	}
	return record, nil
}

// ReadAll drains the stream.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

// Close releases the decompressor.
func (r *Reader) Close() { r.zstd.Close() }
