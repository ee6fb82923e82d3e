package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// TraceAnt is one ant in a trace frame.
type TraceAnt struct {
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Carrying bool    `json:"carrying,omitempty"`
	Nest     int     `json:"nest"`
}

// TraceFrame is one JSONL line of the ant trace.
type TraceFrame struct {
	Tick          int32      `json:"tick"`
	FoodRemaining []int      `json:"food_remaining"`
	FoodStored    []int      `json:"food_stored"`
	Ants          []TraceAnt `json:"ants"`
}

// TraceWriter writes zstd-compressed JSONL frames of the colony, one per stats window.
// It is for offline analysis only and is never read back by the simulation.
type TraceWriter struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewTraceWriter creates dir/ants.jsonl.zst.
func NewTraceWriter(dir string) (*TraceWriter, error) {
	path := filepath.Join(dir, "ants.jsonl.zst")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating trace encoder: %w", err)
	}
	return &TraceWriter{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// WriteFrame appends one frame.
func (t *TraceWriter) WriteFrame(frame TraceFrame) error {
	if t == nil {
		return nil
	}
	b, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Close flushes and closes the trace.
func (t *TraceWriter) Close() error {
	if t == nil {
		return nil
	}
	err := t.w.Flush()
	if cerr := t.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := t.f.Close(); err == nil {
		err = cerr
	}
	return err
}
