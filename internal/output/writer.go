package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chessrules-go/internal/config"
)

// RecordWriter is the interface for writing session records to output.
// Different implementations handle different output formats (text, JSON).
type RecordWriter interface {
	// WriteRecord writes a single record to the output.
	WriteRecord(r *Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewWriter returns the writer cfg asks for.
func NewWriter(w io.Writer, cfg *config.OutputConfig) RecordWriter {
	if cfg.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes records as movetext.
type TextWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteRecord writes a record immediately.
func (tw *TextWriter) WriteRecord(r *Record) error {
	WriteText(tw.w, r, tw.cfg)
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes records in JSON format.
// It buffers records and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	cfg     *config.OutputConfig
	records []*Record
	single  bool // If true, write each record immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches records and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{
		w:       w,
		cfg:     cfg,
		records: make([]*Record, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each record immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteRecord buffers a record for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteRecord(r *Record) error {
	if jw.single {
		return encodeIndented(jw.w, RecordToJSON(r, jw.cfg))
	}
	jw.records = append(jw.records, r)
	return nil
}

// Flush writes all buffered records as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.records) == 0 {
		return nil
	}

	out := &JSONOutput{
		Games: make([]*JSONRecord, 0, len(jw.records)),
	}
	for _, r := range jw.records {
		out.Games = append(out.Games, RecordToJSON(r, jw.cfg))
	}

	err := encodeIndented(jw.w, out)
	jw.records = jw.records[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

func encodeIndented(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
