package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/config"
)

// ReportWriter is the interface for writing position reports.
// Different implementations handle different output formats (text, JSON).
type ReportWriter interface {
	// WriteReport writes a single report to the output.
	WriteReport(r *PositionReport) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer. For batch writers (like JSON), this also
	// writes any pending output.
	Close() error
}

// NewWriter returns the writer the configuration asks for.
func NewWriter(w io.Writer, cfg *config.Config) ReportWriter {
	if cfg.Output.JSONFormat {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg.Output.ShowBoard)
}

// TextWriter writes human-readable reports.
type TextWriter struct {
	w         io.Writer
	showBoard bool
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, showBoard bool) *TextWriter {
	return &TextWriter{w: w, showBoard: showBoard}
}

// WriteReport writes a report as text.
func (tw *TextWriter) WriteReport(r *PositionReport) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Position %d: %s\n", r.Index+1, r.FEN)
	if r.Error != "" {
		fmt.Fprintf(&sb, "Error: %s\n\n", r.Error)
		_, err := io.WriteString(tw.w, sb.String())
		return err
	}

	if tw.showBoard && r.board != nil {
		sb.WriteString(BoardString(r.board, r.highlight))
	}
	if len(r.History) > 0 {
		fmt.Fprintf(&sb, "Moves: %s\n", strings.Join(r.History, " "))
	}

	fmt.Fprintf(&sb, "%s to move", r.Turn)
	switch {
	case r.Checkmated:
		sb.WriteString(", checkmated")
	case r.InCheck:
		sb.WriteString(", in check")
	}
	if r.Winner != "" {
		fmt.Fprintf(&sb, ". %s wins", r.Winner)
	}
	sb.WriteString(".\n")
	if r.Duplicate {
		sb.WriteString("Repeats an earlier position.\n")
	}

	if r.InCheck && !r.Checkmated {
		fmt.Fprintf(&sb, "Allowable: %s\n", strings.Join(r.Allowable, " "))
	}

	from := maps.Keys(r.Legal)
	slices.Sort(from)
	for _, sq := range from {
		fmt.Fprintf(&sb, "  %s: %s\n", sq, strings.Join(r.Legal[sq], " "))
	}

	if ref := r.Reference; ref != nil {
		verdict := "agrees"
		if !ref.Agrees {
			verdict = "DISAGREES"
		}
		fmt.Fprintf(&sb, "Reference %s: %d legal moves, check=%t, mate=%t\n",
			verdict, len(ref.Moves), ref.InCheck, ref.Checkmated)
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(tw.w, sb.String())
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Positions []*PositionReport `json:"positions"`
}

// JSONWriter writes reports in JSON format.
// It buffers reports and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	reports []*PositionReport
	single  bool // If true, write each report immediately instead of batching
}

// NewJSONWriter creates a new batching JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each report immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteReport buffers a report (or writes it immediately in single mode).
func (jw *JSONWriter) WriteReport(r *PositionReport) error {
	if jw.single {
		return jw.encode(r)
	}
	jw.reports = append(jw.reports, r)
	return nil
}

// Flush writes all buffered reports as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.reports) == 0 {
		return nil
	}
	err := jw.encode(&JSONOutput{Positions: jw.reports})
	jw.reports = jw.reports[:0]
	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

func (jw *JSONWriter) encode(v interface{}) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
