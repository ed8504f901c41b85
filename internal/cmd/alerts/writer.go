package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/agentstation/esxsync/internal/cmd/output"
)

// Writer prints alerts.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(*Alert) error

// WriteAlert calls f.
func (f WriterFunc) WriteAlert(alert *Alert) error { return f(alert) }

// WriteAll writes the non-nil alerts in order and stops at the first error.
func WriteAll(w Writer, alerts ...*Alert) error {
	for _, a := range alerts {
		if a == nil {
			continue
		}
		if err := w.WriteAlert(a); err != nil {
			return err
		}
	}
	return nil
}

// WriterConfig controls what a FormatWriter prints.
type WriterConfig struct {
	ShowTimestamp bool
	ShowDetails   bool
	UseColor      bool // text only
}

// FormatWriter prints alerts in the command's output format: one JSON or
// YAML document per alert, or an icon line followed by indented details.
type FormatWriter struct {
	w      io.Writer
	format output.Format
	config WriterConfig
}

// NewFormatWriter returns a FormatWriter that shows details, and colors
// text when w is a terminal.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{
		w:      w,
		format: format,
		config: WriterConfig{ShowDetails: true, UseColor: isTerminal(w)},
	}
}

// WithConfig replaces the writer configuration.
func (fw *FormatWriter) WithConfig(config WriterConfig) *FormatWriter {
	fw.config = config
	return fw
}

func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	switch fw.format {
	case output.FormatJSON:
		enc := json.NewEncoder(fw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(fw.record(alert))
	case output.FormatYAML:
		enc := yaml.NewEncoder(fw.w)
		enc.SetIndent(2)
		if err := enc.Encode(fw.record(alert)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fw.writeText(alert)
}

// record is the structured form of an alert.
type record struct {
	Level     string   `json:"level" yaml:"level"`
	Message   string   `json:"message" yaml:"message"`
	Details   []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp string   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

func (fw *FormatWriter) record(alert *Alert) record {
	r := record{Level: alert.Level.String(), Message: alert.Message}
	if fw.config.ShowDetails {
		r.Details = alert.Details
	}
	if alert.Err != nil {
		r.Error = alert.Err.Error()
	}
	if fw.config.ShowTimestamp {
		r.Timestamp = alert.Timestamp.Time.Format(time.RFC3339)
	}
	return r
}

func (fw *FormatWriter) writeText(alert *Alert) error {
	line := alert.String()
	if fw.config.ShowTimestamp {
		line = alert.Timestamp.Time.Format(time.Kitchen) + " " + line
	}
	if fw.config.UseColor {
		line = alert.Level.Color() + line + resetColor
	}
	if _, err := fmt.Fprintln(fw.w, line); err != nil {
		return err
	}
	if !fw.config.ShowDetails {
		return nil
	}
	for _, d := range alert.Details {
		if _, err := fmt.Fprintf(fw.w, "   %s\n", d); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
