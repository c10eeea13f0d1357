package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hap-protocol/hap-go/pkg/log"
)

const exportTimeLayout = "2006-01-02T15:04:05.000000Z"

// recordWriter writes exported events in one output format.
type recordWriter interface {
	write(event log.Event) error
	flush() error
}

// RunExport converts the log file at path to format ("jsonl" or "csv"),
// writing to output or stdout.
func RunExport(path, format, output string) error {
	newWriter, ok := exportFormats[format]
	if !ok {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	rw, err := newWriter(w)
	if err != nil {
		return err
	}
	for event, err := range reader.Events() {
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := rw.write(event); err != nil {
			return err
		}
	}
	return rw.flush()
}

var exportFormats = map[string]func(io.Writer) (recordWriter, error){
	"jsonl": newJSONLWriter,
	"csv":   newCSVWriter,
}

// jsonEvent is the JSON form of an event.
type jsonEvent struct {
	Timestamp      string `json:"timestamp"`
	Operation      string `json:"operation"`
	Characteristic string `json:"characteristic"`
	Type           string `json:"type,omitempty"`
	Value          any    `json:"value,omitempty"`
	Error          string `json:"error,omitempty"`
	DurationNs     int64  `json:"duration_ns,omitempty"`
	Replaced       bool   `json:"replaced,omitempty"`
}

type jsonlWriter struct {
	enc *json.Encoder
}

func newJSONLWriter(w io.Writer) (recordWriter, error) {
	return jsonlWriter{enc: json.NewEncoder(w)}, nil
}

func (j jsonlWriter) write(event log.Event) error {
	err := j.enc.Encode(jsonEvent{
		Timestamp:      event.Timestamp.UTC().Format(exportTimeLayout),
		Operation:      event.Operation.String(),
		Characteristic: event.Characteristic,
		Type:           event.Type,
		Value:          event.Value,
		Error:          event.Error,
		DurationNs:     event.Duration.Nanoseconds(),
		Replaced:       event.Replaced,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return nil
}

func (jsonlWriter) flush() error { return nil }

var csvHeader = []string{"timestamp", "operation", "characteristic", "type", "value", "error", "duration_ns"}

type csvWriter struct {
	w *csv.Writer
}

func newCSVWriter(w io.Writer) (recordWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return csvWriter{w: cw}, nil
}

func (c csvWriter) write(event log.Event) error {
	var value string
	if event.Value != nil {
		value = formatValue(event.Value)
	}
	err := c.w.Write([]string{
		event.Timestamp.UTC().Format(exportTimeLayout),
		event.Operation.String(),
		event.Characteristic,
		event.Type,
		value,
		event.Error,
		strconv.FormatInt(event.Duration.Nanoseconds(), 10),
	})
	if err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

func (c csvWriter) flush() error {
	c.w.Flush()
	return c.w.Error()
}
