// Package commands implements the hap-log CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hap-protocol/hap-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter = log.Filter

// RunView reads the log file and writes matching events to w.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp OPERATION characteristic (type)
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s %-11s %s", ts, event.Operation.String(), event.Characteristic)
	if event.Type != "" {
		fmt.Fprintf(w, " (%s)", shortenType(event.Type))
	}
	fmt.Fprintln(w)

	if event.Value != nil {
		fmt.Fprintf(w, "  Value: %s\n", formatValue(event.Value))
	}
	if event.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(event.Duration))
	}
	if event.Replaced {
		fmt.Fprintln(w, "  Replaced previous callback")
	}
	if event.Failed() {
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenType returns the short form of an Apple-base type UUID.
func shortenType(typ string) string {
	const suffix = "-0000-1000-8000-0026bb765291"
	lower := strings.ToLower(typ)
	if !strings.HasSuffix(lower, suffix) || len(lower) < 8 {
		return typ
	}
	short := strings.TrimLeft(strings.ToUpper(lower[:8]), "0")
	if short == "" {
		return "0"
	}
	return short
}

// formatValue renders a decoded CBOR value as JSON where possible.
func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseOperationFlag parses an operation name from a command-line flag
// (case-insensitive).
func ParseOperationFlag(s string) (log.Operation, error) {
	op, ok := log.ParseOperation(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("unknown operation: %s (valid: read, write, subscribe, unsubscribe, notify)", s)
	}
	return op, nil
}

// ParseTimeFlag parses an RFC3339 time from a command-line flag.
func ParseTimeFlag(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", name, err)
	}
	return &t, nil
}
