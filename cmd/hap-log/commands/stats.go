package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hap-protocol/hap-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByOperation map[log.Operation]int
	Characteristics   map[string]*CharacteristicStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// CharacteristicStats holds statistics for a single characteristic.
type CharacteristicStats struct {
	Events        int
	Reads         int
	Writes        int
	Notifications int
	Errors        int
	TotalDuration time.Duration
	MaxDuration   time.Duration
	timed         int
}

// MeanDuration returns the mean duration of timed operations.
func (c *CharacteristicStats) MeanDuration() time.Duration {
	if c.timed == 0 {
		return 0
	}
	return c.TotalDuration / time.Duration(c.timed)
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := collectStats(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByOperation: make(map[log.Operation]int),
		Characteristics:   make(map[string]*CharacteristicStats),
	}

	for event, err := range reader.Events() {
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByOperation[event.Operation]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		cs, ok := stats.Characteristics[event.Characteristic]
		if !ok {
			cs = &CharacteristicStats{}
			stats.Characteristics[event.Characteristic] = cs
		}
		cs.Events++
		switch event.Operation {
		case log.OperationRead:
			cs.Reads++
		case log.OperationWrite:
			cs.Writes++
		case log.OperationNotify:
			cs.Notifications++
		}
		if event.Duration > 0 {
			cs.timed++
			cs.TotalDuration += event.Duration
			if event.Duration > cs.MaxDuration {
				cs.MaxDuration = event.Duration
			}
		}

		// Count errors
		if event.Failed() {
			stats.Errors++
			cs.Errors++
		}
	}
	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Characteristic Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by operation
	fmt.Fprintln(w, "Events by Operation:")
	for _, op := range []log.Operation{
		log.OperationRead, log.OperationWrite, log.OperationSubscribe,
		log.OperationUnsubscribe, log.OperationNotify,
	} {
		if count := stats.EventsByOperation[op]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", op.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Characteristics
	fmt.Fprintf(w, "Characteristics: %d\n", len(stats.Characteristics))
	if len(stats.Characteristics) > 0 {
		names := make([]string, 0, len(stats.Characteristics))
		for name := range stats.Characteristics {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w)
		for _, name := range names {
			cs := stats.Characteristics[name]
			fmt.Fprintf(w, "  %s: %d events (read %d, write %d, notify %d)\n",
				name, cs.Events, cs.Reads, cs.Writes, cs.Notifications)
			if cs.timed > 0 {
				fmt.Fprintf(w, "           Latency: mean %s, max %s\n",
					formatDuration(cs.MeanDuration()), formatDuration(cs.MaxDuration))
			}
			if cs.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", cs.Errors)
			}
		}
	}

	// Errors
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
