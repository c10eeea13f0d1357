package commands

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hap-protocol/hap-go/pkg/catalog"
	"github.com/hap-protocol/hap-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output         string
	Operation      string
	Characteristic string
	Type           string
	TimeStart      string
	TimeEnd        string
	FailedOnly     bool
}

// BuildFilter converts command-line options into a log filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		Characteristic: opts.Characteristic,
		FailedOnly:     opts.FailedOnly,
	}

	var err error
	if filter.TimeStart, err = ParseTimeFlag("time-start", opts.TimeStart); err != nil {
		return log.Filter{}, err
	}
	if filter.TimeEnd, err = ParseTimeFlag("time-end", opts.TimeEnd); err != nil {
		return log.Filter{}, err
	}

	if opts.Type != "" {
		if filter.Type, err = ParseTypeFlag(opts.Type); err != nil {
			return log.Filter{}, err
		}
	}

	if opts.Operation != "" {
		op, err := ParseOperationFlag(opts.Operation)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Operation = &op
	}
	return filter, nil
}

// ParseTypeFlag resolves a catalog name ("RotationSpeed") or a type UUID to
// the UUID form recorded in events.
func ParseTypeFlag(value string) (string, error) {
	if def, err := catalog.Characteristic(value); err == nil {
		return def.Identity().Type.String(), nil
	}
	u, err := uuid.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid type %q: not a characteristic name or UUID", value)
	}
	return u.String(), nil
}

// RunFilter filters the log file and writes matching events to a new file.
// It returns the number of events written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := BuildFilter(opts)
	if err != nil {
		return 0, err
	}

	// Open input
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Create file logger to write filtered events
	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}
	return count, nil
}
