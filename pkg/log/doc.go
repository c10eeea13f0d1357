// Package log provides structured event capture for characteristic access.
//
// This package defines the Logger interface and the Event type used to record
// every read, write, subscription change and notification that passes through
// a characteristic. It is separate from operational logging (slog) - event
// capture provides a complete machine-readable trace for debugging drivers and
// controllers.
//
// # Basic Usage
//
// Characteristics accept a Logger through model.WithEventLogger:
//
//	// For development: log to console via slog
//	opts := []model.Option{model.WithEventLogger(log.NewSlogAdapter(slog.Default()))}
//
//	// For analysis: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/hap/accessory.hlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys and use
// the .hlog extension. The hap-log CLI tool provides viewing and statistics.
package log
