package model

import (
	"log/slog"

	"github.com/hap-protocol/hap-go/pkg/log"
)

// Option configures characteristics and the services built from them.
type Option func(*options)

type options struct {
	logger *slog.Logger
	events log.Logger
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
		events: log.NoopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger sets the operational logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventLogger sets the event capture logger. Defaults to log.NoopLogger.
func WithEventLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.events = logger
		}
	}
}
