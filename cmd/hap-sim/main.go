// Command hap-sim is an interactive accessory simulator.
//
// It serves a fan, a carbon dioxide sensor and an air quality sensor over
// an in-process interaction connection and drops into a shell for reading,
// writing and subscribing to their characteristics. The simulation moves
// the carbon dioxide level up with room occupancy and down with the fan.
//
// Usage:
//
//	hap-sim [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-name string        Accessory name (default "Living Room")
//	-log-level string   Log level: debug, info, warn, error
//	-event-log string   Write characteristic events to this file
//	-simulate           Start the simulation immediately
//
// Examples:
//
//	# Start with default settings
//	hap-sim
//
//	# Record every characteristic access for hap-log
//	hap-sim -event-log room.hlog -simulate
//
//	# Start from a config file
//	hap-sim -config /etc/hap/sim.yaml -log-level debug
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hap-protocol/hap-go/cmd/hap-sim/interactive"
	"github.com/hap-protocol/hap-go/cmd/hap-sim/sim"
	"github.com/hap-protocol/hap-go/pkg/accessory"
	"github.com/hap-protocol/hap-go/pkg/interaction"
	hlog "github.com/hap-protocol/hap-go/pkg/log"
	"github.com/hap-protocol/hap-go/pkg/model"
)

var (
	configFile string
	name       string
	logLevel   string
	eventLog   string
	simulate   bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&name, "name", "Living Room", "Accessory name")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&eventLog, "event-log", "", "Write characteristic events to this file")
	flag.BoolVar(&simulate, "simulate", false, "Start the simulation immediately")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	events, closeEvents, err := eventLogger(cfg.EventLog, logger)
	if err != nil {
		return err
	}
	defer closeEvents()

	quality, _ := cfg.AirQualityState()
	devices := interactive.Devices{
		Fan:        sim.NewFan(cfg.Fan.Active, cfg.Fan.Speed, cfg.Fan.Auto),
		CO2:        sim.NewCO2Sensor(cfg.CO2.Level, cfg.CO2.Threshold),
		AirQuality: sim.NewAirQualitySensor(quality),
	}
	if cfg.Fan.Latency > 0 {
		devices.Fan.Active.SetLatency(cfg.Fan.Latency)
		devices.Fan.Current.SetLatency(cfg.Fan.Latency)
		devices.Fan.Target.SetLatency(cfg.Fan.Latency)
		devices.Fan.Speed.SetLatency(cfg.Fan.Latency)
	}

	services, err := buildServices(devices, model.WithLogger(logger), model.WithEventLogger(events))
	if err != nil {
		return err
	}

	server, err := interaction.NewServer(services,
		interaction.WithTimeouts(cfg.ReadTimeout, cfg.WriteTimeout),
		interaction.WithServerLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	client := interaction.Connect(server)
	defer client.Close()
	defer server.CancelAllSubscriptions()

	simulator := sim.NewSimulator(devices.Fan, devices.CO2, devices.AirQuality, logger)
	defer simulator.Stop()
	if cfg.Simulate {
		simulator.Start(cfg.Interval)
	}

	logger.Info("accessory simulator ready",
		"name", name,
		"services", len(services),
		"event_log", cfg.EventLog)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shell := interactive.NewShell(name, server, client, devices, simulator, cfg.Interval, os.Stdout)
	go func() {
		if err := shell.Run(ctx, cancel); err != nil {
			logger.Error("shell failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// applyFlags lets explicitly set flags override the configuration file.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = logLevel
		case "event-log":
			cfg.EventLog = eventLog
		case "simulate":
			cfg.Simulate = simulate
		}
	})
}

// eventLogger returns the characteristic event logger. Events always go to
// the operational log at debug level and, with a path, to a capture file.
func eventLogger(path string, logger *slog.Logger) (hlog.Logger, func(), error) {
	console := hlog.NewSlogAdapter(logger)
	if path == "" {
		return console, func() {}, nil
	}

	file, err := hlog.NewFileLogger(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open event log: %w", err)
	}
	closeFile := func() {
		if err := file.Close(); err != nil {
			logger.Warn("closing event log failed", "error", err)
		}
	}
	return hlog.NewMultiLogger(console, file), closeFile, nil
}

func buildServices(devices interactive.Devices, opts ...model.Option) ([]*model.Service, error) {
	var services []*model.Service
	for _, a := range []accessory.Accessory{
		devices.Fan.Accessory(),
		devices.CO2.Accessory(),
		devices.AirQuality.Accessory(),
	} {
		svcs, err := accessory.Services(a, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build services: %w", err)
		}
		services = append(services, svcs...)
	}
	return services, nil
}
