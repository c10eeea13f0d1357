package sim

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/hap-protocol/hap-go/pkg/characteristics"
)

// Room dynamics for one simulation step.
const (
	outdoorCO2  = 420.0
	maxCO2      = 5000.0
	co2Rise     = 50.0 // ppm per step from occupants
	fanClearing = 2.0  // ppm per step per percent of rotation speed
)

// Simulator drives a room: occupants raise the carbon dioxide level, the
// fan lowers it, and the air quality sensor follows. A fan in AUTO mode
// sets its own speed from the level.
type Simulator struct {
	fan    *Fan
	co2    *CO2Sensor
	air    *AirQualitySensor
	logger *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewSimulator creates a simulator over the given devices.
func NewSimulator(fan *Fan, co2 *CO2Sensor, air *AirQualitySensor, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{fan: fan, co2: co2, air: air, logger: logger}
}

// Step advances the room by one tick.
func (s *Simulator) Step() {
	level := s.co2.Level.Value() + co2Rise
	if s.fan.Current.Value() == characteristics.CurrentFanStateBlowingAir {
		level -= s.fan.Speed.Value() * fanClearing
	}
	level = math.Max(outdoorCO2, math.Min(maxCO2, level))

	s.co2.Measure(level)
	s.air.Measure(QualityForCO2(level))

	if s.fan.Target.Value() == characteristics.TargetFanStateAuto {
		s.autoFan(level)
	}
	s.logger.Debug("simulation step", "co2", level, "fan", s.fan.Current.Value().String())
}

// autoFan picks a speed proportional to how far the level is above
// outdoor air.
func (s *Simulator) autoFan(level float64) {
	speed := math.Round(math.Max(0, math.Min(100, (level-600)/10)))
	if speed != s.fan.Speed.Value() {
		s.fan.Speed.Emit(speed)
	}
	active := characteristics.ActiveStateInactive
	if speed > 0 {
		active = characteristics.ActiveStateActive
	}
	if active != s.fan.Active.Value() {
		s.fan.Active.Emit(active)
	}
	s.fan.update()
}

// Start runs Step every interval until Stop. It returns false if the
// simulator is already running.
func (s *Simulator) Start(interval time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx, interval, s.done)
	s.logger.Info("simulation started", "interval", interval)
	return true
}

func (s *Simulator) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Stop halts a running simulation and waits for the current step. It
// returns false if the simulator was not running.
func (s *Simulator) Stop() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	s.cancel()
	done := s.done
	s.running = false
	s.mu.Unlock()

	<-done
	s.logger.Info("simulation stopped")
	return true
}

// Running reports whether the simulation is running.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
