package sim

import (
	"testing"
	"time"

	"github.com/hap-protocol/hap-go/pkg/characteristics"
	"github.com/stretchr/testify/assert"
)

func newRoom(fanActive bool, speed float64, auto bool, co2 float64) (*Simulator, *Fan, *CO2Sensor, *AirQualitySensor) {
	fan := NewFan(fanActive, speed, auto)
	sensor := NewCO2Sensor(co2, 0)
	air := NewAirQualitySensor(QualityForCO2(co2))
	return NewSimulator(fan, sensor, air, nil), fan, sensor, air
}

func TestSimulatorStepRaisesLevelWithFanOff(t *testing.T) {
	s, _, co2, air := newRoom(false, 0, false, 950)

	s.Step()
	assert.Equal(t, 1000.0, co2.Level.Value())
	assert.Equal(t, characteristics.CarbonDioxideLevelsAbnormal, co2.Detected.Value())
	assert.Equal(t, characteristics.AirQualityFair, air.Quality.Value())
}

func TestSimulatorStepFanClears(t *testing.T) {
	s, _, co2, _ := newRoom(true, 100, false, 1000)

	s.Step()
	// +50 from occupants, -200 from the fan.
	assert.Equal(t, 850.0, co2.Level.Value())

	for range 10 {
		s.Step()
	}
	assert.Equal(t, outdoorCO2, co2.Level.Value())
}

func TestSimulatorAutoFan(t *testing.T) {
	s, fan, co2, _ := newRoom(false, 0, true, 1050)

	s.Step()
	assert.Equal(t, 1100.0, co2.Level.Value())
	assert.Equal(t, 50.0, fan.Speed.Value())
	assert.Equal(t, characteristics.ActiveStateActive, fan.Active.Value())
	assert.Equal(t, characteristics.CurrentFanStateBlowingAir, fan.Current.Value())

	// The room settles where the fan balances the occupants.
	for range 20 {
		s.Step()
	}
	assert.Equal(t, 854.0, co2.Level.Value())
	assert.Equal(t, 25.0, fan.Speed.Value())
	assert.Equal(t, characteristics.CarbonDioxideLevelsNormal, co2.Detected.Value())

	// Fresh air stops the fan.
	co2.Measure(500)
	s.Step()
	assert.Equal(t, 500.0, co2.Level.Value())
	assert.Equal(t, 0.0, fan.Speed.Value())
	assert.Equal(t, characteristics.ActiveStateInactive, fan.Active.Value())
	assert.Equal(t, characteristics.CurrentFanStateInactive, fan.Current.Value())
}

func TestSimulatorStartStop(t *testing.T) {
	s, _, co2, _ := newRoom(false, 0, false, 500)

	assert.False(t, s.Stop())
	assert.True(t, s.Start(time.Millisecond))
	assert.False(t, s.Start(time.Millisecond))
	assert.True(t, s.Running())

	assert.Eventually(t, func() bool {
		return co2.Level.Value() > 500
	}, time.Second, time.Millisecond)

	assert.True(t, s.Stop())
	assert.False(t, s.Running())

	level := co2.Level.Value()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, level, co2.Level.Value())
}
