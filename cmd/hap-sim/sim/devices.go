package sim

import (
	"github.com/hap-protocol/hap-go/pkg/accessory"
	"github.com/hap-protocol/hap-go/pkg/characteristics"
)

// DefaultCO2Threshold is the level in ppm at or above which a carbon
// dioxide sensor reports abnormal levels.
const DefaultCO2Threshold = 1000.0

// Fan is a simulated fan. The current state follows the active flag and
// the rotation speed.
type Fan struct {
	Active  *Point[characteristics.ActiveState]
	Current *Point[characteristics.CurrentFanState]
	Target  *Point[characteristics.TargetFanState]
	Speed   *Point[float64]
}

// NewFan creates a fan with the given initial state.
func NewFan(active bool, speed float64, auto bool) *Fan {
	f := &Fan{
		Active:  NewPoint(characteristics.ActiveStateInactive),
		Current: NewPoint(characteristics.CurrentFanStateInactive),
		Target:  NewPoint(characteristics.TargetFanStateManual),
		Speed:   NewPoint(speed),
	}
	if active {
		f.Active.value = characteristics.ActiveStateActive
	}
	if auto {
		f.Target.value = characteristics.TargetFanStateAuto
	}
	f.Current.value = f.currentState()

	f.Active.setWriteHook(func(characteristics.ActiveState) { f.update() })
	f.Speed.setWriteHook(func(float64) { f.update() })
	return f
}

func (f *Fan) currentState() characteristics.CurrentFanState {
	if f.Active.Value() == characteristics.ActiveStateActive && f.Speed.Value() > 0 {
		return characteristics.CurrentFanStateBlowingAir
	}
	return characteristics.CurrentFanStateInactive
}

// update reports a current state change after a write.
func (f *Fan) update() {
	if next := f.currentState(); next != f.Current.Value() {
		f.Current.Emit(next)
	}
}

// Accessory returns the fan's accessory description.
func (f *Fan) Accessory() *accessory.Fan {
	return &accessory.Fan{
		Active:          f.Active.Binding(),
		CurrentFanState: f.Current.ReadBinding(),
		TargetFanState:  f.Target.Binding(),
		RotationSpeed:   f.Speed.Binding(),
	}
}

// CO2Sensor is a simulated carbon dioxide sensor. Detection follows the
// level and the threshold.
type CO2Sensor struct {
	Detected  *Point[characteristics.CarbonDioxideDetectedState]
	Level     *Point[float64]
	Threshold float64
}

// NewCO2Sensor creates a sensor reading level ppm.
func NewCO2Sensor(level, threshold float64) *CO2Sensor {
	if threshold <= 0 {
		threshold = DefaultCO2Threshold
	}
	s := &CO2Sensor{
		Detected:  NewPoint(characteristics.CarbonDioxideLevelsNormal),
		Level:     NewPoint(level),
		Threshold: threshold,
	}
	s.Detected.value = s.detection(level)
	return s
}

func (s *CO2Sensor) detection(level float64) characteristics.CarbonDioxideDetectedState {
	if level >= s.Threshold {
		return characteristics.CarbonDioxideLevelsAbnormal
	}
	return characteristics.CarbonDioxideLevelsNormal
}

// Measure records a new level and reports detection changes.
func (s *CO2Sensor) Measure(level float64) {
	s.Level.Emit(level)
	if next := s.detection(level); next != s.Detected.Value() {
		s.Detected.Emit(next)
	}
}

// Accessory returns the sensor's accessory description.
func (s *CO2Sensor) Accessory() *accessory.CarbonDioxideSensor {
	return &accessory.CarbonDioxideSensor{
		CarbonDioxideDetected: s.Detected.ReadBinding(),
		CarbonDioxideLevel:    s.Level.ReadBinding(),
	}
}

// AirQualitySensor is a simulated air quality sensor.
type AirQualitySensor struct {
	Quality *Point[characteristics.AirQualityState]
	Status  *Point[bool]
}

// NewAirQualitySensor creates a sensor reporting quality.
func NewAirQualitySensor(quality characteristics.AirQualityState) *AirQualitySensor {
	return &AirQualitySensor{
		Quality: NewPoint(quality),
		Status:  NewPoint(true),
	}
}

// QualityForCO2 maps a carbon dioxide level in ppm to an air quality state.
func QualityForCO2(level float64) characteristics.AirQualityState {
	switch {
	case level < 0:
		return characteristics.AirQualityUnknown
	case level < 600:
		return characteristics.AirQualityExcellent
	case level < 1000:
		return characteristics.AirQualityGood
	case level < 1500:
		return characteristics.AirQualityFair
	case level < 2000:
		return characteristics.AirQualityInferior
	default:
		return characteristics.AirQualityPoor
	}
}

// Measure records a new quality and reports it if it changed.
func (s *AirQualitySensor) Measure(q characteristics.AirQualityState) {
	if q != s.Quality.Value() {
		s.Quality.Emit(q)
	}
}

// Accessory returns the sensor's accessory description.
func (s *AirQualitySensor) Accessory() *accessory.AirQualitySensor {
	return &accessory.AirQualitySensor{
		AirQuality:   s.Quality.ReadBinding(),
		StatusActive: s.Status.ReadBinding(),
	}
}
