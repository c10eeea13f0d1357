package characteristics

import (
	"fmt"

	"github.com/hap-protocol/hap-go/pkg/catalog"
	"github.com/hap-protocol/hap-go/pkg/model"
)

// Catalog names of the characteristic kinds.
const (
	KindActive                = "Active"
	KindAirQuality            = "AirQuality"
	KindCarbonDioxideDetected = "CarbonDioxideDetected"
	KindCarbonDioxideLevel    = "CarbonDioxideLevel"
	KindCurrentFanState       = "CurrentFanState"
	KindRotationSpeed         = "RotationSpeed"
	KindStatusActive          = "StatusActive"
	KindTargetFanState        = "TargetFanState"
)

// NewActive creates an Active characteristic.
func NewActive(b model.Binding[ActiveState], opts ...model.Option) (*model.EnumCharacteristic[ActiveState], error) {
	return newEnum(KindActive, activeStates, b, opts)
}

// NewAirQuality creates an AirQuality characteristic.
func NewAirQuality(b model.ReadBinding[AirQualityState], opts ...model.Option) (*model.EnumCharacteristic[AirQualityState], error) {
	return newEnum(KindAirQuality, airQualityStates, b.Binding(), opts)
}

// NewCarbonDioxideDetected creates a CarbonDioxideDetected characteristic.
func NewCarbonDioxideDetected(b model.ReadBinding[CarbonDioxideDetectedState], opts ...model.Option) (*model.EnumCharacteristic[CarbonDioxideDetectedState], error) {
	return newEnum(KindCarbonDioxideDetected, carbonDioxideDetectedStates, b.Binding(), opts)
}

// NewCarbonDioxideLevel creates a CarbonDioxideLevel characteristic (ppm).
func NewCarbonDioxideLevel(b model.ReadBinding[float64], opts ...model.Option) (*model.Characteristic[float64], error) {
	return newValue(KindCarbonDioxideLevel, b.Binding(), opts)
}

// NewCurrentFanState creates a CurrentFanState characteristic.
func NewCurrentFanState(b model.ReadBinding[CurrentFanState], opts ...model.Option) (*model.EnumCharacteristic[CurrentFanState], error) {
	return newEnum(KindCurrentFanState, currentFanStates, b.Binding(), opts)
}

// NewRotationSpeed creates a RotationSpeed characteristic (percentage).
func NewRotationSpeed(b model.Binding[float64], opts ...model.Option) (*model.Characteristic[float64], error) {
	return newValue(KindRotationSpeed, b, opts)
}

// NewStatusActive creates a StatusActive characteristic.
func NewStatusActive(b model.ReadBinding[bool], opts ...model.Option) (*model.Characteristic[bool], error) {
	return newValue(KindStatusActive, b.Binding(), opts)
}

// NewTargetFanState creates a TargetFanState characteristic.
func NewTargetFanState(b model.Binding[TargetFanState], opts ...model.Option) (*model.EnumCharacteristic[TargetFanState], error) {
	return newEnum(KindTargetFanState, targetFanStates, b, opts)
}

func newValue[T any](kind string, b model.Binding[T], opts []model.Option) (*model.Characteristic[T], error) {
	d, err := catalog.Characteristic(kind)
	if err != nil {
		return nil, err
	}
	return model.NewCharacteristic(d.Identity(), d.ValueFormat(), b, opts...)
}

// newEnum checks the Go states against the catalog's state names before
// constructing the characteristic.
func newEnum[E model.Enum](kind string, states []E, b model.Binding[E], opts []model.Option) (*model.EnumCharacteristic[E], error) {
	d, err := catalog.Characteristic(kind)
	if err != nil {
		return nil, err
	}
	if len(d.States) != len(states) {
		return nil, fmt.Errorf("%s: %w: catalog lists %d states, type has %d",
			kind, model.ErrInvalidDefinition, len(d.States), len(states))
	}
	for i, s := range states {
		if s.String() != d.States[i] {
			return nil, fmt.Errorf("%s: %w: code %d is %s in catalog, %s in type",
				kind, model.ErrInvalidDefinition, i, d.States[i], s)
		}
	}
	return model.NewEnumCharacteristic(d.Identity(), d.ValueFormat().MaxCode, states, b, opts...)
}
