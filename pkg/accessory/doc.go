// Package accessory maps device kinds to their services.
//
// Each device kind is a variant struct carrying the driver bindings for the
// characteristics of its service. Services dispatches on the variant and
// wires the bindings into a fixed composition:
//
//	CarbonDioxideSensor  CarbonDioxideDetected, CarbonDioxideLevel
//	AirQualitySensor     AirQuality, StatusActive
//	Fan                  Active, CurrentFanState, TargetFanState, RotationSpeed
//
// A variant with a missing getter fails to build; the error names the
// characteristic kind.
package accessory
