package characteristics

// ActiveState is the value of the Active characteristic.
type ActiveState uint8

const (
	ActiveStateInactive ActiveState = iota
	ActiveStateActive
)

func (s ActiveState) String() string {
	switch s {
	case ActiveStateInactive:
		return "INACTIVE"
	case ActiveStateActive:
		return "ACTIVE"
	default:
		return unknownState
	}
}

// AirQualityState is the value of the AirQuality characteristic.
type AirQualityState uint8

const (
	AirQualityUnknown AirQualityState = iota
	AirQualityExcellent
	AirQualityGood
	AirQualityFair
	AirQualityInferior
	AirQualityPoor
)

func (s AirQualityState) String() string {
	switch s {
	case AirQualityUnknown:
		return "UNKNOWN"
	case AirQualityExcellent:
		return "EXCELLENT"
	case AirQualityGood:
		return "GOOD"
	case AirQualityFair:
		return "FAIR"
	case AirQualityInferior:
		return "INFERIOR"
	case AirQualityPoor:
		return "POOR"
	default:
		return unknownState
	}
}

// CarbonDioxideDetectedState is the value of the CarbonDioxideDetected
// characteristic.
type CarbonDioxideDetectedState uint8

const (
	CarbonDioxideLevelsNormal CarbonDioxideDetectedState = iota
	CarbonDioxideLevelsAbnormal
)

func (s CarbonDioxideDetectedState) String() string {
	switch s {
	case CarbonDioxideLevelsNormal:
		return "CO2_LEVELS_NORMAL"
	case CarbonDioxideLevelsAbnormal:
		return "CO2_LEVELS_ABNORMAL"
	default:
		return unknownState
	}
}

// CurrentFanState is the value of the CurrentFanState characteristic.
type CurrentFanState uint8

const (
	CurrentFanStateInactive CurrentFanState = iota
	CurrentFanStateBlowingAir
)

func (s CurrentFanState) String() string {
	switch s {
	case CurrentFanStateInactive:
		return "INACTIVE"
	case CurrentFanStateBlowingAir:
		return "BLOWING_AIR"
	default:
		return unknownState
	}
}

// TargetFanState is the value of the TargetFanState characteristic.
type TargetFanState uint8

const (
	TargetFanStateManual TargetFanState = iota
	TargetFanStateAuto
)

func (s TargetFanState) String() string {
	switch s {
	case TargetFanStateManual:
		return "MANUAL"
	case TargetFanStateAuto:
		return "AUTO"
	default:
		return unknownState
	}
}

// unknownState is the name of codes outside a domain. It never names a
// valid state.
const unknownState = "?"

var (
	activeStates                = []ActiveState{ActiveStateInactive, ActiveStateActive}
	carbonDioxideDetectedStates = []CarbonDioxideDetectedState{CarbonDioxideLevelsNormal, CarbonDioxideLevelsAbnormal}
	currentFanStates            = []CurrentFanState{CurrentFanStateInactive, CurrentFanStateBlowingAir}
	targetFanStates             = []TargetFanState{TargetFanStateManual, TargetFanStateAuto}
	airQualityStates            = []AirQualityState{
		AirQualityUnknown, AirQualityExcellent, AirQualityGood,
		AirQualityFair, AirQualityInferior, AirQualityPoor,
	}
)
