package accessory

import (
	"errors"
	"fmt"

	"github.com/hap-protocol/hap-go/pkg/catalog"
	"github.com/hap-protocol/hap-go/pkg/characteristics"
	"github.com/hap-protocol/hap-go/pkg/model"
)

// ErrUnsupportedAccessory is returned for variants without a service builder.
var ErrUnsupportedAccessory = errors.New("unsupported accessory")

// Accessory is implemented by the device variants of this package.
type Accessory interface {
	// Services builds the accessory's services.
	Services(opts ...model.Option) ([]*model.Service, error)

	accessory()
}

// CarbonDioxideSensor is a carbon dioxide sensor.
type CarbonDioxideSensor struct {
	CarbonDioxideDetected model.ReadBinding[characteristics.CarbonDioxideDetectedState]
	CarbonDioxideLevel    model.ReadBinding[float64]
}

// AirQualitySensor is an air quality sensor.
type AirQualitySensor struct {
	AirQuality   model.ReadBinding[characteristics.AirQualityState]
	StatusActive model.ReadBinding[bool]
}

// Fan is a fan with speed control.
type Fan struct {
	Active          model.Binding[characteristics.ActiveState]
	CurrentFanState model.ReadBinding[characteristics.CurrentFanState]
	TargetFanState  model.Binding[characteristics.TargetFanState]
	RotationSpeed   model.Binding[float64]
}

func (*CarbonDioxideSensor) accessory() {}
func (*AirQualitySensor) accessory()    {}
func (*Fan) accessory()                 {}

// Services implements Accessory.
func (a *CarbonDioxideSensor) Services(opts ...model.Option) ([]*model.Service, error) {
	return Services(a, opts...)
}

// Services implements Accessory.
func (a *AirQualitySensor) Services(opts ...model.Option) ([]*model.Service, error) {
	return Services(a, opts...)
}

// Services implements Accessory.
func (a *Fan) Services(opts ...model.Option) ([]*model.Service, error) {
	return Services(a, opts...)
}

// Services builds the services of a. The composition depends only on the
// variant; the bindings are wired into fresh characteristic instances on
// every call.
func Services(a Accessory, opts ...model.Option) ([]*model.Service, error) {
	var (
		svc *model.Service
		err error
	)
	if isNil(a) {
		return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedAccessory, a)
	}

	switch v := a.(type) {
	case *CarbonDioxideSensor:
		svc, err = buildCarbonDioxideSensor(v, opts)
	case *AirQualitySensor:
		svc, err = buildAirQualitySensor(v, opts)
	case *Fan:
		svc, err = buildFan(v, opts)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedAccessory, a)
	}
	if err != nil {
		return nil, err
	}
	return []*model.Service{svc}, nil
}

func isNil(a Accessory) bool {
	switch v := a.(type) {
	case nil:
		return true
	case *CarbonDioxideSensor:
		return v == nil
	case *AirQualitySensor:
		return v == nil
	case *Fan:
		return v == nil
	default:
		return false
	}
}

// builder accumulates members, stopping at the first error.
type builder struct {
	members []model.AnyCharacteristic
	err     error
}

func add[C model.AnyCharacteristic](b *builder, c C, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.members = append(b.members, c)
}

// service checks the members against the catalog composition of kind.
func (b *builder) service(kind string) (*model.Service, error) {
	if b.err != nil {
		return nil, fmt.Errorf("building %s: %w", kind, b.err)
	}
	def, err := catalog.Service(kind)
	if err != nil {
		return nil, err
	}
	if len(def.Characteristics) != len(b.members) {
		return nil, fmt.Errorf("building %s: %w: %d members, catalog lists %d",
			kind, model.ErrInvalidDefinition, len(b.members), len(def.Characteristics))
	}
	for i, name := range def.Characteristics {
		want := catalog.MustCharacteristic(name).Identity()
		if !b.members[i].Identity().Equal(want) {
			return nil, fmt.Errorf("building %s: %w: member %d is %s, catalog lists %s",
				kind, model.ErrInvalidDefinition, i, b.members[i].Identity(), want)
		}
	}
	return model.NewService(def.Identity(), b.members...)
}

func buildCarbonDioxideSensor(a *CarbonDioxideSensor, opts []model.Option) (*model.Service, error) {
	var b builder
	c1, err := characteristics.NewCarbonDioxideDetected(a.CarbonDioxideDetected, opts...)
	add(&b, c1, err)
	c2, err := characteristics.NewCarbonDioxideLevel(a.CarbonDioxideLevel, opts...)
	add(&b, c2, err)
	return b.service("CarbonDioxideSensor")
}

func buildAirQualitySensor(a *AirQualitySensor, opts []model.Option) (*model.Service, error) {
	var b builder
	c1, err := characteristics.NewAirQuality(a.AirQuality, opts...)
	add(&b, c1, err)
	c2, err := characteristics.NewStatusActive(a.StatusActive, opts...)
	add(&b, c2, err)
	return b.service("AirQualitySensor")
}

func buildFan(a *Fan, opts []model.Option) (*model.Service, error) {
	var b builder
	c1, err := characteristics.NewActive(a.Active, opts...)
	add(&b, c1, err)
	c2, err := characteristics.NewCurrentFanState(a.CurrentFanState, opts...)
	add(&b, c2, err)
	c3, err := characteristics.NewTargetFanState(a.TargetFanState, opts...)
	add(&b, c3, err)
	c4, err := characteristics.NewRotationSpeed(a.RotationSpeed, opts...)
	add(&b, c4, err)
	return b.service("Fan")
}
