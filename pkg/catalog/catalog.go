package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hap-protocol/hap-go/pkg/model"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ErrUnknownKind is returned when a kind name is not in the catalog.
var ErrUnknownKind = errors.New("unknown kind")

// Catalog is a validated set of characteristic and service kinds.
type Catalog struct {
	Version         string              `yaml:"version"`
	Characteristics []CharacteristicDef `yaml:"characteristics"`
	Services        []ServiceDef        `yaml:"services"`

	chars    map[string]*CharacteristicDef
	services map[string]*ServiceDef
}

// CharacteristicDef defines a characteristic kind.
type CharacteristicDef struct {
	Name    string   `yaml:"name"`
	Display string   `yaml:"display"`
	UUID    string   `yaml:"uuid"`
	Format  string   `yaml:"format"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
	Step    *float64 `yaml:"step"`
	Unit    string   `yaml:"unit"`
	MaxCode int      `yaml:"max_code"`
	MaxLen  int      `yaml:"max_len"`
	States  []string `yaml:"states"`

	identity model.Identity
	format   model.Format
}

// Identity returns the kind's type tag.
func (d *CharacteristicDef) Identity() model.Identity {
	return d.identity
}

// ValueFormat returns the kind's value format.
func (d *CharacteristicDef) ValueFormat() model.Format {
	return d.format
}

// ServiceDef defines a service kind.
type ServiceDef struct {
	Name            string   `yaml:"name"`
	Display         string   `yaml:"display"`
	UUID            string   `yaml:"uuid"`
	Characteristics []string `yaml:"characteristics"`

	identity model.Identity
}

// Identity returns the kind's type tag.
func (d *ServiceDef) Identity() model.Identity {
	return d.identity
}

// Parse decodes and validates a catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	c.chars = make(map[string]*CharacteristicDef, len(c.Characteristics))
	c.services = make(map[string]*ServiceDef, len(c.Services))
	types := make(map[string]string)

	for i := range c.Characteristics {
		d := &c.Characteristics[i]
		if err := d.build(); err != nil {
			return err
		}
		if _, dup := c.chars[d.Name]; dup {
			return fmt.Errorf("%w: duplicate characteristic %s", model.ErrInvalidDefinition, d.Name)
		}
		if other, dup := types[d.identity.Type.String()]; dup {
			return fmt.Errorf("%w: %s and %s share type %s", model.ErrInvalidDefinition, other, d.Name, d.UUID)
		}
		c.chars[d.Name] = d
		types[d.identity.Type.String()] = d.Name
	}

	for i := range c.Services {
		d := &c.Services[i]
		id, err := model.NewIdentity(d.UUID, displayName(d.Name, d.Display))
		if err != nil {
			return fmt.Errorf("service %s: %w", d.Name, err)
		}
		d.identity = id
		if _, dup := c.services[d.Name]; dup {
			return fmt.Errorf("%w: duplicate service %s", model.ErrInvalidDefinition, d.Name)
		}
		if other, dup := types[id.Type.String()]; dup {
			return fmt.Errorf("%w: %s and %s share type %s", model.ErrInvalidDefinition, other, d.Name, d.UUID)
		}
		if len(d.Characteristics) == 0 {
			return fmt.Errorf("%w: service %s has no characteristics", model.ErrInvalidDefinition, d.Name)
		}
		seen := make(map[string]bool, len(d.Characteristics))
		for _, name := range d.Characteristics {
			if _, ok := c.chars[name]; !ok {
				return fmt.Errorf("service %s: %w: characteristic %s", d.Name, ErrUnknownKind, name)
			}
			if seen[name] {
				return fmt.Errorf("%w: service %s lists %s twice", model.ErrInvalidDefinition, d.Name, name)
			}
			seen[name] = true
		}
		c.services[d.Name] = d
		types[id.Type.String()] = d.Name
	}
	return nil
}

func (d *CharacteristicDef) build() error {
	id, err := model.NewIdentity(d.UUID, displayName(d.Name, d.Display))
	if err != nil {
		return fmt.Errorf("characteristic %s: %w", d.Name, err)
	}
	d.identity = id

	kind, ok := model.ParseFormatKind(d.Format)
	if !ok {
		return fmt.Errorf("characteristic %s: %w: format %q", d.Name, model.ErrInvalidDefinition, d.Format)
	}

	switch kind {
	case model.FormatEnum:
		if len(d.States) == 0 || d.MaxCode != len(d.States)-1 {
			return fmt.Errorf("characteristic %s: %w: max_code %d does not match %d states",
				d.Name, model.ErrInvalidDefinition, d.MaxCode, len(d.States))
		}
		d.format = model.EnumFormat(d.MaxCode)
	case model.FormatString:
		d.format = model.StringFormat(d.MaxLen)
	default:
		d.format = model.Format{Kind: kind, Min: d.Min, Max: d.Max, Step: d.Step, Unit: d.Unit}
	}

	if err := d.format.Check(); err != nil {
		return fmt.Errorf("characteristic %s: %w", d.Name, err)
	}
	return nil
}

func displayName(name, display string) string {
	if display != "" {
		return display
	}
	return name
}

// Characteristic returns the characteristic kind with the given name.
func (c *Catalog) Characteristic(name string) (*CharacteristicDef, error) {
	d, ok := c.chars[name]
	if !ok {
		return nil, fmt.Errorf("%w: characteristic %q", ErrUnknownKind, name)
	}
	return d, nil
}

// Service returns the service kind with the given name.
func (c *Catalog) Service(name string) (*ServiceDef, error) {
	d, ok := c.services[name]
	if !ok {
		return nil, fmt.Errorf("%w: service %q", ErrUnknownKind, name)
	}
	return d, nil
}

// CharacteristicNames returns all characteristic kind names, sorted.
func (c *Catalog) CharacteristicNames() []string {
	return sortedKeys(c.chars)
}

// ServiceNames returns all service kind names, sorted.
func (c *Catalog) ServiceNames() []string {
	return sortedKeys(c.services)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ---------------------------------------------------------------------------
// Embedded catalog
// ---------------------------------------------------------------------------

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load returns the embedded catalog, parsing it on first use.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogYAML)
	})
	return loaded, loadErr
}

// Default returns the embedded catalog and panics if it is invalid.
func Default() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Characteristic looks up a characteristic kind in the embedded catalog.
func Characteristic(name string) (*CharacteristicDef, error) {
	c, err := Load()
	if err != nil {
		return nil, err
	}
	return c.Characteristic(name)
}

// Service looks up a service kind in the embedded catalog.
func Service(name string) (*ServiceDef, error) {
	c, err := Load()
	if err != nil {
		return nil, err
	}
	return c.Service(name)
}

// MustCharacteristic is like Characteristic but panics on error.
func MustCharacteristic(name string) *CharacteristicDef {
	d, err := Characteristic(name)
	if err != nil {
		panic(err)
	}
	return d
}

// MustService is like Service but panics on error.
func MustService(name string) *ServiceDef {
	d, err := Service(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names returns the characteristic and service kind names of the embedded
// catalog.
func Names() (characteristics, services []string) {
	c := Default()
	return c.CharacteristicNames(), c.ServiceNames()
}
