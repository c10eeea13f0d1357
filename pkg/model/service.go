package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Service errors.
var (
	ErrCharacteristicNotFound = errors.New("characteristic not found")
)

// Service is a fixed, ordered group of characteristics representing one
// functional unit of an accessory. It is immutable after construction and
// owns its member characteristics.
type Service struct {
	kind    Identity
	members []AnyCharacteristic
}

// NewService creates a service of the given kind. Members keep their order.
// Nil members and duplicate characteristic kinds fail with
// ErrInvalidDefinition.
func NewService(kind Identity, members ...AnyCharacteristic) (*Service, error) {
	seen := make(map[uuid.UUID]bool, len(members))
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("%s: %w: member %d is nil", kind.Name, ErrInvalidDefinition, i)
		}
		t := m.Identity().Type
		if seen[t] {
			return nil, fmt.Errorf("%s: %w: duplicate characteristic %s",
				kind.Name, ErrInvalidDefinition, m.Identity())
		}
		seen[t] = true
	}

	return &Service{
		kind:    kind,
		members: append([]AnyCharacteristic(nil), members...),
	}, nil
}

// Kind returns the service type tag.
func (s *Service) Kind() Identity {
	return s.kind
}

// Characteristics returns the members in order.
func (s *Service) Characteristics() []AnyCharacteristic {
	return append([]AnyCharacteristic(nil), s.members...)
}

// Characteristic returns the member of the given type.
func (s *Service) Characteristic(typ uuid.UUID) (AnyCharacteristic, error) {
	for _, m := range s.members {
		if m.Identity().Type == typ {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrCharacteristicNotFound, typ, s.kind.Name)
}

// CharacteristicByName returns the member with the given display name.
func (s *Service) CharacteristicByName(name string) (AnyCharacteristic, error) {
	for _, m := range s.members {
		if m.Identity().Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrCharacteristicNotFound, name, s.kind.Name)
}

// Close unsubscribes every member.
func (s *Service) Close() {
	for _, m := range s.members {
		m.Unsubscribe()
	}
}

// Info returns service information for discovery.
func (s *Service) Info() *ServiceInfo {
	chars := make([]*CharacteristicInfo, len(s.members))
	for i, m := range s.members {
		chars[i] = m.Info()
	}
	return &ServiceInfo{
		Type:            s.kind.ShortType(),
		Name:            s.kind.Name,
		Characteristics: chars,
	}
}
