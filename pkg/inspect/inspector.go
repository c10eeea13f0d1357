package inspect

import (
	"context"
	"errors"
	"fmt"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// Inspector errors.
var (
	ErrServiceNotFound = errors.New("service not found")
	ErrPartialPath     = errors.New("path does not name a characteristic")
)

// Inspector provides inspection and mutation of a local accessory's
// services.
type Inspector struct {
	name     string
	services []*model.Service
}

// NewInspector creates a new inspector for the given services.
func NewInspector(name string, services []*model.Service) *Inspector {
	return &Inspector{
		name:     name,
		services: append([]*model.Service(nil), services...),
	}
}

// Services returns the inspected services.
func (i *Inspector) Services() []*model.Service {
	return append([]*model.Service(nil), i.services...)
}

// Tree is a snapshot of an accessory's services and their values.
type Tree struct {
	Name     string
	Services []ServiceNode
}

// ServiceNode is one service in a Tree.
type ServiceNode struct {
	Type            string
	Name            string
	Characteristics []CharacteristicNode
}

// CharacteristicNode is one characteristic in a Tree.
type CharacteristicNode struct {
	Info *model.CharacteristicInfo

	// Value is the value read during inspection. Only meaningful when Read
	// is true and Err is nil.
	Value any
	Read  bool
	Err   error
}

// Inspect reads every characteristic and returns the accessory tree.
// Read failures are recorded per node and do not abort the walk.
func (i *Inspector) Inspect(ctx context.Context) *Tree {
	tree := &Tree{
		Name:     i.name,
		Services: make([]ServiceNode, 0, len(i.services)),
	}
	for _, svc := range i.services {
		tree.Services = append(tree.Services, inspectService(ctx, svc))
	}
	return tree
}

// InspectService returns the subtree of the service named by path.
func (i *Inspector) InspectService(ctx context.Context, path *Path) (*ServiceNode, error) {
	svc, err := i.findService(path)
	if err != nil {
		return nil, err
	}
	node := inspectService(ctx, svc)
	return &node, nil
}

func inspectService(ctx context.Context, svc *model.Service) ServiceNode {
	members := svc.Characteristics()
	node := ServiceNode{
		Type:            svc.Kind().ShortType(),
		Name:            svc.Kind().Name,
		Characteristics: make([]CharacteristicNode, 0, len(members)),
	}
	for _, c := range members {
		cn := CharacteristicNode{Info: c.Info()}
		if c.Access().CanRead() {
			cn.Value, cn.Err = c.ReadValue(ctx)
			cn.Read = true
		}
		node.Characteristics = append(node.Characteristics, cn)
	}
	return node
}

// Lookup returns the characteristic named by path.
func (i *Inspector) Lookup(path *Path) (model.AnyCharacteristic, error) {
	if path == nil {
		return nil, errors.New("path is nil")
	}
	if path.IsPartial {
		return nil, ErrPartialPath
	}

	svc, err := i.findService(path)
	if err != nil {
		return nil, err
	}
	for _, c := range svc.Characteristics() {
		if c.Identity().ShortType() == path.Characteristic {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", model.ErrCharacteristicNotFound,
		CharacteristicName(path.Characteristic), svc.Kind().Name)
}

func (i *Inspector) findService(path *Path) (*model.Service, error) {
	if path == nil {
		return nil, errors.New("path is nil")
	}
	for _, svc := range i.services {
		if svc.Kind().ShortType() == path.Service {
			return svc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, ServiceName(path.Service))
}

// Read reads the value of the characteristic named by path.
func (i *Inspector) Read(ctx context.Context, path *Path) (any, *model.CharacteristicInfo, error) {
	c, err := i.Lookup(path)
	if err != nil {
		return nil, nil, err
	}
	v, err := c.ReadValue(ctx)
	if err != nil {
		return nil, nil, err
	}
	return v, c.Info(), nil
}

// Write writes a value to the characteristic named by path. Access control
// and validation are enforced by the characteristic.
func (i *Inspector) Write(ctx context.Context, path *Path, value any) error {
	c, err := i.Lookup(path)
	if err != nil {
		return err
	}
	return c.WriteValue(ctx, value)
}

// Info returns the description of the characteristic named by path.
func (i *Inspector) Info(path *Path) (*model.CharacteristicInfo, error) {
	c, err := i.Lookup(path)
	if err != nil {
		return nil, err
	}
	return c.Info(), nil
}
