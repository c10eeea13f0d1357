package inspect

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hap-protocol/hap-go/pkg/interaction"
	"github.com/hap-protocol/hap-go/pkg/model"
)

// Session defines the interface for reading/writing a remote accessory.
// This is implemented by interaction.Client.
type Session interface {
	Read(ctx context.Context, service, characteristic string) (any, error)
	Write(ctx context.Context, service, characteristic string, value any) error
	Discover(ctx context.Context) ([]*model.ServiceInfo, error)
}

var _ Session = (*interaction.Client)(nil)

// RemoteInspector provides inspection and mutation capabilities for remote
// accessories via a Session.
type RemoteInspector struct {
	name    string
	session Session
}

// NewRemoteInspector creates a new remote inspector for the given session.
func NewRemoteInspector(name string, session Session) *RemoteInspector {
	return &RemoteInspector{
		name:    name,
		session: session,
	}
}

// Inspect discovers the remote services and reads every readable
// characteristic. Read failures are recorded per node.
func (r *RemoteInspector) Inspect(ctx context.Context) (*Tree, error) {
	services, err := r.session.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	tree := &Tree{
		Name:     r.name,
		Services: make([]ServiceNode, 0, len(services)),
	}
	for _, svc := range services {
		node := ServiceNode{
			Type:            svc.Type,
			Name:            svc.Name,
			Characteristics: make([]CharacteristicNode, 0, len(svc.Characteristics)),
		}
		for _, info := range svc.Characteristics {
			cn := CharacteristicNode{Info: info}
			if slices.Contains(info.Perms, "pr") {
				cn.Value, cn.Err = r.session.Read(ctx, svc.Type, info.Type)
				cn.Read = true
			}
			node.Characteristics = append(node.Characteristics, cn)
		}
		tree.Services = append(tree.Services, node)
	}
	return tree, nil
}

// Read reads a single characteristic from the remote accessory.
func (r *RemoteInspector) Read(ctx context.Context, path *Path) (any, error) {
	if path == nil {
		return nil, errors.New("path is nil")
	}
	if path.IsPartial {
		return nil, ErrPartialPath
	}
	return r.session.Read(ctx, path.Service, path.Characteristic)
}

// Write writes a single characteristic on the remote accessory.
func (r *RemoteInspector) Write(ctx context.Context, path *Path, value any) error {
	if path == nil {
		return errors.New("path is nil")
	}
	if path.IsPartial {
		return ErrPartialPath
	}
	return r.session.Write(ctx, path.Service, path.Characteristic, value)
}
