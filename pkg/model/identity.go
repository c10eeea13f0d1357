package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// appleBaseSuffix is the suffix shared by all Apple-defined HAP type UUIDs.
const appleBaseSuffix = "-0000-1000-8000-0026bb765291"

// Identity is the immutable type tag of a characteristic or service kind.
type Identity struct {
	// Type is the kind's type UUID.
	Type uuid.UUID

	// Name is the human-readable display name.
	Name string
}

// NewIdentity parses a type UUID and pairs it with a display name.
func NewIdentity(typeUUID, name string) (Identity, error) {
	u, err := uuid.Parse(typeUUID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: type %q: %v", ErrInvalidDefinition, typeUUID, err)
	}
	if name == "" {
		return Identity{}, fmt.Errorf("%w: type %s has no name", ErrInvalidDefinition, u)
	}
	return Identity{Type: u, Name: name}, nil
}

// MustIdentity is like NewIdentity but panics on error.
func MustIdentity(typeUUID, name string) Identity {
	id, err := NewIdentity(typeUUID, name)
	if err != nil {
		panic(err)
	}
	return id
}

// ShortType returns the short form of Apple-defined type UUIDs
// (e.g., "95" for 00000095-0000-1000-8000-0026BB765291) and the full
// upper-case UUID for all other types.
func (id Identity) ShortType() string {
	s := id.Type.String()
	if strings.HasSuffix(s, appleBaseSuffix) {
		short := strings.TrimLeft(s[:8], "0")
		if short == "" {
			short = "0"
		}
		return strings.ToUpper(short)
	}
	return strings.ToUpper(s)
}

// Equal reports whether two identities denote the same kind.
func (id Identity) Equal(other Identity) bool {
	return id.Type == other.Type
}

// String returns "Name (SHORT)".
func (id Identity) String() string {
	return fmt.Sprintf("%s (%s)", id.Name, id.ShortType())
}
