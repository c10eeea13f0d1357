package model

// CharacteristicInfo describes a characteristic for discovery.
// CBOR encoding uses integer keys for compactness.
type CharacteristicInfo struct {
	Type        string   `cbor:"1,keyasint"`
	Name        string   `cbor:"2,keyasint"`
	Format      string   `cbor:"3,keyasint"`
	Perms       []string `cbor:"4,keyasint"`
	MinValue    *float64 `cbor:"5,keyasint,omitempty"`
	MaxValue    *float64 `cbor:"6,keyasint,omitempty"`
	MinStep     *float64 `cbor:"7,keyasint,omitempty"`
	MaxCode     *int     `cbor:"8,keyasint,omitempty"`
	MaxLen      int      `cbor:"9,keyasint,omitempty"`
	Unit        string   `cbor:"10,keyasint,omitempty"`
	ValidValues []int    `cbor:"11,keyasint,omitempty"`
	ValidNames  []string `cbor:"12,keyasint,omitempty"`
}

// ServiceInfo describes a service and its members.
type ServiceInfo struct {
	Type            string                `cbor:"1,keyasint"`
	Name            string                `cbor:"2,keyasint"`
	Characteristics []*CharacteristicInfo `cbor:"3,keyasint"`
}

func newCharacteristicInfo(id Identity, f Format, a Access) *CharacteristicInfo {
	info := &CharacteristicInfo{
		Type:     id.ShortType(),
		Name:     id.Name,
		Format:   f.Kind.String(),
		Perms:    a.Permissions(),
		MinValue: f.Min,
		MaxValue: f.Max,
		MinStep:  f.Step,
		Unit:     f.Unit,
	}
	switch f.Kind {
	case FormatEnum:
		maxCode := f.MaxCode
		info.MaxCode = &maxCode
	case FormatString:
		info.MaxLen = f.MaxLen
		if info.MaxLen == 0 {
			info.MaxLen = DefaultMaxLen
		}
	}
	return info
}
