// Package inspect provides accessory inspection and value manipulation utilities.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "Fan/RotationSpeed" or "B7/29")
//   - Resolving names to short type identifiers
//   - Reading and writing characteristic values
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
	ErrUnknownName = errors.New("unknown name in path")
)

// Path represents a parsed inspection path.
// Format: service[/characteristic]
type Path struct {
	// Service is the short type of the service (e.g. "B7").
	Service string

	// Characteristic is the short type of the characteristic. Empty when
	// the path is partial.
	Characteristic string

	// IsPartial indicates the path names a service only
	// (used for inspect operations that show all characteristics).
	IsPartial bool

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "service/characteristic" - a single characteristic
//   - "service" - partial (for listing characteristics)
//
// Each segment is a catalog name ("RotationSpeed"), a display name
// ("Rotation Speed"), a hex short type ("29", "0x29") or a full type UUID.
// Names are matched case-insensitively before short types are tried.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, "/")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, input)
	}

	p := &Path{Raw: input}

	svc, err := parseSegment(parts[0], ResolveServiceName)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	p.Service = svc

	if len(parts) == 1 {
		p.IsPartial = true
		return p, nil
	}

	char, err := parseSegment(parts[1], ResolveCharacteristicName)
	if err != nil {
		return nil, fmt.Errorf("characteristic: %w", err)
	}
	p.Characteristic = char

	return p, nil
}

func parseSegment(s string, resolve func(string) (string, bool)) (string, error) {
	s = strings.TrimSpace(s)
	if short, ok := resolve(s); ok {
		return short, nil
	}
	if short, ok := parseShortType(s); ok {
		return short, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownName, s)
}

// String returns the path in short-type form (e.g. "B7/29").
func (p *Path) String() string {
	if p.IsPartial {
		return p.Service
	}
	return p.Service + "/" + p.Characteristic
}

// DisplayString returns the path with catalog names where known
// (e.g. "Fan/RotationSpeed").
func (p *Path) DisplayString() string {
	if p.IsPartial {
		return ServiceName(p.Service)
	}
	return ServiceName(p.Service) + "/" + CharacteristicName(p.Characteristic)
}
