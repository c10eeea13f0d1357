package inspect

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hap-protocol/hap-go/pkg/catalog"
	"github.com/hap-protocol/hap-go/pkg/model"
)

// Name tables for resolving human-readable names to short types.
// Keys are normalized with normalizeName.
var (
	serviceNames         = map[string]string{}
	characteristicNames  = map[string]string{}
	serviceTitles        = map[string]string{}
	characteristicTitles = map[string]string{}
)

func init() {
	c := catalog.Default()
	for _, name := range c.ServiceNames() {
		def, _ := c.Service(name)
		short := def.Identity().ShortType()
		serviceNames[normalizeName(def.Name)] = short
		serviceNames[normalizeName(def.Identity().Name)] = short
		serviceTitles[short] = def.Name
	}
	for _, name := range c.CharacteristicNames() {
		def, _ := c.Characteristic(name)
		short := def.Identity().ShortType()
		characteristicNames[normalizeName(def.Name)] = short
		characteristicNames[normalizeName(def.Identity().Name)] = short
		characteristicTitles[short] = def.Name
	}
}

// normalizeName lower-cases a name and drops spaces, so "Rotation Speed",
// "rotationspeed" and "RotationSpeed" resolve alike.
func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// ResolveServiceName resolves a service name to its short type
// (case-insensitive).
func ResolveServiceName(name string) (string, bool) {
	short, ok := serviceNames[normalizeName(name)]
	return short, ok
}

// ResolveCharacteristicName resolves a characteristic name to its short type
// (case-insensitive).
func ResolveCharacteristicName(name string) (string, bool) {
	short, ok := characteristicNames[normalizeName(name)]
	return short, ok
}

// ServiceName returns the catalog name for a short service type, or the
// short type itself if unknown.
func ServiceName(short string) string {
	if name, ok := serviceTitles[short]; ok {
		return name
	}
	return short
}

// CharacteristicName returns the catalog name for a short characteristic
// type, or the short type itself if unknown.
func CharacteristicName(short string) string {
	if name, ok := characteristicTitles[short]; ok {
		return name
	}
	return short
}

// parseShortType accepts a hex short type ("B7", "0x29") or a full UUID and
// returns its canonical short form.
func parseShortType(s string) (string, bool) {
	if u, err := uuid.Parse(s); err == nil {
		return model.Identity{Type: u}.ShortType(), true
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hex == "" || len(hex) > 8 {
		return "", false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", false
		}
	}
	short := strings.TrimLeft(strings.ToUpper(hex), "0")
	if short == "" {
		short = "0"
	}
	return short, true
}
