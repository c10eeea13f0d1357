package model

// Access flags for characteristics.
type Access uint8

const (
	// AccessRead allows reading the value.
	AccessRead Access = 1 << iota

	// AccessWrite allows writing the value.
	AccessWrite

	// AccessNotify allows subscribing to changes.
	AccessNotify
)

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a&AccessRead != 0 }

// CanWrite returns true if writing is allowed.
func (a Access) CanWrite() bool { return a&AccessWrite != 0 }

// CanNotify returns true if subscribing is allowed.
func (a Access) CanNotify() bool { return a&AccessNotify != 0 }

// String returns the access flags as a string.
func (a Access) String() string {
	var s string
	if a.CanRead() {
		s += "R"
	}
	if a.CanWrite() {
		s += "W"
	}
	if a.CanNotify() {
		s += "N"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Permissions returns the HAP permission strings ("pr", "pw", "ev").
func (a Access) Permissions() []string {
	perms := make([]string, 0, 3)
	if a.CanRead() {
		perms = append(perms, "pr")
	}
	if a.CanWrite() {
		perms = append(perms, "pw")
	}
	if a.CanNotify() {
		perms = append(perms, "ev")
	}
	return perms
}
