package entities

import "strings"

// InterfaceFlags is a snapshot of an interface's state. Never cached.
type InterfaceFlags uint8

const (
	FlagExists InterfaceFlags = 1 << iota
	FlagUp
	FlagRunning
)

// NewInterfaceFlags builds a flag set, dropping facts that cannot hold:
// up needs exists, running needs up.
func NewInterfaceFlags(exists, up, running bool) InterfaceFlags {
	var f InterfaceFlags
	if !exists {
		return f
	}
	f |= FlagExists
	if !up {
		return f
	}
	f |= FlagUp
	if running {
		f |= FlagRunning
	}
	return f
}

// Exists reports whether the interface resolved
func (f InterfaceFlags) Exists() bool {
	return f&FlagExists != 0
}

// Up reports whether the interface is administratively up
func (f InterfaceFlags) Up() bool {
	return f&FlagUp != 0
}

// Running reports whether the interface is up and has carrier
func (f InterfaceFlags) Running() bool {
	return f&FlagRunning != 0
}

func (f InterfaceFlags) String() string {
	if !f.Exists() {
		return "absent"
	}
	parts := []string{"exists"}
	if f.Up() {
		parts = append(parts, "up")
	}
	if f.Running() {
		parts = append(parts, "running")
	}
	return strings.Join(parts, ",")
}
