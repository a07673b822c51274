package entities

import (
	"errors"
	"strings"
	"unicode"

	"ncd-ifconfig/internal/domain/constants"
)

var (
	ErrInvalidInterfaceName = errors.New("invalid interface name")
	ErrInvalidPrefixLength  = errors.New("prefix length out of range [0,32]")
	ErrInvalidIPv4Address   = errors.New("invalid IPv4 address")
	ErrInvalidMetric        = errors.New("route metric must be between 0 and 4294967295")
)

// InterfaceName is a validated kernel interface name
type InterfaceName struct {
	value string
}

// NewInterfaceName validates name and wraps it.
func NewInterfaceName(name string) (InterfaceName, error) {
	if !isValidInterfaceName(name) {
		return InterfaceName{}, ErrInvalidInterfaceName
	}
	return InterfaceName{value: name}, nil
}

// String returns the raw interface name
func (n InterfaceName) String() string {
	return n.value
}

// IsZero reports whether n was never initialised through NewInterfaceName
func (n InterfaceName) IsZero() bool {
	return n.value == ""
}

// isValidInterfaceName mirrors the kernel's dev_valid_name rules. A leading dash is
// also refused since the name ends up as an argv entry for ip/route.
func isValidInterfaceName(name string) bool {
	if name == "" || len(name) > constants.MaxInterfaceNameLength {
		return false
	}
	if name == "." || name == ".." || strings.HasPrefix(name, "-") {
		return false
	}
	for _, r := range name {
		if r == '/' || r == ':' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
