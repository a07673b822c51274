package entities

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"ncd-ifconfig/internal/domain/constants"
)

// IPv4Address holds the four octets of an address, most significant first
type IPv4Address [4]byte

// NewIPv4Address builds an address from its dotted-decimal octets
func NewIPv4Address(a, b, c, d byte) IPv4Address {
	return IPv4Address{a, b, c, d}
}

// IPv4AddressFromUint32 builds an address from a host integer whose most significant byte is the first octet
func IPv4AddressFromUint32(v uint32) IPv4Address {
	return IPv4Address{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// ParseIPv4Address parses dotted-decimal notation. IPv6 and IPv4-mapped forms are rejected.
func ParseIPv4Address(s string) (IPv4Address, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return IPv4Address{}, fmt.Errorf("%w: %q", ErrInvalidIPv4Address, s)
	}
	return IPv4Address(addr.As4()), nil
}

// String renders the address in dotted-decimal form
func (a IPv4Address) String() string {
	return netip.AddrFrom4(a).String()
}

// IP returns the address as a 4-byte net.IP
func (a IPv4Address) IP() net.IP {
	return net.IPv4(a[0], a[1], a[2], a[3]).To4()
}

// IsUnspecified reports whether a is 0.0.0.0
func (a IPv4Address) IsUnspecified() bool {
	return a == IPv4Address{}
}

// IPv4Prefix is an address paired with a prefix length
type IPv4Prefix struct {
	Address IPv4Address
	Length  int
}

// NewIPv4Prefix builds and validates a prefix
func NewIPv4Prefix(addr IPv4Address, length int) (IPv4Prefix, error) {
	p := IPv4Prefix{Address: addr, Length: length}
	if err := p.Validate(); err != nil {
		return IPv4Prefix{}, err
	}
	return p, nil
}

// ParseIPv4Prefix parses "a.b.c.d/n". Host bits are kept.
func ParseIPv4Prefix(s string) (IPv4Prefix, error) {
	addrPart, lenPart, ok := strings.Cut(s, "/")
	if !ok {
		return IPv4Prefix{}, fmt.Errorf("%w: missing prefix length in %q", ErrInvalidPrefixLength, s)
	}
	addr, err := ParseIPv4Address(addrPart)
	if err != nil {
		return IPv4Prefix{}, err
	}
	length, err := strconv.Atoi(lenPart)
	if err != nil {
		return IPv4Prefix{}, fmt.Errorf("%w: %q", ErrInvalidPrefixLength, lenPart)
	}
	return NewIPv4Prefix(addr, length)
}

// Validate checks the prefix length range
func (p IPv4Prefix) Validate() error {
	if p.Length < 0 || p.Length > constants.MaxPrefixLength {
		return fmt.Errorf("%w: %d", ErrInvalidPrefixLength, p.Length)
	}
	return nil
}

// String renders "a.b.c.d/n"
func (p IPv4Prefix) String() string {
	return p.Address.String() + "/" + strconv.Itoa(p.Length)
}

// IPNet renders the prefix for netlink. Host bits are kept; for a route destination
// the kernel decides whether they are acceptable. Must only be called on a validated prefix.
func (p IPv4Prefix) IPNet() *net.IPNet {
	return &net.IPNet{
		IP:   p.Address.IP(),
		Mask: net.CIDRMask(p.Length, constants.MaxPrefixLength),
	}
}
