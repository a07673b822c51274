package interfaces

import (
	"context"

	"ncd-ifconfig/internal/domain/entities"

	"github.com/vishvananda/netlink"
)

// InterfaceStatusQuerier reads interface flags straight from the kernel
type InterfaceStatusQuerier interface {
	// QueryStatus returns zero flags and a nil error for an unknown interface.
	// Zero flags with a SYSTEM error mean the kernel could not be asked at all.
	QueryStatus(ctx context.Context, name entities.InterfaceName) (entities.InterfaceFlags, error)
}

// LinkController changes the administrative state of an interface
type LinkController interface {
	SetUp(ctx context.Context, name entities.InterfaceName) error
	SetDown(ctx context.Context, name entities.InterfaceName) error
}

// AddressManager adds and removes IPv4 interface addresses
type AddressManager interface {
	AddAddress(ctx context.Context, name entities.InterfaceName, addr entities.IPv4Prefix) error
	RemoveAddress(ctx context.Context, name entities.InterfaceName, addr entities.IPv4Prefix) error
}

// RouteManager adds and removes IPv4 routes
type RouteManager interface {
	AddRoute(ctx context.Context, route entities.Route) error
	RemoveRoute(ctx context.Context, route entities.Route) error
}

// NetworkBackend is everything that touches kernel network state
type NetworkBackend interface {
	InterfaceStatusQuerier
	LinkController
	AddressManager
	RouteManager

	// Type returns the backend name for logs and metrics
	Type() string
}

// ResolverConfigurer owns the system resolver file
type ResolverConfigurer interface {
	// SetDNSServers replaces the resolver file; readers see the old or the new file, never a mix
	SetDNSServers(ctx context.Context, servers entities.DNSServerList) error

	// DNSServers reads the IPv4 nameservers currently in the resolver file
	DNSServers(ctx context.Context) (entities.DNSServerList, error)
}

// BackupService keeps copies of a file before it is replaced
type BackupService interface {
	CreateBackup(ctx context.Context, name string, path string) error
	ListBackups(name string) ([]string, error)
}

// Netlinker abstracts the netlink calls so they can be mocked.
// Each call runs on its own short-lived netlink handle. LinkByName reports an
// unknown link as a NOT_FOUND DomainError and a handle failure as SYSTEM.
type Netlinker interface {
	LinkByName(name string) (netlink.Link, error)
	LinkSetUp(link netlink.Link) error
	LinkSetDown(link netlink.Link) error

	AddrAdd(link netlink.Link, addr *netlink.Addr) error
	AddrDel(link netlink.Link, addr *netlink.Addr) error

	RouteAdd(route *netlink.Route) error
	RouteDel(route *netlink.Route) error
}
