package adapters

import (
	"errors"
	"fmt"

	domainErrors "ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
	"golang.org/x/sys/unix"
)

// RealNetlinker talks NETLINK_ROUTE to the kernel. Every call opens its own
// handle and closes it before returning, so no socket outlives an operation.
type RealNetlinker struct {
	// netnsPath selects a network namespace (e.g. /var/run/netns/blue); empty means the caller's
	netnsPath string
}

// NewRealNetlinker creates a Netlinker bound to the namespace at netnsPath, or the current one if empty
func NewRealNetlinker(netnsPath string) interfaces.Netlinker {
	return &RealNetlinker{netnsPath: netnsPath}
}

// openHandle failures are SYSTEM errors so callers can tell them from kernel refusals
func (r *RealNetlinker) openHandle() (*netlink.Handle, error) {
	if r.netnsPath == "" {
		h, err := netlink.NewHandle(unix.NETLINK_ROUTE)
		if err != nil {
			return nil, domainErrors.NewSystemError("failed to open netlink handle", err)
		}
		return h, nil
	}

	ns, err := netns.GetFromPath(r.netnsPath)
	if err != nil {
		return nil, domainErrors.NewSystemError(fmt.Sprintf("failed to open network namespace %s", r.netnsPath), err)
	}
	defer ns.Close()

	h, err := netlink.NewHandleAt(ns, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, domainErrors.NewSystemError(fmt.Sprintf("failed to open netlink handle in %s", r.netnsPath), err)
	}
	return h, nil
}

func (r *RealNetlinker) withHandle(fn func(h *netlink.Handle) error) error {
	h, err := r.openHandle()
	if err != nil {
		return err
	}
	defer h.Close()

	return fn(h)
}

// LinkByName looks up a link; an unknown name yields a NOT_FOUND DomainError
func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	var link netlink.Link
	err := r.withHandle(func(h *netlink.Handle) error {
		var err error
		link, err = h.LinkByName(name)
		return err
	})
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return nil, domainErrors.NewNotFoundError(fmt.Sprintf("link not found: %s", name), err)
		}
		return nil, err
	}
	return link, nil
}

// LinkSetUp sets the link up
func (r *RealNetlinker) LinkSetUp(link netlink.Link) error {
	return r.withHandle(func(h *netlink.Handle) error {
		return h.LinkSetUp(link)
	})
}

// LinkSetDown sets the link down
func (r *RealNetlinker) LinkSetDown(link netlink.Link) error {
	return r.withHandle(func(h *netlink.Handle) error {
		return h.LinkSetDown(link)
	})
}

// AddrAdd adds an address to a link
func (r *RealNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return r.withHandle(func(h *netlink.Handle) error {
		return h.AddrAdd(link, addr)
	})
}

// AddrDel removes an address from a link
func (r *RealNetlinker) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	return r.withHandle(func(h *netlink.Handle) error {
		return h.AddrDel(link, addr)
	})
}

// RouteAdd adds a route
func (r *RealNetlinker) RouteAdd(route *netlink.Route) error {
	return r.withHandle(func(h *netlink.Handle) error {
		return h.RouteAdd(route)
	})
}

// RouteDel deletes a route
func (r *RealNetlinker) RouteDel(route *netlink.Route) error {
	return r.withHandle(func(h *netlink.Handle) error {
		return h.RouteDel(route)
	})
}
