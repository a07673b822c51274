package network

import (
	"context"
	"fmt"

	"ncd-ifconfig/internal/domain/constants"
	"ncd-ifconfig/internal/domain/entities"
	domainErrors "ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// NetlinkAdapter drives interfaces, addresses and routes through netlink
type NetlinkAdapter struct {
	netlinker interfaces.Netlinker
	logger    *logrus.Logger
}

// NewNetlinkAdapter creates a new NetlinkAdapter
func NewNetlinkAdapter(nl interfaces.Netlinker, logger *logrus.Logger) *NetlinkAdapter {
	return &NetlinkAdapter{
		netlinker: nl,
		logger:    logger,
	}
}

// Type returns the backend name
func (a *NetlinkAdapter) Type() string {
	return constants.BackendNetlink
}

// QueryStatus reads the flag word of the named link
func (a *NetlinkAdapter) QueryStatus(ctx context.Context, name entities.InterfaceName) (entities.InterfaceFlags, error) {
	link, err := a.netlinker.LinkByName(name.String())
	if err != nil {
		if domainErrors.IsNotFoundError(err) {
			a.logger.WithField("interface", name.String()).Debug("interface does not exist")
			return 0, nil
		}

		a.logger.WithError(err).WithField("interface", name.String()).Error("failed to query interface flags")
		if domainErrors.IsSystemError(err) {
			return 0, err
		}
		return 0, domainErrors.NewSystemError(fmt.Sprintf("failed to query interface flags: %s", name), err)
	}

	raw := link.Attrs().RawFlags
	return entities.NewInterfaceFlags(true, raw&unix.IFF_UP != 0, raw&unix.IFF_RUNNING != 0), nil
}

// SetUp sets the link administratively up
func (a *NetlinkAdapter) SetUp(ctx context.Context, name entities.InterfaceName) error {
	link, err := a.lookupLink(name)
	if err != nil {
		return err
	}

	if err := a.netlinker.LinkSetUp(link); err != nil {
		return actionError(fmt.Sprintf("failed to set link up: %s", name), err)
	}

	a.logger.WithField("interface", name.String()).Info("link set up")
	return nil
}

// SetDown sets the link administratively down
func (a *NetlinkAdapter) SetDown(ctx context.Context, name entities.InterfaceName) error {
	link, err := a.lookupLink(name)
	if err != nil {
		return err
	}

	if err := a.netlinker.LinkSetDown(link); err != nil {
		return actionError(fmt.Sprintf("failed to set link down: %s", name), err)
	}

	a.logger.WithField("interface", name.String()).Info("link set down")
	return nil
}

// AddAddress assigns addr to the link. An existing address is reported as a failure.
func (a *NetlinkAdapter) AddAddress(ctx context.Context, name entities.InterfaceName, addr entities.IPv4Prefix) error {
	link, err := a.lookupLink(name)
	if err != nil {
		return err
	}

	if err := a.netlinker.AddrAdd(link, &netlink.Addr{IPNet: addr.IPNet()}); err != nil {
		return actionError(fmt.Sprintf("failed to add address %s to %s", addr, name), err)
	}

	a.logger.WithFields(logrus.Fields{
		"interface": name.String(),
		"address":   addr.String(),
	}).Info("address added")
	return nil
}

// RemoveAddress removes addr from the link
func (a *NetlinkAdapter) RemoveAddress(ctx context.Context, name entities.InterfaceName, addr entities.IPv4Prefix) error {
	link, err := a.lookupLink(name)
	if err != nil {
		return err
	}

	if err := a.netlinker.AddrDel(link, &netlink.Addr{IPNet: addr.IPNet()}); err != nil {
		return actionError(fmt.Sprintf("failed to remove address %s from %s", addr, name), err)
	}

	a.logger.WithFields(logrus.Fields{
		"interface": name.String(),
		"address":   addr.String(),
	}).Info("address removed")
	return nil
}

// AddRoute installs the route in the main table
func (a *NetlinkAdapter) AddRoute(ctx context.Context, route entities.Route) error {
	nlRoute, err := a.buildRoute(route)
	if err != nil {
		return err
	}

	if err := a.netlinker.RouteAdd(nlRoute); err != nil {
		return actionError(fmt.Sprintf("failed to add route %s", route), err)
	}

	a.logger.WithField("route", route.String()).Info("route added")
	return nil
}

// RemoveRoute deletes the route from the main table
func (a *NetlinkAdapter) RemoveRoute(ctx context.Context, route entities.Route) error {
	nlRoute, err := a.buildRoute(route)
	if err != nil {
		return err
	}

	if err := a.netlinker.RouteDel(nlRoute); err != nil {
		return actionError(fmt.Sprintf("failed to remove route %s", route), err)
	}

	a.logger.WithField("route", route.String()).Info("route removed")
	return nil
}

// buildRoute resolves the device to its index. A 0.0.0.0 gateway becomes a
// link-scoped route without a gateway, like "ip route add D dev X".
func (a *NetlinkAdapter) buildRoute(route entities.Route) (*netlink.Route, error) {
	link, err := a.lookupLink(route.Device)
	if err != nil {
		return nil, err
	}

	nlRoute := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       route.Destination.IPNet(),
		Priority:  route.Metric,
	}
	if route.Gateway.IsUnspecified() {
		nlRoute.Scope = netlink.SCOPE_LINK
	} else {
		nlRoute.Gw = route.Gateway.IP()
	}

	return nlRoute, nil
}

func (a *NetlinkAdapter) lookupLink(name entities.InterfaceName) (netlink.Link, error) {
	link, err := a.netlinker.LinkByName(name.String())
	if err != nil {
		if domainErrors.IsNotFoundError(err) {
			return nil, err
		}
		return nil, actionError(fmt.Sprintf("failed to look up interface: %s", name), err)
	}
	return link, nil
}

// actionError keeps SYSTEM errors from the handle as they are and reports
// everything else as a rejected action.
func actionError(message string, err error) error {
	if domainErrors.IsSystemError(err) {
		return err
	}
	return domainErrors.NewNetworkError(message, err)
}
