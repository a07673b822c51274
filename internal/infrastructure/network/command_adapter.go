package network

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ncd-ifconfig/internal/domain/constants"
	"ncd-ifconfig/internal/domain/entities"
	domainErrors "ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// CommandAdapter mutates network state through ip(8) and route(8). Status
// queries are not commands and go to the wrapped querier.
type CommandAdapter struct {
	commandExecutor interfaces.CommandExecutor
	querier         interfaces.InterfaceStatusQuerier
	ipCommand       string
	routeCommand    string
	timeout         time.Duration
	logger          *logrus.Logger
}

// NewCommandAdapter creates a new CommandAdapter
func NewCommandAdapter(
	executor interfaces.CommandExecutor,
	querier interfaces.InterfaceStatusQuerier,
	ipCommand string,
	routeCommand string,
	timeout time.Duration,
	logger *logrus.Logger,
) *CommandAdapter {
	return &CommandAdapter{
		commandExecutor: executor,
		querier:         querier,
		ipCommand:       ipCommand,
		routeCommand:    routeCommand,
		timeout:         timeout,
		logger:          logger,
	}
}

// Type returns the backend name
func (a *CommandAdapter) Type() string {
	return constants.BackendCommand
}

// QueryStatus delegates to the netlink querier
func (a *CommandAdapter) QueryStatus(ctx context.Context, name entities.InterfaceName) (entities.InterfaceFlags, error) {
	return a.querier.QueryStatus(ctx, name)
}

// SetUp runs "ip link set <name> up"
func (a *CommandAdapter) SetUp(ctx context.Context, name entities.InterfaceName) error {
	return a.run(ctx, a.ipCommand, "link", "set", name.String(), "up")
}

// SetDown runs "ip link set <name> down"
func (a *CommandAdapter) SetDown(ctx context.Context, name entities.InterfaceName) error {
	return a.run(ctx, a.ipCommand, "link", "set", name.String(), "down")
}

// AddAddress runs "ip addr add a.b.c.d/n dev <name>"
func (a *CommandAdapter) AddAddress(ctx context.Context, name entities.InterfaceName, addr entities.IPv4Prefix) error {
	return a.run(ctx, a.ipCommand, "addr", "add", addr.String(), "dev", name.String())
}

// RemoveAddress runs "ip addr del a.b.c.d/n dev <name>"
func (a *CommandAdapter) RemoveAddress(ctx context.Context, name entities.InterfaceName, addr entities.IPv4Prefix) error {
	return a.run(ctx, a.ipCommand, "addr", "del", addr.String(), "dev", name.String())
}

// AddRoute runs "route add -net D/P gw G metric M dev X"
func (a *CommandAdapter) AddRoute(ctx context.Context, route entities.Route) error {
	return a.run(ctx, a.routeCommand, routeArgs("add", route)...)
}

// RemoveRoute runs "route del -net D/P gw G metric M dev X"
func (a *CommandAdapter) RemoveRoute(ctx context.Context, route entities.Route) error {
	return a.run(ctx, a.routeCommand, routeArgs("del", route)...)
}

func routeArgs(action string, route entities.Route) []string {
	return []string{
		action, "-net", route.Destination.String(),
		"gw", route.Gateway.String(),
		"metric", strconv.Itoa(route.Metric),
		"dev", route.Device.String(),
	}
}

func (a *CommandAdapter) run(ctx context.Context, command string, args ...string) error {
	if _, err := a.commandExecutor.ExecuteWithTimeout(ctx, a.timeout, command, args...); err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"command": command,
			"args":    args,
		}).Error("command failed")

		if domainErrors.TypeOf(err) != "" {
			return err
		}
		return domainErrors.NewNetworkError(fmt.Sprintf("command failed: %s %v", command, args), err)
	}
	return nil
}
