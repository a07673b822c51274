package usecases

import (
	"context"
	"strings"

	"ncd-ifconfig/internal/domain/entities"
	"ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"
	"ncd-ifconfig/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NetworkConfigUseCase applies single interface, address, route and resolver
// changes. Every call is synchronous and independent of the previous one.
type NetworkConfigUseCase struct {
	backend  interfaces.NetworkBackend
	resolver interfaces.ResolverConfigurer
	clock    interfaces.Clock
	logger   *logrus.Logger
}

// NewNetworkConfigUseCase creates a new NetworkConfigUseCase
func NewNetworkConfigUseCase(
	backend interfaces.NetworkBackend,
	resolver interfaces.ResolverConfigurer,
	clock interfaces.Clock,
	logger *logrus.Logger,
) *NetworkConfigUseCase {
	return &NetworkConfigUseCase{
		backend:  backend,
		resolver: resolver,
		clock:    clock,
		logger:   logger,
	}
}

// QueryStatus reports whether the interface exists, is up and is running
func (uc *NetworkConfigUseCase) QueryStatus(ctx context.Context, name entities.InterfaceName) (entities.InterfaceFlags, error) {
	var flags entities.InterfaceFlags
	err := uc.run("query_status", logrus.Fields{"interface": name.String()}, func() error {
		if err := validateName(name); err != nil {
			return err
		}
		var err error
		flags, err = uc.backend.QueryStatus(ctx, name)
		return err
	})
	return flags, err
}

// SetUp brings the interface administratively up
func (uc *NetworkConfigUseCase) SetUp(ctx context.Context, name entities.InterfaceName) error {
	return uc.run("set_up", logrus.Fields{"interface": name.String()}, func() error {
		if err := validateName(name); err != nil {
			return err
		}
		return uc.backend.SetUp(ctx, name)
	})
}

// SetDown brings the interface administratively down
func (uc *NetworkConfigUseCase) SetDown(ctx context.Context, name entities.InterfaceName) error {
	return uc.run("set_down", logrus.Fields{"interface": name.String()}, func() error {
		if err := validateName(name); err != nil {
			return err
		}
		return uc.backend.SetDown(ctx, name)
	})
}

// AddAddress assigns an IPv4 address with prefix length to the interface
func (uc *NetworkConfigUseCase) AddAddress(ctx context.Context, name entities.InterfaceName, addr entities.IPv4Prefix) error {
	fields := logrus.Fields{"interface": name.String(), "address": addr.String()}
	return uc.run("add_address", fields, func() error {
		if err := validateAddress(name, addr); err != nil {
			return err
		}
		return uc.backend.AddAddress(ctx, name, addr)
	})
}

// RemoveAddress removes an IPv4 address with prefix length from the interface
func (uc *NetworkConfigUseCase) RemoveAddress(ctx context.Context, name entities.InterfaceName, addr entities.IPv4Prefix) error {
	fields := logrus.Fields{"interface": name.String(), "address": addr.String()}
	return uc.run("remove_address", fields, func() error {
		if err := validateAddress(name, addr); err != nil {
			return err
		}
		return uc.backend.RemoveAddress(ctx, name, addr)
	})
}

// AddRoute installs an IPv4 route. Duplicates are left to the kernel.
func (uc *NetworkConfigUseCase) AddRoute(ctx context.Context, route entities.Route) error {
	return uc.run("add_route", logrus.Fields{"route": route.String()}, func() error {
		if err := validateRoute(route); err != nil {
			return err
		}
		return uc.backend.AddRoute(ctx, route)
	})
}

// RemoveRoute deletes an IPv4 route
func (uc *NetworkConfigUseCase) RemoveRoute(ctx context.Context, route entities.Route) error {
	return uc.run("remove_route", logrus.Fields{"route": route.String()}, func() error {
		if err := validateRoute(route); err != nil {
			return err
		}
		return uc.backend.RemoveRoute(ctx, route)
	})
}

// SetDNSServers replaces the system resolver file with the given servers, in order
func (uc *NetworkConfigUseCase) SetDNSServers(ctx context.Context, servers entities.DNSServerList) error {
	return uc.run("set_dns_servers", logrus.Fields{"servers": servers.Strings()}, func() error {
		if err := uc.resolver.SetDNSServers(ctx, servers); err != nil {
			return err
		}
		metrics.SetDNSServers(len(servers))
		return nil
	})
}

// DNSServers returns the IPv4 nameservers currently in the resolver file
func (uc *NetworkConfigUseCase) DNSServers(ctx context.Context) (entities.DNSServerList, error) {
	var servers entities.DNSServerList
	err := uc.run("dns_servers", logrus.Fields{}, func() error {
		var err error
		servers, err = uc.resolver.DNSServers(ctx)
		return err
	})
	return servers, err
}

// run times fn and records its outcome under one operation id
func (uc *NetworkConfigUseCase) run(operation string, fields logrus.Fields, fn func() error) error {
	logger := uc.logger.WithFields(fields).WithFields(logrus.Fields{
		"operation":    operation,
		"operation_id": uuid.NewString(),
		"backend":      uc.backend.Type(),
	})
	logger.Debug("operation started")

	start := uc.clock.Now()
	err := fn()
	duration := uc.clock.Now().Sub(start).Seconds()

	if err != nil {
		metrics.RecordOperation(operation, "failed", duration)
		metrics.RecordError(errorLabel(err))
		logger.WithError(err).Error("operation failed")
		return err
	}

	metrics.RecordOperation(operation, "success", duration)
	logger.Info("operation completed")
	return nil
}

func validateName(name entities.InterfaceName) error {
	if name.IsZero() {
		return errors.NewValidationError("interface name not set", entities.ErrInvalidInterfaceName)
	}
	return nil
}

func validateAddress(name entities.InterfaceName, addr entities.IPv4Prefix) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := addr.Validate(); err != nil {
		return errors.NewValidationError("invalid address prefix", err)
	}
	return nil
}

func validateRoute(route entities.Route) error {
	if err := route.Validate(); err != nil {
		return errors.NewValidationError("invalid route", err)
	}
	return nil
}

func errorLabel(err error) string {
	if t := errors.TypeOf(err); t != "" {
		return strings.ToLower(string(t))
	}
	return "unknown"
}
