package network

import (
	"fmt"
	"time"

	"ncd-ifconfig/internal/domain/constants"
	"ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// BackendOptions selects and parameterises a NetworkBackend
type BackendOptions struct {
	Type           string
	IPCommand      string
	RouteCommand   string
	CommandTimeout time.Duration
}

// NetworkBackendFactory creates the configured NetworkBackend
type NetworkBackendFactory struct {
	netlinker       interfaces.Netlinker
	commandExecutor interfaces.CommandExecutor
	logger          *logrus.Logger
}

// NewNetworkBackendFactory creates a new NetworkBackendFactory
func NewNetworkBackendFactory(
	nl interfaces.Netlinker,
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
) *NetworkBackendFactory {
	return &NetworkBackendFactory{
		netlinker:       nl,
		commandExecutor: executor,
		logger:          logger,
	}
}

// CreateNetworkBackend returns the backend named by opts.Type
func (f *NetworkBackendFactory) CreateNetworkBackend(opts BackendOptions) (interfaces.NetworkBackend, error) {
	f.logger.WithField("backend", opts.Type).Debug("creating network backend")

	netlinkAdapter := NewNetlinkAdapter(f.netlinker, f.logger)

	switch opts.Type {
	case constants.BackendNetlink:
		return netlinkAdapter, nil

	case constants.BackendCommand:
		return NewCommandAdapter(
			f.commandExecutor,
			netlinkAdapter,
			opts.IPCommand,
			opts.RouteCommand,
			opts.CommandTimeout,
			f.logger,
		), nil

	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported network backend: %q", opts.Type), nil)
	}
}
