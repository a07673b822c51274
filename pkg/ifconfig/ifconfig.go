// Package ifconfig changes kernel network state for a network-configuration
// process: interface status, link up/down, IPv4 addresses, IPv4 routes and
// the system resolver file. Every call is synchronous and reports failure
// through a typed error.
package ifconfig

import (
	"context"

	"ncd-ifconfig/internal/application/usecases"
	"ncd-ifconfig/internal/domain/constants"
	"ncd-ifconfig/internal/domain/entities"
	"ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"
	"ncd-ifconfig/internal/infrastructure/config"
	"ncd-ifconfig/internal/infrastructure/container"

	"github.com/sirupsen/logrus"
)

type (
	InterfaceName  = entities.InterfaceName
	IPv4Address    = entities.IPv4Address
	IPv4Prefix     = entities.IPv4Prefix
	Route          = entities.Route
	InterfaceFlags = entities.InterfaceFlags
	DNSServerList  = entities.DNSServerList

	Config         = config.Config
	BackendConfig  = config.BackendConfig
	ResolverConfig = config.ResolverConfig
	LogConfig      = config.LogConfig

	DomainError = errors.DomainError
	ErrorType   = errors.ErrorType
)

var (
	NewInterfaceName      = entities.NewInterfaceName
	NewIPv4Address        = entities.NewIPv4Address
	IPv4AddressFromUint32 = entities.IPv4AddressFromUint32
	ParseIPv4Address      = entities.ParseIPv4Address
	NewIPv4Prefix         = entities.NewIPv4Prefix
	ParseIPv4Prefix       = entities.ParseIPv4Prefix
	ParseDNSServerList    = entities.ParseDNSServerList

	ErrInvalidInterfaceName = entities.ErrInvalidInterfaceName
	ErrInvalidPrefixLength  = entities.ErrInvalidPrefixLength
	ErrInvalidIPv4Address   = entities.ErrInvalidIPv4Address
	ErrInvalidMetric        = entities.ErrInvalidMetric

	IsValidationError = errors.IsValidationError
	IsNotFoundError   = errors.IsNotFoundError
	IsSystemError     = errors.IsSystemError
	IsNetworkError    = errors.IsNetworkError
	IsTimeoutError    = errors.IsTimeoutError
)

// DefaultConfig returns the netlink backend writing /etc/resolv.conf
func DefaultConfig() *Config {
	return config.Default()
}

// Adapter is the entry point for all network changes
type Adapter struct {
	useCase *usecases.NetworkConfigUseCase
	backups interfaces.BackupService
	logger  *logrus.Logger
}

// New creates an Adapter for cfg. A nil cfg means DefaultConfig; a nil
// logger means a JSON logger at cfg.Log.Level, or info when it is empty.
// Callers building a Config should start from DefaultConfig, since backend
// type and resolver paths have no zero-value defaults.
func New(cfg *Config, logger *logrus.Logger) (*Adapter, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if logger == nil {
		logger = newLogger(cfg.Log.Level)
	}

	c, err := container.NewContainer(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		useCase: c.GetNetworkConfigUseCase(),
		backups: c.GetBackupService(),
		logger:  logger,
	}, nil
}

// NewFromEnvironment creates an Adapter configured from NCD_* variables
func NewFromEnvironment(logger *logrus.Logger) (*Adapter, error) {
	cfg, err := config.NewEnvironmentConfigLoader().Load()
	if err != nil {
		return nil, err
	}
	return New(cfg, logger)
}

// NewFromFile creates an Adapter configured from a YAML file
func NewFromFile(path string, logger *logrus.Logger) (*Adapter, error) {
	cfg, err := config.NewFileConfigLoader(path).Load()
	if err != nil {
		return nil, err
	}
	return New(cfg, logger)
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if level == "" {
		level = constants.DefaultLogLevel
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithError(err).Warnf("Unknown log level %q, using info", level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return logger
}

// QueryStatus reads the flags of the named interface. An unknown interface
// yields zero flags and a nil error; zero flags with a SYSTEM error mean the
// kernel could not be queried.
func (a *Adapter) QueryStatus(ctx context.Context, name InterfaceName) (InterfaceFlags, error) {
	return a.useCase.QueryStatus(ctx, name)
}

// SetUp brings the interface up
func (a *Adapter) SetUp(ctx context.Context, name InterfaceName) error {
	return a.useCase.SetUp(ctx, name)
}

// SetDown brings the interface down
func (a *Adapter) SetDown(ctx context.Context, name InterfaceName) error {
	return a.useCase.SetDown(ctx, name)
}

// AddAddress assigns addr to the interface
func (a *Adapter) AddAddress(ctx context.Context, name InterfaceName, addr IPv4Prefix) error {
	return a.useCase.AddAddress(ctx, name, addr)
}

// RemoveAddress removes addr from the interface
func (a *Adapter) RemoveAddress(ctx context.Context, name InterfaceName, addr IPv4Prefix) error {
	return a.useCase.RemoveAddress(ctx, name, addr)
}

// AddRoute installs route
func (a *Adapter) AddRoute(ctx context.Context, route Route) error {
	return a.useCase.AddRoute(ctx, route)
}

// RemoveRoute deletes route
func (a *Adapter) RemoveRoute(ctx context.Context, route Route) error {
	return a.useCase.RemoveRoute(ctx, route)
}

// SetDNSServers atomically replaces the resolver file
func (a *Adapter) SetDNSServers(ctx context.Context, servers DNSServerList) error {
	return a.useCase.SetDNSServers(ctx, servers)
}

// DNSServers reads the IPv4 nameservers from the resolver file
func (a *Adapter) DNSServers(ctx context.Context) (DNSServerList, error) {
	return a.useCase.DNSServers(ctx)
}

// ResolverBackups lists the resolver backups, oldest first. It returns nil
// when no backup directory is configured.
func (a *Adapter) ResolverBackups() ([]string, error) {
	if a.backups == nil {
		return nil, nil
	}
	return a.backups.ListBackups(constants.ResolvConfBackupPrefix)
}
