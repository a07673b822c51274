package container

import (
	"ncd-ifconfig/internal/application/usecases"
	"ncd-ifconfig/internal/domain/interfaces"
	"ncd-ifconfig/internal/infrastructure/adapters"
	"ncd-ifconfig/internal/infrastructure/config"
	"ncd-ifconfig/internal/infrastructure/network"
	"ncd-ifconfig/internal/infrastructure/services"

	"github.com/sirupsen/logrus"
)

// Container wires the adapters, services and use case for one configuration
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// Infrastructure adapters
	fileSystem      interfaces.FileSystem
	commandExecutor interfaces.CommandExecutor
	clock           interfaces.Clock
	netlinker       interfaces.Netlinker

	// Services
	backupService  interfaces.BackupService
	networkFactory *network.NetworkBackendFactory

	// Ports
	backend  interfaces.NetworkBackend
	resolver interfaces.ResolverConfigurer

	// Use cases
	networkConfigUseCase *usecases.NetworkConfigUseCase
}

// NewContainer creates a new Container. The configuration is validated first.
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	container := &Container{
		config: cfg,
		logger: logger,
	}

	container.initializeInfrastructure()

	if err := container.initializeServices(); err != nil {
		return nil, err
	}

	container.initializeUseCases()

	return container, nil
}

// initializeInfrastructure creates the OS-facing adapters
func (c *Container) initializeInfrastructure() {
	c.fileSystem = adapters.NewRealFileSystem()
	c.commandExecutor = adapters.NewRealCommandExecutor(c.logger)
	c.clock = adapters.NewRealClock()
	c.netlinker = adapters.NewRealNetlinker(c.config.Backend.NetnsPath)
}

// initializeServices creates the backend and the resolver writer
func (c *Container) initializeServices() error {
	c.networkFactory = network.NewNetworkBackendFactory(
		c.netlinker,
		c.commandExecutor,
		c.logger,
	)

	backend, err := c.networkFactory.CreateNetworkBackend(network.BackendOptions{
		Type:           c.config.Backend.Type,
		IPCommand:      c.config.Backend.IPCommand,
		RouteCommand:   c.config.Backend.RouteCommand,
		CommandTimeout: c.config.Backend.CommandTimeout,
	})
	if err != nil {
		return err
	}
	c.backend = backend

	// Backups are off unless a directory is configured
	if c.config.Resolver.BackupDirectory != "" {
		c.backupService = services.NewBackupService(
			c.fileSystem,
			c.clock,
			c.logger,
			c.config.Resolver.BackupDirectory,
			c.config.Resolver.MaxBackups,
		)
	}

	c.resolver = network.NewResolvConfAdapter(
		c.fileSystem,
		c.backupService,
		c.config.Resolver.ConfPath,
		c.config.Resolver.TempPath,
		c.logger,
	)

	return nil
}

// initializeUseCases creates the use case
func (c *Container) initializeUseCases() {
	c.networkConfigUseCase = usecases.NewNetworkConfigUseCase(
		c.backend,
		c.resolver,
		c.clock,
		c.logger,
	)
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetBackupService returns the resolver backup service, or nil when backups are off
func (c *Container) GetBackupService() interfaces.BackupService {
	return c.backupService
}

// GetNetworkConfigUseCase returns the network configuration use case
func (c *Container) GetNetworkConfigUseCase() *usecases.NetworkConfigUseCase {
	return c.networkConfigUseCase
}
