package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ncd-ifconfig/internal/domain/constants"
	"ncd-ifconfig/internal/domain/errors"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is a struct that holds application configuration
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Resolver ResolverConfig `yaml:"resolver"`
	Log      LogConfig      `yaml:"log"`
}

// BackendConfig selects how interface state is changed
type BackendConfig struct {
	Type           string        `yaml:"type"`
	IPCommand      string        `yaml:"ip_command"`
	RouteCommand   string        `yaml:"route_command"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
	NetnsPath      string        `yaml:"netns_path"`
}

// ResolverConfig is a struct that holds resolver file configuration
type ResolverConfig struct {
	ConfPath        string `yaml:"conf_path"`
	TempPath        string `yaml:"temp_path"`
	BackupDirectory string `yaml:"backup_directory"`
	MaxBackups      int    `yaml:"max_backups"`
}

// LogConfig is a struct that holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			Type:         constants.BackendNetlink,
			IPCommand:    constants.DefaultIPCommand,
			RouteCommand: constants.DefaultRouteCommand,
		},
		Resolver: ResolverConfig{
			ConfPath:   constants.DefaultResolvConfPath,
			TempPath:   constants.DefaultResolvConfTempPath,
			MaxBackups: constants.DefaultResolvMaxBackups,
		},
		Log: LogConfig{
			Level: constants.DefaultLogLevel,
		},
	}
}

// EnvironmentConfigLoader is an implementation that loads configuration from environment variables
type EnvironmentConfigLoader struct{}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader() ConfigLoader {
	return &EnvironmentConfigLoader{}
}

// Load loads configuration from environment variables. A malformed number
// or duration is a validation error rather than a silent default.
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	defaults := Default()

	commandTimeout, err := getEnvDurationOrDefault("NCD_COMMAND_TIMEOUT", defaults.Backend.CommandTimeout)
	if err != nil {
		return nil, err
	}

	maxBackups, err := getEnvIntOrDefault("NCD_RESOLV_MAX_BACKUPS", defaults.Resolver.MaxBackups)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Backend: BackendConfig{
			Type:           getEnvOrDefault("NCD_BACKEND", defaults.Backend.Type),
			IPCommand:      getEnvOrDefault("NCD_IP_COMMAND", defaults.Backend.IPCommand),
			RouteCommand:   getEnvOrDefault("NCD_ROUTE_COMMAND", defaults.Backend.RouteCommand),
			CommandTimeout: commandTimeout,
			NetnsPath:      getEnvOrDefault("NCD_NETNS_PATH", defaults.Backend.NetnsPath),
		},
		Resolver: ResolverConfig{
			ConfPath:        getEnvOrDefault("NCD_RESOLV_CONF", defaults.Resolver.ConfPath),
			TempPath:        getEnvOrDefault("NCD_RESOLV_CONF_TEMP", defaults.Resolver.TempPath),
			BackupDirectory: getEnvOrDefault("NCD_RESOLV_BACKUP_DIR", defaults.Resolver.BackupDirectory),
			MaxBackups:      maxBackups,
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", defaults.Log.Level),
		},
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// FileConfigLoader loads configuration from a YAML file over the defaults
type FileConfigLoader struct {
	path string
}

// NewFileConfigLoader creates a new FileConfigLoader
func NewFileConfigLoader(path string) ConfigLoader {
	return &FileConfigLoader{path: path}
}

// Load reads and validates the YAML file
func (l *FileConfigLoader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.NewSystemError(fmt.Sprintf("failed to read config file %s", l.path), err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("failed to parse config file %s", l.path), err)
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func Validate(config *Config) error {
	// Validate backend configuration
	switch config.Backend.Type {
	case constants.BackendNetlink:
	case constants.BackendCommand:
		if config.Backend.IPCommand == "" || config.Backend.RouteCommand == "" {
			return errors.NewValidationError("command backend requires ip and route commands", nil)
		}
		if config.Backend.NetnsPath != "" {
			return errors.NewValidationError("network namespace is not supported with the command backend", nil)
		}
	default:
		return errors.NewValidationError(fmt.Sprintf("unsupported backend: %q", config.Backend.Type), nil)
	}
	if config.Backend.CommandTimeout < 0 {
		return errors.NewValidationError("invalid command timeout", nil)
	}

	// Validate resolver configuration
	if config.Resolver.ConfPath == "" {
		return errors.NewValidationError("resolvconf path not configured", nil)
	}
	if config.Resolver.TempPath == "" {
		return errors.NewValidationError("resolvconf temp path not configured", nil)
	}
	if filepath.Clean(config.Resolver.TempPath) == filepath.Clean(config.Resolver.ConfPath) {
		return errors.NewValidationError("resolvconf temp path must differ from resolvconf path", nil)
	}
	// rename is only atomic within one filesystem
	if filepath.Dir(config.Resolver.TempPath) != filepath.Dir(config.Resolver.ConfPath) {
		return errors.NewValidationError("resolvconf temp path must be in the same directory as resolvconf path", nil)
	}
	if config.Resolver.MaxBackups < 0 {
		return errors.NewValidationError("invalid max backup count", nil)
	}

	// Validate log configuration; empty means the default level
	if config.Log.Level == "" {
		return nil
	}
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return errors.NewValidationError("invalid log level", err)
	}

	return nil
}

// Environment variable helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid integer in %s: %q", key, value), err)
	}
	return intValue, nil
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid duration in %s: %q (e.g. 5s)", key, value), err)
	}
	return duration, nil
}
