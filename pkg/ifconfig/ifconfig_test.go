package ifconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempResolverConfig(t *testing.T) *Config {
	t.Helper()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Resolver.ConfPath = filepath.Join(dir, "resolv.conf")
	cfg.Resolver.TempPath = filepath.Join(dir, "resolv.conf-ncd-temp")
	return cfg
}

func TestAdapter_SetDNSServers(t *testing.T) {
	cfg := tempResolverConfig(t)
	adapter, err := New(cfg, nil)
	require.NoError(t, err)

	servers, err := ParseDNSServerList([]string{"10.0.0.1", "8.8.8.8"})
	require.NoError(t, err)
	require.NoError(t, adapter.SetDNSServers(context.Background(), servers))

	data, err := os.ReadFile(cfg.Resolver.ConfPath)
	require.NoError(t, err)
	assert.Equal(t, "# generated by badvpn-ncd\nnameserver 10.0.0.1\nnameserver 8.8.8.8\n", string(data))
	assert.NoFileExists(t, cfg.Resolver.TempPath)

	got, err := adapter.DNSServers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "8.8.8.8"}, got.Strings())

	require.NoError(t, adapter.SetDNSServers(context.Background(), DNSServerList{}))
	data, err = os.ReadFile(cfg.Resolver.ConfPath)
	require.NoError(t, err)
	assert.Equal(t, "# generated by badvpn-ncd\n", string(data))

	backups, err := adapter.ResolverBackups()
	assert.NoError(t, err)
	assert.Nil(t, backups)
}

func TestAdapter_ResolverBackups(t *testing.T) {
	cfg := tempResolverConfig(t)
	cfg.Resolver.BackupDirectory = filepath.Join(t.TempDir(), "backups")
	require.NoError(t, os.WriteFile(cfg.Resolver.ConfPath, []byte("nameserver 192.0.2.53\n"), 0644))

	adapter, err := New(cfg, logrus.New())
	require.NoError(t, err)

	require.NoError(t, adapter.SetDNSServers(context.Background(), DNSServerList{NewIPv4Address(1, 1, 1, 1)}))

	backups, err := adapter.ResolverBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestAdapter_DNSServersMissingFile(t *testing.T) {
	adapter, err := New(tempResolverConfig(t), nil)
	require.NoError(t, err)

	_, err = adapter.DNSServers(context.Background())
	assert.True(t, IsSystemError(err))
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := tempResolverConfig(t)
	cfg.Backend.Type = "command"
	cfg.Backend.NetnsPath = "/var/run/netns/blue"

	adapter, err := New(cfg, nil)
	assert.Nil(t, adapter)
	assert.True(t, IsValidationError(err))
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ncd.yaml")
	content := "resolver:\n  conf_path: " + filepath.Join(dir, "resolv.conf") +
		"\n  temp_path: " + filepath.Join(dir, "resolv.conf.tmp") + "\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	adapter, err := NewFromFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, adapter.logger.GetLevel())
}

func TestNewFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NCD_BACKEND", "command")
	t.Setenv("NCD_NETNS_PATH", "")
	t.Setenv("NCD_RESOLV_CONF", filepath.Join(dir, "resolv.conf"))
	t.Setenv("NCD_RESOLV_CONF_TEMP", filepath.Join(dir, "resolv.conf-ncd-temp"))
	t.Setenv("NCD_RESOLV_BACKUP_DIR", "")
	t.Setenv("LOG_LEVEL", "warn")

	adapter, err := NewFromEnvironment(nil)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, adapter.logger.GetLevel())
}

func TestNewLogger(t *testing.T) {
	logger := newLogger("error")
	assert.Equal(t, logrus.ErrorLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	fallback := newLogger("loud")
	assert.Equal(t, logrus.InfoLevel, fallback.GetLevel())

	empty := newLogger("")
	assert.Equal(t, logrus.InfoLevel, empty.GetLevel())
}

func TestNew_EmptyLogLevel(t *testing.T) {
	cfg := tempResolverConfig(t)
	cfg.Log.Level = ""

	adapter, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, adapter.logger.GetLevel())
}

func TestValueHelpers(t *testing.T) {
	name, err := NewInterfaceName("tap0")
	require.NoError(t, err)
	assert.Equal(t, "tap0", name.String())

	_, err = NewInterfaceName("")
	assert.ErrorIs(t, err, ErrInvalidInterfaceName)

	prefix, err := ParseIPv4Prefix("10.0.0.2/30")
	require.NoError(t, err)
	assert.Equal(t, IPv4AddressFromUint32(0x0A000002), prefix.Address)

	_, err = NewIPv4Prefix(NewIPv4Address(10, 0, 0, 2), 33)
	assert.ErrorIs(t, err, ErrInvalidPrefixLength)
}
