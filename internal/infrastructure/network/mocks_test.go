package network

import (
	"context"
	"time"

	"ncd-ifconfig/internal/domain/entities"

	"github.com/stretchr/testify/mock"
	"github.com/vishvananda/netlink"
)

// MockNetlinker is a mock Netlinker
type MockNetlinker struct {
	mock.Mock
}

func (m *MockNetlinker) LinkByName(name string) (netlink.Link, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(netlink.Link), args.Error(1)
}

func (m *MockNetlinker) LinkSetUp(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) LinkSetDown(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	args := m.Called(link, addr)
	return args.Error(0)
}

func (m *MockNetlinker) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	args := m.Called(link, addr)
	return args.Error(0)
}

func (m *MockNetlinker) RouteAdd(route *netlink.Route) error {
	args := m.Called(route)
	return args.Error(0)
}

func (m *MockNetlinker) RouteDel(route *netlink.Route) error {
	args := m.Called(route)
	return args.Error(0)
}

// MockCommandExecutor is a mock CommandExecutor
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	argList := []interface{}{ctx, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	return mockArgs.Get(0).([]byte), mockArgs.Error(1)
}

func (m *MockCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	argList := []interface{}{ctx, timeout, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	return mockArgs.Get(0).([]byte), mockArgs.Error(1)
}

// MockStatusQuerier is a mock InterfaceStatusQuerier
type MockStatusQuerier struct {
	mock.Mock
}

func (m *MockStatusQuerier) QueryStatus(ctx context.Context, name entities.InterfaceName) (entities.InterfaceFlags, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(entities.InterfaceFlags), args.Error(1)
}

// MockBackupService is a mock BackupService
type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) CreateBackup(ctx context.Context, name string, path string) error {
	args := m.Called(ctx, name, path)
	return args.Error(0)
}

func (m *MockBackupService) ListBackups(name string) ([]string, error) {
	args := m.Called(name)
	return args.Get(0).([]string), args.Error(1)
}

func mustCreateInterfaceName(name string) entities.InterfaceName {
	iface, err := entities.NewInterfaceName(name)
	if err != nil {
		panic(err)
	}
	return iface
}

func mustParsePrefix(s string) entities.IPv4Prefix {
	p, err := entities.ParseIPv4Prefix(s)
	if err != nil {
		panic(err)
	}
	return p
}

func mustParseAddress(s string) entities.IPv4Address {
	a, err := entities.ParseIPv4Address(s)
	if err != nil {
		panic(err)
	}
	return a
}
