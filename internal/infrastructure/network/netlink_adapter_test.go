package network

import (
	"context"
	"errors"
	"testing"

	"ncd-ifconfig/internal/domain/entities"
	domainErrors "ncd-ifconfig/internal/domain/errors"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

func dummyLink(name string, index int, rawFlags uint32) netlink.Link {
	return &netlink.Dummy{LinkAttrs: netlink.LinkAttrs{Name: name, Index: index, RawFlags: rawFlags}}
}

func linkNotFound(name string) error {
	return domainErrors.NewNotFoundError("link not found: "+name, errors.New("Link not found"))
}

func TestNetlinkAdapter_QueryStatus(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*MockNetlinker)
		wantExists  bool
		wantUp      bool
		wantRunning bool
		wantErrType domainErrors.ErrorType
	}{
		{
			name: "interface up and running",
			setupMocks: func(m *MockNetlinker) {
				m.On("LinkByName", "eth0").Return(dummyLink("eth0", 2, unix.IFF_UP|unix.IFF_RUNNING|unix.IFF_BROADCAST), nil).Once()
			},
			wantExists:  true,
			wantUp:      true,
			wantRunning: true,
		},
		{
			name: "interface up without carrier",
			setupMocks: func(m *MockNetlinker) {
				m.On("LinkByName", "eth0").Return(dummyLink("eth0", 2, unix.IFF_UP), nil).Once()
			},
			wantExists: true,
			wantUp:     true,
		},
		{
			name: "running bit without up is not reported",
			setupMocks: func(m *MockNetlinker) {
				m.On("LinkByName", "eth0").Return(dummyLink("eth0", 2, unix.IFF_RUNNING), nil).Once()
			},
			wantExists: true,
		},
		{
			name: "interface down",
			setupMocks: func(m *MockNetlinker) {
				m.On("LinkByName", "eth0").Return(dummyLink("eth0", 2, 0), nil).Once()
			},
			wantExists: true,
		},
		{
			name: "unknown interface is not an error",
			setupMocks: func(m *MockNetlinker) {
				m.On("LinkByName", "eth0").Return(nil, linkNotFound("eth0")).Once()
			},
		},
		{
			name: "handle cannot be opened",
			setupMocks: func(m *MockNetlinker) {
				m.On("LinkByName", "eth0").Return(nil, domainErrors.NewSystemError("failed to open netlink handle", errors.New("EMFILE"))).Once()
			},
			wantErrType: domainErrors.ErrorTypeSystem,
		},
		{
			name: "unexpected lookup failure",
			setupMocks: func(m *MockNetlinker) {
				m.On("LinkByName", "eth0").Return(nil, errors.New("dump interrupted")).Once()
			},
			wantErrType: domainErrors.ErrorTypeSystem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nl := new(MockNetlinker)
			tt.setupMocks(nl)

			adapter := NewNetlinkAdapter(nl, logrus.New())
			flags, err := adapter.QueryStatus(context.Background(), mustCreateInterfaceName("eth0"))

			if tt.wantErrType != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrType, domainErrors.TypeOf(err))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantExists, flags.Exists())
			assert.Equal(t, tt.wantUp, flags.Up())
			assert.Equal(t, tt.wantRunning, flags.Running())

			nl.AssertExpectations(t)
		})
	}
}

func TestNetlinkAdapter_SetUpDown(t *testing.T) {
	link := dummyLink("eth0", 2, 0)

	t.Run("set up twice succeeds both times", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Twice()
		nl.On("LinkSetUp", link).Return(nil).Twice()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		assert.NoError(t, adapter.SetUp(context.Background(), mustCreateInterfaceName("eth0")))
		assert.NoError(t, adapter.SetUp(context.Background(), mustCreateInterfaceName("eth0")))

		nl.AssertExpectations(t)
	})

	t.Run("set down", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Once()
		nl.On("LinkSetDown", link).Return(nil).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		assert.NoError(t, adapter.SetDown(context.Background(), mustCreateInterfaceName("eth0")))

		nl.AssertExpectations(t)
	})

	t.Run("missing interface", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth9").Return(nil, linkNotFound("eth9")).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		err := adapter.SetUp(context.Background(), mustCreateInterfaceName("eth9"))
		assert.True(t, domainErrors.IsNotFoundError(err))

		nl.AssertExpectations(t)
	})

	t.Run("kernel refuses", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Once()
		nl.On("LinkSetDown", link).Return(unix.EPERM).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		err := adapter.SetDown(context.Background(), mustCreateInterfaceName("eth0"))
		assert.True(t, domainErrors.IsNetworkError(err))
		assert.ErrorIs(t, err, unix.EPERM)

		nl.AssertExpectations(t)
	})

	t.Run("handle failure stays a system error", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Once()
		nl.On("LinkSetUp", link).Return(domainErrors.NewSystemError("failed to open netlink handle", nil)).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		err := adapter.SetUp(context.Background(), mustCreateInterfaceName("eth0"))
		assert.True(t, domainErrors.IsSystemError(err))

		nl.AssertExpectations(t)
	})
}

func TestNetlinkAdapter_Addresses(t *testing.T) {
	link := dummyLink("eth0", 2, unix.IFF_UP)
	prefix := mustParsePrefix("192.168.1.10/24")

	matchAddr := mock.MatchedBy(func(a *netlink.Addr) bool {
		return a.IPNet.String() == "192.168.1.10/24"
	})

	t.Run("add then remove", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Twice()
		nl.On("AddrAdd", link, matchAddr).Return(nil).Once()
		nl.On("AddrDel", link, matchAddr).Return(nil).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		assert.NoError(t, adapter.AddAddress(context.Background(), mustCreateInterfaceName("eth0"), prefix))
		assert.NoError(t, adapter.RemoveAddress(context.Background(), mustCreateInterfaceName("eth0"), prefix))

		nl.AssertExpectations(t)
	})

	t.Run("re-adding an existing address fails", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Once()
		nl.On("AddrAdd", link, matchAddr).Return(unix.EEXIST).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		err := adapter.AddAddress(context.Background(), mustCreateInterfaceName("eth0"), prefix)
		assert.True(t, domainErrors.IsNetworkError(err))
		assert.ErrorIs(t, err, unix.EEXIST)

		nl.AssertExpectations(t)
	})
}

func TestNetlinkAdapter_Routes(t *testing.T) {
	link := dummyLink("eth0", 7, unix.IFF_UP)

	route := entities.Route{
		Destination: mustParsePrefix("10.1.0.0/16"),
		Gateway:     mustParseAddress("192.168.1.1"),
		Metric:      100,
		Device:      mustCreateInterfaceName("eth0"),
	}

	t.Run("add gateway route", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Once()
		nl.On("RouteAdd", mock.MatchedBy(func(r *netlink.Route) bool {
			return r.LinkIndex == 7 &&
				r.Dst.String() == "10.1.0.0/16" &&
				r.Gw.String() == "192.168.1.1" &&
				r.Priority == 100 &&
				r.Scope == netlink.SCOPE_UNIVERSE
		})).Return(nil).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		assert.NoError(t, adapter.AddRoute(context.Background(), route))

		nl.AssertExpectations(t)
	})

	t.Run("unspecified gateway becomes link scope", func(t *testing.T) {
		direct := route
		direct.Gateway = entities.IPv4Address{}

		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Once()
		nl.On("RouteAdd", mock.MatchedBy(func(r *netlink.Route) bool {
			return r.Gw == nil && r.Scope == netlink.SCOPE_LINK
		})).Return(nil).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		assert.NoError(t, adapter.AddRoute(context.Background(), direct))

		nl.AssertExpectations(t)
	})

	t.Run("remove missing route", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(link, nil).Once()
		nl.On("RouteDel", mock.Anything).Return(unix.ESRCH).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		err := adapter.RemoveRoute(context.Background(), route)
		assert.True(t, domainErrors.IsNetworkError(err))

		nl.AssertExpectations(t)
	})

	t.Run("device missing", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkByName", "eth0").Return(nil, linkNotFound("eth0")).Once()

		adapter := NewNetlinkAdapter(nl, logrus.New())
		err := adapter.AddRoute(context.Background(), route)
		assert.True(t, domainErrors.IsNotFoundError(err))

		nl.AssertNotCalled(t, "RouteAdd", mock.Anything)
	})
}
