package network

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golxc/golxc/configs"
)

func TestBindingAddrs(t *testing.T) {
	netdev := &configs.Netdev{
		Type: configs.Veth,
		IPv4: []*configs.Inet4Addr{
			{Addr: net.IPv4(10, 0, 3, 4).To4(), Bcast: net.IPv4(10, 0, 3, 255).To4(), Prefix: 24},
		},
		IPv6: []*configs.Inet6Addr{
			{Addr: net.ParseIP("2003:db8::2"), Prefix: 48},
		},
	}

	addrs := bindingAddrs(netdev)
	require.Len(t, addrs, 2)

	assert.Equal(t, "10.0.3.4/24", addrs[0].IPNet.String())
	assert.Equal(t, net.IPv4(10, 0, 3, 255).To4(), addrs[0].Broadcast)
	assert.Equal(t, "2003:db8::2/48", addrs[1].IPNet.String())
	assert.Nil(t, addrs[1].Broadcast)
}

func TestTempIfname(t *testing.T) {
	name, err := tempIfname("veth")
	require.NoError(t, err)
	assert.Len(t, name, len("veth")+6)

	other, err := tempIfname("veth")
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}
