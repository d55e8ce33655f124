// Package network instantiates the network devices described by a
// container configuration. Creation happens on the host side before the
// container is started; Setup runs against the container-side interface.
package network

import (
	"crypto/rand"
	"fmt"
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"

	"github.com/golxc/golxc/configs"
)

// tempIfname returns a randomly suffixed interface name, the kernel-side
// equivalent of the vethXXXXXX temp names the classic tools generate.
func tempIfname(prefix string) (string, error) {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", prefix, suffix), nil
}

// Create instantiates the host side of netdev and records the index of
// the interface that will be moved into the container.
func Create(netdev *configs.Netdev) error {
	switch netdev.Type {
	case configs.Veth:
		return createVeth(netdev)
	case configs.Macvlan:
		return createMacvlan(netdev)
	case configs.Phys:
		return createPhys(netdev)
	}
	// empty: only the loopback is brought up, inside the container
	return nil
}

func createVeth(netdev *configs.Netdev) error {
	hostName, err := tempIfname("veth")
	if err != nil {
		return err
	}
	peerName, err := tempIfname("veth")
	if err != nil {
		return err
	}

	attrs := netlink.NewLinkAttrs()
	attrs.Name = hostName
	if netdev.MTU != "" {
		mtu, err := strconv.Atoi(netdev.MTU)
		if err != nil {
			return errors.Wrapf(err, "invalid mtu '%s'", netdev.MTU)
		}
		attrs.MTU = mtu
	}
	veth := &netlink.Veth{LinkAttrs: attrs, PeerName: peerName}

	if err := netlink.LinkAdd(veth); err != nil {
		return errors.Wrapf(err, "failed to create %s-%s", hostName, peerName)
	}

	if netdev.Link != "" {
		bridge, err := netlink.LinkByName(netdev.Link)
		if err != nil {
			return errors.Wrapf(err, "failed to attach %s to %s", hostName, netdev.Link)
		}
		if err := netlink.LinkSetMaster(veth, bridge); err != nil {
			return errors.Wrapf(err, "failed to attach %s to %s", hostName, netdev.Link)
		}
	}

	if netdev.Flags&net.FlagUp != 0 {
		if err := netlink.LinkSetUp(veth); err != nil {
			return errors.Wrapf(err, "failed to set %s up", hostName)
		}
	}

	peer, err := netlink.LinkByName(peerName)
	if err != nil {
		return errors.Wrapf(err, "failed to retrieve the index for %s", peerName)
	}
	netdev.IfIndex = peer.Attrs().Index

	logrus.Debugf("instantiated veth '%s/%s', index is '%d'", hostName, peerName, netdev.IfIndex)
	return nil
}

func createMacvlan(netdev *configs.Netdev) error {
	if netdev.Link == "" {
		return errors.New("no link specified for macvlan netdev")
	}
	parent, err := netlink.LinkByName(netdev.Link)
	if err != nil {
		return errors.Wrapf(err, "failed to lookup macvlan link %s", netdev.Link)
	}

	peerName, err := tempIfname("mc")
	if err != nil {
		return err
	}
	attrs := netlink.NewLinkAttrs()
	attrs.Name = peerName
	attrs.ParentIndex = parent.Attrs().Index
	macvlan := &netlink.Macvlan{LinkAttrs: attrs, Mode: netlink.MACVLAN_MODE_PRIVATE}

	if err := netlink.LinkAdd(macvlan); err != nil {
		return errors.Wrapf(err, "failed to create macvlan interface '%s' on '%s'",
			peerName, netdev.Link)
	}
	netdev.IfIndex = macvlan.Attrs().Index
	if netdev.IfIndex == 0 {
		link, err := netlink.LinkByName(peerName)
		if err != nil {
			return errors.Wrapf(err, "failed to retrieve the index for %s", peerName)
		}
		netdev.IfIndex = link.Attrs().Index
	}

	logrus.Debugf("instantiated macvlan '%s', index is '%d'", peerName, netdev.IfIndex)
	return nil
}

func createPhys(netdev *configs.Netdev) error {
	if netdev.Link == "" {
		return errors.New("no link specified for phys netdev")
	}
	link, err := netlink.LinkByName(netdev.Link)
	if err != nil {
		return errors.Wrapf(err, "failed to lookup phys link %s", netdev.Link)
	}
	netdev.IfIndex = link.Attrs().Index
	return nil
}

// bindingAddrs converts every address binding of netdev into the netlink
// form used when the addresses are installed.
func bindingAddrs(netdev *configs.Netdev) []*netlink.Addr {
	var addrs []*netlink.Addr
	for _, a := range netdev.IPv4 {
		addrs = append(addrs, &netlink.Addr{
			IPNet:     &net.IPNet{IP: a.Addr, Mask: net.CIDRMask(a.Prefix, 32)},
			Broadcast: a.Bcast,
		})
	}
	for _, a := range netdev.IPv6 {
		addrs = append(addrs, &netlink.Addr{
			IPNet: &net.IPNet{IP: a.Addr, Mask: net.CIDRMask(a.Prefix, 128)},
		})
	}
	return addrs
}

func setLoopbackUp() error {
	lo, err := netlink.LinkByName("lo")
	if err != nil {
		return errors.Wrap(err, "failed to lookup the loopback")
	}
	if err := netlink.LinkSetUp(lo); err != nil {
		return errors.Wrap(err, "failed to set the loopback up")
	}
	return nil
}

// Setup configures the container-side interface previously recorded by
// Create: rename, hardware address, address bindings and device flags.
func Setup(netdev *configs.Netdev) error {
	// empty network namespace
	if netdev.IfIndex == 0 {
		if netdev.Flags&net.FlagUp != 0 {
			return setLoopbackUp()
		}
		return nil
	}

	link, err := netlink.LinkByIndex(netdev.IfIndex)
	if err != nil {
		return errors.Wrapf(err, "no interface corresponding to index '%d'", netdev.IfIndex)
	}

	// default: let the kernel pick the interface name
	name := netdev.Name
	if name == "" {
		name = "eth%d"
	}
	if err := netlink.LinkSetName(link, name); err != nil {
		return errors.Wrapf(err, "failed to rename %s->%s", link.Attrs().Name, name)
	}
	// the name may have been allocated by the kernel, re-read it
	link, err = netlink.LinkByIndex(netdev.IfIndex)
	if err != nil {
		return errors.Wrapf(err, "no interface corresponding to index '%d'", netdev.IfIndex)
	}

	if netdev.HwAddr != "" {
		hwaddr, err := net.ParseMAC(netdev.HwAddr)
		if err != nil {
			return errors.Wrapf(err, "invalid hardware address '%s'", netdev.HwAddr)
		}
		if err := netlink.LinkSetHardwareAddr(link, hwaddr); err != nil {
			return errors.Wrapf(err, "failed to setup hw address for '%s'", link.Attrs().Name)
		}
	}

	for _, addr := range bindingAddrs(netdev) {
		if err := netlink.AddrAdd(link, addr); err != nil {
			return errors.Wrapf(err, "failed to setup ip addresses for '%s'", link.Attrs().Name)
		}
	}

	if netdev.Flags&net.FlagUp != 0 {
		if err := netlink.LinkSetUp(link); err != nil {
			return errors.Wrapf(err, "failed to set '%s' up", link.Attrs().Name)
		}
		// the network is up, make the loopback up too
		if err := setLoopbackUp(); err != nil {
			return err
		}
	}

	logrus.Debugf("'%s' has been setup", link.Attrs().Name)
	return nil
}
