package configs

import "net"

// NetdevType is the kind of network device attached to a container.
type NetdevType int

const (
	Empty NetdevType = iota
	Veth
	Macvlan
	Phys
)

func (t NetdevType) String() string {
	switch t {
	case Veth:
		return "veth"
	case Macvlan:
		return "macvlan"
	case Phys:
		return "phys"
	}
	return "empty"
}

// Inet4Addr is one ipv4 address bound to a network device.
type Inet4Addr struct {
	// Addr is the 4-byte address.
	Addr net.IP `json:"addr"`

	// Bcast is the broadcast address, nil when not configured.
	Bcast net.IP `json:"bcast,omitempty"`

	// Prefix is the network prefix length. When the configuration does
	// not carry an explicit prefix it is derived from the address class.
	Prefix int `json:"prefix"`
}

// Inet6Addr is one ipv6 address bound to a network device.
type Inet6Addr struct {
	Addr net.IP `json:"addr"`

	// Prefix defaults to 64 when the configuration does not set one.
	Prefix int `json:"prefix"`
}

// Netdev describes one network device to create for the container.
type Netdev struct {
	Type NetdevType `json:"type"`

	// Flags holds the device flags, only net.FlagUp is configurable.
	Flags net.Flags `json:"flags"`

	// Link is the name of the bridge or host interface to attach to, if any.
	Link string `json:"link,omitempty"`

	// Name is the name of the interface on the container side.
	Name string `json:"name,omitempty"`

	// HwAddr is the mac address kept verbatim from the configuration.
	HwAddr string `json:"hwaddr,omitempty"`

	// MTU is kept as a string, the way the configuration spelled it.
	MTU string `json:"mtu,omitempty"`

	IPv4 []*Inet4Addr `json:"ipv4,omitempty"`
	IPv6 []*Inet6Addr `json:"ipv6,omitempty"`

	// IfIndex is the container-side interface index once the device has
	// been instantiated. Zero until then.
	IfIndex int `json:"-"`
}

// CgroupEntry is one subsystem setting. Entries for the same subsystem
// are not merged; each configured line is kept in declaration order.
type CgroupEntry struct {
	Subsystem string `json:"subsystem"`
	Value     string `json:"value"`
}

// Config is the runtime configuration of one container, assembled line
// by line by the confile package and owned by the loading session.
type Config struct {
	// Networks holds the configured devices, most recently declared
	// first. Per-device directives always target Networks[0].
	Networks []*Netdev `json:"networks,omitempty"`

	// Cgroups holds subsystem settings in declaration order.
	Cgroups []CgroupEntry `json:"cgroups,omitempty"`

	// Mounts holds raw fstab-style entries in declaration order.
	Mounts []string `json:"mounts,omitempty"`

	// Fstab is the path to an external mount table, last write wins.
	Fstab string `json:"fstab,omitempty"`

	// Rootfs is the path to the container's root filesystem.
	Rootfs string `json:"rootfs,omitempty"`

	// PivotDir is the directory used to pivot the old root into.
	PivotDir string `json:"pivotdir,omitempty"`

	// Hostname optionally sets the container's hostname.
	Hostname string `json:"hostname,omitempty"`

	// Pts is the number of allocated pseudo ttys.
	Pts int `json:"pts"`

	// Tty is the number of allocated ttys.
	Tty int `json:"tty"`
}

// New returns an empty configuration with default values.
func New() *Config {
	return &Config{}
}
