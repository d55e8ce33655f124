// Package confile reads the line-oriented container configuration format
// into a configs.Config. One directive per line, "key = value", first
// match in the dispatch table wins.
package confile

import (
	"bufio"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/golxc/golxc/configs"
)

type handler func(key, value string, conf *configs.Config) error

type directive struct {
	name   string
	handle handler
}

// The table is scanned in order and the first entry whose name is a
// prefix of the key wins, so a shorter entry shadowing a longer one must
// disambiguate inside its handler (lxc.mount vs lxc.mount.entry).
var directives = []directive{
	{"lxc.pts", configPts},
	{"lxc.tty", configTty},
	{"lxc.cgroup", configCgroup},
	{"lxc.mount", configMount},
	{"lxc.rootfs", configRootfs},
	{"lxc.utsname", configUtsname},
	{"lxc.network.type", configNetworkType},
	{"lxc.pivotdir", configPivotdir},
	{"lxc.network.flags", configNetworkFlags},
	{"lxc.network.link", configNetworkLink},
	{"lxc.network.name", configNetworkName},
	{"lxc.network.hwaddr", configNetworkHwaddr},
	{"lxc.network.mtu", configNetworkMtu},
	{"lxc.network.ipv4", configNetworkIPv4},
	{"lxc.network.ipv6", configNetworkIPv6},
}

func lookup(key string) handler {
	for _, d := range directives {
		if strings.HasPrefix(key, d.name) {
			return d.handle
		}
	}
	return nil
}

// parseLine classifies one raw line and dispatches it. Blank lines and
// comments are skipped without touching conf.
func parseLine(raw string, conf *configs.Config) error {
	line := strings.TrimLeft(raw, " \t")
	if line == "" || line[0] == '#' {
		return nil
	}

	sep := strings.Index(line, "=")
	if sep < 0 {
		return errors.Wrapf(ErrInvalidDirective, "invalid configuration line: %s", raw)
	}

	key := strings.TrimSpace(line[:sep])
	value := strings.TrimSpace(line[sep+1:])

	h := lookup(key)
	if h == nil {
		return errors.Wrapf(ErrUnknownDirective, "unknown key %s", key)
	}
	return h(key, value, conf)
}

// Parse reads directives from r into conf. The first failing line aborts
// the read; conf is not guaranteed complete afterwards.
func Parse(r io.Reader, conf *configs.Config) error {
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		if err := parseLine(s.Text(), conf); err != nil {
			logrus.Errorf("confile: line %d: %v", line, err)
			return err
		}
	}
	return s.Err()
}

// ReadFile reads the configuration file at path into conf.
func ReadFile(path string, conf *configs.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Parse(f, conf)
}

// currentNetdev returns the device the per-device directives apply to,
// the most recently declared one.
func currentNetdev(key, value string, conf *configs.Config) (*configs.Netdev, error) {
	if len(conf.Networks) == 0 {
		return nil, errors.Wrapf(ErrMissingContext, "network is not created for '%s' = '%s' option", key, value)
	}
	return conf.Networks[0], nil
}

func configNetworkType(key, value string, conf *configs.Config) error {
	var t configs.NetdevType
	switch value {
	case "veth":
		t = configs.Veth
	case "macvlan":
		t = configs.Macvlan
	case "phys":
		t = configs.Phys
	case "empty":
		t = configs.Empty
	default:
		return errors.Wrapf(ErrInvalidValue, "invalid network type %s", value)
	}

	// newest first: subsequent per-device directives target this device
	conf.Networks = append([]*configs.Netdev{{Type: t}}, conf.Networks...)
	return nil
}

func configNetworkFlags(key, value string, conf *configs.Config) error {
	netdev, err := currentNetdev(key, value, conf)
	if err != nil {
		return err
	}
	netdev.Flags |= net.FlagUp
	return nil
}

func networkIfname(key, value string) (string, error) {
	if len(value) > unix.IFNAMSIZ {
		return "", errors.Wrapf(ErrInvalidValue, "invalid interface name: %s", value)
	}
	return value, nil
}

func configNetworkLink(key, value string, conf *configs.Config) error {
	netdev, err := currentNetdev(key, value, conf)
	if err != nil {
		return err
	}
	name, err := networkIfname(key, value)
	if err != nil {
		return err
	}
	netdev.Link = name
	return nil
}

func configNetworkName(key, value string, conf *configs.Config) error {
	netdev, err := currentNetdev(key, value, conf)
	if err != nil {
		return err
	}
	name, err := networkIfname(key, value)
	if err != nil {
		return err
	}
	netdev.Name = name
	return nil
}

func configNetworkHwaddr(key, value string, conf *configs.Config) error {
	netdev, err := currentNetdev(key, value, conf)
	if err != nil {
		return err
	}
	netdev.HwAddr = value
	return nil
}

func configNetworkMtu(key, value string, conf *configs.Config) error {
	netdev, err := currentNetdev(key, value, conf)
	if err != nil {
		return err
	}
	netdev.MTU = value
	return nil
}

// parseIPv4 parses a dotted-quad literal. IPv6 text, including the
// mapped form ::ffff:a.b.c.d, is not a dotted quad and yields nil.
func parseIPv4(addr string) net.IP {
	if strings.Contains(addr, ":") {
		return nil
	}
	return net.ParseIP(addr).To4()
}

// classfulPrefix derives the default prefix length from the historical
// address class: A=8, B=16, C=24, anything else 0.
func classfulPrefix(addr net.IP) int {
	switch {
	case addr[0] < 0x80:
		return 8
	case addr[0] < 0xc0:
		return 16
	case addr[0] < 0xe0:
		return 24
	}
	return 0
}

func configNetworkIPv4(key, value string, conf *configs.Config) error {
	netdev, err := currentNetdev(key, value, conf)
	if err != nil {
		return err
	}

	// grammar: <address>[/<prefix>][ <broadcast>]
	addr := value
	var bcast, prefix string
	hasPrefix := false
	if i := strings.IndexByte(addr, ' '); i >= 0 {
		bcast = addr[i+1:]
		addr = addr[:i]
	}
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		prefix = addr[i+1:]
		addr = addr[:i]
		hasPrefix = true
	}

	ip := parseIPv4(addr)
	if ip == nil {
		return errors.Wrapf(ErrInvalidAddress, "invalid ipv4 address: %s", value)
	}
	inetdev := &configs.Inet4Addr{Addr: ip}

	if bcast != "" {
		b := parseIPv4(bcast)
		if b == nil {
			return errors.Wrapf(ErrInvalidAddress, "invalid ipv4 broadcast address: %s", value)
		}
		inetdev.Bcast = b
	}

	if hasPrefix {
		n, err := strconv.Atoi(prefix)
		if err != nil || n < 0 || n > 32 {
			return errors.Wrapf(ErrInvalidValue, "invalid ipv4 prefix: %s", value)
		}
		inetdev.Prefix = n
	} else {
		inetdev.Prefix = classfulPrefix(ip)
	}

	netdev.IPv4 = append(netdev.IPv4, inetdev)
	return nil
}

func configNetworkIPv6(key, value string, conf *configs.Config) error {
	netdev, err := currentNetdev(key, value, conf)
	if err != nil {
		return err
	}

	addr := value
	inet6dev := &configs.Inet6Addr{Prefix: 64}
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		n, err := strconv.Atoi(addr[i+1:])
		if err != nil || n < 0 || n > 128 {
			return errors.Wrapf(ErrInvalidValue, "invalid ipv6 prefix: %s", value)
		}
		inet6dev.Prefix = n
		addr = addr[:i]
	}

	ip := net.ParseIP(addr)
	if ip == nil || !strings.Contains(addr, ":") {
		return errors.Wrapf(ErrInvalidAddress, "invalid ipv6 address: %s", value)
	}
	inet6dev.Addr = ip.To16()

	netdev.IPv6 = append(netdev.IPv6, inet6dev)
	return nil
}

func configPts(key, value string, conf *configs.Config) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.Wrapf(ErrInvalidValue, "invalid pts count: %s", value)
	}
	conf.Pts = n
	return nil
}

func configTty(key, value string, conf *configs.Config) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.Wrapf(ErrInvalidValue, "invalid tty count: %s", value)
	}
	conf.Tty = n
	return nil
}

func configCgroup(key, value string, conf *configs.Config) error {
	const token = "lxc.cgroup."

	idx := strings.Index(key, token)
	if idx < 0 {
		return errors.Wrapf(ErrInvalidDirective, "missing cgroup subsystem in key %s", key)
	}
	subsystem := key[idx+len(token):]
	if subsystem == "" {
		return errors.Wrapf(ErrInvalidDirective, "missing cgroup subsystem in key %s", key)
	}

	conf.Cgroups = append(conf.Cgroups, configs.CgroupEntry{
		Subsystem: subsystem,
		Value:     value,
	})
	return nil
}

func checkPath(value string) error {
	if len(value) >= unix.PathMax {
		return errors.Wrapf(ErrPathTooLong, "%s path is too long", value)
	}
	return nil
}

func configFstab(key, value string, conf *configs.Config) error {
	if err := checkPath(value); err != nil {
		return err
	}
	conf.Fstab = value
	return nil
}

// configMount owns the whole lxc.mount family: lxc.mount.entry lines
// accumulate, a bare lxc.mount sets the fstab path.
func configMount(key, value string, conf *configs.Config) error {
	if strings.Contains(key, "lxc.mount.entry") {
		conf.Mounts = append(conf.Mounts, value)
		return nil
	}
	return configFstab(key, value, conf)
}

func configRootfs(key, value string, conf *configs.Config) error {
	if err := checkPath(value); err != nil {
		return err
	}
	conf.Rootfs = value
	return nil
}

func configPivotdir(key, value string, conf *configs.Config) error {
	if err := checkPath(value); err != nil {
		return err
	}
	conf.PivotDir = value
	return nil
}

// nodenameSize is the size of the utsname nodename field, the value must
// leave room for the terminating NUL the kernel structure carries.
var nodenameSize = len(unix.Utsname{}.Nodename)

func configUtsname(key, value string, conf *configs.Config) error {
	if len(value) >= nodenameSize {
		return errors.Wrapf(ErrNameTooLong, "node name '%s' is too long", value)
	}
	conf.Hostname = value
	return nil
}
