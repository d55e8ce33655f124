// Package cgroups applies parsed cgroup entries to the v1 hierarchy.
// An entry's subsystem names both the controller and the settings file,
// e.g. "memory.limit_in_bytes" is written below the memory mountpoint.
package cgroups

import (
	"bufio"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/golxc/golxc/configs"
)

// ErrNoCgroupMountDestination is returned when the controller a setting
// belongs to is not mounted anywhere.
var ErrNoCgroupMountDestination = errors.New("no cgroup mount destination found")

// Controller returns the controller a subsystem setting belongs to,
// the part before the first dot ("memory.limit_in_bytes" -> "memory").
func Controller(subsystem string) string {
	if i := strings.IndexByte(subsystem, '.'); i >= 0 {
		return subsystem[:i]
	}
	return subsystem
}

// SettingsPath returns the file a subsystem value is written to for the
// container named name, below the controller mountpoint.
func SettingsPath(mountpoint, name, subsystem string) string {
	return filepath.Join(mountpoint, name, subsystem)
}

// Apply writes every entry in declaration order, aborting on the first
// failure.
func Apply(name string, entries []configs.CgroupEntry) error {
	for _, cg := range entries {
		if err := Set(name, cg.Subsystem, cg.Value); err != nil {
			return errors.Wrapf(err, "cgroup '%s' = '%s'", cg.Subsystem, cg.Value)
		}
		logrus.Debugf("cgroup '%s' set to '%s'", cg.Subsystem, cg.Value)
	}
	return nil
}

// Set writes one subsystem value for the container named name.
func Set(name, subsystem, value string) error {
	mountpoint, err := findMountpoint(Controller(subsystem))
	if err != nil {
		return err
	}
	return retryingWriteFile(SettingsPath(mountpoint, name, subsystem), []byte(value), 0644)
}

// findMountpoint scans mountinfo for the hierarchy the controller is
// mounted on and returns its mount point.
func findMountpoint(controller string) (string, error) {
	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return "", err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		if err := s.Err(); err != nil {
			return "", err
		}
		// 26 23 0:22 / /sys/fs/cgroup/memory rw,nosuid - cgroup cgroup rw,memory
		fields := strings.Fields(s.Text())
		if len(fields) < 5 {
			continue
		}
		index := strings.Index(s.Text(), " - ")
		if index < 0 {
			continue
		}
		postSeparatorFields := strings.Fields(s.Text()[index+3:])
		if len(postSeparatorFields) < 3 || postSeparatorFields[0] != "cgroup" {
			continue
		}
		for _, opt := range strings.Split(postSeparatorFields[2], ",") {
			if opt == controller {
				return fields[4], nil
			}
		}
	}
	return "", ErrNoCgroupMountDestination
}

func retryingWriteFile(path string, data []byte, mode os.FileMode) error {
	// Retry writes on EINTR; see:
	//    https://github.com/golang/go/issues/38033
	for {
		err := ioutil.WriteFile(path, data, mode)
		if err == nil {
			return nil
		} else if !errors.Is(err, syscall.EINTR) {
			return err
		}
	}
}
