package container

import (
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/golxc/golxc/cgroups"
	"github.com/golxc/golxc/configs"
	"github.com/golxc/golxc/network"
)

// Container is a not-yet-running container: its identity, its directory
// under the factory root and its parsed configuration.
type Container struct {
	ID     string          `json:"id"`
	Root   string          `json:"root"`
	Config *configs.Config `json:"config"`
}

// Create prepares the host side of the container: cgroup settings are
// applied and the configured network devices are instantiated. The
// namespace itself is not entered here.
func (c *Container) Create() error {
	if err := cgroups.Apply(c.ID, c.Config.Cgroups); err != nil {
		return err
	}
	for _, netdev := range c.Config.Networks {
		if err := network.Create(netdev); err != nil {
			return err
		}
		logrus.Debugf("instantiated %s device for container %s, index %d",
			netdev.Type, c.ID, netdev.IfIndex)
	}
	return nil
}

// WriteJSON writes the provided struct v to w using standard json marshaling
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
