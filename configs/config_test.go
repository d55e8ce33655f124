package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	conf := New()
	assert.Empty(t, conf.Networks)
	assert.Empty(t, conf.Cgroups)
	assert.Empty(t, conf.Mounts)
	assert.Zero(t, conf.Pts)
	assert.Zero(t, conf.Tty)
	assert.Empty(t, conf.Rootfs)
	assert.Empty(t, conf.Hostname)
}

func TestNetdevTypeString(t *testing.T) {
	assert.Equal(t, "veth", Veth.String())
	assert.Equal(t, "macvlan", Macvlan.String())
	assert.Equal(t, "phys", Phys.String())
	assert.Equal(t, "empty", Empty.String())
}
