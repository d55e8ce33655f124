package cgroups

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestController(t *testing.T) {
	assert.Equal(t, "memory", Controller("memory.limit_in_bytes"))
	assert.Equal(t, "cpu", Controller("cpu.shares"))
	assert.Equal(t, "devices", Controller("devices.allow"))
	assert.Equal(t, "freezer", Controller("freezer"))
}

func TestSettingsPath(t *testing.T) {
	assert.Equal(t,
		"/sys/fs/cgroup/memory/alpha/memory.limit_in_bytes",
		SettingsPath("/sys/fs/cgroup/memory", "alpha", "memory.limit_in_bytes"))
}
