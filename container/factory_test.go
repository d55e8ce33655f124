package container

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golxc/golxc/configs"
	"github.com/golxc/golxc/confile"
)

func newTestFactory(t *testing.T) (*Factory, string) {
	t.Helper()
	root, err := ioutil.TempDir("", "golxc")
	require.NoError(t, err)
	factory, err := New(root)
	require.NoError(t, err)
	return factory, root
}

func writeConfig(t *testing.T, root, id, content string) {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, configFilename), []byte(content), 0644))
}

func TestFactoryLoad(t *testing.T) {
	factory, root := newTestFactory(t)
	defer os.RemoveAll(root)

	writeConfig(t, root, "alpha", `
lxc.utsname = alpha
lxc.network.type = veth
lxc.network.link = br0
`)

	c, err := factory.Load("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", c.ID)
	assert.Equal(t, filepath.Join(root, "alpha"), c.Root)
	assert.Equal(t, "alpha", c.Config.Hostname)
	require.Len(t, c.Config.Networks, 1)
	assert.Equal(t, configs.Veth, c.Config.Networks[0].Type)
}

func TestFactoryLoadBadConfig(t *testing.T) {
	factory, root := newTestFactory(t)
	defer os.RemoveAll(root)

	writeConfig(t, root, "beta", "lxc.bogus = 1\n")

	_, err := factory.Load("beta")
	require.Error(t, err)
	assert.True(t, errors.Is(err, confile.ErrUnknownDirective), "got %v", err)
}

func TestFactoryLoadInvalidID(t *testing.T) {
	factory, root := newTestFactory(t)
	defer os.RemoveAll(root)

	_, err := factory.Load("../escape")
	assert.Error(t, err)
}

func TestFactoryLoadMissingContainer(t *testing.T) {
	factory, root := newTestFactory(t)
	defer os.RemoveAll(root)

	_, err := factory.Load("gone")
	assert.Error(t, err)
}

func TestFactoryList(t *testing.T) {
	factory, root := newTestFactory(t)
	defer os.RemoveAll(root)

	writeConfig(t, root, "alpha", "lxc.utsname = alpha\n")
	writeConfig(t, root, "beta", "lxc.utsname = beta\n")

	ids, err := factory.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, ids)
}
