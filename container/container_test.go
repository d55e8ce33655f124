package container

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golxc/golxc/configs"
)

func TestWriteJSON(t *testing.T) {
	c := &Container{
		ID:   "alpha",
		Root: "/var/lib/golxc/alpha",
		Config: &configs.Config{
			Hostname: "alpha",
			Tty:      4,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, c))

	var got Container
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.Root, got.Root)
	require.NotNil(t, got.Config)
	assert.Equal(t, "alpha", got.Config.Hostname)
	assert.Equal(t, 4, got.Config.Tty)
}
