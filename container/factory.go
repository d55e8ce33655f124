package container

import (
	"os"
	"regexp"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/pkg/errors"

	"github.com/golxc/golxc/configs"
	"github.com/golxc/golxc/confile"
)

const configFilename = "config"

var idRegex = regexp.MustCompile(`^[\w+-\.]+$`)

// Factory loads container configurations stored under a common root
// directory, one directory per container holding its config file.
type Factory struct {
	// Root directory for the factory to look containers up in.
	Root string
}

// New returns a factory rooted at root, creating the directory if needed.
func New(root string) (*Factory, error) {
	if root != "" {
		if err := os.MkdirAll(root, 0700); err != nil {
			return nil, err
		}
	}
	return &Factory{Root: root}, nil
}

// Load reads the configuration of the container with the given id and
// returns the assembled container. The configuration must parse in full.
func (f *Factory) Load(id string) (*Container, error) {
	if err := f.validateID(id); err != nil {
		return nil, err
	}
	containerRoot, err := securejoin.SecureJoin(f.Root, id)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(containerRoot); err != nil {
		return nil, err
	}
	configPath, err := securejoin.SecureJoin(containerRoot, configFilename)
	if err != nil {
		return nil, err
	}

	conf := configs.New()
	if err := confile.ReadFile(configPath, conf); err != nil {
		return nil, errors.Wrapf(err, "load container %s", id)
	}
	return &Container{
		ID:     id,
		Root:   containerRoot,
		Config: conf,
	}, nil
}

// List returns the ids of all container directories under the root.
func (f *Factory) List() ([]string, error) {
	dir, err := os.Open(f.Root)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	entries, err := dir.Readdir(-1)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, item := range entries {
		if item.IsDir() && idRegex.MatchString(item.Name()) {
			ids = append(ids, item.Name())
		}
	}
	return ids, nil
}

func (f *Factory) validateID(id string) error {
	if !idRegex.MatchString(id) {
		return errors.Errorf("invalid id format: %v", id)
	}
	return nil
}
