// +build linux

package main

import (
	"github.com/urfave/cli"
)

var createCommand = cli.Command{
	Name:  "create",
	Usage: "prepare the host side of a container from its configuration",
	ArgsUsage: `<container-id>

Loads "<root>/<container-id>/config", applies the configured cgroup
entries and instantiates the configured network devices. The container
process itself is not started.`,
	Action: func(context *cli.Context) error {
		if err := checkArgs(context, 1, exactArgs); err != nil {
			return err
		}
		c, err := loadContainer(context, context.Args().First())
		if err != nil {
			return err
		}
		return c.Create()
	},
}
