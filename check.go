package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/golxc/golxc/configs"
	"github.com/golxc/golxc/confile"
)

var checkCommand = cli.Command{
	Name:      "check",
	Usage:     "check that a configuration file parses",
	ArgsUsage: `<config-file>

Reads the whole file through the configuration engine and reports the
first failing line, if any.`,
	Action: func(context *cli.Context) error {
		if err := checkArgs(context, 1, exactArgs); err != nil {
			return err
		}
		path := context.Args().First()
		conf := configs.New()
		if err := confile.ReadFile(path, conf); err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d network device(s), %d cgroup entrie(s), %d mount entrie(s))\n",
			path, len(conf.Networks), len(conf.Cgroups), len(conf.Mounts))
		return nil
	},
}
