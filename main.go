package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const usage = `lxc-style container configuration tool

golxc reads the line-oriented container configuration format and prepares
a container's cgroups and network devices from it. Containers live under
the global "--root" directory, one directory per container holding its
"config" file.`

func main() {
	app := cli.NewApp()
	app.Name = "golxc"
	app.Usage = usage
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug output for logging",
		},
		cli.StringFlag{
			Name:  "root",
			Value: "/var/lib/golxc",
			Usage: "root directory for storage of container configuration",
		},
	}
	app.Commands = []cli.Command{
		checkCommand,
		configCommand,
		createCommand,
		listCommand,
	}
	app.Before = func(context *cli.Context) error {
		if context.GlobalBool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
