// +build linux

package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli"

	"github.com/golxc/golxc/container"
)

const formatOptions = `table or json`

var listCommand = cli.Command{
	Name:  "list",
	Usage: "lists containers configured under the given root",
	ArgsUsage: `

Where the given root is specified via the global option "--root"
(default: "/var/lib/golxc").

EXAMPLE 1:
To list containers configured under the default "--root":
       # golxc list

EXAMPLE 2:
To list containers configured using a non-default value for "--root":
       # golxc --root value list`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "format, f",
			Value: "table",
			Usage: `select one of: ` + formatOptions,
		},
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: "display only container IDs",
		},
	},
	Action: func(context *cli.Context) error {
		if err := checkArgs(context, 0, exactArgs); err != nil {
			return err
		}
		s, err := getContainers(context)
		if err != nil {
			return err
		}

		if context.Bool("quiet") {
			for _, item := range s {
				fmt.Println(item.ID)
			}
			return nil
		}

		switch context.String("format") {
		case "table":
			w := tabwriter.NewWriter(os.Stdout, 12, 1, 3, ' ', 0)
			fmt.Fprint(w, "ID\tHOSTNAME\tROOTFS\tDEVICES\tMOUNTS\n")
			for _, item := range s {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
					item.ID,
					item.Config.Hostname,
					item.Config.Rootfs,
					len(item.Config.Networks),
					len(item.Config.Mounts))
			}
			if err := w.Flush(); err != nil {
				return err
			}
		case "json":
			if err := container.WriteJSON(os.Stdout, s); err != nil {
				return err
			}
		default:
			return errors.New("invalid format option")
		}
		return nil
	},
}

func getContainers(context *cli.Context) ([]*container.Container, error) {
	factory, err := newFactory(context)
	if err != nil {
		return nil, err
	}
	ids, err := factory.List()
	if err != nil {
		return nil, err
	}

	var s []*container.Container
	for _, id := range ids {
		c, err := factory.Load(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load container %s: %v\n", id, err)
			continue
		}
		s = append(s, c)
	}
	return s, nil
}
