package main

import (
	"encoding/json"
	"os"

	"github.com/urfave/cli"

	"github.com/golxc/golxc/configs"
	"github.com/golxc/golxc/confile"
)

var configCommand = cli.Command{
	Name:      "config",
	Usage:     "print the parsed configuration as json",
	ArgsUsage: `<config-file>`,
	Action: func(context *cli.Context) error {
		if err := checkArgs(context, 1, exactArgs); err != nil {
			return err
		}
		conf := configs.New()
		if err := confile.ReadFile(context.Args().First(), conf); err != nil {
			return err
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(conf)
	},
}
