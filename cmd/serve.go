package cmd

import (
	"github.com/Gthulhu/schedsim/app"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the simulation REST server",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			configName := opts.ConfigName
			if configName == "" {
				configName = "sim_config.toml"
			}
			restApp, err := app.NewRestApp(configName, opts.ConfigPath)
			if err != nil {
				return err
			}
			restApp.Run()
			return restApp.Err()
		},
	}
}
