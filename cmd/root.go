// Package cmd holds the schedsim command line.
package cmd

import (
	"os"

	"github.com/Gthulhu/schedsim/config"
	"github.com/spf13/cobra"
)

// Options contains the flags shared by every sub command
type Options struct {
	ConfigName string
	ConfigPath string
}

// LoadConfig reads the configured file, or returns the built-in defaults when
// no config name was given
func (o Options) LoadConfig() (config.SimConfig, error) {
	if o.ConfigName == "" {
		return config.DefaultConfig(), nil
	}
	return config.InitSimConfig(o.ConfigName, o.ConfigPath)
}

func NewRootCommand() *cobra.Command {
	opts := &Options{}
	root := &cobra.Command{
		Use:           "schedsim",
		Short:         "CPU scheduler simulator comparing FCFS, SJF and Priority scheduling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigName, "config-name", "", "config file name, e.g. sim_config.toml")
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config-path", "", "directory holding the config file")

	root.AddCommand(
		newRunCommand(opts),
		newServeCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
