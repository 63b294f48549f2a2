package cmd

import (
	"fmt"

	"github.com/Gthulhu/schedsim/rest"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the schedsim version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(c.OutOrStdout(), "schedsim", rest.BuildVersion)
		},
	}
}
