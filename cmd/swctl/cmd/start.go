package cmd

import (
	"github.com/spf13/cobra"
)

func newStartCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "start NAME",
		Short: "Start or restart a named timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			return c.Start(cmd.Context(), args[0])
		},
	}
}
