package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNowCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print nanoseconds since the server started",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			d, err := c.Now(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), d.Nanoseconds())
			return nil
		},
	}
}
