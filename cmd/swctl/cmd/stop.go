package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopCmd(newClient clientFactory) *cobra.Command {
	var human bool

	cmd := &cobra.Command{
		Use:   "stop NAME",
		Short: "Stop a named timer and print how long it ran",
		Long: `Stop a named timer and print its elapsed nanoseconds.

The command fails when the timer is not running, including timers the server
dropped after 30 seconds without being stopped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			d, err := c.Stop(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("stop %q: %w", args[0], err)
			}

			if human {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), d.Nanoseconds())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&human, "human", false, "print a Go duration instead of nanoseconds")

	return cmd
}
