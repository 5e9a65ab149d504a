package cmd

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

func newTimeCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "time NAME -- COMMAND [ARGS...]",
		Short: "Time a command with a named server-side timer",
		Long: `Start NAME, run COMMAND, stop NAME and print the elapsed time.

The timer is stopped even when COMMAND fails; its exit status is reported
after the elapsed time. Commands running longer than 30 seconds outlive the
server-side timer and report an error.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dash := cmd.ArgsLenAtDash(); dash != 1 {
				return errors.New("usage: swctl time NAME -- COMMAND [ARGS...]")
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			name := args[0]
			ctx := cmd.Context()

			if err := c.Start(ctx, name); err != nil {
				return fmt.Errorf("start %q: %w", name, err)
			}

			//nolint:gosec // running the user's command is the point
			child := exec.CommandContext(ctx, args[1], args[2:]...)
			child.Stdin = cmd.InOrStdin()
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()
			runErr := child.Run()

			d, err := c.Stop(ctx, name)
			if err != nil {
				return errors.Join(runErr, fmt.Errorf("stop %q: %w", name, err))
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s\t%s\n", name, d)
			return runErr
		},
	}
}
