package cmd

import (
	"github.com/shandysiswandi/gostopwatch/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const serverEnv = "SWCTL_SERVER"

// Execute runs the swctl command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the swctl command tree.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	//nolint:errcheck // only fails on an empty key
	v.BindEnv("server", serverEnv)
	v.SetDefault("server", client.DefaultServer)

	var retries uint64

	root := &cobra.Command{
		Use:   "swctl",
		Short: "Command line client for the stopwatch server",
		Long: `swctl reads the clock and drives named timers on a running stopwatch server.

Example:
  swctl start build
  swctl stop build
  swctl time build -- make all`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("server", "", "stopwatch server URL (default from $"+serverEnv+" or "+client.DefaultServer+")")
	root.PersistentFlags().Uint64Var(&retries, "retries", client.DefaultRetries, "retries on transport errors")
	//nolint:errcheck // the flag is defined just above
	v.BindPFlag("server", root.PersistentFlags().Lookup("server"))

	newClient := func() (*client.Client, error) {
		return client.New(v.GetString("server"), client.WithRetry(retries, client.DefaultRetryDelay))
	}

	root.AddCommand(
		newNowCmd(newClient),
		newStartCmd(newClient),
		newStopCmd(newClient),
		newTimeCmd(newClient),
	)

	return root
}

type clientFactory func() (*client.Client, error)
