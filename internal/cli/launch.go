package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryhazerus/appirater/internal/config"
)

// LaunchOptions holds options for the launch command.
type LaunchOptions struct {
	PromptFlags
	MinLaunches uint64
}

// NewLaunchCommand creates the launch command.
func NewLaunchCommand(root *RootOptions) *cobra.Command {
	opts := &LaunchOptions{}

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Record one application launch",
		Long: "Record one application launch and show the rating prompt when it is due. " +
			"The answer is stored before the command returns.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd, root, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().Uint64Var(&opts.MinLaunches, "min-launches", 0, "Require at least this many launches before prompting")

	return cmd
}

func runLaunch(cmd *cobra.Command, root *RootOptions, opts *LaunchOptions) error {
	setup, err := opts.setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("min-launches") {
		setup.policy = func(c config.PolicyConfig) config.PolicyConfig {
			c.MinLaunches = opts.MinLaunches
			return c
		}
	}

	tracker, conf, err := openTracker(cmd, root, setup)
	if err != nil {
		return err
	}
	defer tracker.Close()

	res, err := tracker.RecordLaunch(cmd.Context(), promptRequest(conf))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Launches: %d (this version: %d)\n", res.State.LaunchCount, res.State.VersionLaunchCount)
	printResult(out, res)

	if setup.registry != nil {
		return printMetrics(out, setup.registry)
	}
	return nil
}
