package cli

import (
	"github.com/spf13/cobra"
)

// NewPromptCommand creates the prompt command.
func NewPromptCommand(root *RootOptions) *cobra.Command {
	opts := &PromptFlags{}

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Show the rating prompt if it is due, without counting a launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd, root, opts)
		},
	}

	opts.register(cmd)

	return cmd
}

func runPrompt(cmd *cobra.Command, root *RootOptions, opts *PromptFlags) error {
	setup, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	tracker, conf, err := openTracker(cmd, root, setup)
	if err != nil {
		return err
	}
	defer tracker.Close()

	res, err := tracker.TryToShowPrompt(cmd.Context(), promptRequest(conf))
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), res)
	if setup.registry != nil {
		return printMetrics(cmd.OutOrStdout(), setup.registry)
	}
	return nil
}
