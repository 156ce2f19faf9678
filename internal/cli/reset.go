package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCommand creates the reset command.
func NewResetCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Wipe the launch state if the version code changed",
		Long: "Compare --version-code with the stored version code and wipe the whole " +
			"record, answers included, when they differ.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, root)
		},
	}
}

func runReset(cmd *cobra.Command, root *RootOptions) error {
	tracker, conf, err := openTracker(cmd, root, trackerSetup{})
	if err != nil {
		return err
	}
	defer tracker.Close()

	before, err := tracker.State(cmd.Context())
	if err != nil {
		return err
	}
	if _, err := tracker.ResetIfVersionChanged(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case conf.VersionCode == nil:
		fmt.Fprintln(out, "No version code given, nothing reset.")
	case *conf.VersionCode == before.VersionCode:
		fmt.Fprintln(out, "Version unchanged, nothing reset.")
	default:
		fmt.Fprintf(out, "Version changed (%s -> %d), launch state reset.\n", versionString(before.VersionCode), *conf.VersionCode)
	}
	return nil
}
