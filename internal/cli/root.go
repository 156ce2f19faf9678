package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds the persistent flags shared by every command.
type RootOptions struct {
	ConfigPath  string
	AppID       string
	AppName     string
	Language    string
	Store       string
	DB          string
	VersionCode int32
	LogLevel    string
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "appirater",
		Short: "Appirater - track launches and ask users to rate the app",
		Long: "Appirater records application launches, decides when the user should be " +
			"asked to rate the application, and remembers the answer.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (YAML)")
	pf.StringVar(&opts.AppID, "app-id", "", "Application ID, also the store namespace")
	pf.StringVar(&opts.AppName, "app-name", "", "Display name used in the prompt texts")
	pf.StringVar(&opts.Language, "language", "", "Language of the prompt texts (en, ja)")
	pf.StringVar(&opts.Store, "store", "", "Store driver: sqlite, file or memory")
	pf.StringVar(&opts.DB, "db", "", "Store path: SQLite file or directory for the file store")
	pf.Int32Var(&opts.VersionCode, "version-code", 0, "Version code of the running application")
	pf.StringVar(&opts.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")

	cmd.AddCommand(NewLaunchCommand(opts))
	cmd.AddCommand(NewPromptCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewStateCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))

	return cmd
}
