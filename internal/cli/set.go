package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryhazerus/appirater"
)

// setFields lists the fields accepted by the set command.
var setFields = []string{
	"launch-count",
	"version-launch-count",
	"first-launch",
	"rate-click",
	"reminder-click",
	"declined",
}

// NewSetCommand creates the set command.
func NewSetCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set FIELD VALUE",
		Short: "Overwrite one stored field",
		Long: "Overwrite one stored field. Fields: " + strings.Join(setFields, ", ") + ". " +
			"Dates take RFC 3339 timestamps, \"now\", or \"none\" to clear.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: setFields,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, root, args[0], args[1])
		},
	}
}

func runSet(cmd *cobra.Command, root *RootOptions, field, value string) error {
	tracker, _, err := openTracker(cmd, root, trackerSetup{})
	if err != nil {
		return err
	}
	defer tracker.Close()

	if err := applySet(cmd, tracker, field, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", field, value)
	return nil
}

func applySet(cmd *cobra.Command, tracker *appirater.Tracker, field, value string) error {
	ctx := cmd.Context()

	switch field {
	case "launch-count", "version-launch-count":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", value, err)
		}
		if field == "launch-count" {
			return tracker.SetLaunchCount(ctx, n)
		}
		return tracker.SetVersionLaunchCount(ctx, n)

	case "first-launch", "rate-click", "reminder-click":
		at, err := parseDate(value)
		if err != nil {
			return err
		}
		switch field {
		case "first-launch":
			return tracker.SetFirstLaunchDate(ctx, at)
		case "rate-click":
			return tracker.SetRateClickDate(ctx, at)
		default:
			return tracker.SetReminderClickDate(ctx, at)
		}

	case "declined":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid flag value %q: %w", value, err)
		}
		return tracker.SetDeclinedForever(ctx, b)

	default:
		return fmt.Errorf("unknown field %q (want one of %s)", field, strings.Join(setFields, ", "))
	}
}

func parseDate(value string) (time.Time, error) {
	switch value {
	case "none", "":
		return time.Time{}, nil
	case "now":
		return time.Now(), nil
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return at, nil
}
