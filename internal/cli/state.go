package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ryhazerus/appirater"
)

// StateOptions holds options for the state command.
type StateOptions struct {
	JSON bool
}

// stateView is the printed form of a LaunchState.
type stateView struct {
	AppID              string     `json:"app_id"`
	LaunchCount        uint64     `json:"launch_count"`
	VersionLaunchCount uint64     `json:"version_launch_count"`
	VersionCode        *int32     `json:"app_version_code"`
	FirstLaunch        *time.Time `json:"first_launch_date"`
	RateClicked        *time.Time `json:"rate_click_date"`
	RemindClicked      *time.Time `json:"reminder_click_date"`
	DeclinedForever    bool       `json:"do_not_show_again"`
}

func newStateView(appID string, s appirater.LaunchState) stateView {
	v := stateView{
		AppID:              appID,
		LaunchCount:        s.LaunchCount,
		VersionLaunchCount: s.VersionLaunchCount,
		FirstLaunch:        optionalTime(s.FirstLaunch),
		RateClicked:        optionalTime(s.RateClicked),
		RemindClicked:      optionalTime(s.RemindClicked),
		DeclinedForever:    s.DeclinedForever,
	}
	if s.VersionCode != appirater.UnknownVersion {
		code := s.VersionCode
		v.VersionCode = &code
	}
	return v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// NewStateCommand creates the state command.
func NewStateCommand(root *RootOptions) *cobra.Command {
	opts := &StateOptions{}

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the stored launch state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output state as JSON")

	return cmd
}

func runState(cmd *cobra.Command, root *RootOptions, opts *StateOptions) error {
	tracker, _, err := openTracker(cmd, root, trackerSetup{})
	if err != nil {
		return err
	}
	defer tracker.Close()

	s, err := tracker.State(cmd.Context())
	if err != nil {
		return err
	}

	view := newStateView(tracker.AppID(), s)
	if opts.JSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "App:                  %s\n", view.AppID)
	fmt.Fprintf(out, "Launches:             %d\n", view.LaunchCount)
	fmt.Fprintf(out, "This version:         %d\n", view.VersionLaunchCount)
	fmt.Fprintf(out, "Version code:         %s\n", versionString(s.VersionCode))
	fmt.Fprintf(out, "First launch:         %s\n", timeString(view.FirstLaunch))
	fmt.Fprintf(out, "Rated:                %s\n", timeString(view.RateClicked))
	fmt.Fprintf(out, "Reminded:             %s\n", timeString(view.RemindClicked))
	fmt.Fprintf(out, "Declined forever:     %t\n", view.DeclinedForever)
	return nil
}

func versionString(code int32) string {
	if code == appirater.UnknownVersion {
		return "unknown"
	}
	return strconv.Itoa(int(code))
}

func timeString(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Format(time.RFC3339)
}
