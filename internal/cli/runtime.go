package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/ryhazerus/appirater"
	"github.com/ryhazerus/appirater/internal/config"
	"github.com/ryhazerus/appirater/internal/tui"
	"github.com/ryhazerus/appirater/store"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// trackerSetup holds the per-command choices that are not part of the config.
type trackerSetup struct {
	presenter appirater.Presenter
	registry  *prometheus.Registry
	policy    func(config.PolicyConfig) config.PolicyConfig
}

// openTracker loads the configuration and builds a Tracker from it.
func openTracker(cmd *cobra.Command, opts *RootOptions, setup trackerSetup) (*appirater.Tracker, *config.Config, error) {
	conf, err := config.Load(opts.ConfigPath, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(conf.Logger.Level, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore(conf.Store)
	if err != nil {
		return nil, nil, err
	}

	policy := conf.Policy
	if setup.policy != nil {
		policy = setup.policy(policy)
	}

	trackerOpts := []appirater.Option{
		appirater.WithStore(st),
		appirater.WithLogger(logger),
		appirater.WithPolicy(buildPolicy(policy)),
		appirater.WithLanguage(language.Make(conf.Language)),
		appirater.WithStorePageOpener(clipboardOpener(cmd.OutOrStdout())),
	}
	if conf.AppName != "" {
		trackerOpts = append(trackerOpts, appirater.WithAppName(conf.AppName))
	}
	if conf.VersionCode != nil {
		trackerOpts = append(trackerOpts, appirater.WithVersionResolver(appirater.StaticVersion(*conf.VersionCode)))
	}
	if setup.presenter != nil {
		trackerOpts = append(trackerOpts, appirater.WithPresenter(setup.presenter))
	}
	if setup.registry != nil {
		trackerOpts = append(trackerOpts, appirater.WithMetrics(setup.registry))
	}

	return appirater.New(conf.AppID, trackerOpts...), conf, nil
}

// promptRequest carries the configured prompt texts. Empty fields fall back
// to the localized defaults.
func promptRequest(conf *config.Config) appirater.Request {
	return appirater.Request{
		Prompt: appirater.Prompt{
			Title:         conf.Prompt.Title,
			Message:       conf.Prompt.Message,
			RateButton:    conf.Prompt.RateButton,
			LaterButton:   conf.Prompt.LaterButton,
			DeclineButton: conf.Prompt.DeclineButton,
		},
	}
}

func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

func openStore(c config.StoreConfig) (store.Store, error) {
	switch c.Driver {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(c.Path)
	case "sqlite":
		s, err := store.NewSQLiteStore(c.Path)
		if err != nil {
			return nil, err
		}
		if c.CacheSize > 0 {
			return store.NewTieredStoreSize(s, c.CacheSize), nil
		}
		return store.NewTieredStore(s), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", c.Driver)
	}
}

// buildPolicy combines DefaultPolicy with the configured thresholds.
func buildPolicy(c config.PolicyConfig) appirater.Policy {
	policies := []appirater.Policy{appirater.DefaultPolicy}
	if c.MinLaunches > 0 {
		policies = append(policies, appirater.MinLaunches(c.MinLaunches))
	}
	if c.MinVersionLaunches > 0 {
		policies = append(policies, appirater.MinVersionLaunches(c.MinVersionLaunches))
	}
	if c.MinAge > 0 {
		policies = append(policies, appirater.MinAgeSinceFirstLaunch(c.MinAge))
	}
	if c.RemindAfter > 0 {
		policies = append(policies, appirater.RemindAfter(c.RemindAfter))
	}
	if len(policies) == 1 {
		return appirater.DefaultPolicy
	}
	return appirater.All(policies...)
}

// clipboardOpener stands in for a store app on a terminal: it prints the
// store link and copies it to the clipboard.
func clipboardOpener(out io.Writer) appirater.StorePageOpener {
	return appirater.StorePageFunc(func(_ context.Context, appID string) error {
		url := appirater.StorePageURL(appID)
		fmt.Fprintf(out, "Store page: %s\n", url)
		if err := copyToClipboard(url); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(out, "Link copied to clipboard.")
		return nil
	})
}

// PromptFlags selects how a command answers a due prompt.
type PromptFlags struct {
	NoPrompt bool
	Answer   string
	Metrics  bool
}

func (f *PromptFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.NoPrompt, "no-prompt", false, "Only report whether the prompt is due")
	cmd.Flags().StringVar(&f.Answer, "answer", "", "Answer a due prompt without showing it: rate, later, decline or dismiss")
	cmd.Flags().BoolVar(&f.Metrics, "metrics", false, "Print the Prometheus counters after the command")
}

func (f *PromptFlags) setup(cmd *cobra.Command) (trackerSetup, error) {
	var setup trackerSetup
	if f.Metrics {
		setup.registry = prometheus.NewRegistry()
	}

	switch {
	case f.NoPrompt:
	case f.Answer != "":
		resp, err := parseResponse(f.Answer)
		if err != nil {
			return setup, err
		}
		out := cmd.OutOrStdout()
		setup.presenter = appirater.PresenterFunc(func(_ context.Context, p appirater.Prompt) (appirater.Response, error) {
			fmt.Fprintf(out, "Prompt shown: %s\n", p.Title)
			return resp, nil
		})
	default:
		setup.presenter = tui.NewPresenter(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return setup, nil
}

func parseResponse(s string) (appirater.Response, error) {
	switch strings.ToLower(s) {
	case "rate":
		return appirater.Rate, nil
	case "later", "remind", "remind-later":
		return appirater.RemindLater, nil
	case "decline", "never":
		return appirater.Decline, nil
	case "dismiss", "dismissed":
		return appirater.Dismissed, nil
	default:
		return appirater.Dismissed, fmt.Errorf("unknown answer %q (want rate, later, decline or dismiss)", s)
	}
}

func printResult(out io.Writer, res appirater.Result) {
	switch {
	case res.Presented:
		fmt.Fprintf(out, "Prompt: answered %s\n", res.Response)
	case res.ShouldPrompt:
		fmt.Fprintln(out, "Prompt: due")
	default:
		fmt.Fprintln(out, "Prompt: not due")
	}
}

// printMetrics writes every counter in reg as "name{labels} value".
func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return nil
}
