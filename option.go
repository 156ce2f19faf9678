package appirater

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/ryhazerus/appirater/store"
)

// Option configures the Tracker.
type Option func(*Tracker)

// WithStore sets the backing store for the launch state.
// If not provided, an in-memory store is used by default.
func WithStore(s store.Store) Option {
	return func(t *Tracker) {
		t.store = s
	}
}

// WithPolicy sets the policy used when a Request carries none.
// If not provided, DefaultPolicy is used.
func WithPolicy(p Policy) Option {
	return func(t *Tracker) {
		t.policy = p
	}
}

// WithVersionResolver sets how the current version code is looked up.
// Without a resolver every lookup counts as failed, so version-scoped
// counters never reset.
func WithVersionResolver(r VersionResolver) Option {
	return func(t *Tracker) {
		t.versions = r
	}
}

// WithStorePageOpener sets the action run when the user chooses to rate.
func WithStorePageOpener(o StorePageOpener) Option {
	return func(t *Tracker) {
		t.storePage = o
	}
}

// WithPresenter sets the surface that shows the prompt. Without a presenter
// the tracker only reports Result.ShouldPrompt and the host is expected to
// call Respond once its own surface has an answer.
func WithPresenter(p Presenter) Option {
	return func(t *Tracker) {
		t.presenter = p
	}
}

// WithLogger sets the logger for swallowed failures and state transitions.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) {
		t.logger = l
	}
}

// WithMetrics registers the tracker's Prometheus counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(t *Tracker) {
		t.registerer = reg
	}
}

// WithClock overrides the wall clock. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithAppName sets the display name used in the default prompt texts.
// It defaults to the application ID.
func WithAppName(name string) Option {
	return func(t *Tracker) {
		t.appName = name
	}
}

// WithLanguage selects the language of the default prompt texts.
func WithLanguage(tag language.Tag) Option {
	return func(t *Tracker) {
		t.lang = tag
	}
}
