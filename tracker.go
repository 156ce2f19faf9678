package appirater

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/ryhazerus/appirater/store"
)

// Request carries the per-call settings of RecordLaunch and TryToShowPrompt.
// The zero value uses the tracker's policy and the default prompt texts.
type Request struct {
	Policy Policy // nil uses the tracker policy
	Prompt Prompt // empty fields use the localized defaults

	// OnComplete fires after a presented prompt has been answered and the
	// answer has been committed.
	OnComplete func(Response)
	// OnPromptSkipped fires when no prompt is shown: the policy said no, or
	// the presenter failed.
	OnPromptSkipped func()
}

// Result reports what a RecordLaunch or TryToShowPrompt call did.
type Result struct {
	State        LaunchState // state after the call
	ShouldPrompt bool        // the policy verdict
	Presented    bool        // a presenter showed the prompt and got an answer
	Response     Response    // the answer, valid when Presented
}

// Tracker is the main entry point for the appirater library. It records
// application launches in a store, asks a policy whether the user should be
// prompted to rate the application, and applies the user's answer.
//
// A Tracker keeps no state between calls; everything lives in the store. It
// does not serialise concurrent calls for the same application.
type Tracker struct {
	appID      string
	appName    string
	lang       language.Tag
	store      store.Store
	policy     Policy
	versions   VersionResolver
	storePage  StorePageOpener
	presenter  Presenter
	logger     zerolog.Logger
	registerer prometheus.Registerer
	metrics    metrics
	now        func() time.Time
}

// New creates a Tracker for the application identified by appID, which is
// also the store namespace. If no store is provided, an in-memory store is
// used.
func New(appID string, opts ...Option) *Tracker {
	t := &Tracker{
		appID:  appID,
		lang:   language.English,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	if t.store == nil {
		t.store = store.NewMemoryStore()
	}
	if t.policy == nil {
		t.policy = DefaultPolicy
	}
	if t.appName == "" {
		t.appName = appID
	}
	t.logger = t.logger.With().Str("app_id", appID).Logger()

	t.metrics = noopMetrics{}
	if t.registerer != nil {
		m, err := newPromMetrics(t.registerer)
		if err != nil {
			t.logger.Warn().Err(err).Msg("metrics registration failed, continuing without metrics")
		} else {
			t.metrics = m
		}
	}
	return t
}

// AppID returns the application ID the tracker records launches for.
func (t *Tracker) AppID() string {
	return t.appID
}

// Prompt returns p with every empty field replaced by the localized default.
func (t *Tracker) Prompt(p Prompt) Prompt {
	return p.resolve(defaultPrompt(t.lang, t.appName))
}

// RecordLaunch counts one application launch. The updated state is committed
// as one batch before the policy runs, so the policy and any prompt always
// see freshly stored counters. When the policy says yes and a presenter is
// configured, the prompt is shown and the answer applied before returning.
//
// The only error returned is a *PersistenceError; version lookup and store
// page failures are logged and swallowed.
func (t *Tracker) RecordLaunch(ctx context.Context, req Request) (Result, error) {
	prev, err := t.load(ctx)
	if err != nil {
		return Result{}, err
	}

	current := t.currentVersion(ctx, prev.VersionCode)
	now := t.now()
	next := Advance(prev, current, now)

	if err := t.commit(ctx, next.record()); err != nil {
		return Result{}, err
	}
	t.metrics.launchRecorded()

	t.logger.Debug().
		Uint64("launch_count", next.LaunchCount).
		Uint64("version_launch_count", next.VersionLaunchCount).
		Int32("version_code", next.VersionCode).
		Msg("launch recorded")

	should := Evaluate(t.policyFor(req), next, current, prev.VersionCode, now)
	return t.dispatch(ctx, req, next, should)
}

// TryToShowPrompt evaluates the policy against the stored state without
// counting a launch, and shows the prompt when the policy says yes.
func (t *Tracker) TryToShowPrompt(ctx context.Context, req Request) (Result, error) {
	s, err := t.load(ctx)
	if err != nil {
		return Result{}, err
	}

	current := t.currentVersion(ctx, s.VersionCode)
	snapshot := s
	if current != s.VersionCode {
		// No launch of the new version has been recorded yet.
		snapshot.VersionLaunchCount = 0
	}

	should := Evaluate(t.policyFor(req), snapshot, current, s.VersionCode, t.now())
	return t.dispatch(ctx, req, s, should)
}

// ResetIfVersionChanged removes the whole record from the store when the
// resolved version code differs from the stored one. An unchanged version, or
// a failed lookup, leaves the store untouched.
func (t *Tracker) ResetIfVersionChanged(ctx context.Context) (LaunchState, error) {
	s, err := t.load(ctx)
	if err != nil {
		return LaunchState{}, err
	}

	next, changed := ResetForVersion(s, t.currentVersion(ctx, s.VersionCode))
	if !changed {
		return s, nil
	}

	// A missing record decodes to DefaultState.
	if err := t.store.Reset(ctx, t.appID); err != nil {
		return LaunchState{}, &PersistenceError{Op: "reset", AppID: t.appID, Err: err}
	}
	t.logger.Info().Int32("previous_version_code", s.VersionCode).Msg("version changed, launch state reset")
	return next, nil
}

// Respond applies the user's answer to the stored state. Hosts that show
// their own prompt call it from the prompt's callback. For Rate the store
// page is opened first; a failure to open it is logged and the rate click is
// still recorded.
func (t *Tracker) Respond(ctx context.Context, resp Response) (LaunchState, error) {
	s, err := t.load(ctx)
	if err != nil {
		return LaunchState{}, err
	}

	if resp == Rate {
		t.openStorePage(ctx)
	}

	next := ApplyResponse(s, resp, t.now())
	if err := t.commit(ctx, responseBatch(next, resp)); err != nil {
		return LaunchState{}, err
	}
	t.metrics.responseApplied(resp)

	t.logger.Debug().Stringer("response", resp).Msg("prompt response applied")
	return next, nil
}

// State returns the stored launch state.
func (t *Tracker) State(ctx context.Context) (LaunchState, error) {
	return t.load(ctx)
}

// Close releases resources held by the tracker's store.
func (t *Tracker) Close() error {
	return t.store.Close()
}

func (t *Tracker) dispatch(ctx context.Context, req Request, s LaunchState, should bool) (Result, error) {
	res := Result{State: s, ShouldPrompt: should}

	if !should {
		t.skip(req)
		return res, nil
	}
	if t.presenter == nil {
		return res, nil
	}

	resp, err := t.presenter.Present(ctx, t.Prompt(req.Prompt))
	if err != nil {
		t.logger.Warn().Err(err).Msg("rating prompt could not be shown")
		t.skip(req)
		return res, nil
	}
	t.metrics.promptShown()

	next, err := t.Respond(ctx, resp)
	if err != nil {
		return res, err
	}

	res.State = next
	res.Presented = true
	res.Response = resp
	if req.OnComplete != nil {
		req.OnComplete(resp)
	}
	return res, nil
}

func (t *Tracker) skip(req Request) {
	t.metrics.promptSkipped()
	if req.OnPromptSkipped != nil {
		req.OnPromptSkipped()
	}
}

func (t *Tracker) policyFor(req Request) Policy {
	if req.Policy != nil {
		return req.Policy
	}
	return t.policy
}

// currentVersion resolves the running version code. On failure it falls back
// to stored, which keeps version-scoped counters and the stored code as they
// are.
func (t *Tracker) currentVersion(ctx context.Context, stored int32) int32 {
	var err error
	if t.versions == nil {
		err = ErrNoVersionResolver
	} else {
		var code int32
		code, err = t.versions.VersionCode(ctx)
		if err == nil {
			return code
		}
	}

	t.logger.Warn().
		Err(&VersionLookupError{AppID: t.appID, Err: err}).
		Int32("stored_version_code", stored).
		Msg("version lookup failed, keeping stored version code")
	return stored
}

func (t *Tracker) openStorePage(ctx context.Context) {
	err := ErrNoStoreHandler
	if t.storePage != nil {
		err = t.storePage.OpenStorePage(ctx, t.appID)
	}
	if err == nil {
		return
	}

	t.logger.Warn().
		Err(&StorePageError{AppID: t.appID, URL: StorePageURL(t.appID), Err: err}).
		Msg("store page could not be opened, recording rate click anyway")
}

func (t *Tracker) load(ctx context.Context) (LaunchState, error) {
	r, err := t.store.Load(ctx, t.appID)
	if err != nil {
		return LaunchState{}, &PersistenceError{Op: "load", AppID: t.appID, Err: err}
	}
	return stateFromRecord(r), nil
}

func (t *Tracker) commit(ctx context.Context, batch store.Record) error {
	if err := t.store.Commit(ctx, t.appID, batch); err != nil {
		return &PersistenceError{Op: "commit", AppID: t.appID, Err: err}
	}
	return nil
}
