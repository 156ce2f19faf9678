// Package appirater decides when to ask a user to rate an application. It
// counts application launches in a persistent store, detects version
// changes, and applies the user's answer to a three-button prompt.
//
// # Key Concepts
//
//   - [LaunchState] is the persisted record: launch counters, first launch
//     time, the last seen version code, and the user's last answer.
//   - [Policy] decides from a [PolicyInput] snapshot whether to prompt now.
//     [DefaultPolicy] prompts until the user has rated or declined forever;
//     [MinLaunches], [RemindAfter] and friends add thresholds via [All].
//   - [Response] is the user's answer: [Rate], [RemindLater], [Decline], or
//     [Dismissed], which counts as remind later.
//   - [store.Store] is the key/value backend. An in-memory store is used by
//     default; SQLite, YAML file, tiered and Redis stores persist across
//     restarts.
//
// # Quick Start
//
//	tracker := appirater.New("com.example.notes",
//		appirater.WithStore(s),
//		appirater.WithVersionResolver(appirater.StaticVersion(42)),
//		appirater.WithPolicy(appirater.All(
//			appirater.DefaultPolicy,
//			appirater.MinLaunches(5),
//		)),
//	)
//
//	res, err := tracker.RecordLaunch(ctx, appirater.Request{})
//	if err == nil && res.ShouldPrompt {
//		// show a prompt, then:
//		tracker.Respond(ctx, appirater.RemindLater)
//	}
//
// Configure a [Presenter] with [WithPresenter] to have RecordLaunch show the
// prompt and apply the answer itself. See the [Tracker] documentation for the
// full API.
package appirater
