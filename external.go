package appirater

import "context"

// VersionResolver resolves the version code of the running application.
type VersionResolver interface {
	VersionCode(ctx context.Context) (int32, error)
}

// VersionFunc adapts a function to VersionResolver.
type VersionFunc func(ctx context.Context) (int32, error)

// VersionCode calls f.
func (f VersionFunc) VersionCode(ctx context.Context) (int32, error) { return f(ctx) }

// StaticVersion returns a resolver that always reports code.
func StaticVersion(code int32) VersionResolver {
	return VersionFunc(func(context.Context) (int32, error) { return code, nil })
}

// StorePageOpener opens the application's page in its distribution store.
type StorePageOpener interface {
	OpenStorePage(ctx context.Context, appID string) error
}

// StorePageFunc adapts a function to StorePageOpener.
type StorePageFunc func(ctx context.Context, appID string) error

// OpenStorePage calls f.
func (f StorePageFunc) OpenStorePage(ctx context.Context, appID string) error { return f(ctx, appID) }

// StorePageURL returns the market link for appID.
func StorePageURL(appID string) string {
	return "market://details?id=" + appID
}

// Prompt holds the texts of the rating prompt. Empty fields are filled with
// localized defaults that mention the application name.
type Prompt struct {
	Title         string
	Message       string
	RateButton    string
	LaterButton   string
	DeclineButton string
}

// Presenter shows the rating prompt and blocks until the user answers.
// Closing the prompt without choosing a button must yield Dismissed. An
// error means the prompt could not be shown at all.
type Presenter interface {
	Present(ctx context.Context, p Prompt) (Response, error)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, p Prompt) (Response, error)

// Present calls f.
func (f PresenterFunc) Present(ctx context.Context, p Prompt) (Response, error) { return f(ctx, p) }
