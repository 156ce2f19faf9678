package appirater

import (
	"context"
	"time"

	"github.com/ryhazerus/appirater/store"
)

// The setters below override single fields of the stored state. They bypass
// the launch bookkeeping and exist for hosts that migrate or repair state.

// SetLaunchCount overrides the total launch count.
func (t *Tracker) SetLaunchCount(ctx context.Context, n uint64) error {
	return t.setInt(ctx, KeyLaunchCount, int64(n))
}

// SetVersionLaunchCount overrides the launch count of the current version.
func (t *Tracker) SetVersionLaunchCount(ctx context.Context, n uint64) error {
	return t.setInt(ctx, KeyVersionLaunchCount, int64(n))
}

// SetFirstLaunchDate overrides the first launch time. The zero time clears it,
// and the next recorded launch sets it again.
func (t *Tracker) SetFirstLaunchDate(ctx context.Context, at time.Time) error {
	return t.setInt(ctx, KeyFirstLaunchDate, toMillis(at))
}

// SetRateClickDate overrides the rate click time. The zero time clears it.
func (t *Tracker) SetRateClickDate(ctx context.Context, at time.Time) error {
	return t.setInt(ctx, KeyRateClickDate, toMillis(at))
}

// SetReminderClickDate overrides the reminder click time. The zero time
// clears it.
func (t *Tracker) SetReminderClickDate(ctx context.Context, at time.Time) error {
	return t.setInt(ctx, KeyReminderClickDate, toMillis(at))
}

// SetDeclinedForever overrides the "do not show again" flag.
func (t *Tracker) SetDeclinedForever(ctx context.Context, declined bool) error {
	batch := store.NewRecord()
	batch.SetBool(KeyDoNotShowAgain, declined)
	return t.commit(ctx, batch)
}

func (t *Tracker) setInt(ctx context.Context, key string, v int64) error {
	batch := store.NewRecord()
	batch.SetInt(key, v)
	return t.commit(ctx, batch)
}
