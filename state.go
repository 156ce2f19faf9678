package appirater

import (
	"math"
	"time"

	"github.com/ryhazerus/appirater/store"
)

// UnknownVersion is the stored version code of an application that has never
// recorded a launch, or whose record was wiped by ResetIfVersionChanged.
const UnknownVersion int32 = math.MinInt32

// Persisted record keys, one namespace per installed application.
const (
	KeyLaunchCount        = "launch_count"
	KeyVersionLaunchCount = "version_launch_count"
	KeyFirstLaunchDate    = "first_launch_date"
	KeyAppVersionCode     = "app_version_code"
	KeyRateClickDate      = "rate_click_date"
	KeyReminderClickDate  = "reminder_click_date"
	KeyDoNotShowAgain     = "do_not_show_again"
)

// LaunchState is the persisted record for one installed application.
// Zero timestamps mean "absent".
type LaunchState struct {
	LaunchCount        uint64    // total launches ever recorded
	VersionLaunchCount uint64    // launches since VersionCode was first seen
	FirstLaunch        time.Time // set once, on the first recorded launch
	VersionCode        int32     // version code as of the last recorded launch
	RateClicked        time.Time // when the user chose to rate
	RemindClicked      time.Time // when the user chose to be reminded later
	DeclinedForever    bool      // user asked never to be prompted again
}

// DefaultState returns the state of a never-seen application.
func DefaultState() LaunchState {
	return LaunchState{VersionCode: UnknownVersion}
}

// HasFirstLaunch reports whether a first launch has been recorded.
func (s LaunchState) HasFirstLaunch() bool { return !s.FirstLaunch.IsZero() }

// HasRated reports whether the user chose to rate.
func (s LaunchState) HasRated() bool { return !s.RateClicked.IsZero() }

// HasReminded reports whether the user asked to be reminded later.
func (s LaunchState) HasReminded() bool { return !s.RemindClicked.IsZero() }

// record encodes the full state as a store batch.
func (s LaunchState) record() store.Record {
	r := store.NewRecord()
	r.SetInt(KeyLaunchCount, int64(s.LaunchCount))
	r.SetInt(KeyVersionLaunchCount, int64(s.VersionLaunchCount))
	r.SetInt(KeyFirstLaunchDate, toMillis(s.FirstLaunch))
	r.SetInt(KeyAppVersionCode, int64(s.VersionCode))
	r.SetInt(KeyRateClickDate, toMillis(s.RateClicked))
	r.SetInt(KeyReminderClickDate, toMillis(s.RemindClicked))
	r.SetBool(KeyDoNotShowAgain, s.DeclinedForever)
	return r
}

// stateFromRecord decodes a stored record, applying the documented defaults
// for missing keys.
func stateFromRecord(r store.Record) LaunchState {
	return LaunchState{
		LaunchCount:        uint64(r.Int(KeyLaunchCount, 0)),
		VersionLaunchCount: uint64(r.Int(KeyVersionLaunchCount, 0)),
		FirstLaunch:        fromMillis(r.Int(KeyFirstLaunchDate, 0)),
		VersionCode:        int32(r.Int(KeyAppVersionCode, int64(UnknownVersion))),
		RateClicked:        fromMillis(r.Int(KeyRateClickDate, 0)),
		RemindClicked:      fromMillis(r.Int(KeyReminderClickDate, 0)),
		DeclinedForever:    r.Bool(KeyDoNotShowAgain, false),
	}
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// fromMillis maps the stored 0 (and anything before the epoch) to absent.
func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
