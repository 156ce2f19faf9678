package appirater

import "time"

// PolicyInput is the state snapshot a Policy decides on.
type PolicyInput struct {
	LaunchCount         uint64
	VersionLaunchCount  uint64
	FirstLaunch         time.Time // zero when absent
	VersionCode         int32     // resolved version code of this launch
	PreviousVersionCode int32     // version code stored before this launch
	RateClicked         time.Time // zero when absent
	RemindClicked       time.Time // zero when absent
	DeclinedForever     bool
	Now                 time.Time
}

// Policy decides whether the rating prompt should be shown now.
type Policy func(PolicyInput) bool

// DefaultPolicy shows the prompt until the user has rated or declined
// forever. It ignores launch counts entirely; combine it with the threshold
// policies below for stricter behaviour.
func DefaultPolicy(in PolicyInput) bool {
	return in.RateClicked.IsZero() && !in.DeclinedForever
}

// All returns a policy that is true only when every given policy is true.
// An empty list is always true.
func All(policies ...Policy) Policy {
	return func(in PolicyInput) bool {
		for _, p := range policies {
			if !p(in) {
				return false
			}
		}
		return true
	}
}

// MinLaunches requires at least n recorded launches.
func MinLaunches(n uint64) Policy {
	return func(in PolicyInput) bool {
		return in.LaunchCount >= n
	}
}

// MinVersionLaunches requires at least n launches of the current version.
func MinVersionLaunches(n uint64) Policy {
	return func(in PolicyInput) bool {
		return in.VersionLaunchCount >= n
	}
}

// MinAgeSinceFirstLaunch requires the first launch to be at least d old.
func MinAgeSinceFirstLaunch(d time.Duration) Policy {
	return func(in PolicyInput) bool {
		if in.FirstLaunch.IsZero() {
			return false
		}
		return in.Now.Sub(in.FirstLaunch) >= d
	}
}

// RemindAfter holds the prompt back for d after the user chose "remind me
// later". Without a reminder on record it is always true.
func RemindAfter(d time.Duration) Policy {
	return func(in PolicyInput) bool {
		if in.RemindClicked.IsZero() {
			return true
		}
		return in.Now.Sub(in.RemindClicked) >= d
	}
}
