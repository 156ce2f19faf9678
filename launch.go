package appirater

import "time"

// Advance applies one recorded launch to prev. When current differs from the
// stored version code the per-version counter restarts; both counters are
// then incremented. The first launch time is written only once, and the
// version code is replaced by current.
//
// Callers that could not resolve the current version pass prev.VersionCode,
// which leaves the per-version counter and the stored code untouched.
func Advance(prev LaunchState, current int32, now time.Time) LaunchState {
	next := prev
	if prev.VersionCode != current {
		next.VersionLaunchCount = 0
	}

	next.LaunchCount++
	next.VersionLaunchCount++

	if !next.HasFirstLaunch() {
		next.FirstLaunch = now.Truncate(time.Millisecond)
	}
	next.VersionCode = current
	return next
}

// ResetForVersion wipes s back to DefaultState when its version code differs
// from current. The stored code becomes UnknownVersion, not current. The
// boolean reports whether a reset happened; an unchanged version returns s
// as is.
func ResetForVersion(s LaunchState, current int32) (LaunchState, bool) {
	if s.VersionCode == current {
		return s, false
	}
	return DefaultState(), true
}

// Evaluate runs policy against s without mutating anything. previous is the
// version code stored before this launch, current the resolved one. A nil
// policy means DefaultPolicy.
func Evaluate(policy Policy, s LaunchState, current, previous int32, now time.Time) bool {
	if policy == nil {
		policy = DefaultPolicy
	}
	return policy(PolicyInput{
		LaunchCount:         s.LaunchCount,
		VersionLaunchCount:  s.VersionLaunchCount,
		FirstLaunch:         s.FirstLaunch,
		VersionCode:         current,
		PreviousVersionCode: previous,
		RateClicked:         s.RateClicked,
		RemindClicked:       s.RemindClicked,
		DeclinedForever:     s.DeclinedForever,
		Now:                 now,
	})
}
