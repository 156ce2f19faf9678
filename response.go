package appirater

import (
	"fmt"
	"time"

	"github.com/ryhazerus/appirater/store"
)

// Response is the user's answer to the rating prompt.
type Response int

const (
	// Dismissed means the prompt was closed without a button choice. It is
	// handled exactly like RemindLater.
	Dismissed Response = iota
	// Rate opens the store page and records the rate click time.
	Rate
	// RemindLater records the reminder click time.
	RemindLater
	// Decline sets the sticky "do not show again" flag.
	Decline
)

func (r Response) String() string {
	switch r {
	case Dismissed:
		return "Dismissed"
	case Rate:
		return "Rate"
	case RemindLater:
		return "RemindLater"
	case Decline:
		return "Decline"
	default:
		return fmt.Sprintf("Response(%d)", int(r))
	}
}

// ApplyResponse returns s updated for resp. Decline stays set across later
// Rate and RemindLater answers.
func ApplyResponse(s LaunchState, resp Response, now time.Time) LaunchState {
	now = now.Truncate(time.Millisecond)
	switch resp {
	case Rate:
		s.RateClicked = now
	case Decline:
		s.DeclinedForever = true
	default:
		s.RemindClicked = now
	}
	return s
}

// responseBatch holds only the key that resp touches, so a response commit
// never rewrites the launch counters.
func responseBatch(s LaunchState, resp Response) store.Record {
	batch := store.NewRecord()
	switch resp {
	case Rate:
		batch.SetInt(KeyRateClickDate, toMillis(s.RateClicked))
	case Decline:
		batch.SetBool(KeyDoNotShowAgain, true)
	default:
		batch.SetInt(KeyReminderClickDate, toMillis(s.RemindClicked))
	}
	return batch
}
