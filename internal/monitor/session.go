package monitor

import "time"

// Outcome is the terminal state of a remediation session.
type Outcome string

const (
	// OutcomeRecovered means some checking iteration observed the full
	// healthy state within the timeout window.
	OutcomeRecovered Outcome = "recovered"
	// OutcomeTimedOut means the timeout elapsed first.
	OutcomeTimedOut Outcome = "timed_out"
	// OutcomeAborted means the monitor was shut down mid-session.
	OutcomeAborted Outcome = "aborted"
)

// Session records one bounded-duration remediation attempt. A session is
// created on entry to the diagnostic loop and terminates exactly once.
type Session struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time
	Outcome      Outcome
	Iterations   int
	ProcessCount int // last observed
	SuccessCount int // last observed
}
