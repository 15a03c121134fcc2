package practice

import "time"

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time

// explainPollMsg is sent at short intervals while waiting for an
// explanation to come back.
type explainPollMsg time.Time

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}
