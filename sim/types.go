// Package sim defines the boundary to the simulation backend: the live
// data feed the view renders and the mutating actions the view may start.
// The view never talks to a network itself; a backend adapter implements
// these interfaces. An in-memory demo implementation ships in this package.
package sim

import "fmt"

// Participant is a node in the payment network.
type Participant struct {
	ID      string
	Name    string
	Balance int64
}

// Trustline is a directed credit edge between two participants.
type Trustline struct {
	From    string
	To      string
	Limit   int64
	Balance int64
}

// Key returns the stable identity of the edge, used to detect that a
// popup's subject changed.
func (t Trustline) Key() string {
	return fmt.Sprintf("%s->%s", t.From, t.To)
}

// RunPhase is the lifecycle state of the simulation run.
type RunPhase int

const (
	RunStopped RunPhase = iota
	RunRunning
	RunErrored
)

// String returns the run phase name for display.
func (p RunPhase) String() string {
	switch p {
	case RunRunning:
		return "running"
	case RunErrored:
		return "errored"
	default:
		return "stopped"
	}
}

// RunState is the feed's snapshot of run-level signals the view observes.
type RunState struct {
	Phase           RunPhase
	Busy            bool // A mutating action is in flight
	Cancelling      bool // Cancellation requested, action not yet resolved
	ActionsDisabled bool // Backend policy forbids mutating actions
}

// Terminal reports whether the run is stopped or errored.
func (s RunState) Terminal() bool {
	return s.Phase != RunRunning
}

// Feed is the read side of the backend: current run signals and network
// data, plus a channel that receives a token whenever anything changed.
type Feed interface {
	Run() RunState
	Participants() []Participant
	Trustlines() []Trustline
	Changes() <-chan struct{}
}

// Actions is the write side of the backend. Calls return immediately; the
// caller observes progress through the feed's Busy/Cancelling signals and
// learns the outcome from the feed data.
type Actions interface {
	SendPayment(from, to string, amount int64)
	CloseTrustline(edgeKey string)
	RunClearing(target string)
	CancelPending()
}
