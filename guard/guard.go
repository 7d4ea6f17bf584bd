// Package guard decides whether a mutating action may start right now,
// and produces the user-facing explanation when it may not.
package guard

import "simview/interact"

// Inputs are the externally supplied signals the guard evaluates. All are
// read-only from the guard's point of view; nil getters read as false.
type Inputs struct {
	Busy            func() bool // An action tied to the current flow is in flight
	Cancelling      func() bool // Cancellation requested but not yet resolved
	ActionsDisabled func() bool // Backend policy rejects mutating actions
	RunTerminal     func() bool // The simulation run is stopped or errored
}

// Lock reasons, in evaluation priority order.
const (
	TitleCancelling      = "Cancelling, please wait"
	TitleBusy            = "Operation in progress, please wait"
	TitleFlowActive      = "Cancel the current action first (Esc to cancel)"
	TitleActionsDisabled = "Actions are disabled by backend policy"
	TitleRunTerminal     = "Run is stopped or errored; start a run first"
)

// Guard is the central start-action policy. It owns no state of its own;
// every query re-reads the inputs and the phase machine.
type Guard struct {
	machine *interact.Machine
	in      Inputs
}

// New builds a guard over the given machine and signals.
func New(machine *interact.Machine, in Inputs) *Guard {
	return &Guard{machine: machine, in: in}
}

func read(fn func() bool) bool {
	return fn != nil && fn()
}

// Disabled reports whether start controls must be disabled. This is
// evaluated both when rendering the control and again inside the click
// handler; the handler check is the actual safety guarantee.
func (g *Guard) Disabled() bool {
	return read(g.in.Busy) ||
		read(g.in.ActionsDisabled) ||
		read(g.in.RunTerminal) ||
		g.machine.FlowActive()
}

// Title returns the explanatory text for a start control: the
// highest-priority lock reason, or idle when nothing restricts the action.
func (g *Guard) Title(idle string) string {
	switch {
	case read(g.in.Busy) && read(g.in.Cancelling):
		return TitleCancelling
	case read(g.in.Busy):
		return TitleBusy
	case g.machine.FlowActive():
		return TitleFlowActive
	case read(g.in.ActionsDisabled):
		return TitleActionsDisabled
	case read(g.in.RunTerminal):
		return TitleRunTerminal
	default:
		return idle
	}
}

// Start runs a flow-entry attempt: re-checks eligibility, asks the machine
// to enter the flow, and invokes launch at most once on success. An
// ineligible attempt is a silent no-op, not an error.
func (g *Guard) Start(begin func() bool, launch func()) {
	if g.Disabled() {
		return
	}
	if !begin() {
		return
	}
	if launch != nil {
		launch()
	}
}
