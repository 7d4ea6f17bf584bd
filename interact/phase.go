// Package interact owns the Interact Mode control state: which guided flow
// the operator is in, the context captured mid-flow, and the two-step
// confirmation gate for destructive actions.
package interact

import "simview/overlay"

// Phase represents what the operator is currently doing.
type Phase int

const (
	PhaseIdle              Phase = iota // No flow active
	PhasePickPaymentFrom                // Choosing the paying participant
	PhasePickPaymentTo                  // Choosing the receiving participant
	PhaseEditTrustline                  // Trustline popup open on an edge
	PhasePickClearingTarget             // Choosing where to run clearing
)

// String returns the phase name for display.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhasePickPaymentFrom:
		return "PAY:FROM"
	case PhasePickPaymentTo:
		return "PAY:TO"
	case PhaseEditTrustline:
		return "TRUSTLINE"
	case PhasePickClearingTarget:
		return "CLEARING"
	default:
		return "UNKNOWN"
	}
}

// State is the context captured while a flow is in progress. It is owned
// and mutated exclusively by the Machine; everything else reads snapshots.
type State struct {
	FromPID         string
	ToPID           string
	SelectedEdgeKey string
	EdgeAnchor      *overlay.Anchor
}

// Machine is the single source of truth for the current phase. All
// transitions happen synchronously on the event loop, so at most one flow
// is active without any locking.
type Machine struct {
	phase    Phase
	state    State
	onCancel []func()
}

// NewMachine returns a machine in the idle phase.
func NewMachine() *Machine {
	return &Machine{phase: PhaseIdle}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// IsIdle reports whether no flow is active.
func (m *Machine) IsIdle() bool {
	return m.phase == PhaseIdle
}

// FlowActive reports whether a guided flow is in progress.
func (m *Machine) FlowActive() bool {
	return m.phase != PhaseIdle
}

// Snapshot returns a copy of the current interact context.
func (m *Machine) Snapshot() State {
	return m.state
}

// OnCancel registers a callback invoked whenever a flow is cancelled.
// Popups use this instead of listening for a global escape event.
func (m *Machine) OnCancel(fn func()) {
	m.onCancel = append(m.onCancel, fn)
}

// BeginPayment enters the payment flow. The caller (the dispatch guard)
// has already verified eligibility, so a non-idle machine just refuses.
func (m *Machine) BeginPayment() bool {
	return m.enter(PhasePickPaymentFrom)
}

// BeginTrustline enters the trustline-edit flow for the given edge, with
// the anchor the popup will be positioned against.
func (m *Machine) BeginTrustline(edgeKey string, anchor *overlay.Anchor) bool {
	if !m.enter(PhaseEditTrustline) {
		return false
	}
	m.state.SelectedEdgeKey = edgeKey
	m.state.EdgeAnchor = anchor
	return true
}

// BeginClearing enters the clearing flow.
func (m *Machine) BeginClearing() bool {
	return m.enter(PhasePickClearingTarget)
}

func (m *Machine) enter(p Phase) bool {
	if m.phase != PhaseIdle {
		return false
	}
	m.state = State{}
	m.phase = p
	return true
}

// PickParticipant records a participant selection and advances the flow
// where the flow has a next step. Outside a flow it is a no-op.
func (m *Machine) PickParticipant(pid string) {
	switch m.phase {
	case PhasePickPaymentFrom:
		m.state.FromPID = pid
		m.phase = PhasePickPaymentTo
	case PhasePickPaymentTo:
		m.state.ToPID = pid
	case PhasePickClearingTarget:
		m.state.FromPID = pid
	}
}

// SelectEdge updates the selected edge mid-flow without changing phase.
// Confirmation guards watching the edge key disarm on this change.
func (m *Machine) SelectEdge(edgeKey string, anchor *overlay.Anchor) {
	if m.phase == PhaseIdle {
		return
	}
	m.state.SelectedEdgeKey = edgeKey
	m.state.EdgeAnchor = anchor
}

// Cancel aborts the current flow and returns to idle, notifying cancel
// subscribers. Safe to call while idle.
func (m *Machine) Cancel() {
	if m.phase == PhaseIdle {
		return
	}
	m.phase = PhaseIdle
	m.state = State{}
	for _, fn := range m.onCancel {
		fn()
	}
}

// Complete ends the current flow after the action resolved, returning to
// idle and clearing context.
func (m *Machine) Complete() {
	m.phase = PhaseIdle
	m.state = State{}
}
