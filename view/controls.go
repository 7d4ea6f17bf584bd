package view

import (
	"simview/guard"
	"simview/interact"
	"simview/sim"
)

// Idle-state descriptions for the three start controls.
const (
	idlePayment   = "Send a payment between two participants"
	idleTrustline = "Edit the selected trustline"
	idleClearing  = "Run clearing at a participant"
)

// Controls owns the three Interact Mode start controls and routes their
// activations through the dispatch guard.
type Controls struct {
	guard   *guard.Guard
	machine *interact.Machine
	actions sim.Actions
}

// NewControls wires the start controls to the guard and action layer.
func NewControls(g *guard.Guard, m *interact.Machine, a sim.Actions) *Controls {
	return &Controls{guard: g, machine: m, actions: a}
}

// Render produces the three start controls with their current disabled
// attribute and explanatory title.
func (c *Controls) Render() []Element {
	disabled := c.guard.Disabled()
	return []Element{
		{Tag: TagPaymentStart, Text: "[p] Pay", Title: c.guard.Title(idlePayment), Disabled: disabled},
		{Tag: TagTrustlineStart, Text: "[t] Trustline", Title: c.guard.Title(idleTrustline), Disabled: disabled},
		{Tag: TagClearingStart, Text: "[c] Clear", Title: c.guard.Title(idleClearing), Disabled: disabled},
	}
}

// Click dispatches an activation of the control with the given tag. The
// guard re-checks eligibility, so clicking a stale-rendered enabled
// control is a safe no-op.
func (c *Controls) Click(tag string) {
	switch tag {
	case TagPaymentStart:
		c.guard.Start(c.machine.BeginPayment, nil)
	case TagTrustlineStart:
		// Entry without a selected edge; the operator picks one next.
		c.guard.Start(func() bool { return c.machine.BeginTrustline("", nil) }, nil)
	case TagClearingStart:
		c.guard.Start(c.machine.BeginClearing, nil)
	}
}

// CompletePayment fires the payment once both ends are picked, then
// returns the machine to idle. Called by the term loop on the final pick.
func (c *Controls) CompletePayment(amount int64) {
	st := c.machine.Snapshot()
	if st.FromPID == "" || st.ToPID == "" {
		return
	}
	c.actions.SendPayment(st.FromPID, st.ToPID, amount)
	c.machine.Complete()
}

// CompleteClearing fires clearing at the picked target participant.
func (c *Controls) CompleteClearing() {
	st := c.machine.Snapshot()
	if st.FromPID == "" {
		return
	}
	c.actions.RunClearing(st.FromPID)
	c.machine.Complete()
}
