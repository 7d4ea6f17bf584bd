package view

import (
	"fmt"

	"simview/guard"
	"simview/interact"
	"simview/sim"
)

// HUD renders the heads-up bar: run phase, interact phase, and the hint
// explaining why the interface is locked, when it is.
type HUD struct {
	guard   *guard.Guard
	machine *interact.Machine
}

// NewHUD builds the heads-up bar over the guard and machine.
func NewHUD(g *guard.Guard, m *interact.Machine) *HUD {
	return &HUD{guard: g, machine: m}
}

// StatusLine returns the single-line summary drawn at the top of the
// screen.
func (h *HUD) StatusLine(run sim.RunState) string {
	line := fmt.Sprintf("run:%s  mode:%s", run.Phase, h.machine.Phase())
	if run.Busy {
		if run.Cancelling {
			line += "  [cancelling]"
		} else {
			line += "  [busy]"
		}
	}
	return line
}

// Hints returns the transient hint elements to show under the status
// line. At most one of the busy and locked hints is present.
func (h *HUD) Hints(run sim.RunState) []Element {
	switch {
	case run.Busy && run.Cancelling:
		return []Element{{Tag: TagBusyHint, Text: guard.TitleCancelling}}
	case run.Busy:
		return []Element{{Tag: TagBusyHint, Text: guard.TitleBusy}}
	case h.machine.FlowActive():
		return []Element{{Tag: TagLockedHint, Text: guard.TitleFlowActive}}
	case run.ActionsDisabled:
		return []Element{{Tag: TagLockedHint, Text: guard.TitleActionsDisabled}}
	case run.Terminal():
		return []Element{{Tag: TagLockedHint, Text: guard.TitleRunTerminal}}
	}
	return nil
}
