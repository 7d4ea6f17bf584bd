package view

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"simview/interact"
	"simview/overlay"
	"simview/sim"
)

// EdgePopup is the trustline detail popup. It is visible while the
// trustline-edit flow has an edge selected, positions itself next to the
// anchor recorded by the machine, and hosts the destructive close-line
// control behind a two-step confirmation.
type EdgePopup struct {
	machine *interact.Machine
	feed    sim.Feed
	actions sim.Actions
	confirm *interact.Confirm
}

// NewEdgePopup wires the popup to the machine, feed, and action layer.
// The confirmation disarms on popup hide, on subject change, and when the
// backend goes busy, so an armed close can never apply to the wrong edge.
func NewEdgePopup(m *interact.Machine, feed sim.Feed, actions sim.Actions) *EdgePopup {
	p := &EdgePopup{machine: m, feed: feed, actions: actions}
	p.confirm = interact.NewConfirm(
		interact.DisarmRule{
			Source: func() any { return p.Visible() },
			When:   func(v any) bool { return v == false },
		},
		interact.DisarmRule{
			Source: func() any { return m.Snapshot().SelectedEdgeKey },
		},
		interact.DisarmRule{
			Source: func() any { return feed.Run().Busy },
			When:   func(v any) bool { return v == true },
		},
	)
	m.OnCancel(p.confirm.Disarm)
	return p
}

// Visible reports whether the popup should be on screen.
func (p *EdgePopup) Visible() bool {
	return p.machine.Phase() == interact.PhaseEditTrustline &&
		p.machine.Snapshot().SelectedEdgeKey != ""
}

// Sync runs the confirmation's disarm rules. The term loop calls this on
// every recomputation cycle.
func (p *EdgePopup) Sync() {
	p.confirm.Sync()
}

// Armed exposes the close-line confirmation state for rendering.
func (p *EdgePopup) Armed() bool {
	return p.confirm.Armed()
}

// ClickClose activates the close-line control: first activation arms,
// second closes the trustline and ends the flow.
func (p *EdgePopup) ClickClose() {
	if !p.Visible() {
		return
	}
	key := p.machine.Snapshot().SelectedEdgeKey
	p.confirm.ConfirmOrArm(func() {
		p.actions.CloseTrustline(key)
		p.machine.Complete()
	})
}

// ClickCancel backs out of an armed close without closing the line.
func (p *EdgePopup) ClickCancel() {
	p.confirm.Disarm()
}

// Rendered is a popup ready to blit: placement, content lines, and the
// tagged controls inside it.
type Rendered struct {
	Tag       string
	Placement overlay.Placement
	Lines     []string
	Buttons   []Element
}

// Render produces the popup for the current selection, or nil when
// hidden. host is the graph region the popup must stay inside.
func (p *EdgePopup) Render(host *overlay.Rect) *Rendered {
	p.confirm.Sync()
	if !p.Visible() {
		return nil
	}
	st := p.machine.Snapshot()
	line, ok := p.lookup(st.SelectedEdgeKey)
	if !ok {
		return nil
	}

	lines := []string{
		fmt.Sprintf("%s -> %s", line.From, line.To),
		fmt.Sprintf("limit   %d", line.Limit),
		fmt.Sprintf("balance %d", line.Balance),
	}

	var buttons []Element
	if p.confirm.Armed() {
		buttons = append(buttons,
			Element{Tag: TagCloseLineConfirm, Text: "[x] really close?"},
			Element{Tag: TagCloseLineCancel, Text: "[esc] keep"},
		)
	} else {
		buttons = append(buttons, Element{Tag: TagCloseLine, Text: "[x] close line"})
	}

	return &Rendered{
		Tag:       TagEdgePopup,
		Placement: overlay.Place(st.EdgeAnchor, p.footprint(lines, buttons), host),
		Lines:     lines,
		Buttons:   buttons,
	}
}

// footprint measures the popup in cells, including the button row and a
// one-cell border on each side.
func (p *EdgePopup) footprint(lines []string, buttons []Element) overlay.Size {
	w := 0
	for _, l := range lines {
		w = overlay.Max(w, runewidth.StringWidth(l))
	}
	bw := 0
	for _, b := range buttons {
		if bw > 0 {
			bw += 2
		}
		bw += runewidth.StringWidth(b.Text)
	}
	w = overlay.Max(w, bw)
	return overlay.Size{Width: w + 2, Height: len(lines) + 3}
}

func (p *EdgePopup) lookup(key string) (sim.Trustline, bool) {
	for _, t := range p.feed.Trustlines() {
		if t.Key() == key {
			return t, true
		}
	}
	return sim.Trustline{}, false
}
