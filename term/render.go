package term

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"simview/interact"
	"simview/overlay"
	"simview/view"
)

// Layout constants, in cells from the screen origin.
const (
	hudRow      = 0
	hintRow     = 1
	controlsRow = 2
	listTop     = 4
	listLeft    = 1
)

func (a *App) render() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	run := a.feed.Run()

	drawText(s, listLeft, hudRow, a.styles.Accent, a.hud.StatusLine(run))
	for _, hint := range a.hud.Hints(run) {
		drawText(s, listLeft, hintRow, a.styles.Hint, hint.Text)
	}

	x := listLeft
	for _, el := range a.controls.Render() {
		style := a.styles.Base
		if el.Disabled {
			style = a.styles.Disabled
		}
		drawText(s, x, controlsRow, style, el.Text)
		x += len(el.Text) + 3
	}

	a.renderLists()

	// Toasts stack up from the bottom row.
	active := a.toasts.Active()
	row := h - 1
	for i := len(active) - 1; i >= 0 && row > listTop; i-- {
		drawText(s, listLeft, row, a.styles.Accent, active[i].Text)
		row--
	}

	a.renderPopups(w, h)
	s.Show()
}

// renderLists draws the participant and trustline tables. Which list the
// cursor lives in depends on the current phase.
func (a *App) renderLists() {
	s := a.screen
	picking := a.machine.FlowActive()
	onTrustlines := a.machine.Phase() == interact.PhaseEditTrustline

	for i, p := range a.feed.Participants() {
		style := a.styles.Base
		if picking && !onTrustlines && i == a.cursor {
			style = a.styles.Accent
		}
		drawText(s, listLeft, listTop+i, style,
			fmt.Sprintf("%-8s %6d", p.Name, p.Balance))
	}

	col := listLeft + 18
	for i, t := range a.feed.Trustlines() {
		style := a.styles.Base
		if onTrustlines && i == a.cursor {
			style = a.styles.Accent
		}
		drawText(s, col, listTop+i, style,
			fmt.Sprintf("%-14s %5d/%-5d", t.Key(), t.Balance, t.Limit))
	}
}

func (a *App) renderPopups(w, h int) {
	host := &overlay.Rect{X: 0, Y: 0, Width: w, Height: h}

	if rendered := a.edge.Render(host); rendered != nil {
		a.blitPopup(rendered)
	}
	if a.showNode {
		if pid, ok := a.participantAt(a.cursor); ok {
			anchor := &overlay.Anchor{Space: overlay.SpaceHost, X: listLeft, Y: listTop + a.cursor}
			if rendered := a.node.Render(pid, anchor, host); rendered != nil {
				a.blitPopup(rendered)
			}
		}
	}
}

// blitPopup draws a rendered popup at its resolved placement: border,
// content lines, then the button row. Armed close buttons render in the
// armed style so the destructive step is unmistakable.
func (a *App) blitPopup(p *view.Rendered) {
	s := a.screen
	width := 2
	for _, l := range p.Lines {
		if lw := runewidth.StringWidth(l) + 2; lw > width {
			width = lw
		}
	}
	bw := 0
	for _, b := range p.Buttons {
		if bw > 0 {
			bw += 2
		}
		bw += runewidth.StringWidth(b.Text)
	}
	if bw+2 > width {
		width = bw + 2
	}
	height := len(p.Lines) + 2
	if len(p.Buttons) > 0 {
		height++
	}

	x, y := p.Placement.Left, p.Placement.Top
	drawBox(s, x, y, width, height, a.styles.Popup)
	for i, l := range p.Lines {
		drawText(s, x+1, y+1+i, a.styles.Popup, l)
	}
	bx := x + 1
	for _, b := range p.Buttons {
		style := a.styles.Popup
		if b.Tag == view.TagCloseLineConfirm {
			style = a.styles.Armed
		}
		drawText(s, bx, y+height-2, style, b.Text)
		bx += runewidth.StringWidth(b.Text) + 2
	}
}
