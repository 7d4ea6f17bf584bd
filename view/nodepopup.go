package view

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"simview/overlay"
	"simview/sim"
)

// NodePopup shows participant details next to an anchor. It has no
// destructive actions, so there is no confirmation to manage; it is pure
// render glue.
type NodePopup struct {
	feed sim.Feed
}

// NewNodePopup builds the participant detail popup.
func NewNodePopup(feed sim.Feed) *NodePopup {
	return &NodePopup{feed: feed}
}

// Render produces the popup for the given participant, or nil when the
// participant is unknown.
func (p *NodePopup) Render(pid string, anchor *overlay.Anchor, host *overlay.Rect) *Rendered {
	var found *sim.Participant
	for _, part := range p.feed.Participants() {
		if part.ID == pid {
			found = &part
			break
		}
	}
	if found == nil {
		return nil
	}

	degree := 0
	for _, t := range p.feed.Trustlines() {
		if t.From == pid || t.To == pid {
			degree++
		}
	}

	lines := []string{
		found.Name,
		fmt.Sprintf("balance %d", found.Balance),
		fmt.Sprintf("lines   %d", degree),
	}
	w := 0
	for _, l := range lines {
		w = overlay.Max(w, runewidth.StringWidth(l))
	}
	size := overlay.Size{Width: w + 2, Height: len(lines) + 2}

	return &Rendered{
		Tag:       TagNodePopup,
		Placement: overlay.Place(anchor, size, host),
		Lines:     lines,
	}
}
