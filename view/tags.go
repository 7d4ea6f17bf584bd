// Package view renders the interactive chrome around the network graph:
// heads-up bar, start controls, popups, and toasts. Components render to
// tagged elements and plain lines so tests never need a terminal; the term
// package blits them onto a screen.
package view

// Stable element tags for UI automation. These are part of the external
// contract; renaming one breaks downstream test harnesses.
const (
	TagPaymentStart     = "interact-pay-start"
	TagTrustlineStart   = "interact-trustline-start"
	TagClearingStart    = "interact-clearing-start"
	TagBusyHint         = "interact-busy-hint"
	TagLockedHint       = "interact-locked-hint"
	TagEdgePopup        = "edge-detail-popup"
	TagNodePopup        = "node-detail-popup"
	TagCloseLine        = "edge-close-line"
	TagCloseLineConfirm = "edge-close-line-confirm"
	TagCloseLineCancel  = "edge-close-line-cancel"
)

// Element is a renderable control or hint: a stable tag for automation,
// the text to draw, and the rendered disabled attribute. The disabled
// attribute is a UX affordance only; handlers re-check with the guard.
type Element struct {
	Tag      string
	Text     string
	Title    string
	Disabled bool
}
