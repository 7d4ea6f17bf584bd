package view

import (
	"strings"
	"testing"
	"time"

	"simview/guard"
	"simview/interact"
	"simview/overlay"
	"simview/sim"
)

// fakeBackend implements sim.Feed and sim.Actions with recorded calls.
type fakeBackend struct {
	run        sim.RunState
	lines      []sim.Trustline
	parts      []sim.Participant
	changes    chan struct{}
	payments   int
	closed     []string
	clearings  int
	cancelled  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		run: sim.RunState{Phase: sim.RunRunning},
		parts: []sim.Participant{
			{ID: "alice", Name: "alice", Balance: 100},
			{ID: "bob", Name: "bob", Balance: 200},
		},
		lines: []sim.Trustline{
			{From: "alice", To: "bob", Limit: 1000, Balance: 250},
			{From: "bob", To: "carol", Limit: 500, Balance: 10},
		},
		changes: make(chan struct{}, 1),
	}
}

func (f *fakeBackend) Run() sim.RunState                  { return f.run }
func (f *fakeBackend) Participants() []sim.Participant    { return f.parts }
func (f *fakeBackend) Trustlines() []sim.Trustline        { return f.lines }
func (f *fakeBackend) Changes() <-chan struct{}           { return f.changes }
func (f *fakeBackend) SendPayment(_, _ string, _ int64)   { f.payments++ }
func (f *fakeBackend) CloseTrustline(key string)          { f.closed = append(f.closed, key) }
func (f *fakeBackend) RunClearing(string)                 { f.clearings++ }
func (f *fakeBackend) CancelPending()                     { f.cancelled++ }

func newHarness(f *fakeBackend) (*interact.Machine, *guard.Guard) {
	m := interact.NewMachine()
	g := guard.New(m, guard.Inputs{
		Busy:            func() bool { return f.run.Busy },
		Cancelling:      func() bool { return f.run.Cancelling },
		ActionsDisabled: func() bool { return f.run.ActionsDisabled },
		RunTerminal:     func() bool { return f.run.Terminal() },
	})
	return m, g
}

func TestControlsEnabledWhenIdle(t *testing.T) {
	f := newFakeBackend()
	m, g := newHarness(f)
	c := NewControls(g, m, f)

	for _, el := range c.Render() {
		if el.Disabled {
			t.Errorf("%s should be enabled when idle and running", el.Tag)
		}
		if strings.Contains(el.Title, "wait") {
			t.Errorf("%s has lock title %q in idle state", el.Tag, el.Title)
		}
	}
	hud := NewHUD(g, m)
	if hints := hud.Hints(f.run); len(hints) != 0 {
		t.Errorf("expected no hints when idle, got %v", hints)
	}
}

func TestControlsDisabledWhileBusy(t *testing.T) {
	f := newFakeBackend()
	f.run.Busy = true
	m, g := newHarness(f)
	c := NewControls(g, m, f)

	for _, el := range c.Render() {
		if !el.Disabled {
			t.Errorf("%s should be disabled while busy", el.Tag)
		}
		if !strings.Contains(el.Title, "in progress") {
			t.Errorf("%s title = %q, want operation-in-progress text", el.Tag, el.Title)
		}
	}

	// Clicks while busy never reach the machine or the backend.
	c.Click(TagPaymentStart)
	c.Click(TagTrustlineStart)
	c.Click(TagClearingStart)
	if !m.IsIdle() {
		t.Error("click while busy must not start a flow")
	}

	hud := NewHUD(g, m)
	hints := hud.Hints(f.run)
	if len(hints) != 1 || hints[0].Tag != TagBusyHint {
		t.Errorf("expected busy hint, got %v", hints)
	}
}

func TestCancellingHint(t *testing.T) {
	f := newFakeBackend()
	f.run.Busy = true
	f.run.Cancelling = true
	m, g := newHarness(f)

	if title := g.Title("x"); !strings.Contains(title, "Cancelling") {
		t.Errorf("title = %q, want cancelling text", title)
	}
	hud := NewHUD(g, m)
	hints := hud.Hints(f.run)
	if len(hints) != 1 || hints[0].Tag != TagBusyHint {
		t.Fatalf("expected busy hint, got %v", hints)
	}
	if !strings.Contains(hints[0].Text, "Cancelling") {
		t.Errorf("hint = %q, want cancelling text", hints[0].Text)
	}
}

func TestControlsLockedDuringFlow(t *testing.T) {
	f := newFakeBackend()
	m, g := newHarness(f)
	c := NewControls(g, m, f)

	c.Click(TagPaymentStart)
	if m.Phase() != interact.PhasePickPaymentFrom {
		t.Fatalf("phase = %v after payment start", m.Phase())
	}

	// All three controls now disabled with the flow-active title.
	for _, el := range c.Render() {
		if !el.Disabled {
			t.Errorf("%s should be disabled during a flow", el.Tag)
		}
		if !strings.Contains(el.Title, "Cancel") {
			t.Errorf("%s title = %q, want cancel-current-action text", el.Tag, el.Title)
		}
	}

	// Clicking again is a silent no-op; the phase is unchanged.
	c.Click(TagClearingStart)
	if m.Phase() != interact.PhasePickPaymentFrom {
		t.Errorf("phase moved to %v on a locked click", m.Phase())
	}

	hud := NewHUD(g, m)
	hints := hud.Hints(f.run)
	if len(hints) != 1 || hints[0].Tag != TagLockedHint {
		t.Errorf("expected locked hint, got %v", hints)
	}
}

func TestTerminalRunLocksControls(t *testing.T) {
	f := newFakeBackend()
	f.run.Phase = sim.RunStopped
	m, g := newHarness(f)
	c := NewControls(g, m, f)

	c.Click(TagPaymentStart)
	if !m.IsIdle() {
		t.Error("start must be refused while the run is stopped")
	}
	for _, el := range c.Render() {
		if !strings.Contains(el.Title, "start a run") {
			t.Errorf("%s title = %q", el.Tag, el.Title)
		}
	}
}

func TestCompletePaymentDispatchesOnce(t *testing.T) {
	f := newFakeBackend()
	m, g := newHarness(f)
	c := NewControls(g, m, f)

	c.Click(TagPaymentStart)
	m.PickParticipant("alice")
	m.PickParticipant("bob")
	c.CompletePayment(100)

	if f.payments != 1 {
		t.Errorf("payments = %d, want 1", f.payments)
	}
	if !m.IsIdle() {
		t.Error("machine should return to idle after dispatch")
	}

	// A second complete without a flow is a no-op.
	c.CompletePayment(100)
	if f.payments != 1 {
		t.Errorf("payments = %d after stray complete, want 1", f.payments)
	}
}

func TestEdgePopupLifecycle(t *testing.T) {
	f := newFakeBackend()
	m, _ := newHarness(f)
	p := NewEdgePopup(m, f, f)

	if p.Visible() {
		t.Error("popup visible before any selection")
	}
	if r := p.Render(&overlay.Rect{Width: 80, Height: 24}); r != nil {
		t.Error("hidden popup must render nil")
	}

	anchor := &overlay.Anchor{Space: overlay.SpaceHost, X: 10, Y: 5}
	if !m.BeginTrustline("alice->bob", anchor) {
		t.Fatal("BeginTrustline refused from idle")
	}
	r := p.Render(&overlay.Rect{Width: 80, Height: 24})
	if r == nil {
		t.Fatal("popup hidden with an edge selected")
	}
	if r.Tag != TagEdgePopup {
		t.Errorf("popup tag = %q", r.Tag)
	}
	if len(r.Buttons) != 1 || r.Buttons[0].Tag != TagCloseLine {
		t.Fatalf("expected single close control, got %v", r.Buttons)
	}

	// First activation arms; the control switches to its confirm/cancel
	// variants and nothing is closed yet.
	p.ClickClose()
	if len(f.closed) != 0 {
		t.Fatal("close fired on first activation")
	}
	r = p.Render(&overlay.Rect{Width: 80, Height: 24})
	if len(r.Buttons) != 2 || r.Buttons[0].Tag != TagCloseLineConfirm || r.Buttons[1].Tag != TagCloseLineCancel {
		t.Fatalf("expected confirm/cancel variants, got %v", r.Buttons)
	}

	// Second activation closes the line and ends the flow.
	p.ClickClose()
	if len(f.closed) != 1 || f.closed[0] != "alice->bob" {
		t.Fatalf("closed = %v", f.closed)
	}
	if !m.IsIdle() {
		t.Error("flow should complete after close")
	}
}

func TestEdgePopupDisarmOnSubjectChange(t *testing.T) {
	f := newFakeBackend()
	m, _ := newHarness(f)
	p := NewEdgePopup(m, f, f)

	m.BeginTrustline("alice->bob", nil)
	p.ClickClose()
	if !p.Armed() {
		t.Fatal("expected armed after first activation")
	}

	// The subject changes mid-flow; the armed close must not carry over.
	m.SelectEdge("bob->carol", nil)
	p.Sync()
	if p.Armed() {
		t.Fatal("armed survived a subject change")
	}

	// The next activation arms for the new edge instead of closing it.
	p.ClickClose()
	if len(f.closed) != 0 {
		t.Fatalf("closed = %v, want none", f.closed)
	}
}

func TestEdgePopupDisarmOnBusyAndCancel(t *testing.T) {
	f := newFakeBackend()
	m, _ := newHarness(f)
	p := NewEdgePopup(m, f, f)

	m.BeginTrustline("alice->bob", nil)
	p.ClickClose()

	f.run.Busy = true
	p.Sync()
	if p.Armed() {
		t.Error("armed survived the backend going busy")
	}

	f.run.Busy = false
	p.ClickClose()
	if !p.Armed() {
		t.Fatal("expected re-arm")
	}
	m.Cancel()
	if p.Armed() {
		t.Error("armed survived flow cancellation")
	}
}

func TestEdgePopupClickCancelKeepsLine(t *testing.T) {
	f := newFakeBackend()
	m, _ := newHarness(f)
	p := NewEdgePopup(m, f, f)

	m.BeginTrustline("alice->bob", nil)
	p.ClickClose()
	p.ClickCancel()
	if p.Armed() {
		t.Error("cancel variant must disarm")
	}
	if len(f.closed) != 0 {
		t.Errorf("closed = %v, want none", f.closed)
	}
	if m.Phase() != interact.PhaseEditTrustline {
		t.Error("backing out of the arm must not end the flow")
	}
}

func TestEdgePopupPlacementStaysOnScreen(t *testing.T) {
	f := newFakeBackend()
	m, _ := newHarness(f)
	p := NewEdgePopup(m, f, f)

	host := &overlay.Rect{Width: 80, Height: 24}
	m.BeginTrustline("alice->bob", &overlay.Anchor{Space: overlay.SpaceHost, X: 500, Y: 500})
	r := p.Render(host)
	if r == nil {
		t.Fatal("popup hidden")
	}
	if r.Placement.Left < overlay.Pad || r.Placement.Top < overlay.Pad {
		t.Errorf("placement %+v escapes the pad", r.Placement)
	}
	if r.Placement.Left > host.Width-overlay.Pad || r.Placement.Top > host.Height-overlay.Pad {
		t.Errorf("placement %+v outside the host", r.Placement)
	}
}

func TestNodePopup(t *testing.T) {
	f := newFakeBackend()
	p := NewNodePopup(f)

	if r := p.Render("nobody", nil, nil); r != nil {
		t.Error("unknown participant should render nil")
	}
	r := p.Render("alice", &overlay.Anchor{Space: overlay.SpaceHost, X: 2, Y: 2}, &overlay.Rect{Width: 80, Height: 24})
	if r == nil {
		t.Fatal("popup hidden for known participant")
	}
	if r.Lines[0] != "alice" {
		t.Errorf("first line = %q", r.Lines[0])
	}
}

func TestToastsExpire(t *testing.T) {
	tt := NewToasts()
	now := time.Now()
	tt.now = func() time.Time { return now }

	tt.Push("payment sent")
	tt.Push("clearing done")
	if got := tt.Active(); len(got) != 2 {
		t.Fatalf("active = %d, want 2", len(got))
	}

	now = now.Add(toastTTL + time.Second)
	if got := tt.Active(); len(got) != 0 {
		t.Fatalf("active = %d after expiry, want 0", len(got))
	}
}
