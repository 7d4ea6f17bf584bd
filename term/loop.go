package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"simview/config"
	"simview/guard"
	"simview/interact"
	"simview/logger"
	"simview/overlay"
	"simview/sim"
	"simview/view"
)

// paymentAmount is the fixed amount sent per demo payment. A real deploy
// gets the amount from a form; the form is not part of this view yet.
// TODO: replace with an amount prompt once the input widget lands.
const paymentAmount = 100

// App wires the interact core, the view components, and the screen.
type App struct {
	screen  tcell.Screen
	styles  Styles
	machine *interact.Machine
	guard   *guard.Guard
	feed    sim.Feed
	actions sim.Actions

	hud      *view.HUD
	controls *view.Controls
	edge     *view.EdgePopup
	node     *view.NodePopup
	toasts   *view.Toasts

	cursor   int // Row cursor in whichever list the current phase picks from
	showNode bool
	quit     bool
}

// NewApp builds the application over a backend feed and action layer.
func NewApp(cfg *config.Config, feed sim.Feed, actions sim.Actions) *App {
	machine := interact.NewMachine()
	g := guard.New(machine, guard.Inputs{
		Busy:            func() bool { return feed.Run().Busy },
		Cancelling:      func() bool { return feed.Run().Cancelling },
		ActionsDisabled: func() bool { return feed.Run().ActionsDisabled },
		RunTerminal:     func() bool { return feed.Run().Terminal() },
	})
	a := &App{
		styles:   NewStyles(cfg.Theme),
		machine:  machine,
		guard:    g,
		feed:     feed,
		actions:  actions,
		hud:      view.NewHUD(g, machine),
		controls: view.NewControls(g, machine, actions),
		edge:     view.NewEdgePopup(machine, feed, actions),
		node:     view.NewNodePopup(feed),
		toasts:   view.NewToasts(),
	}
	machine.OnCancel(func() {
		a.toasts.Push("action cancelled")
	})
	return a
}

// Run starts the screen loop and blocks until quit.
func (a *App) Run() error {
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("failed to setup terminal: %w", err)
	}
	a.screen = screen
	defer screen.Fini()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()

	for !a.quit {
		// One recomputation cycle per loop turn: disarm rules see every
		// upstream change before the next input is handled.
		a.edge.Sync()
		a.render()

		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleEvent(ev)
		case <-a.feed.Changes():
		case <-tick.C:
		}
	}
	return nil
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.handleEscape()
	case tcell.KeyCtrlC:
		a.quit = true
	case tcell.KeyUp:
		a.moveCursor(-1)
	case tcell.KeyDown:
		a.moveCursor(1)
	case tcell.KeyEnter:
		a.pick()
	case tcell.KeyRune:
		a.handleRune(ev.Rune())
	}
}

func (a *App) handleRune(r rune) {
	switch r {
	case 'q':
		a.quit = true
	case 'p':
		a.controls.Click(view.TagPaymentStart)
	case 't':
		a.controls.Click(view.TagTrustlineStart)
	case 'c':
		a.controls.Click(view.TagClearingStart)
	case 'x':
		if a.machine.Phase() == interact.PhaseEditTrustline {
			wasArmed := a.edge.Armed()
			a.edge.ClickClose()
			if wasArmed && !a.edge.Armed() {
				a.toasts.Push("trustline closed")
			}
		}
	case 'n':
		a.showNode = !a.showNode
	case 'k':
		a.moveCursor(-1)
	case 'j':
		a.moveCursor(1)
	}
}

// handleEscape is the single cancellation entry point: it backs out of an
// armed confirmation first, then cancels the flow, requesting backend
// cancellation when an action is still in flight.
func (a *App) handleEscape() {
	if a.edge.Armed() {
		a.edge.ClickCancel()
		return
	}
	if a.machine.IsIdle() {
		return
	}
	if a.feed.Run().Busy {
		a.actions.CancelPending()
	}
	logger.Debug("flow cancelled", "phase", a.machine.Phase().String())
	a.machine.Cancel()
}

func (a *App) moveCursor(delta int) {
	n := a.cursorRange()
	if n == 0 {
		return
	}
	a.cursor = (a.cursor + delta + n) % n
}

// cursorRange is the length of the list the current phase picks from.
func (a *App) cursorRange() int {
	if a.machine.Phase() == interact.PhaseEditTrustline {
		return len(a.feed.Trustlines())
	}
	return len(a.feed.Participants())
}

// pick applies the cursor selection for the current phase.
func (a *App) pick() {
	switch a.machine.Phase() {
	case interact.PhasePickPaymentFrom:
		if pid, ok := a.participantAt(a.cursor); ok {
			a.machine.PickParticipant(pid)
		}
	case interact.PhasePickPaymentTo:
		if pid, ok := a.participantAt(a.cursor); ok {
			a.machine.PickParticipant(pid)
			a.controls.CompletePayment(paymentAmount)
			a.toasts.Push(fmt.Sprintf("payment of %d sent", paymentAmount))
		}
	case interact.PhasePickClearingTarget:
		if pid, ok := a.participantAt(a.cursor); ok {
			a.machine.PickParticipant(pid)
			a.controls.CompleteClearing()
			a.toasts.Push("clearing started at " + pid)
		}
	case interact.PhaseEditTrustline:
		lines := a.feed.Trustlines()
		if a.cursor < len(lines) {
			anchor := &overlay.Anchor{
				Space: overlay.SpaceHost,
				X:     listLeft + 18,
				Y:     listTop + a.cursor,
			}
			a.machine.SelectEdge(lines[a.cursor].Key(), anchor)
		}
	}
}

func (a *App) participantAt(i int) (string, bool) {
	parts := a.feed.Participants()
	if i < 0 || i >= len(parts) {
		return "", false
	}
	return parts[i].ID, true
}
