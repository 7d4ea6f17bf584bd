package sim

import (
	"math/rand"
	"sync"
	"time"
)

// Demo is an in-memory simulation backend so the view runs without a live
// backend. Mutating actions complete after a short fake latency; a pending
// action can be cancelled, which resolves it without applying the effect.
type Demo struct {
	mu           sync.Mutex
	run          RunState
	participants []Participant
	trustlines   []Trustline
	changes      chan struct{}
	pendingStop  chan struct{}
	latency      time.Duration
}

// NewDemo seeds a small credit network. The seed only affects the
// generated balances, so demos are reproducible.
func NewDemo(seed int64) *Demo {
	rng := rand.New(rand.NewSource(seed))
	d := &Demo{
		run:     RunState{Phase: RunRunning},
		changes: make(chan struct{}, 1),
		latency: 600 * time.Millisecond,
	}
	names := []string{"alice", "bob", "carol", "dave", "erin"}
	for _, n := range names {
		d.participants = append(d.participants, Participant{
			ID:      n,
			Name:    n,
			Balance: rng.Int63n(5000),
		})
	}
	for i, n := range names {
		next := names[(i+1)%len(names)]
		d.trustlines = append(d.trustlines, Trustline{
			From:    n,
			To:      next,
			Limit:   1000 + rng.Int63n(4000),
			Balance: rng.Int63n(1000),
		})
	}
	return d
}

// SetLatency overrides the fake action latency. Used by tests.
func (d *Demo) SetLatency(dur time.Duration) {
	d.mu.Lock()
	d.latency = dur
	d.mu.Unlock()
}

// StopRun moves the run to a terminal phase.
func (d *Demo) StopRun() {
	d.mu.Lock()
	d.run.Phase = RunStopped
	d.mu.Unlock()
	d.notify()
}

// SetActionsDisabled toggles the backend policy flag.
func (d *Demo) SetActionsDisabled(disabled bool) {
	d.mu.Lock()
	d.run.ActionsDisabled = disabled
	d.mu.Unlock()
	d.notify()
}

// Run returns the current run signals.
func (d *Demo) Run() RunState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.run
}

// Participants returns a snapshot of the network's participants.
func (d *Demo) Participants() []Participant {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Participant, len(d.participants))
	copy(out, d.participants)
	return out
}

// Trustlines returns a snapshot of the network's trustlines.
func (d *Demo) Trustlines() []Trustline {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Trustline, len(d.trustlines))
	copy(out, d.trustlines)
	return out
}

// Changes delivers a token after every state change. The channel has a
// one-slot buffer; coalesced notifications are fine for a render loop.
func (d *Demo) Changes() <-chan struct{} {
	return d.changes
}

// SendPayment moves amount along the edge from -> to after the fake
// latency, if a trustline exists with enough headroom.
func (d *Demo) SendPayment(from, to string, amount int64) {
	d.start(func() {
		for i := range d.trustlines {
			t := &d.trustlines[i]
			if t.From == from && t.To == to && t.Balance+amount <= t.Limit {
				t.Balance += amount
				return
			}
		}
	})
}

// CloseTrustline removes the edge with the given key.
func (d *Demo) CloseTrustline(edgeKey string) {
	d.start(func() {
		for i, t := range d.trustlines {
			if t.Key() == edgeKey {
				d.trustlines = append(d.trustlines[:i], d.trustlines[i+1:]...)
				return
			}
		}
	})
}

// RunClearing nets out balances on every edge touching the target.
func (d *Demo) RunClearing(target string) {
	d.start(func() {
		for i := range d.trustlines {
			t := &d.trustlines[i]
			if t.From == target || t.To == target {
				t.Balance = 0
			}
		}
	})
}

// CancelPending requests cancellation of the in-flight action. The action
// still resolves after its latency, but its effect is dropped.
func (d *Demo) CancelPending() {
	d.mu.Lock()
	if !d.run.Busy || d.run.Cancelling {
		d.mu.Unlock()
		return
	}
	d.run.Cancelling = true
	close(d.pendingStop)
	d.mu.Unlock()
	d.notify()
}

// start marks the run busy and applies effect after the latency, unless
// cancelled first. A second action while busy is dropped; the dispatch
// guard prevents that path in normal operation.
func (d *Demo) start(effect func()) {
	d.mu.Lock()
	if d.run.Busy {
		d.mu.Unlock()
		return
	}
	d.run.Busy = true
	d.run.Cancelling = false
	stop := make(chan struct{})
	d.pendingStop = stop
	latency := d.latency
	d.mu.Unlock()
	d.notify()

	go func() {
		cancelled := false
		select {
		case <-time.After(latency):
		case <-stop:
			cancelled = true
			// The backend still takes a moment to wind the action down.
			time.Sleep(latency / 4)
		}
		d.mu.Lock()
		if !cancelled {
			effect()
		}
		d.run.Busy = false
		d.run.Cancelling = false
		d.mu.Unlock()
		d.notify()
	}()
}

func (d *Demo) notify() {
	select {
	case d.changes <- struct{}{}:
	default:
	}
}
