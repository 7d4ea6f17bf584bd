package sim

import (
	"testing"
	"time"
)

// waitIdle polls until the demo backend finishes its in-flight action.
func waitIdle(t *testing.T, d *Demo) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !d.Run().Busy {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("demo backend stayed busy")
}

func findLine(d *Demo, key string) (Trustline, bool) {
	for _, l := range d.Trustlines() {
		if l.Key() == key {
			return l, true
		}
	}
	return Trustline{}, false
}

func TestDemoSeedIsReproducible(t *testing.T) {
	a := NewDemo(7)
	b := NewDemo(7)
	la := a.Trustlines()
	lb := b.Trustlines()
	if len(la) != len(lb) {
		t.Fatalf("line counts differ: %d vs %d", len(la), len(lb))
	}
	for i := range la {
		if la[i] != lb[i] {
			t.Errorf("line %d differs: %+v vs %+v", i, la[i], lb[i])
		}
	}
}

func TestDemoPaymentAppliesAfterLatency(t *testing.T) {
	d := NewDemo(1)
	d.SetLatency(5 * time.Millisecond)

	line, ok := findLine(d, "alice->bob")
	if !ok {
		t.Fatal("seed network missing alice->bob")
	}

	d.SendPayment("alice", "bob", 50)
	if !d.Run().Busy {
		t.Error("backend should be busy right after dispatch")
	}
	waitIdle(t, d)

	after, _ := findLine(d, "alice->bob")
	if after.Balance != line.Balance+50 {
		t.Errorf("balance = %d, want %d", after.Balance, line.Balance+50)
	}
}

func TestDemoSecondActionWhileBusyDropped(t *testing.T) {
	d := NewDemo(1)
	d.SetLatency(30 * time.Millisecond)

	line, _ := findLine(d, "alice->bob")
	d.SendPayment("alice", "bob", 10)
	d.SendPayment("alice", "bob", 10)
	waitIdle(t, d)

	after, _ := findLine(d, "alice->bob")
	if after.Balance != line.Balance+10 {
		t.Errorf("balance = %d, want exactly one payment applied", after.Balance)
	}
}

func TestDemoCancelDropsEffect(t *testing.T) {
	d := NewDemo(1)
	d.SetLatency(200 * time.Millisecond)

	line, _ := findLine(d, "alice->bob")
	d.SendPayment("alice", "bob", 50)
	d.CancelPending()

	run := d.Run()
	if !run.Busy || !run.Cancelling {
		t.Errorf("run = %+v, want busy and cancelling", run)
	}
	waitIdle(t, d)

	after, _ := findLine(d, "alice->bob")
	if after.Balance != line.Balance {
		t.Errorf("balance = %d, cancelled payment must not apply", after.Balance)
	}
	if d.Run().Cancelling {
		t.Error("cancelling flag should clear when the action resolves")
	}
}

func TestDemoCancelWithoutPendingIsNoop(t *testing.T) {
	d := NewDemo(1)
	d.CancelPending()
	if d.Run().Cancelling {
		t.Error("cancel with nothing pending set the cancelling flag")
	}
}

func TestDemoCloseTrustline(t *testing.T) {
	d := NewDemo(1)
	d.SetLatency(5 * time.Millisecond)

	d.CloseTrustline("alice->bob")
	waitIdle(t, d)

	if _, ok := findLine(d, "alice->bob"); ok {
		t.Error("trustline still present after close")
	}
}

func TestDemoClearingZeroesTouchingLines(t *testing.T) {
	d := NewDemo(1)
	d.SetLatency(5 * time.Millisecond)

	d.RunClearing("alice")
	waitIdle(t, d)

	for _, l := range d.Trustlines() {
		if (l.From == "alice" || l.To == "alice") && l.Balance != 0 {
			t.Errorf("line %s balance = %d after clearing", l.Key(), l.Balance)
		}
	}
}

func TestDemoChangesCoalesce(t *testing.T) {
	d := NewDemo(1)
	d.StopRun()
	d.SetActionsDisabled(true)

	select {
	case <-d.Changes():
	default:
		t.Fatal("expected a pending change token")
	}
	// The buffer holds one token; further notifies coalesce into it.
	select {
	case <-d.Changes():
		t.Fatal("expected notifications to coalesce")
	default:
	}
}
