package view

import "time"

// toastTTL is how long a toast stays on screen.
const toastTTL = 4 * time.Second

// Toast is a transient notification line.
type Toast struct {
	Text     string
	deadline time.Time
}

// Toasts is a fixed-order queue of auto-dismissing notifications. The
// render loop calls Active each frame; expiry needs no timers of its own.
type Toasts struct {
	items []Toast
	now   func() time.Time
}

// NewToasts builds an empty toast queue.
func NewToasts() *Toasts {
	return &Toasts{now: time.Now}
}

// Push adds a toast that dismisses itself after the standard TTL.
func (t *Toasts) Push(text string) {
	t.items = append(t.items, Toast{Text: text, deadline: t.now().Add(toastTTL)})
}

// Active drops expired toasts and returns the rest, oldest first.
func (t *Toasts) Active() []Toast {
	live := t.items[:0]
	for _, item := range t.items {
		if t.now().Before(item.deadline) {
			live = append(live, item)
		}
	}
	t.items = live
	out := make([]Toast, len(live))
	copy(out, live)
	return out
}
