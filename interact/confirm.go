package interact

// DisarmRule declares a condition under which an armed confirmation
// resets. Source is read on every Sync; if When is nil, any change in the
// source's value disarms, otherwise disarming happens only while When
// holds for the current value.
type DisarmRule struct {
	Source func() any
	When   func(any) bool
}

// Confirm is a reusable two-step gate for destructive actions: the first
// activation arms it, the second executes. Any state change matched by a
// disarm rule in between resets the gate, so a confirm for one subject can
// never apply to another.
type Confirm struct {
	armed bool
	rules []DisarmRule
	last  []any
}

// NewConfirm builds a gate with the given disarm rules. Rules with a nil
// When track value changes, so Source must return a value that changes
// whenever the subject changes (a derived key, not a pointer).
func NewConfirm(rules ...DisarmRule) *Confirm {
	c := &Confirm{rules: rules, last: make([]any, len(rules))}
	for i, r := range rules {
		c.last[i] = r.Source()
	}
	return c
}

// Armed reports whether one activation has been recorded.
func (c *Confirm) Armed() bool {
	return c.armed
}

// Disarm unconditionally resets the gate. Idempotent.
func (c *Confirm) Disarm() {
	c.armed = false
}

// ConfirmOrArm arms the gate on the first call and runs action on the
// second, resetting afterwards. Sync runs first so a stale arm never
// carries across a subject or visibility change.
func (c *Confirm) ConfirmOrArm(action func()) {
	c.Sync()
	if !c.armed {
		c.armed = true
		return
	}
	c.armed = false
	action()
}

// Sync evaluates the disarm rules against their sources' current values.
// Call it on every recomputation cycle (and before reading Armed when the
// sources may have moved since the last cycle).
func (c *Confirm) Sync() {
	for i, r := range c.rules {
		v := r.Source()
		if r.When != nil {
			if r.When(v) {
				c.armed = false
			}
		} else if v != c.last[i] {
			c.armed = false
		}
		c.last[i] = v
	}
}
