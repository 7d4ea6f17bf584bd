// Package overlay positions transient popups relative to an anchor point,
// keeping the full popup footprint inside the visible viewport.
package overlay

// Space identifies the coordinate space an anchor was captured in.
type Space int

const (
	SpaceUnknown  Space = iota // Caller could not tag the anchor; infer
	SpaceHost                  // Relative to the host region's origin
	SpaceViewport              // Absolute screen coordinates
)

// String returns the space name for display.
func (s Space) String() string {
	switch s {
	case SpaceHost:
		return "host"
	case SpaceViewport:
		return "viewport"
	default:
		return "unknown"
	}
}

// Anchor is a 2D point associated with a UI event, in terminal cells.
type Anchor struct {
	Space Space
	X, Y  int
}

// Size is a popup footprint in cells.
type Size struct {
	Width, Height int
}

// Rect is the host region's position and extent in viewport coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Placement is a resolved top-left position for a popup, in host-relative
// cells, ready to apply directly.
type Placement struct {
	Left, Top int
}

// Placement constants, in cells. The lead keeps the popup from sitting
// exactly under the anchor; Pad is the clearance kept from every viewport
// edge.
const (
	LeadX = 2
	LeadY = 1
	Pad   = 1
)

// Minimum footprint assumed when the caller passes a zero size.
const (
	MinWidth  = 20
	MinHeight = 5
)

// DefaultPlacement is the fallback corner used when no anchor is available.
var DefaultPlacement = Placement{Left: Pad + LeadX, Top: Pad + LeadY}

// Place resolves an anchor into a clamped on-screen placement for a popup
// of the given size. A nil anchor yields DefaultPlacement. A nil or empty
// host rect disables clamping on the affected axis rather than failing.
func Place(anchor *Anchor, size Size, host *Rect) Placement {
	if anchor == nil {
		return DefaultPlacement
	}

	if size.Width < MinWidth {
		size.Width = MinWidth
	}
	if size.Height < MinHeight {
		size.Height = MinHeight
	}

	x, y := normalize(*anchor, host)

	// Lead the popup away from the anchor point.
	x += LeadX
	y += LeadY

	p := Placement{Left: x, Top: y}
	if host == nil {
		return p
	}
	p.Left = clampAxis(p.Left, size.Width, host.Width)
	p.Top = clampAxis(p.Top, size.Height, host.Height)
	return p
}

// normalize converts an anchor into host-relative coordinates. Untagged
// anchors fall back to a magnitude heuristic: values outside the host's
// local bounds are assumed to be viewport coordinates.
func normalize(a Anchor, host *Rect) (int, int) {
	switch a.Space {
	case SpaceHost:
		return a.X, a.Y
	case SpaceViewport:
		if host == nil {
			return a.X, a.Y
		}
		return a.X - host.X, a.Y - host.Y
	default:
		if host == nil || host.Width <= 0 || host.Height <= 0 {
			return a.X, a.Y
		}
		if a.X >= host.Width || a.Y >= host.Height {
			return a.X - host.X, a.Y - host.Y
		}
		return a.X, a.Y
	}
}

// clampAxis keeps [pos, pos+extent] within [Pad, limit-Pad] on one axis.
// A non-positive limit means the axis is unbounded (degraded geometry).
func clampAxis(pos, extent, limit int) int {
	if limit <= 0 {
		return pos
	}
	max := limit - extent - Pad
	if max < Pad {
		// Popup larger than the viewport; pin to the near edge.
		return Pad
	}
	return Clamp(pos, Pad, max)
}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
