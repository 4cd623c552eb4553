package shell

// BreakpointPx is the viewport width below which the mobile layout applies.
const BreakpointPx = 768

// Visual is what the sidebar looks like for a given state. Exactly one
// visual applies at a time; rendering never inspects raw inputs.
type Visual string

const (
	// VisualHidden: mobile only, sidebar fully off-canvas.
	VisualHidden Visual = "hidden"
	// VisualCollapsed: desktop icon rail, labels hidden.
	VisualCollapsed Visual = "collapsed"
	// VisualExpanded: full sidebar, pinned open (desktop) or opened (mobile).
	VisualExpanded Visual = "expanded"
	// VisualHoverExpanded: desktop preview while the cursor is over the rail.
	VisualHoverExpanded Visual = "hover-expanded"
)

// Sidebar holds the three inputs that determine the sidebar's visual.
// All transitions are pure: methods return the next state and never
// mutate the receiver.
type Sidebar struct {
	ViewportWidth int
	Pinned        bool
	Hovering      bool
}

// IsMobile returns true when the viewport is below the breakpoint.
func (s Sidebar) IsMobile() bool {
	return s.ViewportWidth < BreakpointPx
}

// Visual maps the current inputs to the single applicable visual.
// Mobile ignores hovering entirely: there is no rail to hover.
func (s Sidebar) Visual() Visual {
	if s.IsMobile() {
		if s.Pinned {
			return VisualExpanded
		}
		return VisualHidden
	}
	if s.Pinned {
		return VisualExpanded
	}
	if s.Hovering {
		return VisualHoverExpanded
	}
	return VisualCollapsed
}

// Toggle flips the pinned state. On mobile this opens or closes the
// sidebar; on desktop it pins or unpins the expanded rail.
func (s Sidebar) Toggle() Sidebar {
	s.Pinned = !s.Pinned
	return s
}

// Hover updates the hover input. It has no visual effect on mobile.
func (s Sidebar) Hover(hovering bool) Sidebar {
	s.Hovering = hovering
	return s
}

// Resize applies a new viewport width. Crossing the breakpoint in either
// direction resets pinned and hovering so the sidebar lands in its
// default visual for the new layout.
func (s Sidebar) Resize(width int) Sidebar {
	wasMobile := s.IsMobile()
	s.ViewportWidth = width
	if s.IsMobile() != wasMobile {
		s.Pinned = false
		s.Hovering = false
	}
	return s
}

// Navigate applies a navigation event. On mobile the sidebar closes so
// the new page is visible; desktop state is unaffected.
func (s Sidebar) Navigate() Sidebar {
	if s.IsMobile() {
		s.Pinned = false
	}
	return s
}

// ClickOutside closes an open mobile sidebar. Desktop ignores it: the
// rail is always on screen.
func (s Sidebar) ClickOutside() Sidebar {
	if s.IsMobile() {
		s.Pinned = false
	}
	return s
}
