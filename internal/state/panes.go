// Package state models the fixed pane layout of the browser: which panes are
// populated, their headings and summary lines, and where focus sits.
package state

// Pane identifies one of the fixed browser panes, ordered by depth.
type Pane int

const (
	PaneNamespaces Pane = iota
	PaneRepositories
	PaneTags
	PanePlatforms
	PaneLayers

	paneCount
)

// String returns the identifier used in trace events.
func (p Pane) String() string {
	switch p {
	case PaneNamespaces:
		return "namespaces"
	case PaneRepositories:
		return "repositories"
	case PaneTags:
		return "tags"
	case PanePlatforms:
		return "platforms"
	case PaneLayers:
		return "layers"
	}
	return "unknown"
}

// Title returns the heading shown while the pane is unpopulated.
func (p Pane) Title() string {
	switch p {
	case PaneNamespaces:
		return "Namespaces"
	case PaneRepositories:
		return "Images"
	case PaneTags:
		return "Tags"
	case PanePlatforms:
		return "Platforms"
	case PaneLayers:
		return "Layers"
	}
	return ""
}

// Next returns the pane one level deeper, or p itself at the bottom.
func (p Pane) Next() Pane {
	if p+1 >= paneCount {
		return p
	}
	return p + 1
}

// Prev returns the pane one level up, or p itself at the top.
func (p Pane) Prev() Pane {
	if p <= 0 {
		return p
	}
	return p - 1
}

// Panes lists all panes in depth order.
func Panes() []Pane {
	panes := make([]Pane, 0, paneCount)
	for p := PaneNamespaces; p < paneCount; p++ {
		panes = append(panes, p)
	}
	return panes
}

// View holds the displayed heading and summary of one pane.
type View struct {
	Heading   string
	Summary   string
	Populated bool
}

// Display tracks pane contents and focus. Selecting an entry populates the
// pane below; everything deeper is reset so stale results never remain
// visible next to a new selection.
type Display struct {
	views [paneCount]View
	focus Pane
}

// NewDisplay returns a display with every pane unpopulated and focus on the
// namespaces pane.
func NewDisplay() *Display {
	d := &Display{}
	for p := PaneNamespaces; p < paneCount; p++ {
		d.views[p] = View{Heading: p.Title()}
	}
	return d
}

// View returns the current view of a pane.
func (d *Display) View(p Pane) View {
	if p < 0 || p >= paneCount {
		return View{}
	}
	return d.views[p]
}

// Populate marks a pane as holding results and resets everything deeper.
func (d *Display) Populate(p Pane, heading, summary string) {
	if p < 0 || p >= paneCount {
		return
	}
	d.views[p] = View{Heading: heading, Summary: summary, Populated: true}
	d.ResetDownstream(p)
}

// Reset returns a pane to its unpopulated default.
func (d *Display) Reset(p Pane) {
	if p < 0 || p >= paneCount {
		return
	}
	d.views[p] = View{Heading: p.Title()}
	if d.focus > p || (d.focus == p && p > PaneNamespaces) {
		d.focus = p.Prev()
		for d.focus > PaneNamespaces && !d.views[d.focus].Populated {
			d.focus = d.focus.Prev()
		}
	}
}

// ResetDownstream resets every pane deeper than p.
func (d *Display) ResetDownstream(p Pane) {
	for q := p + 1; q < paneCount; q++ {
		d.views[q] = View{Heading: q.Title()}
	}
	if d.focus > p {
		d.focus = p
	}
}

// Focus returns the focused pane.
func (d *Display) Focus() Pane {
	return d.focus
}

// SetFocus moves focus to p when the pane holds results. The namespaces pane
// is always focusable.
func (d *Display) SetFocus(p Pane) bool {
	if p < 0 || p >= paneCount {
		return false
	}
	if p != PaneNamespaces && !d.views[p].Populated {
		return false
	}
	if d.focus == p {
		return false
	}
	d.focus = p
	return true
}
