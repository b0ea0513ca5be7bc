package vantage

import "math"

// Section is one logical content section supplied by the content-positioning
// layer: a named grid cell with a priority. The engine only ever sees grid
// coordinates; what the section renders is none of its business.
type Section struct {
	ID       string
	Name     string
	GridX    int
	GridY    int
	Priority int
}

// SectionRegistry resolves sections to canvas positions for the active
// layout. It doubles as the match-cut anchor resolver and the announcement
// location source.
type SectionRegistry struct {
	layout   GridLayout
	canvas   Rect
	sections map[string]Section
	order    []string // insertion order, for deterministic iteration
}

// NewSectionRegistry creates an empty registry for a layout and canvas rect.
func NewSectionRegistry(layout GridLayout, canvas Rect) *SectionRegistry {
	return &SectionRegistry{
		layout:   layout,
		canvas:   canvas,
		sections: make(map[string]Section),
	}
}

// Add registers or replaces a section.
func (r *SectionRegistry) Add(s Section) {
	if _, exists := r.sections[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.sections[s.ID] = s
}

// Get returns the section with the given ID.
func (r *SectionRegistry) Get(id string) (Section, bool) {
	s, ok := r.sections[id]
	return s, ok
}

// Len returns the number of registered sections.
func (r *SectionRegistry) Len() int {
	return len(r.sections)
}

// All returns every registered section in insertion order.
func (r *SectionRegistry) All() []Section {
	out := make([]Section, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sections[id])
	}
	return out
}

// PositionOf resolves a section to its centered canvas position.
func (r *SectionRegistry) PositionOf(id string) (Position, bool) {
	s, ok := r.sections[id]
	if !ok {
		return Position{}, false
	}
	return GridToCanvas(s.GridX, s.GridY, r.layout, r.canvas), true
}

// CellRect returns the canvas rectangle a section's grid cell covers.
// Circular layouts get a square of one ring radius centered on the cell
// point. Out-of-range cells clamp like GridToCanvas.
func (r *SectionRegistry) CellRect(id string) (Rect, bool) {
	s, ok := r.sections[id]
	if !ok {
		return Rect{}, false
	}
	if r.layout == LayoutCircular {
		center := GridToCanvas(s.GridX, s.GridY, r.layout, r.canvas)
		side := math.Min(r.canvas.Width, r.canvas.Height) / 3
		return Rect{X: center.X - side/2, Y: center.Y - side/2, Width: side, Height: side}, true
	}

	rows, cols := r.layout.Dimensions()
	gx, gy := s.GridX, s.GridY
	if gx < 0 {
		gx = 0
	}
	if gx >= cols {
		gx = cols - 1
	}
	if gy < 0 {
		gy = 0
	}
	if gy >= rows {
		gy = rows - 1
	}
	cellW := r.canvas.Width / float64(cols)
	cellH := r.canvas.Height / float64(rows)
	return Rect{
		X:      r.canvas.X + float64(gx)*cellW,
		Y:      r.canvas.Y + float64(gy)*cellH,
		Width:  cellW,
		Height: cellH,
	}, true
}

// SectionAt returns the section whose grid cell contains the canvas point.
func (r *SectionRegistry) SectionAt(x, y float64) (Section, bool) {
	for _, id := range r.order {
		if rect, ok := r.CellRect(id); ok && rect.Contains(x, y) {
			return r.sections[id], true
		}
	}
	return Section{}, false
}

// SectionsInView returns the sections whose cells intersect the view
// rectangle, in insertion order. This is the offscreen-culling primitive the
// render surface consults when the quality bundle enables culling.
func (r *SectionRegistry) SectionsInView(view Rect) []Section {
	var out []Section
	for _, id := range r.order {
		if rect, ok := r.CellRect(id); ok && rect.Intersects(view) {
			out = append(out, r.sections[id])
		}
	}
	return out
}

// AnchorPosition implements AnchorResolver: match-cut anchors are section IDs.
func (r *SectionRegistry) AnchorPosition(sectionID string) (Position, bool) {
	return r.PositionOf(sectionID)
}

// HomePosition returns the position of the highest-priority section, or the
// canvas center when the registry is empty. Used by reset-view.
func (r *SectionRegistry) HomePosition() Position {
	best := ""
	bestPriority := math.MinInt
	for _, id := range r.order {
		if s := r.sections[id]; s.Priority > bestPriority {
			bestPriority = s.Priority
			best = id
		}
	}
	if best == "" {
		return Position{
			X:     r.canvas.X + r.canvas.Width/2,
			Y:     r.canvas.Y + r.canvas.Height/2,
			Scale: 1.0,
		}
	}
	pos, _ := r.PositionOf(best)
	return pos
}

// Nearest returns the section whose canvas position is closest to pos.
func (r *SectionRegistry) Nearest(pos Position) (Section, bool) {
	var nearest Section
	found := false
	bestDist := math.MaxFloat64
	for _, id := range r.order {
		s := r.sections[id]
		sp, _ := r.PositionOf(id)
		d := Distance(Vec2{X: pos.X, Y: pos.Y}, Vec2{X: sp.X, Y: sp.Y})
		if d < bestDist {
			bestDist = d
			nearest = s
			found = true
		}
	}
	return nearest, found
}

// DescribeLocation implements LocationDescriber: names the nearest section
// and the canvas quadrant the camera currently views.
func (r *SectionRegistry) DescribeLocation(pos Position) (string, bool) {
	s, ok := r.Nearest(pos)
	if !ok {
		return "", false
	}
	return "Currently viewing " + s.Name + " section, " + r.quadrant(pos) + " of canvas", true
}

func (r *SectionRegistry) quadrant(pos Position) string {
	cx := r.canvas.X + r.canvas.Width/2
	cy := r.canvas.Y + r.canvas.Height/2

	var v, h string
	if pos.Y < cy {
		v = "top"
	} else {
		v = "bottom"
	}
	if pos.X < cx {
		h = "left"
	} else {
		h = "right"
	}
	return v + "-" + h
}
