package vantage

import "math"

// Validate clamps pos into the given constraints. It never fails: the
// returned position is always usable. The second return reports whether any
// component had to be clamped, so callers can log an out-of-bounds warning
// without treating it as an error.
func Validate(pos Position, c Constraints) (Position, bool) {
	minX := c.MinPosition.X + c.Padding
	maxX := c.MaxPosition.X - c.Padding
	minY := c.MinPosition.Y + c.Padding
	maxY := c.MaxPosition.Y - c.Padding

	// Padding larger than the range collapses it to the center.
	if minX > maxX {
		mid := (c.MinPosition.X + c.MaxPosition.X) / 2
		minX, maxX = mid, mid
	}
	if minY > maxY {
		mid := (c.MinPosition.Y + c.MaxPosition.Y) / 2
		minY, maxY = mid, mid
	}

	out := Position{
		X:     clamp(pos.X, minX, maxX),
		Y:     clamp(pos.Y, minY, maxY),
		Scale: clamp(pos.Scale, c.MinScale, c.MaxScale),
	}
	clamped := out != pos
	return out, clamped
}

// GridToCanvas maps a grid cell to the canvas position centered on that cell.
// Rectangular layouts divide the canvas into equal cells; the circular layout
// places cells evenly on a ring around the canvas center, starting at the
// top (12 o'clock) and proceeding clockwise.
//
// Pure arithmetic, no side effects. Cells outside the layout are clamped to
// the nearest valid cell.
func GridToCanvas(gridX, gridY int, layout GridLayout, canvas Rect) Position {
	rows, cols := layout.Dimensions()

	if layout == LayoutCircular {
		count := cols
		idx := gridY*cols + gridX
		if idx < 0 {
			idx = 0
		}
		if idx >= count {
			idx = count - 1
		}
		cx := canvas.X + canvas.Width/2
		cy := canvas.Y + canvas.Height/2
		radius := math.Min(canvas.Width, canvas.Height) / 3
		angle := -math.Pi/2 + 2*math.Pi*float64(idx)/float64(count)
		return Position{
			X:     cx + radius*math.Cos(angle),
			Y:     cy + radius*math.Sin(angle),
			Scale: 1.0,
		}
	}

	if gridX < 0 {
		gridX = 0
	}
	if gridX >= cols {
		gridX = cols - 1
	}
	if gridY < 0 {
		gridY = 0
	}
	if gridY >= rows {
		gridY = rows - 1
	}

	cellW := canvas.Width / float64(cols)
	cellH := canvas.Height / float64(rows)
	return Position{
		X:     canvas.X + float64(gridX)*cellW + cellW/2,
		Y:     canvas.Y + float64(gridY)*cellH + cellH/2,
		Scale: 1.0,
	}
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Vec2) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Center returns the midpoint of p1 and p2.
func Center(p1, p2 Vec2) Vec2 {
	return Vec2{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
}
