package geometry

import "github.com/meikuraledutech/planflow"

// GridSlot returns the grid position for the sub-step at the given
// iteration index: columns wrap at cfg.Columns, rows grow downward.
func (c Config) GridSlot(index int) planflow.Point {
	col := index % c.Columns
	row := index / c.Columns
	return planflow.Point{
		X: c.Margin + float64(col)*c.ColSpacing,
		Y: c.Margin + float64(row)*c.RowSpacing,
	}
}

// AutoLayout reflows every sub-step onto the grid, overwriting all
// prior positions. The result depends only on iteration order, so
// running it twice without intervening edits is a fixed point.
func AutoLayout(steps planflow.SubSteps, cfg Config) planflow.SubSteps {
	out := make(planflow.SubSteps, len(steps))
	for i, s := range steps {
		c := s.Clone()
		p := cfg.GridSlot(i)
		c.Position = &p
		out[i] = c
	}
	return out
}

// Clamp keeps a dropped card fully inside the canvas bounds.
func (c Config) Clamp(p planflow.Point) planflow.Point {
	maxX := c.CanvasWidth - c.CardWidth
	maxY := c.CanvasHeight - c.CardHeight
	if p.X < 0 {
		p.X = 0
	} else if p.X > maxX {
		p.X = maxX
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y > maxY {
		p.Y = maxY
	}
	return p
}
