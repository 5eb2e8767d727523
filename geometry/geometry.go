// Package geometry derives screen-space edge geometry from sub-step
// positions and provides the deterministic grid auto-layout.
//
// Everything here is a pure function of the current collection: callers
// recompute after every mutation or drag update rather than patching
// cached results.
package geometry

import "github.com/meikuraledutech/planflow"

// Config holds the card and canvas dimensions geometry is computed
// against. Zero values are not usable; start from DefaultConfig.
type Config struct {
	CardWidth  float64
	CardHeight float64

	CanvasWidth  float64
	CanvasHeight float64

	// Grid auto-layout parameters.
	Margin     float64
	Columns    int
	ColSpacing float64
	RowSpacing float64

	// Horizontal reach of the bezier control points on edge paths.
	CurveReach float64
}

// DefaultConfig returns the reference dimensions: 200x150 cards on a
// 1200x800 canvas, three layout columns.
func DefaultConfig() Config {
	return Config{
		CardWidth:    200,
		CardHeight:   150,
		CanvasWidth:  1200,
		CanvasHeight: 800,
		Margin:       50,
		Columns:      3,
		ColSpacing:   300,
		RowSpacing:   250,
		CurveReach:   50,
	}
}

// WithCanvas returns the config with the canvas bounds replaced. A nil
// canvas keeps the defaults, so per-task overrides can be applied
// unconditionally.
func (c Config) WithCanvas(cv *planflow.Canvas) Config {
	if cv != nil && cv.Width > 0 && cv.Height > 0 {
		c.CanvasWidth = cv.Width
		c.CanvasHeight = cv.Height
	}
	return c
}

// position resolves a possibly-missing position to concrete coordinates.
// A sub-step that has never been laid out sits at the origin.
func position(s planflow.SubStep) planflow.Point {
	if s.Position == nil {
		return planflow.Point{}
	}
	return *s.Position
}

// OutAnchor is the right-center point of the card: where outgoing
// edges leave. The out/in asymmetry makes edges flow left to right.
func (c Config) OutAnchor(s planflow.SubStep) planflow.Point {
	p := position(s)
	return planflow.Point{X: p.X + c.CardWidth, Y: p.Y + c.CardHeight/2}
}

// InAnchor is the left-center point of the card: where incoming edges
// arrive.
func (c Config) InAnchor(s planflow.SubStep) planflow.Point {
	p := position(s)
	return planflow.Point{X: p.X, Y: p.Y + c.CardHeight/2}
}

// Connector is a derived render artifact for one directed edge. It is
// recomputed from adjacency on every pass and never persisted.
type Connector struct {
	ID       string         `json:"id"`
	From     planflow.Point `json:"from"`
	To       planflow.Point `json:"to"`
	SourceID string         `json:"sourceId"`
	TargetID string         `json:"targetId"`
}

// Midpoint is where the connector's delete marker is rendered.
func (c Connector) Midpoint() planflow.Point {
	return planflow.Point{X: (c.From.X + c.To.X) / 2, Y: (c.From.Y + c.To.Y) / 2}
}

// Connectors derives one connector per (source, target) adjacency pair
// whose target still exists. Entries pointing at a removed sub-step are
// skipped rather than failing: the store-level invariant forbids them,
// but geometry self-heals if one slips through.
func Connectors(steps planflow.SubSteps, cfg Config) []Connector {
	conns := []Connector{}
	for _, src := range steps {
		if len(src.NextSubStepIDs) == 0 {
			continue
		}
		from := cfg.OutAnchor(src)
		for _, targetID := range src.NextSubStepIDs {
			target, ok := steps.Find(targetID)
			if !ok {
				continue
			}
			conns = append(conns, Connector{
				ID:       "conn-" + src.ID + "-" + targetID,
				From:     from,
				To:       cfg.InAnchor(target),
				SourceID: src.ID,
				TargetID: targetID,
			})
		}
	}
	return conns
}

// Curve is a cubic bezier path between two anchors.
type Curve struct {
	From  planflow.Point `json:"from"`
	Ctrl1 planflow.Point `json:"ctrl1"`
	Ctrl2 planflow.Point `json:"ctrl2"`
	To    planflow.Point `json:"to"`
}

// Degenerate reports whether the curve has collapsed to a point, in
// which case nothing should be rendered.
func (cv Curve) Degenerate() bool {
	return cv.From == cv.To
}

// Curve builds the edge path between two anchors. Coinciding anchors
// yield a zero-length curve rather than an error.
func (c Config) Curve(from, to planflow.Point) Curve {
	if from == to {
		return Curve{From: from, Ctrl1: from, Ctrl2: to, To: to}
	}
	return Curve{
		From:  from,
		Ctrl1: planflow.Point{X: from.X + c.CurveReach, Y: from.Y},
		Ctrl2: planflow.Point{X: to.X - c.CurveReach, Y: to.Y},
		To:    to,
	}
}
