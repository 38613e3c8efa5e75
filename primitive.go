package sapling

import "github.com/phanxgames/sapling/stage"

// drawable is a primitive that a Canvas can own and replay.
type drawable interface {
	Instance
	draw(g *stage.Graphics)
	setOwner(c *Canvas)
	owner() *Canvas
}

// primitive holds the state shared by Line, Rect and Circle: the latest
// props and a non-owning reference to the canvas that replays it.
type primitive struct {
	props  Props
	canvas *Canvas
}

func (p *primitive) Object() *stage.Node { return nil }

// Update stores props and, once attached, redraws the owning canvas.
func (p *primitive) Update(props Props) {
	p.props = props
	if p.canvas != nil {
		p.canvas.Draw()
	}
}

func (p *primitive) setOwner(c *Canvas) { p.canvas = c }
func (p *primitive) owner() *Canvas     { return p.canvas }

// Props returns the props last applied.
func (p *primitive) Props() Props { return p.props }

// Line strokes a segment from (x, y) to (endX, endY).
type Line struct{ primitive }

func newLine(_ Engine, props Props) Instance { return &Line{primitive{props: props}} }

func (*Line) Kind() Kind { return KindLine }

func (l *Line) draw(g *stage.Graphics) {
	p := l.props
	g.LineStyle(p.Float("width", 1), p.Uint32("color", 0), p.Float("alpha", 1))
	g.MoveTo(p.Float("x", 0), p.Float("y", 0))
	g.LineTo(p.Float("endX", 0), p.Float("endY", 0))
}

// Rect fills (x, y, width, height) with an opaque color.
type Rect struct{ primitive }

func newRect(_ Engine, props Props) Instance { return &Rect{primitive{props: props}} }

func (*Rect) Kind() Kind { return KindRect }

func (r *Rect) draw(g *stage.Graphics) {
	p := r.props
	g.BeginFill(p.Uint32("color", 0), 1)
	g.DrawRect(p.Float("x", 0), p.Float("y", 0), p.Float("width", 0), p.Float("height", 0))
}

// Circle fills a circle of the given diameter centered on (x, y).
type Circle struct{ primitive }

func newCircle(_ Engine, props Props) Instance { return &Circle{primitive{props: props}} }

func (*Circle) Kind() Kind { return KindCircle }

func (c *Circle) draw(g *stage.Graphics) {
	p := c.props
	g.BeginFill(p.Uint32("color", 0), 1)
	g.DrawCircle(p.Float("x", 0), p.Float("y", 0), p.Float("diameter", 0))
}
