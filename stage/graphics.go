package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GraphicsOp identifies a recorded drawing operation.
type GraphicsOp uint8

const (
	OpLineStyle GraphicsOp = iota // set stroke width, color and alpha
	OpBeginFill                   // set fill color and alpha
	OpMoveTo                      // move the pen without drawing
	OpLineTo                      // stroke from the pen to a point
	OpDrawRect                    // fill a rectangle
	OpDrawCircle                  // fill a circle (X, Y is the center)
)

func (op GraphicsOp) String() string {
	switch op {
	case OpLineStyle:
		return "line-style"
	case OpBeginFill:
		return "begin-fill"
	case OpMoveTo:
		return "move-to"
	case OpLineTo:
		return "line-to"
	case OpDrawRect:
		return "draw-rect"
	case OpDrawCircle:
		return "draw-circle"
	default:
		return "unknown"
	}
}

// GraphicsCommand is one recorded operation. Only the fields relevant to Op
// are set: X/Y for pen and shape origins, Width/Height for rectangles,
// Width for line thickness and circle diameter, Color/Alpha for styles.
type GraphicsCommand struct {
	Op            GraphicsOp
	X, Y          float64
	Width, Height float64
	Color         uint32
	Alpha         float64
}

// Graphics is a drawing surface that records commands until cleared.
// Commands are replayed onto the render target each frame, so a Graphics
// node always shows exactly what was recorded since the last Clear.
type Graphics struct {
	commands  []GraphicsCommand
	bounds    Rect
	hasBounds bool
}

// Clear discards every recorded command.
func (g *Graphics) Clear() {
	g.commands = g.commands[:0]
	g.bounds = Rect{}
	g.hasBounds = false
}

// Commands returns the recorded command list. The returned slice MUST NOT be
// mutated by the caller.
func (g *Graphics) Commands() []GraphicsCommand {
	return g.commands
}

// Bounds returns the extents of everything drawn since the last Clear.
func (g *Graphics) Bounds() Rect {
	return g.bounds
}

// LineStyle sets the stroke used by subsequent LineTo calls.
func (g *Graphics) LineStyle(width float64, rgb uint32, alpha float64) {
	g.commands = append(g.commands, GraphicsCommand{Op: OpLineStyle, Width: width, Color: rgb, Alpha: alpha})
}

// BeginFill sets the fill used by subsequent DrawRect and DrawCircle calls.
func (g *Graphics) BeginFill(rgb uint32, alpha float64) {
	g.commands = append(g.commands, GraphicsCommand{Op: OpBeginFill, Color: rgb, Alpha: alpha})
}

// MoveTo moves the pen to (x, y).
func (g *Graphics) MoveTo(x, y float64) {
	g.commands = append(g.commands, GraphicsCommand{Op: OpMoveTo, X: x, Y: y})
	g.extend(Rect{X: x, Y: y})
}

// LineTo strokes a segment from the pen to (x, y) and moves the pen there.
func (g *Graphics) LineTo(x, y float64) {
	g.commands = append(g.commands, GraphicsCommand{Op: OpLineTo, X: x, Y: y})
	g.extend(Rect{X: x, Y: y})
}

// DrawRect fills the rectangle (x, y, w, h) with the current fill.
func (g *Graphics) DrawRect(x, y, w, h float64) {
	g.commands = append(g.commands, GraphicsCommand{Op: OpDrawRect, X: x, Y: y, Width: w, Height: h})
	g.extend(Rect{X: x, Y: y, Width: w, Height: h})
}

// DrawCircle fills a circle centered at (x, y) with the given diameter.
func (g *Graphics) DrawCircle(x, y, diameter float64) {
	g.commands = append(g.commands, GraphicsCommand{Op: OpDrawCircle, X: x, Y: y, Width: diameter})
	r := diameter / 2
	g.extend(Rect{X: x - r, Y: y - r, Width: diameter, Height: diameter})
}

// extend grows the bounds to include r. Pen points count as zero-size
// regions so a lone line still has extents.
func (g *Graphics) extend(r Rect) {
	if !g.hasBounds {
		g.bounds = r
		g.hasBounds = true
		return
	}
	minX := math.Min(g.bounds.X, r.X)
	minY := math.Min(g.bounds.Y, r.Y)
	maxX := math.Max(g.bounds.X+g.bounds.Width, r.X+r.Width)
	maxY := math.Max(g.bounds.Y+g.bounds.Height, r.Y+r.Height)
	g.bounds = Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// replay rasterises the recorded commands onto dst through the world matrix m.
func (g *Graphics) replay(dst *ebiten.Image, m [6]float64) {
	var (
		fill      Color
		stroke    Color
		lineWidth float64
		penX      float64
		penY      float64
	)
	sx := math.Abs(m[0])
	for _, cmd := range g.commands {
		switch cmd.Op {
		case OpLineStyle:
			stroke = Hex(cmd.Color, cmd.Alpha)
			lineWidth = cmd.Width
		case OpBeginFill:
			fill = Hex(cmd.Color, cmd.Alpha)
		case OpMoveTo:
			penX, penY = transformPoint(m, cmd.X, cmd.Y)
		case OpLineTo:
			x, y := transformPoint(m, cmd.X, cmd.Y)
			if stroke.A > 0 && lineWidth > 0 {
				vector.StrokeLine(dst, float32(penX), float32(penY), float32(x), float32(y),
					float32(lineWidth*sx), stroke.RGBA(), true)
			}
			penX, penY = x, y
		case OpDrawRect:
			if fill.A == 0 {
				continue
			}
			r := transformRect(m, Rect{X: cmd.X, Y: cmd.Y, Width: cmd.Width, Height: cmd.Height})
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
				fill.RGBA(), true)
		case OpDrawCircle:
			if fill.A == 0 {
				continue
			}
			cx, cy := transformPoint(m, cmd.X, cmd.Y)
			vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(cmd.Width/2*sx),
				fill.RGBA(), true)
		}
	}
}
