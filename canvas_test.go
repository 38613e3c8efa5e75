package sapling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/sapling/stage"
)

func rectCmds(color uint32, x, y, w, h float64) []stage.GraphicsCommand {
	return []stage.GraphicsCommand{
		{Op: stage.OpBeginFill, Color: color, Alpha: 1},
		{Op: stage.OpDrawRect, X: x, Y: y, Width: w, Height: h},
	}
}

func TestCanvasMountDrawsRect(t *testing.T) {
	var canvas *Canvas
	tree := Game(nil,
		Graphics(nil,
			RectOf(Props{"x": 0, "y": 0, "width": 10, "height": 10, "color": 0xff0000}),
		).WithRef(capture(&canvas)),
	)
	mountTree(t, tree)

	require.NotNil(t, canvas)
	assert.Equal(t, 1, canvas.Len())
	assert.Equal(t, rectCmds(0xff0000, 0, 0, 10, 10), commands(canvas.Object()))
}

func TestCanvasColorUpdateRedraws(t *testing.T) {
	var canvas *Canvas
	var rect *Rect
	build := func(color int) *Element {
		return Game(nil,
			Graphics(nil,
				RectOf(Props{"width": 10, "height": 10, "color": color}).WithRef(capture(&rect)),
			).WithRef(capture(&canvas)),
		)
	}
	r, _ := mountTree(t, build(0xff0000))

	old := rect.Props()
	next := Props{"width": 10, "height": 10, "color": 0x00ff00}
	diff := r.Host().PrepareUpdate(rect, KindRect, old, next, nil, HostContext{})
	require.NotNil(t, diff)
	assert.Empty(t, diff.Removed)
	assert.Empty(t, diff.Added)
	assert.Equal(t, Props{"color": 0x00ff00}, diff.Modified)

	require.NoError(t, r.Render(build(0x00ff00), "test"))
	assert.Equal(t, rectCmds(0x00ff00, 0, 0, 10, 10), commands(canvas.Object()))
}

func TestCanvasPrimitiveDefaults(t *testing.T) {
	g := newTestGame()
	c := newCanvas(g, Props{}).(*Canvas)
	c.AppendChild(newLine(g, Props{}))
	c.AppendChild(newCircle(g, Props{"diameter": 8}))

	want := []stage.GraphicsCommand{
		{Op: stage.OpLineStyle, Width: 1, Color: 0, Alpha: 1},
		{Op: stage.OpMoveTo},
		{Op: stage.OpLineTo},
		{Op: stage.OpBeginFill, Color: 0, Alpha: 1},
		{Op: stage.OpDrawCircle, Width: 8},
	}
	assert.Equal(t, want, commands(c.Object()))
}

func TestCanvasInsertBefore(t *testing.T) {
	g := newTestGame()
	a := newRect(g, Props{"x": 1})
	b := newRect(g, Props{"x": 2})
	stranger := newRect(g, Props{"x": 3})

	tests := []struct {
		name   string
		before Instance
		wantX  []float64
	}{
		{"known sibling", a, []float64{9, 1, 2}},
		{"unknown sibling appends", stranger, []float64{1, 2, 9}},
		{"nil appends", nil, []float64{1, 2, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(g, Props{}).(*Canvas)
			c.AppendChild(a)
			c.AppendChild(b)
			c.InsertBefore(newRect(g, Props{"x": 9}), tt.before)

			var xs []float64
			for _, cmd := range commands(c.Object()) {
				if cmd.Op == stage.OpDrawRect {
					xs = append(xs, cmd.X)
				}
			}
			assert.Equal(t, tt.wantX, xs)
		})
	}
}

func TestCanvasRedrawIsIdempotent(t *testing.T) {
	g := newTestGame()
	c := newCanvas(g, Props{}).(*Canvas)
	c.AppendChild(newRect(g, Props{"width": 4, "height": 4}))
	c.AppendChild(newLine(g, Props{"endX": 5}))

	first := commands(c.Object())
	c.Draw()
	c.Draw()
	assert.Equal(t, first, commands(c.Object()))
}

func TestCanvasAppendExistingMoves(t *testing.T) {
	g := newTestGame()
	c := newCanvas(g, Props{}).(*Canvas)
	a := newRect(g, Props{"x": 1})
	b := newRect(g, Props{"x": 2})
	c.AppendChild(a)
	c.AppendChild(b)
	c.AppendChild(a)

	assert.Equal(t, 2, c.Len())
	cmds := commands(c.Object())
	require.Len(t, cmds, 4)
	assert.Equal(t, 2.0, cmds[1].X)
	assert.Equal(t, 1.0, cmds[3].X)
}

func TestCanvasInitialChildrenDrawOnFirstUpdate(t *testing.T) {
	g := newTestGame()
	c := newCanvas(g, Props{}).(*Canvas)
	c.AppendInitialChild(newRect(g, Props{"width": 2, "height": 2}))
	assert.Empty(t, commands(c.Object()))

	c.Update(Props{"x": 15, "y": 20})
	assert.Len(t, commands(c.Object()), 2)
	assert.Equal(t, 15.0, c.Object().X)
	assert.Equal(t, 20.0, c.Object().Y)
}

func TestCanvasRemoveChildKeepsSurface(t *testing.T) {
	g := newTestGame()
	c := newCanvas(g, Props{}).(*Canvas)
	r := newRect(g, Props{"width": 2, "height": 2}).(*Rect)
	c.AppendChild(r)
	c.RemoveChild(r)

	assert.Equal(t, 0, c.Len())
	assert.Nil(t, r.owner())
	assert.Len(t, commands(c.Object()), 2, "removal alone does not redraw")

	// A detached primitive no longer redraws its old canvas.
	r.Update(Props{"width": 3})
	assert.Len(t, commands(c.Object()), 2)

	c.Draw()
	assert.Empty(t, commands(c.Object()))
}

func TestCanvasIgnoresNonPrimitives(t *testing.T) {
	g := newTestGame()
	c := newCanvas(g, Props{}).(*Canvas)
	c.AppendChild(newSprite(g, Props{"image": "hero"}))
	c.InsertBefore(gameInstance{}, nil)
	c.RemoveChild(nil)
	assert.Equal(t, 0, c.Len())
}

func TestCanvasDestroy(t *testing.T) {
	g := newTestGame()
	c := newCanvas(g, Props{}).(*Canvas)
	r := newRect(g, Props{}).(*Rect)
	c.AppendChild(r)
	node := c.Object()

	c.Destroy()
	assert.True(t, node.IsDestroyed())
	assert.Nil(t, c.Object())
	assert.Nil(t, r.owner())
	c.Draw()
	c.Destroy()
}
