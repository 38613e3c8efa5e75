package sapling

import (
	"slices"

	"github.com/phanxgames/sapling/stage"
)

// Canvas is the "graphics" container. It owns one graphics node and an
// ordered list of primitives. After every mutation except RemoveChild the
// surface holds exactly a clear-and-replay of the current children.
type Canvas struct {
	node     *stage.Node
	children []drawable
}

func newCanvas(e Engine, props Props) Instance {
	return &Canvas{node: e.AddGraphics(props.Float("x", 0), props.Float("y", 0))}
}

func (*Canvas) Kind() Kind { return KindGraphics }

func (c *Canvas) Object() *stage.Node {
	if c == nil {
		return nil
	}
	return c.node
}

// Len returns the number of attached primitives.
func (c *Canvas) Len() int { return len(c.children) }

// Update moves the surface and redraws it.
func (c *Canvas) Update(props Props) {
	if c.node != nil {
		c.node.SetPosition(props.Float("x", 0), props.Float("y", 0))
	}
	c.Draw()
}

// AppendInitialChild attaches child without redrawing; the first Update
// draws everything at once.
func (c *Canvas) AppendInitialChild(child Instance) {
	c.insert(child, nil)
}

// AppendChild attaches child at the end and redraws.
func (c *Canvas) AppendChild(child Instance) {
	if c.insert(child, nil) {
		c.Draw()
	}
}

// InsertBefore attaches child in front of before and redraws. An unknown
// before falls back to appending.
func (c *Canvas) InsertBefore(child, before Instance) {
	if c.insert(child, before) {
		c.Draw()
	}
}

// RemoveChild detaches child. The surface keeps showing it until the next
// redraw.
func (c *Canvas) RemoveChild(child Instance) {
	d, ok := child.(drawable)
	if !ok {
		return
	}
	c.children = slices.DeleteFunc(c.children, func(x drawable) bool { return x == d })
	if d.owner() == c {
		d.setOwner(nil)
	}
}

func (c *Canvas) insert(child, before Instance) bool {
	d, ok := child.(drawable)
	if !ok {
		return false
	}
	c.children = slices.DeleteFunc(c.children, func(x drawable) bool { return x == d })
	d.setOwner(c)

	idx := len(c.children)
	if b, ok := before.(drawable); ok {
		if i := slices.Index(c.children, b); i >= 0 {
			idx = i
		}
	}
	c.children = slices.Insert(c.children, idx, d)
	return true
}

// Draw clears the surface and replays every child in order.
func (c *Canvas) Draw() {
	if c.node == nil || c.node.Graphics == nil {
		return
	}
	g := c.node.Graphics
	g.Clear()
	for _, child := range c.children {
		child.draw(g)
	}
}

// Destroy releases the surface and detaches the children.
func (c *Canvas) Destroy() {
	for _, child := range c.children {
		if child.owner() == c {
			child.setOwner(nil)
		}
	}
	c.children = nil
	if c.node != nil {
		c.node.Destroy()
		c.node = nil
	}
}
