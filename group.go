package sapling

import (
	"github.com/charmbracelet/log"

	"github.com/phanxgames/sapling/stage"
)

// overlayColor is the fill of the transparent input overlay.
const overlayColor = 0xFFFFFF

// Group wraps a native container. On update it can rebuild a transparent
// input overlay (for draggable and onClick) and a background fill, both
// sized to the current content.
type Group struct {
	engine Engine
	node   *stage.Node
	logger *log.Logger

	background slot
	overlay    slot

	onDrag   func(x, y float64)
	drag     dragMachine
	inbox    []dragMsg
	draining bool
}

func newGroup(e Engine, _ Props) Instance {
	return &Group{engine: e, node: e.AddGroup(), logger: log.Default()}
}

func (*Group) Kind() Kind { return KindGroup }

func (g *Group) Object() *stage.Node {
	if g == nil {
		return nil
	}
	return g.node
}

// Overlay returns the current input overlay node, or nil.
func (g *Group) Overlay() *stage.Node { return g.overlay.get() }

// Background returns the current background node, or nil.
func (g *Group) Background() *stage.Node { return g.background.get() }

// Update positions the group and rebuilds its overlay and background.
func (g *Group) Update(props Props) {
	if g.node == nil {
		return
	}
	g.node.SetPosition(props.Float("x", 0), props.Float("y", 0))
	entity := props.Uint32("entity", 0)
	g.node.EntityID = entity

	// A rebuilt overlay ends any gesture in flight. Content the drag had
	// shifted goes back to its committed place.
	if g.drag.dragging {
		g.moveContent(-g.drag.startX, -g.drag.startY)
	}
	g.overlay.release()
	g.drag.reset()
	g.onDrag = props.PositionFunc("onDrag")

	draggable := props.Bool("draggable")
	onClick := props.Func("onClick")
	if draggable || onClick != nil {
		b := g.contentBounds()
		g.overlay.replace(func() *stage.Node {
			n := g.engine.AddGraphics(0, 0)
			n.Name = "overlay"
			n.Graphics.BeginFill(overlayColor, 0)
			n.Graphics.DrawRect(b.X, b.Y, b.Width, b.Height)
			g.node.AddChildAt(n, 0)
			n.InputEnabled = true
			n.EntityID = entity
			return n
		})
	}

	ov := g.overlay.get()
	if draggable {
		ov.EnableDrag()
		ov.Events.DragUpdate.Add(func(e stage.DragEvent) {
			g.post(dragMsg{kind: dragUpdate, x: e.X, y: e.Y})
		})
		ov.Events.DragStop.Add(func(stage.DragEvent) {
			g.post(dragMsg{kind: dragStop})
		})
	}
	if onClick != nil {
		ov.Events.InputDown.Add(func(stage.PointerEvent) { onClick() })
	}

	g.background.release()
	if props.Has("backgroundColor") {
		b := g.contentBounds()
		color := props.Uint32("backgroundColor", 0)
		g.background.replace(func() *stage.Node {
			n := g.engine.AddGraphics(0, 0)
			n.Name = "background"
			n.Graphics.BeginFill(color, 1)
			n.Graphics.DrawRect(b.X, b.Y, b.Width, b.Height)
			g.node.AddChildAt(n, 0)
			return n
		})
	}
}

// contentBounds is the union of the children's bounds in the group's
// space, ignoring the overlay and background.
func (g *Group) contentBounds() stage.Rect {
	var r stage.Rect
	ov, bg := g.overlay.get(), g.background.get()
	for _, c := range g.node.Children() {
		if c == ov || c == bg {
			continue
		}
		r = r.Union(c.BoundsInParent())
	}
	return r
}

// AppendInitialChild attaches child's node.
func (g *Group) AppendInitialChild(child Instance) { g.AppendChild(child) }

// AppendChild attaches child's node at the end.
func (g *Group) AppendChild(child Instance) {
	obj := objectOf(child)
	if g.node == nil || obj == nil {
		return
	}
	g.node.AddChild(obj)
}

// InsertBefore attaches child's node in front of before's node, or at the
// end when before is not a child of this group.
func (g *Group) InsertBefore(child, before Instance) {
	obj := objectOf(child)
	if g.node == nil || obj == nil {
		return
	}
	g.node.AddChildBefore(obj, objectOf(before))
}

// RemoveChild detaches child's node.
func (g *Group) RemoveChild(child Instance) {
	obj := objectOf(child)
	if g.node == nil || obj == nil || obj.Parent != g.node {
		return
	}
	g.node.RemoveChild(obj)
}

// Destroy releases the container and its auxiliary nodes. An in-flight drag
// is discarded without calling onDrag.
func (g *Group) Destroy() {
	g.overlay.release()
	g.background.release()
	g.drag.reset()
	g.inbox = nil
	g.onDrag = nil
	if g.node != nil {
		g.node.Destroy()
		g.node = nil
	}
}

func (g *Group) setLogger(l *log.Logger) { g.logger = l }

func objectOf(inst Instance) *stage.Node {
	if inst == nil {
		return nil
	}
	return inst.Object()
}
