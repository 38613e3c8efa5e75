package sapling

type dragMsgKind uint8

const (
	dragUpdate dragMsgKind = iota
	dragStop
)

// dragMsg is posted by the overlay's input listeners and consumed by the
// group that owns the overlay.
type dragMsg struct {
	kind dragMsgKind
	x, y float64
}

// dragMachine tracks the offset accumulated by an in-flight drag. While
// dragging, the group's children follow the overlay; on stop the offset is
// folded into the group's own position.
type dragMachine struct {
	dragging       bool
	startX, startY float64
}

func (m *dragMachine) reset() {
	*m = dragMachine{}
}

// post queues msg and drains the inbox unless a drain is already running
// further up the stack, in which case that drain picks it up.
func (g *Group) post(msg dragMsg) {
	g.inbox = append(g.inbox, msg)
	if g.draining {
		return
	}
	g.draining = true
	defer func() { g.draining = false }()
	for len(g.inbox) > 0 {
		m := g.inbox[0]
		g.inbox = g.inbox[1:]
		g.handleDrag(m)
	}
	g.inbox = nil
}

func (g *Group) handleDrag(m dragMsg) {
	if g.node == nil {
		return
	}
	switch m.kind {
	case dragUpdate:
		g.drag.dragging = true
		dx, dy := m.x-g.drag.startX, m.y-g.drag.startY
		g.moveContent(dx, dy)
		g.drag.startX, g.drag.startY = m.x, m.y

	case dragStop:
		sx, sy := g.drag.startX, g.drag.startY
		g.moveContent(-sx, -sy)
		g.node.Move(sx, sy)
		g.drag.reset()
		if ov := g.overlay.get(); ov != nil {
			ov.SetPosition(0, 0)
		}
		g.logger.Debug("group dropped", "x", g.node.X, "y", g.node.Y)
		if g.onDrag != nil {
			g.onDrag(g.node.X, g.node.Y)
		}
	}
}

// moveContent offsets every child of the group except the input overlay.
func (g *Group) moveContent(dx, dy float64) {
	ov := g.overlay.get()
	for _, c := range g.node.Children() {
		if c != ov {
			c.Move(dx, dy)
		}
	}
}

// Dragging reports whether a drag is in flight.
func (g *Group) Dragging() bool { return g.drag.dragging }
