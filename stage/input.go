package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerState tracks one pointer (the mouse, or an injected pointer).
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  *Node
	dragging bool
	// node position at drag start, in its parent's space
	originX float64
	originY float64
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	GlobalX  float64
	GlobalY  float64
	X, Y     float64 // node local position for drag events
	DeltaX   float64
	DeltaY   float64
}

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events on nodes with a non-zero EntityID
// are forwarded to the store.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order (DFS),
// appending input-enabled nodes to buf. Skips invisible subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.InputEnabled {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost input-enabled node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		b := n.LocalBounds()
		if !b.Empty() && b.Contains(lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update. Injected events take priority
// over the real mouse for the frame they are consumed in.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	s.HandlePointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// HandlePointer runs the pointer state machine for one sample of pointer
// position (world coordinates) and button state. Scene.Update calls it once
// per frame; tests and scripted drivers may call it directly.
func (s *Scene) HandlePointer(wx, wy float64, pressed bool) {
	ps := &s.pointer

	// A destroyed target cancels the interaction silently.
	if ps.hitNode != nil && ps.hitNode.IsDestroyed() {
		ps.hitNode = nil
		ps.dragging = false
	}

	switch {
	case pressed && !ps.down:
		target := s.hitTest(wx, wy)
		ps.down = true
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		if target != nil {
			ps.originX, ps.originY = target.X, target.Y
			s.firePointer(EventInputDown, target, wx, wy)
		}

	case pressed && ps.down:
		if wx == ps.lastX && wy == ps.lastY {
			return
		}
		n := ps.hitNode
		if n != nil && n.draggable {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDrag(EventDragStart, n, wx, wy, 0, 0)
				}
			}
			if ps.dragging {
				// The pointer delta is in world space; map it into the
				// parent's space before moving the node.
				px, py := s.parentDelta(n, wx-ps.startX, wy-ps.startY)
				prevX, prevY := n.X, n.Y
				n.SetPosition(ps.originX+px, ps.originY+py)
				s.fireDrag(EventDragUpdate, n, wx, wy, n.X-prevX, n.Y-prevY)
			}
		}
		ps.lastX, ps.lastY = wx, wy

	case !pressed && ps.down:
		n := ps.hitNode
		if ps.dragging && n != nil {
			s.fireDrag(EventDragStop, n, wx, wy, 0, 0)
		} else if n != nil && !n.IsDestroyed() {
			if s.hitTest(wx, wy) == n {
				s.firePointer(EventClick, n, wx, wy)
			}
		}
		if n != nil && !n.IsDestroyed() {
			s.firePointer(EventInputUp, n, wx, wy)
		}
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = wx, wy

	default:
		ps.lastX, ps.lastY = wx, wy
	}
}

// parentDelta converts a world-space delta into n's parent space.
func (s *Scene) parentDelta(n *Node, dx, dy float64) (float64, float64) {
	if n.Parent == nil {
		return dx, dy
	}
	m := n.Parent.WorldTransform()
	sx, sy := m[0], m[3]
	if sx == 0 || sy == 0 {
		return dx, dy
	}
	return dx / sx, dy / sy
}

// Dragging reports whether a drag is in progress.
func (s *Scene) Dragging() bool {
	return s.pointer.dragging
}

// --- Event dispatch ---

func (s *Scene) firePointer(typ EventType, n *Node, wx, wy float64) {
	lx, ly := n.WorldToLocal(wx, wy)
	ev := PointerEvent{
		Node: n, EntityID: n.EntityID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
	}
	switch typ {
	case EventInputDown:
		n.Events.InputDown.Dispatch(ev)
	case EventInputUp:
		n.Events.InputUp.Dispatch(ev)
	case EventClick:
		n.Events.Click.Dispatch(ev)
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: typ, EntityID: n.EntityID, GlobalX: wx, GlobalY: wy, X: lx, Y: ly,
	})
}

func (s *Scene) fireDrag(typ EventType, n *Node, wx, wy, dx, dy float64) {
	ev := DragEvent{
		Node: n, EntityID: n.EntityID,
		X: n.X, Y: n.Y, GlobalX: wx, GlobalY: wy, DeltaX: dx, DeltaY: dy,
	}
	switch typ {
	case EventDragStart:
		n.Events.DragStart.Dispatch(ev)
	case EventDragUpdate:
		n.Events.DragUpdate.Dispatch(ev)
	case EventDragStop:
		n.Events.DragStop.Dispatch(ev)
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: typ, EntityID: ev.EntityID, GlobalX: wx, GlobalY: wy,
		X: ev.X, Y: ev.Y, DeltaX: dx, DeltaY: dy,
	})
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(ev InteractionEvent) {
	if s.store == nil || ev.EntityID == 0 {
		return
	}
	s.store.EmitEvent(ev)
}
