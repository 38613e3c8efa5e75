package stage

import "testing"

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(ev InteractionEvent) {
	r.events = append(r.events, ev)
}

// newHitBox returns an input-enabled graphics node covering (0,0)-(w,h)
// positioned at (x, y) under the scene root.
func newHitBox(s *Scene, x, y, w, h float64) *Node {
	n := NewGraphics("box")
	n.Graphics.BeginFill(0xFFFFFF, 0)
	n.Graphics.DrawRect(0, 0, w, h)
	n.SetPosition(x, y)
	n.InputEnabled = true
	s.Root().AddChild(n)
	return n
}

type eventLog struct {
	names []string
	drags []DragEvent
}

func watch(n *Node) *eventLog {
	l := &eventLog{}
	n.Events.InputDown.Add(func(PointerEvent) { l.names = append(l.names, "down") })
	n.Events.InputUp.Add(func(PointerEvent) { l.names = append(l.names, "up") })
	n.Events.Click.Add(func(PointerEvent) { l.names = append(l.names, "click") })
	n.Events.DragStart.Add(func(DragEvent) { l.names = append(l.names, "drag-start") })
	n.Events.DragUpdate.Add(func(e DragEvent) {
		l.names = append(l.names, "drag-update")
		l.drags = append(l.drags, e)
	})
	n.Events.DragStop.Add(func(DragEvent) { l.names = append(l.names, "drag-stop") })
	return l
}

func TestHitTestTopmost(t *testing.T) {
	s := NewScene()
	bottom := newHitBox(s, 0, 0, 100, 100)
	top := newHitBox(s, 50, 50, 100, 100)

	tests := []struct {
		name string
		x, y float64
		want *Node
	}{
		{"only bottom", 10, 10, bottom},
		{"overlap picks top", 75, 75, top},
		{"only top", 140, 140, top},
		{"miss", 300, 300, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.hitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("hitTest(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitTestSkipsDisabledAndHidden(t *testing.T) {
	s := NewScene()
	n := newHitBox(s, 0, 0, 10, 10)
	n.InputEnabled = false
	if s.hitTest(5, 5) != nil {
		t.Error("disabled node was hit")
	}
	n.InputEnabled = true
	n.Visible = false
	if s.hitTest(5, 5) != nil {
		t.Error("hidden node was hit")
	}
}

func TestClick(t *testing.T) {
	s := NewScene()
	n := newHitBox(s, 10, 10, 50, 50)
	l := watch(n)

	s.HandlePointer(20, 20, true)
	s.HandlePointer(20, 20, false)

	want := []string{"down", "click", "up"}
	if !equalNames(l.names, want) {
		t.Errorf("events = %v, want %v", l.names, want)
	}
}

func TestReleaseOutsideIsNotClick(t *testing.T) {
	s := NewScene()
	n := newHitBox(s, 0, 0, 10, 10)
	l := watch(n)

	s.HandlePointer(5, 5, true)
	s.HandlePointer(50, 50, true)
	s.HandlePointer(50, 50, false)

	want := []string{"down", "up"}
	if !equalNames(l.names, want) {
		t.Errorf("events = %v, want %v", l.names, want)
	}
}

func TestDragFollowsPointer(t *testing.T) {
	s := NewScene()
	n := newHitBox(s, 10, 10, 50, 50)
	n.EnableDrag()
	l := watch(n)

	s.HandlePointer(20, 20, true)
	s.HandlePointer(22, 20, true) // inside the dead zone
	if s.Dragging() {
		t.Fatal("drag started inside the dead zone")
	}
	s.HandlePointer(40, 25, true)
	if !s.Dragging() {
		t.Fatal("drag did not start")
	}
	if n.X != 30 || n.Y != 15 {
		t.Errorf("position = (%v, %v), want (30, 15)", n.X, n.Y)
	}
	s.HandlePointer(40, 25, false)

	want := []string{"down", "drag-start", "drag-update", "drag-stop", "up"}
	if !equalNames(l.names, want) {
		t.Errorf("events = %v, want %v", l.names, want)
	}
	if len(l.drags) != 1 || l.drags[0].X != 30 || l.drags[0].Y != 15 {
		t.Errorf("drag updates = %+v", l.drags)
	}
	if s.Dragging() {
		t.Error("still dragging after release")
	}
}

func TestDragInScaledParent(t *testing.T) {
	s := NewScene()
	p := NewContainer("p")
	p.SetScale(2, 2)
	s.Root().AddChild(p)
	n := NewGraphics("n")
	n.Graphics.DrawRect(0, 0, 10, 10)
	n.EnableDrag()
	p.AddChild(n)

	s.HandlePointer(5, 5, true)
	s.HandlePointer(25, 5, true)
	if n.X != 10 {
		t.Errorf("X = %v, want 10 (world delta halved)", n.X)
	}
}

func TestDestroyedTargetCancelsInteraction(t *testing.T) {
	s := NewScene()
	n := newHitBox(s, 0, 0, 10, 10)
	n.EnableDrag()
	stops := 0
	n.Events.DragStop.Add(func(DragEvent) { stops++ })

	s.HandlePointer(5, 5, true)
	s.HandlePointer(20, 5, true)
	n.Destroy()
	s.HandlePointer(30, 5, true)
	s.HandlePointer(30, 5, false)

	if stops != 0 {
		t.Errorf("DragStop fired %d times on a destroyed node", stops)
	}
	if s.Dragging() {
		t.Error("drag state not cleared")
	}
}

func TestInteractionEventsReachStore(t *testing.T) {
	s := NewScene()
	store := &recordingStore{}
	s.SetEntityStore(store)

	tagged := newHitBox(s, 0, 0, 10, 10)
	tagged.EntityID = 7
	newHitBox(s, 100, 100, 10, 10)

	s.HandlePointer(5, 5, true)
	s.HandlePointer(5, 5, false)
	s.HandlePointer(105, 105, true)
	s.HandlePointer(105, 105, false)

	if len(store.events) != 3 {
		t.Fatalf("store got %d events, want 3", len(store.events))
	}
	wantTypes := []EventType{EventInputDown, EventClick, EventInputUp}
	for i, ev := range store.events {
		if ev.EntityID != 7 || ev.Type != wantTypes[i] {
			t.Errorf("event %d = %+v", i, ev)
		}
	}
}

func TestInjectDrag(t *testing.T) {
	s := NewScene()
	n := newHitBox(s, 0, 0, 20, 20)
	n.EnableDrag()

	s.InjectDrag(10, 10, 60, 10, 5)
	if s.PendingInjections() != 5 {
		t.Fatalf("PendingInjections = %d, want 5", s.PendingInjections())
	}
	for s.processInjectedInput() {
	}
	if n.X != 50 || n.Y != 0 {
		t.Errorf("position = (%v, %v), want (50, 0)", n.X, n.Y)
	}
}
