package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/sapling/stage"
)

// Activity summarises the interactions an entity's node has received.
type Activity struct {
	Presses int
	Clicks  int
	Drops   int

	// Global pointer position of the latest recorded event.
	LastX, LastY float64
}

// ActivityComponent stores an entity's Activity.
var ActivityComponent = donburi.NewComponentType[Activity]()

// Registry issues the uint32 ids scene nodes carry in their EntityID and
// maps them back to Donburi entities. It is also an EntityStore: events it
// receives are queued on InteractionEventType and folded into Activity by
// Flush.
type Registry struct {
	stage.EntityStore

	world donburi.World
	next  uint32
	ids   map[uint32]donburi.Entity
}

// NewRegistry creates a registry over world and subscribes it to
// InteractionEventType.
func NewRegistry(world donburi.World) *Registry {
	r := &Registry{
		EntityStore: NewDonburiStore(world),
		world:       world,
		ids:         make(map[uint32]donburi.Entity),
	}
	InteractionEventType.Subscribe(world, r.record)
	return r
}

// World returns the underlying world.
func (r *Registry) World() donburi.World { return r.world }

// Spawn creates an entity with an empty Activity and returns its node id.
// Ids start at 1; 0 means "no entity" on a node.
func (r *Registry) Spawn() uint32 {
	r.next++
	r.ids[r.next] = r.world.Create(ActivityComponent)
	return r.next
}

// Despawn removes the entity behind id. It reports whether id was live.
func (r *Registry) Despawn(id uint32) bool {
	e, ok := r.ids[id]
	if !ok {
		return false
	}
	delete(r.ids, id)
	if r.world.Valid(e) {
		r.world.Remove(e)
	}
	return true
}

// Entity returns the Donburi entity behind id.
func (r *Registry) Entity(id uint32) (donburi.Entity, bool) {
	e, ok := r.ids[id]
	return e, ok
}

// Len returns the number of live ids.
func (r *Registry) Len() int { return len(r.ids) }

// Activity returns a copy of the Activity of id.
func (r *Registry) Activity(id uint32) (Activity, bool) {
	e, ok := r.ids[id]
	if !ok || !r.world.Valid(e) {
		return Activity{}, false
	}
	return *ActivityComponent.Get(r.world.Entry(e)), true
}

// Flush delivers the queued interaction events.
func (r *Registry) Flush() {
	InteractionEventType.ProcessEvents(r.world)
}

func (r *Registry) record(w donburi.World, ev stage.InteractionEvent) {
	e, ok := r.ids[ev.EntityID]
	if !ok || !w.Valid(e) {
		return
	}
	a := ActivityComponent.Get(w.Entry(e))
	switch ev.Type {
	case stage.EventInputDown:
		a.Presses++
	case stage.EventClick:
		a.Clicks++
	case stage.EventDragStop:
		a.Drops++
	default:
		return
	}
	a.LastX, a.LastY = ev.GlobalX, ev.GlobalY
}
