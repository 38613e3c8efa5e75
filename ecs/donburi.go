package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/sapling/stage"
)

// InteractionEventType is the Donburi event type for stage interaction
// events. Subscribe to it to receive presses, clicks and drags.
var InteractionEventType = events.NewEventType[stage.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore that publishes every event to
// InteractionEventType. Events are queued until ProcessEvents runs.
func NewDonburiStore(world donburi.World) stage.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event stage.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
