// Package ecs bridges stage interaction events into a [Donburi] world.
//
// Nodes rendered with an "entity" prop carry that id; when a scene has an
// entity store, presses, clicks and drags on those nodes are published to
// [InteractionEventType]. A [Registry] hands out the ids and keeps an
// [Activity] component per entity up to date:
//
//	world := donburi.NewWorld()
//	reg := ecs.NewRegistry(world)
//	id := reg.Spawn()
//	// render a group with Props{"entity": id, "onClick": ...}
//	// and install reg as the engine's entity store
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
