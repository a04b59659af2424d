// Package ecs provides ECS adapters for liquidglass's interaction events.
//
// [NewDonburiStore] bridges glass interaction events (pointer, drag,
// settle) into a [Donburi] world as typed events. Subscribe to
// [InteractionEventType] in your ECS systems to receive them. [Attach]
// creates an entity for a glass and bridges it in one step.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	host.SetEntityStore(store)
//	entity := ecs.Attach(world, glass)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
