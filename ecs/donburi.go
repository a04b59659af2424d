package ecs

import (
	"github.com/phanxgames/liquidglass"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for glass interaction events.
// Subscribe to this in your ECS systems to receive pointer, drag and settle
// events.
var InteractionEventType = events.NewEventType[liquidglass.InteractionEvent]()

// GlassData links an entity to its glass.
type GlassData struct {
	Glass *liquidglass.Glass
}

// Glass is the component attached by Attach.
var Glass = donburi.NewComponentType[GlassData]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) liquidglass.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event liquidglass.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Attach creates an entity carrying the Glass component and sets the
// glass's EntityID so its events reach the store.
func Attach(world donburi.World, g *liquidglass.Glass) donburi.Entity {
	entity := world.Create(Glass)
	Glass.SetValue(world.Entry(entity), GlassData{Glass: g})
	g.EntityID = uint32(entity.Id())
	return entity
}
