package ecs

import (
	"testing"

	"github.com/phanxgames/liquidglass"
	"github.com/phanxgames/liquidglass/field"
	"github.com/phanxgames/liquidglass/panel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []liquidglass.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e liquidglass.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(liquidglass.InteractionEvent{
		Type:     liquidglass.EventDragStart,
		EntityID: 42,
		GlobalX:  100,
		GlobalY:  200,
	})
	store.EmitEvent(liquidglass.InteractionEvent{
		Type:     liquidglass.EventSettle,
		EntityID: 42,
		PanelX:   30,
	})

	// Events are queued until processed.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != liquidglass.EventDragStart || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.GlobalX != 100 || e0.GlobalY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.GlobalX, e0.GlobalY)
	}

	e1 := received[1]
	if e1.Type != liquidglass.EventSettle || e1.PanelX != 30 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store liquidglass.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e liquidglass.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e liquidglass.InteractionEvent) {
		count2++
	})

	store.EmitEvent(liquidglass.InteractionEvent{Type: liquidglass.EventDrag})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestAttachBridgesGlass(t *testing.T) {
	world := donburi.NewWorld()
	host := liquidglass.NewHost(800, 600)
	host.SetEntityStore(NewDonburiStore(world))

	g, err := host.NewGlass(panel.Config{
		Geometry:  panel.Geometry{Width: 200, Height: 100, Radius: 20, X: 50, Y: 50},
		Fragment:  field.Default,
		Draggable: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Destroy()

	entity := Attach(world, g)
	if g.EntityID == 0 {
		t.Fatal("Attach should set a non-zero EntityID")
	}
	if data := Glass.Get(world.Entry(entity)); data.Glass != g {
		t.Error("component should point at the glass")
	}

	var received []liquidglass.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e liquidglass.InteractionEvent) {
		received = append(received, e)
	})

	host.InjectDrag(100, 100, 160, 130, 3)
	for i := 0; i < 3; i++ {
		_ = host.Update()
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) == 0 {
		t.Fatal("expected bridged events")
	}
	for _, e := range received {
		if e.EntityID != g.EntityID {
			t.Errorf("event %v has EntityID %d, want %d", e.Type, e.EntityID, g.EntityID)
		}
	}
	if received[0].Type != liquidglass.EventPointerDown {
		t.Errorf("first event = %v, want pointerdown", received[0].Type)
	}
}
