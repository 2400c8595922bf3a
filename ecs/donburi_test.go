package ecs

import (
	"context"
	"testing"
	"time"

	"github.com/phanxgames/editscene"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

var itemQuery = donburi.NewQuery(filter.Contains(ItemComponent))

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

	var received []editscene.Event
	EditorEventType.Subscribe(world, func(w donburi.World, e editscene.Event) {
		received = append(received, e)
	})

	store.EmitEvent(editscene.Event{
		Type:   editscene.EventSelect,
		ItemID: 42,
		X:      100,
		Y:      200,
		Count:  1,
	})
	store.EmitEvent(editscene.Event{
		Type:    editscene.EventTaskFinished,
		Task:    editscene.TaskLoading,
		Count:   10,
		Aborted: true,
	})

	// Events are queued; process them.
	EditorEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != editscene.EventSelect || e0.ItemID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}

	e1 := received[1]
	if e1.Type != editscene.EventTaskFinished || !e1.Aborted || e1.Count != 10 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEventStore(t *testing.T) {
	world := donburi.NewWorld()
	var store editscene.EventStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	EditorEventType.Subscribe(world, func(w donburi.World, e editscene.Event) {
		count1++
	})
	EditorEventType.Subscribe(world, func(w donburi.World, e editscene.Event) {
		count2++
	})

	store.EmitEvent(editscene.Event{Type: editscene.EventDelete})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestMirrorStore_SceneGestures(t *testing.T) {
	world := donburi.NewWorld()
	scene := editscene.NewScene()
	scene.SetSize(800, 600)
	scene.SetEntityStore(NewMirrorStore(world))

	a := scene.AddRect(0, 0)
	scene.AddRect(100, 0)

	if n := itemQuery.Count(world); n != 2 {
		t.Fatalf("mirrored items = %d, want 2", n)
	}

	scene.HandlePointerPress(editscene.PointerEvent{X: 16, Y: 16, Button: editscene.MouseButtonLeft, Buttons: editscene.ButtonsLeft})
	if got := SelectedCount(world); got != 1 {
		t.Fatalf("selected entities = %d, want 1", got)
	}

	scene.HandlePointerMove(editscene.PointerEvent{X: 26, Y: 21, Buttons: editscene.ButtonsLeft})
	scene.HandlePointerRelease(editscene.PointerEvent{X: 26, Y: 21, Button: editscene.MouseButtonLeft})

	var moved ItemData
	selectedQuery.Each(world, func(e *donburi.Entry) {
		moved = *ItemComponent.Get(e)
	})
	if moved.ID != a.ID() || moved.X != 10 || moved.Y != 5 {
		t.Errorf("mirrored item = %+v, want ID %d at (10,5)", moved, a.ID())
	}

	scene.HandleKeyPress(editscene.KeyEvent{Key: editscene.KeyDelete})
	if n := itemQuery.Count(world); n != 1 {
		t.Errorf("mirrored items after delete = %d, want 1", n)
	}
	if got := SelectedCount(world); got != 0 {
		t.Errorf("selected entities after delete = %d, want 0", got)
	}
}

func TestMirrorStore_DepopulateDropsEntities(t *testing.T) {
	world := donburi.NewWorld()
	scene := editscene.NewScene()
	scene.SetSize(800, 600)
	scene.SetEntityStore(NewMirrorStore(world))

	a := scene.AddRect(0, 0)
	scene.AddRect(100, 0)
	scene.Select(a)
	if n := itemQuery.Count(world); n != 2 {
		t.Fatalf("mirrored items = %d, want 2", n)
	}

	if err := scene.StartDeInitAsync(); err != nil {
		t.Fatalf("StartDeInitAsync: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := scene.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if n := itemQuery.Count(world); n != 0 {
		t.Errorf("mirrored items after depopulate = %d, want 0", n)
	}
	if got := SelectedCount(world); got != 0 {
		t.Errorf("selected entities after depopulate = %d, want 0", got)
	}

	// The mirror keeps working for items added afterwards.
	scene.AddRect(0, 0)
	if n := itemQuery.Count(world); n != 1 {
		t.Errorf("mirrored items after re-add = %d, want 1", n)
	}
}
