// Package ecs provides ECS adapters for editscene.
package ecs

import (
	"github.com/phanxgames/editscene"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// EditorEventType is the Donburi event type for editscene editor events.
// Subscribe to this in your ECS systems to receive selection, move,
// delete and task events.
var EditorEventType = events.NewEventType[editscene.Event]()

// ItemData mirrors a top-level item's identity and last known world
// rectangle.
type ItemData struct {
	ID         uint64
	X, Y, W, H int64
}

var (
	// ItemComponent is attached to every mirrored item entity.
	ItemComponent = donburi.NewComponentType[ItemData]()
	// SelectedTag marks mirrored items that are currently selected.
	SelectedTag = donburi.NewTag()

	selectedQuery = donburi.NewQuery(filter.Contains(ItemComponent, SelectedTag))
)

type donburiStore struct {
	world    donburi.World
	mirror   bool
	entities map[uint64]donburi.Entity
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Editor
// events are published to EditorEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) editscene.EventStore {
	return &donburiStore{world: world}
}

// NewMirrorStore is like NewDonburiStore but also keeps one entity per
// item created through the interactive surface: created on
// EventItemAdded, tagged with SelectedTag while selected and removed on
// EventDelete. All mirrored entities are dropped when a depopulation task
// finishes. Items inserted by background population are not mirrored.
func NewMirrorStore(world donburi.World) editscene.EventStore {
	return &donburiStore{world: world, mirror: true, entities: make(map[uint64]donburi.Entity)}
}

func (s *donburiStore) EmitEvent(event editscene.Event) {
	if s.mirror {
		s.apply(event)
	}
	EditorEventType.Publish(s.world, event)
}

func (s *donburiStore) apply(e editscene.Event) {
	switch e.Type {
	case editscene.EventItemAdded:
		ent := s.world.Create(ItemComponent)
		ItemComponent.SetValue(s.world.Entry(ent), ItemData{ID: e.ItemID, X: e.X, Y: e.Y, W: e.W, H: e.H})
		s.entities[e.ItemID] = ent
	case editscene.EventSelect, editscene.EventDeselect:
		entry := s.entry(e.ItemID)
		if entry == nil {
			return
		}
		ItemComponent.SetValue(entry, ItemData{ID: e.ItemID, X: e.X, Y: e.Y, W: e.W, H: e.H})
		switch {
		case e.Type == editscene.EventSelect && !entry.HasComponent(SelectedTag):
			entry.AddComponent(SelectedTag)
		case e.Type == editscene.EventDeselect && entry.HasComponent(SelectedTag):
			entry.RemoveComponent(SelectedTag)
		}
	case editscene.EventMove:
		selectedQuery.Each(s.world, func(entry *donburi.Entry) {
			d := ItemComponent.Get(entry)
			d.X += e.DeltaX
			d.Y += e.DeltaY
		})
	case editscene.EventDelete:
		if ent, ok := s.entities[e.ItemID]; ok {
			s.world.Remove(ent)
			delete(s.entities, e.ItemID)
		}
	case editscene.EventTaskFinished:
		// Depopulation destroys items without per-item delete events.
		if e.Task == editscene.TaskClosing {
			s.clear()
		}
	}
}

func (s *donburiStore) clear() {
	for id, ent := range s.entities {
		if s.world.Valid(ent) {
			s.world.Remove(ent)
		}
		delete(s.entities, id)
	}
}

func (s *donburiStore) entry(id uint64) *donburi.Entry {
	ent, ok := s.entities[id]
	if !ok || !s.world.Valid(ent) {
		return nil
	}
	return s.world.Entry(ent)
}

// SelectedCount returns the number of mirrored items tagged selected.
func SelectedCount(world donburi.World) int {
	return selectedQuery.Count(world)
}
