// Package ecs provides ECS adapters for editscene's editor event system.
//
// [NewDonburiStore] bridges editor events (item added, select, deselect,
// move, delete, task started and finished) into a [Donburi] world as typed
// events. Subscribe to [EditorEventType] in your ECS systems to receive
// them. [NewMirrorStore] additionally keeps an entity per interactively
// created item with an [ItemComponent] and a [SelectedTag].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
