// Package editscene is an interactive 2D scene editor surface for
// [Ebitengine].
//
// A [Scene] displays a large collection of axis-aligned rectangular
// [Item]s, optionally nested, kept in an R-tree backed [Index] so that
// hit tests and viewport queries stay fast over tens of thousands of items.
// On top of the index it implements point and marquee selection, dragging
// the selection, camera pan and zoom, continuous key-driven panning, and
// background bulk population and teardown that never blocks the surface.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and
// drives the scene:
//
//	scene := editscene.NewScene()
//	scene.StartInitAsync()
//	editscene.Run(scene, editscene.RunConfig{
//		Title: "Editor", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *editscene.Scene }
//
//	func (g *Game) Update() error         { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { g.scene.SetSize(w, h); return w, h }
//
// Hosts that deliver their own events call the handlers instead:
// [Scene.HandlePointerPress], [Scene.HandlePointerMove],
// [Scene.HandlePointerRelease], [Scene.HandleWheel], [Scene.HandleKeyPress],
// [Scene.HandleKeyRelease] and [Scene.HandleFocusLost], plus [Scene.Tick]
// for timers.
//
// # Geometry
//
// Items are keyed by their position rectangle, relative to their parent or
// absolute for top-level items. Touching is edge-inclusive with a one-unit
// tolerance, so pixel-adjacent items are hit by point clicks. Every
// geometry change goes through [Item.SetPos], [Item.MoveBy] or
// [Item.SetRect], which re-index the item.
//
// # Background tasks
//
// [Scene.StartInitAsync] and [Scene.StartDeInitAsync] hand the root index
// to a worker goroutine. While it runs the scene is busy: input is
// ignored and [Scene.Draw] shows a busy message. The result is collected
// by [Scene.Tick] or [Scene.Wait]. [Scene.RequestClose] implements the
// accept, defer and ignore close negotiation.
//
// # Scripting and ECS
//
// Input can be injected with [Scene.InjectClick], [Scene.InjectDrag] and
// friends, or replayed from a JSON or YAML script with [LoadTestScript].
// [Scene.Screenshot] queues a PNG capture of the next frame.
// Editor events are forwarded to an [EventStore]; the editscene/ecs module
// adapts them to [Donburi].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package editscene
