package editscene

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps between screen pixels and world units. X and Y are the world
// position shown at the surface's top-left corner.
//
// Both directions round at every application rather than carrying
// fractional positions, so a round trip may be off by one unit at
// non-integer zoom factors.
type Camera struct {
	X, Y int64

	// MinZoom is the floor applied by SetZoom. There is no upper bound.
	MinZoom float64

	zoom        float64
	scrollTween *scrollAnim
}

func newCamera(minZoom float64) Camera {
	return Camera{zoom: 1.0, MinZoom: minZoom}
}

// Zoom returns the current zoom factor (1.0 = one world unit per pixel).
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// setZoom stores z clamped to MinZoom.
func (c *Camera) setZoom(z float64) {
	if z <= c.MinZoom {
		z = c.MinZoom
	}
	c.zoom = z
}

// ScreenToWorld converts a surface position to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) Point {
	return Point{
		X: int64(math.Round(sx/c.zoom)) + c.X,
		Y: int64(math.Round(sy/c.zoom)) + c.Y,
	}
}

// WorldToScreen converts a world position to surface coordinates.
func (c *Camera) WorldToScreen(wx, wy int64) (sx, sy float64) {
	sx = math.Round(float64(wx-c.X) * c.zoom)
	sy = math.Round(float64(wy-c.Y) * c.zoom)
	return
}

// RectToScreen converts a world rectangle to a surface rectangle.
func (c *Camera) RectToScreen(r Rect[int64]) Rect[float64] {
	x, y := c.WorldToScreen(r.X(), r.Y())
	return NewRect(x, y,
		math.Round(float64(r.W())*c.zoom),
		math.Round(float64(r.H())*c.zoom))
}

// VisibleBounds returns the world rectangle covered by a surface of the
// given pixel size.
func (c *Camera) VisibleBounds(width, height int) Rect[int64] {
	return NewRect(c.X, c.Y,
		int64(float64(width)/c.zoom),
		int64(float64(height)/c.zoom))
}

// ScrollTo animates the camera's top-left to the given world position over
// duration seconds.
func (c *Camera) ScrollTo(x, y int64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// StopScroll cancels a running ScrollTo animation where it is.
func (c *Camera) StopScroll() {
	c.scrollTween = nil
}

// update advances the scroll animation and returns how far the camera moved.
func (c *Camera) update(dt float32) (dx, dy int64) {
	if c.scrollTween == nil {
		return 0, 0
	}
	prevX, prevY := c.X, c.Y
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = int64(math.Round(float64(val)))
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = int64(math.Round(float64(val)))
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
	return c.X - prevX, c.Y - prevY
}

// --- Scene camera control ---

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return &s.camera
}

// MapToWorld converts a surface position to world coordinates.
func (s *Scene) MapToWorld(sx, sy float64) Point {
	return s.camera.ScreenToWorld(sx, sy)
}

// Zoom returns the current zoom factor.
func (s *Scene) Zoom() float64 {
	return s.camera.zoom
}

// ZoomPercent returns the zoom factor as a percentage.
func (s *Scene) ZoomPercent() float64 {
	return s.camera.zoom * 100.0
}

// SetZoom changes the zoom factor, clamped to the camera's MinZoom, and
// re-anchors the camera so the world point under the cursor stays put. When
// the cursor is off the surface the surface center is used as the anchor.
func (s *Scene) SetZoom(zoom float64) {
	scr := s.cursor
	oldPos := s.MapToWorld(scr.x, scr.y)

	anchor := scr
	if !s.MouseOnScreen() {
		anchor = cursorPos{x: float64(s.width / 2), y: float64(s.height / 2), known: true}
	}
	anchorPos := s.MapToWorld(anchor.x, anchor.y)

	s.camera.setZoom(zoom)

	after := s.MapToWorld(anchor.x, anchor.y)
	s.camera.X -= after.X - anchorPos.X
	s.camera.Y -= after.Y - anchorPos.Y

	after = s.MapToWorld(scr.x, scr.y)
	s.moveCameraUpdMouse(after.X-oldPos.X, after.Y-oldPos.Y)
	s.requestRedraw()
}

// SetZoomPercent sets the zoom factor from a percentage.
func (s *Scene) SetZoomPercent(percent float64) {
	s.SetZoom(percent / 100.0)
}

// AddZoom adds delta to the zoom factor.
func (s *Scene) AddZoom(delta float64) {
	s.SetZoom(s.camera.zoom + delta)
}

// MultiplyZoom scales the zoom factor by factor.
func (s *Scene) MultiplyZoom(factor float64) {
	s.SetZoom(s.camera.zoom * factor)
}

// MoveCamera pans the camera by (dx, dy) world units. An active drag or
// marquee follows the camera so it stays under the cursor.
func (s *Scene) MoveCamera(dx, dy int64) {
	s.camera.X += dx
	s.camera.Y += dy
	s.moveCameraUpdMouse(dx, dy)
	s.requestRedraw()
}

// MoveCameraTo places the camera's top-left at the world position (x, y).
func (s *Scene) MoveCameraTo(x, y int64) {
	dx := x - s.camera.X
	dy := y - s.camera.Y
	s.MoveCamera(dx, dy)
}

// ScrollCameraTo animates the camera to (x, y) over duration seconds. The
// animation advances with Tick.
func (s *Scene) ScrollCameraTo(x, y int64, duration float32, easeFn ease.TweenFunc) {
	s.camera.ScrollTo(x, y, duration, easeFn)
}

// moveCameraUpdMouse keeps the gesture anchored to the cursor after the
// camera moved by (dx, dy): the marquee end and a dragged selection shift
// by the same amount.
func (s *Scene) moveCameraUpdMouse(dx, dy int64) {
	if dx == 0 && dy == 0 {
		return
	}
	in := &s.input
	if in.moveInProcess || in.rectSelect {
		in.old.X += dx
		in.old.Y += dy
		if in.moveInProcess {
			s.MoveSelection(dx, dy)
		}
	}
}

// OnScreen reports whether the surface position (x, y) lies on the surface.
func (s *Scene) OnScreen(x, y float64) bool {
	return x >= 0 && x < float64(s.width) && y >= 0 && y < float64(s.height)
}

// MouseOnScreen reports whether the last known cursor position lies on the
// surface.
func (s *Scene) MouseOnScreen() bool {
	return s.cursor.known && s.OnScreen(s.cursor.x, s.cursor.y)
}
