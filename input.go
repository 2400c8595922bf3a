package editscene

import (
	"math"
)

// --- Events ---

// PointerEvent is a pointer press, move or release on the surface.
type PointerEvent struct {
	// X and Y are the surface position in pixels.
	X, Y float64
	// Button is the button that changed. MouseButtonNone for motion.
	Button MouseButton
	// Buttons are the buttons held after the event.
	Buttons   MouseButtons
	Modifiers KeyModifiers
}

// WheelEvent is a scroll wheel step. Positive Delta scrolls away from the
// user (up).
type WheelEvent struct {
	X, Y      float64
	Delta     float64
	Modifiers KeyModifiers
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key        Key
	Modifiers  KeyModifiers
	AutoRepeat bool
}

// --- Input state machine ---

// inputState tracks one scene's gesture state. World positions are in
// world units; last is the raw surface position used for drag deltas.
type inputState struct {
	begin Point // world position at left press
	old   Point // world position at the last move
	end   Point // world position at left release

	lastX, lastY float64

	moved         bool // pointer moved since the left press
	ignoreMove    bool // swallow moves until release
	ignoreRelease bool // swallow the next left release
	moveInProcess bool
	rectSelect    bool
}

// RectSelecting reports whether a marquee selection is in progress.
func (s *Scene) RectSelecting() bool {
	return s.input.rectSelect
}

// MarqueeRect returns the current marquee rectangle in world space.
func (s *Scene) MarqueeRect() Rect[int64] {
	in := &s.input
	return RectFromCorners(in.begin.X, in.begin.Y, in.old.X, in.old.Y)
}

func (s *Scene) setCursor(x, y float64) {
	s.cursor = cursorPos{x: x, y: y, known: true}
}

// HandlePointerPress runs the press protocol. A middle press creates an
// item at the cursor. A left press picks the item under the cursor and
// starts dragging the selection, or starts a marquee when nothing is
// selected or shift is held. Ctrl without shift only toggles and swallows
// the rest of the gesture.
func (s *Scene) HandlePointerPress(e PointerEvent) {
	if s.Busy() {
		return
	}
	s.setCursor(e.X, e.Y)
	shift, ctrl := e.Modifiers.shift(), e.Modifiers.ctrl()

	if e.Button == MouseButtonMiddle || e.Buttons.Has(ButtonsMiddle) {
		pos := s.MapToWorld(e.X, e.Y)
		it := s.AddRect(pos.X, pos.Y)
		if shift {
			addNestedChildren(it)
		}
		s.requestRedraw()
		return
	}

	if e.Button != MouseButtonLeft {
		return
	}

	in := &s.input
	pos := s.MapToWorld(e.X, e.Y)
	in.begin = pos
	in.old = pos
	in.lastX, in.lastY = e.X, e.Y
	in.moved = false

	if !shift {
		caught := s.SelectOneAt(pos.X, pos.Y, ctrl)
		if !caught && !ctrl {
			s.ClearSelection()
		} else if caught {
			s.MoveStart()
			s.CaptureSelectionRect()
		}
	}

	if (len(s.selection) == 0 && !ctrl) || shift {
		in.rectSelect = true
	}

	if ctrl && !shift {
		in.ignoreMove = true
		in.ignoreRelease = true
	}
	s.requestRedraw()
	s.afterGesture()
}

// HandlePointerMove runs the move protocol. While the left button is held
// the selection follows the raw pixel delta, unless a marquee is being
// drawn, in which case only the marquee extent changes.
func (s *Scene) HandlePointerMove(e PointerEvent) {
	if s.Busy() {
		return
	}
	s.setCursor(e.X, e.Y)
	if !e.Buttons.Has(ButtonsLeft) {
		return
	}

	in := &s.input
	if in.ignoreMove {
		return
	}
	pos := s.MapToWorld(e.X, e.Y)

	if !in.rectSelect {
		dx := int64(math.Round(e.X) - math.Round(in.lastX))
		dy := int64(math.Round(e.Y) - math.Round(in.lastY))
		s.MoveSelection(dx, dy)
	}

	in.lastX, in.lastY = e.X, e.Y
	in.old = pos
	in.moved = true
	s.requestRedraw()
}

// HandlePointerRelease runs the release protocol: it ends a drag, collapses
// a plain click onto the item under the cursor, or applies a marquee.
func (s *Scene) HandlePointerRelease(e PointerEvent) {
	if s.Busy() {
		return
	}
	s.setCursor(e.X, e.Y)
	shift, ctrl := e.Modifiers.shift(), e.Modifiers.ctrl()
	in := &s.input
	pos := s.MapToWorld(e.X, e.Y)

	if in.moveInProcess {
		s.MoveEnd()
		s.requestRedraw()
	}

	if e.Button == MouseButtonRight && e.Buttons == 0 {
		if s.OnContextMenu != nil {
			s.OnContextMenu(e.X, e.Y)
		}
		return
	}

	if e.Button != MouseButtonLeft {
		return
	}

	skip := in.ignoreRelease
	in.ignoreMove = false
	in.ignoreRelease = false
	if skip {
		s.requestRedraw()
		s.afterGesture()
		return
	}

	in.end = pos

	switch {
	case !shift && !ctrl && len(s.selection) > 0 && !in.moved:
		s.ClearSelection()
		s.SelectOneAt(in.old.X, in.old.Y, false)
		s.requestRedraw()
	case in.rectSelect:
		s.applyMarquee(shift && ctrl)
		in.rectSelect = false
		s.requestRedraw()
	}
	s.afterGesture()
}

// applyMarquee selects (or with toggle, flips) every top-level item
// touching the marquee and grows the selection rectangle by each item left
// selected. The first item in query order decides whether the selection
// rectangle restarts from it.
func (s *Scene) applyMarquee(toggle bool) {
	in := &s.input
	zone := RectFromCorners(in.begin.X, in.begin.Y, in.end.X, in.end.Y)

	s.queryBuf = s.root.QueryList(zone, s.queryBuf[:0])
	defer clear(s.queryBuf)
	if len(s.queryBuf) == 0 {
		return
	}

	if first := s.queryBuf[0]; first.IsTouchingRect(zone) {
		doSelect := true
		if toggle {
			doSelect = !first.selected
		}
		if doSelect {
			s.selectionRect = first.AbsRect()
		}
	}

	for _, it := range s.queryBuf {
		if !it.IsTouchingRect(zone) {
			continue
		}
		if toggle {
			s.ToggleSelect(it)
		} else {
			s.Select(it)
		}
		if it.selected {
			s.selectionRect.ExpandByRect(it.AbsRect())
		}
	}
}

// HandleWheel runs the wheel protocol: alt zooms around the cursor, ctrl
// pans horizontally, otherwise the view pans vertically. Shift speeds
// panning up.
func (s *Scene) HandleWheel(e WheelEvent) {
	if s.Busy() || e.Delta == 0 {
		return
	}
	s.setCursor(e.X, e.Y)
	mods := e.Modifiers

	if mods.alt() {
		if e.Delta > 0 {
			s.AddZoom(s.cfg.ZoomStep)
		} else {
			s.AddZoom(-s.cfg.ZoomStep)
		}
		return
	}

	delta := s.cfg.ScrollStep
	if e.Delta > 0 {
		delta = -delta
	}
	if mods.shift() {
		delta *= s.cfg.FastScrollMultiplier
	}
	if mods.ctrl() {
		s.MoveCamera(delta, 0)
	} else {
		s.MoveCamera(0, delta)
	}
}

// HandleKeyPress runs the key press protocol. Ctrl+arrow nudges the
// selection by one unit; a plain arrow starts continuous panning; shift
// makes panning faster; Delete destroys the selection.
func (s *Scene) HandleKeyPress(e KeyEvent) {
	if s.Busy() {
		return
	}
	ctrl := e.Modifiers.ctrl()

	switch e.Key {
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		if ctrl {
			dx, dy := arrowDelta(e.Key)
			s.MoveSelection(dx, dy)
			s.requestRedraw()
			return
		}
		if e.AutoRepeat {
			return
		}
		s.setMoverKey(e.Key, true)
	case KeyShift:
		if e.AutoRepeat {
			return
		}
		s.mover.setFaster(true)
	case KeyDelete:
		s.DeleteSelectedItems()
		s.requestRedraw()
		s.afterGesture()
	}
}

// HandleKeyRelease runs the key release protocol. Escape clears the
// selection and cancels a marquee; items already dragged stay where they
// are.
func (s *Scene) HandleKeyRelease(e KeyEvent) {
	if s.Busy() {
		return
	}
	switch e.Key {
	case KeyEscape:
		s.MoveEnd()
		s.ClearSelection()
		s.input.rectSelect = false
		s.requestRedraw()
		s.afterGesture()
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		if e.AutoRepeat {
			return
		}
		s.setMoverKey(e.Key, false)
	case KeyShift:
		if e.AutoRepeat {
			return
		}
		s.mover.setFaster(false)
	}
}

// HandleFocusLost releases every held pan key and stops the pan timer.
func (s *Scene) HandleFocusLost() {
	s.mover.reset()
}

func (s *Scene) setMoverKey(k Key, down bool) {
	switch k {
	case KeyLeft:
		s.mover.setLeft(down)
	case KeyRight:
		s.mover.setRight(down)
	case KeyUp:
		s.mover.setUp(down)
	case KeyDown:
		s.mover.setDown(down)
	}
}

func arrowDelta(k Key) (dx, dy int64) {
	switch k {
	case KeyLeft:
		return -1, 0
	case KeyRight:
		return 1, 0
	case KeyUp:
		return 0, -1
	case KeyDown:
		return 0, 1
	}
	return 0, 0
}

// addNestedChildren attaches four 20x20 children around it and four 10x10
// grandchildren under the last child.
func addNestedChildren(it *Item) {
	var last *Item
	for _, off := range [][2]int64{{-30, -30}, {-30, 30}, {30, -30}, {30, 30}} {
		last = it.NewChild(off[0], off[1], 20, 20)
	}
	for _, off := range [][2]int64{{-10, -10}, {-10, 10}, {10, -10}, {10, 10}} {
		last.NewChild(off[0], off[1], 10, 10)
	}
}

// afterGesture reports selection changes and, in debug mode, verifies the
// selection invariants.
func (s *Scene) afterGesture() {
	s.notifySelection()
	if s.debug {
		s.debugCheckSelection()
	}
}
