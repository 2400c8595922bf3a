package editscene

// syntheticKind identifies an injected input event.
type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthWheel
	synthKeyPress
	synthKeyRelease
)

// syntheticEvent represents a single injected input event. Positions are
// surface coordinates and are mapped to world coordinates by the handlers,
// identical to real input.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	button MouseButton
	delta  float64
	key    Key
	mods   KeyModifiers
}

// InjectPress queues a left-button press at the given surface coordinates.
// Injected events are consumed one per Tick.
func (s *Scene) InjectPress(x, y float64) {
	s.InjectButtonPress(x, y, MouseButtonLeft, 0)
}

// InjectMove queues a pointer move with the currently injected buttons
// held. Use it between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.InjectMoveMods(x, y, 0)
}

// InjectMoveMods is InjectMove with modifiers held.
func (s *Scene) InjectMoveMods(x, y float64, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y, mods: mods})
}

// InjectRelease queues a left-button release.
func (s *Scene) InjectRelease(x, y float64) {
	s.InjectButtonRelease(x, y, MouseButtonLeft, 0)
}

// InjectButtonPress queues a press of any button with modifiers.
func (s *Scene) InjectButtonPress(x, y float64, button MouseButton, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: synthPress, x: x, y: y, button: button, mods: mods,
	})
}

// InjectButtonRelease queues a release of any button with modifiers.
func (s *Scene) InjectButtonRelease(x, y float64, button MouseButton, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: synthRelease, x: x, y: y, button: button, mods: mods,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two ticks.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate ticks, a move onto
// (toX, toY) and the release there. Minimum frames is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	s.InjectButtonDrag(fromX, fromY, toX, toY, frames, MouseButtonLeft, 0)
}

// InjectButtonDrag is InjectDrag with any button. mods are held for the
// whole gesture, press, moves and release alike.
func (s *Scene) InjectButtonDrag(fromX, fromY, toX, toY float64, frames int, button MouseButton, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	s.InjectButtonPress(fromX, fromY, button, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMoveMods(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, mods)
	}
	s.InjectMoveMods(toX, toY, mods)
	s.InjectButtonRelease(toX, toY, button, mods)
}

// InjectWheel queues a wheel step at the given coordinates.
func (s *Scene) InjectWheel(x, y, delta float64, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: synthWheel, x: x, y: y, delta: delta, mods: mods,
	})
}

// InjectKey queues a key press followed by its release.
func (s *Scene) InjectKey(key Key, mods KeyModifiers) {
	s.InjectKeyPress(key, mods)
	s.InjectKeyRelease(key, mods)
}

// InjectKeyPress queues a key press.
func (s *Scene) InjectKeyPress(key Key, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthKeyPress, key: key, mods: mods})
}

// InjectKeyRelease queues a key release.
func (s *Scene) InjectKeyRelease(key Key, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthKeyRelease, key: key, mods: mods})
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the matching handler. Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		s.injectHeld |= buttonBit(evt.button)
		s.HandlePointerPress(PointerEvent{
			X: evt.x, Y: evt.y, Button: evt.button, Buttons: s.injectHeld, Modifiers: evt.mods,
		})
	case synthMove:
		s.HandlePointerMove(PointerEvent{
			X: evt.x, Y: evt.y, Buttons: s.injectHeld, Modifiers: evt.mods,
		})
	case synthRelease:
		s.injectHeld &^= buttonBit(evt.button)
		s.HandlePointerRelease(PointerEvent{
			X: evt.x, Y: evt.y, Button: evt.button, Buttons: s.injectHeld, Modifiers: evt.mods,
		})
	case synthWheel:
		s.HandleWheel(WheelEvent{X: evt.x, Y: evt.y, Delta: evt.delta, Modifiers: evt.mods})
	case synthKeyPress:
		s.HandleKeyPress(KeyEvent{Key: evt.key, Modifiers: evt.mods})
	case synthKeyRelease:
		s.HandleKeyRelease(KeyEvent{Key: evt.key, Modifiers: evt.mods})
	}
	return true
}

// buttonBit returns the held-buttons bit of b.
func buttonBit(b MouseButton) MouseButtons {
	switch b {
	case MouseButtonLeft:
		return ButtonsLeft
	case MouseButtonRight:
		return ButtonsRight
	case MouseButtonMiddle:
		return ButtonsMiddle
	}
	return 0
}
