package editscene

import "time"

// moverKeys is the set of held keys driving continuous panning.
type moverKeys uint8

const (
	moverLeft moverKeys = 1 << iota
	moverRight
	moverUp
	moverDown
	moverFaster

	moverDirections = moverLeft | moverRight | moverUp | moverDown
)

// mover pans the camera on a fixed interval while any arrow key is held.
// It is driven from Tick on the interactive goroutine, never from its own
// goroutine, so it cannot race with input handling.
type mover struct {
	keys moverKeys

	speedX, speedY int64

	step         int64
	interval     time.Duration
	fastInterval time.Duration

	active  bool
	current time.Duration // interval in effect while active
	elapsed time.Duration // time since the last fire
}

func newMover(step int64, interval, fastInterval time.Duration) mover {
	return mover{step: step, interval: interval, fastInterval: fastInterval}
}

func (m *mover) set(k moverKeys, down bool) {
	if down {
		m.keys |= k
	} else {
		m.keys &^= k
	}
	m.updTimer()
}

func (m *mover) key(k moverKeys) bool {
	return m.keys&k != 0
}

func (m *mover) noKeys() bool {
	return m.keys&moverDirections == 0
}

func (m *mover) setLeft(down bool)   { m.set(moverLeft, down) }
func (m *mover) setRight(down bool)  { m.set(moverRight, down) }
func (m *mover) setUp(down bool)     { m.set(moverUp, down) }
func (m *mover) setDown(down bool)   { m.set(moverDown, down) }
func (m *mover) setFaster(down bool) { m.set(moverFaster, down) }

// reset releases every key and stops the timer.
func (m *mover) reset() {
	m.keys = 0
	m.updTimer()
}

// updTimer recomputes the pan velocity and starts, retunes or stops the
// timer. Opposite directions held together cancel out.
func (m *mover) updTimer() {
	m.speedX, m.speedY = 0, 0
	if m.key(moverLeft) != m.key(moverRight) {
		m.speedX = m.step
		if m.key(moverLeft) {
			m.speedX = -m.step
		}
	}
	if m.key(moverUp) != m.key(moverDown) {
		m.speedY = m.step
		if m.key(moverUp) {
			m.speedY = -m.step
		}
	}

	if m.noKeys() {
		m.active = false
		m.elapsed = 0
		return
	}
	m.current = m.interval
	if m.key(moverFaster) {
		m.current = m.fastInterval
	}
	if !m.active {
		m.active = true
		m.elapsed = 0
	}
}

// advance adds dt to the timer and returns how many times it fired.
func (m *mover) advance(dt time.Duration) int {
	if !m.active || m.current <= 0 {
		return 0
	}
	m.elapsed += dt
	fires := int(m.elapsed / m.current)
	m.elapsed -= time.Duration(fires) * m.current
	return fires
}

// Panning reports whether the continuous pan timer is running.
func (s *Scene) Panning() bool {
	return s.mover.active
}

// tickMover fires the pan timer for the elapsed time.
func (s *Scene) tickMover(dt time.Duration) {
	fires := s.mover.advance(dt)
	for range fires {
		s.MoveCamera(s.mover.speedX, s.mover.speedY)
	}
}
