package editscene

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrBusy is returned when a background task is started while another one
// is still running.
var ErrBusy = errors.New("editscene: scene is busy")

// TaskKind identifies the background task holding the scene.
type TaskKind uint8

const (
	TaskNone TaskKind = iota
	TaskLoading
	TaskClosing
)

func (k TaskKind) String() string {
	switch k {
	case TaskLoading:
		return "loading"
	case TaskClosing:
		return "closing"
	}
	return "none"
}

// taskResult is handed back by the worker when it finishes.
type taskResult struct {
	kind    TaskKind
	count   int // items inserted (loading) or destroyed (closing)
	aborted bool
}

// taskState is the busy lock shared by the interactive goroutine and the
// single background worker. kind is only touched on the interactive
// goroutine; the worker reports through done and reads abort.
type taskState struct {
	kind    TaskKind
	message string
	done    chan taskResult
	abort   atomic.Bool

	// progress, when set, is called by the worker after every insertion
	// with the running count. Tests use it to abort at a known point.
	progress func(n int)
}

func newTaskState() taskState {
	return taskState{done: make(chan taskResult, 1)}
}

// Busy reports whether a background task owns the root index. While busy
// every input handler is a no-op and Draw shows BusyMessage.
func (s *Scene) Busy() bool {
	return s.task.kind != TaskNone
}

// BusyTask returns the kind of the running background task.
func (s *Scene) BusyTask() TaskKind {
	return s.task.kind
}

// BusyMessage returns the text shown while busy.
func (s *Scene) BusyMessage() string {
	return s.task.message
}

// Abort asks a running population task to stop before its next insertion.
// It does not preempt work in flight. Safe to call from any goroutine.
func (s *Scene) Abort() {
	s.task.abort.Store(true)
}

// Aborted reports whether the abort flag is set.
func (s *Scene) Aborted() bool {
	return s.task.abort.Load()
}

// beginTask takes the busy lock on the interactive goroutine. Held keys
// and half-finished gestures are dropped since their releases would be
// swallowed while busy.
func (s *Scene) beginTask(kind TaskKind, message string) {
	s.task.kind = kind
	s.task.message = message
	s.mover.reset()
	s.input = inputState{}
	s.requestRedraw()
	s.log.Debug().Stringer("task", kind).Msg("task started")
	s.emitEvent(Event{Type: EventTaskStarted, Task: kind})
}

// StartInitAsync fills the root index with the configured grid on a
// background goroutine. Cells are visited row by row; every other cell is
// shifted down by the grid offset. The worker checks the abort flag before
// each insertion and stops early if it is set. Returns ErrBusy if a task
// is already running.
func (s *Scene) StartInitAsync() error {
	if s.Busy() {
		return ErrBusy
	}
	s.task.abort.Store(false)
	s.beginTask(TaskLoading, "Loading...")

	root := s.root
	grid := s.cfg.Grid
	size := s.cfg.ItemSize
	abort := &s.task.abort
	progress := s.task.progress
	done := s.task.done

	go func() {
		res := taskResult{kind: TaskLoading}
		offset := false
	fill:
		for y := grid.MinY; y < grid.MaxY; y += grid.Step {
			for x := grid.MinX; x < grid.MaxX; x += grid.Step {
				if abort.Load() {
					res.aborted = true
					break fill
				}
				dy := int64(0)
				if offset {
					dy = grid.Offset
				}
				root.Insert(s.NewItem(x, y+dy, size, size))
				offset = !offset
				res.count++
				if progress != nil {
					progress(res.count)
				}
			}
		}
		done <- res
	}()
	return nil
}

// StartDeInitAsync destroys every item of the root index on a background
// goroutine. When it finishes OnClose is called on the interactive
// goroutine. Returns ErrBusy if a task is already running.
func (s *Scene) StartDeInitAsync() error {
	if s.Busy() {
		return ErrBusy
	}
	s.ClearSelection()
	s.beginTask(TaskClosing, "Closing...")

	root := s.root
	done := s.task.done

	go func() {
		n := root.Len()
		root.ClearAndDestroy()
		done <- taskResult{kind: TaskClosing, count: n}
	}()
	return nil
}

// drainTasks hands back a finished task without blocking.
func (s *Scene) drainTasks() {
	if !s.Busy() {
		return
	}
	select {
	case res := <-s.task.done:
		s.finishTask(res)
	default:
	}
}

// Wait blocks until the running background task finishes or ctx is done.
// It returns nil immediately when the scene is not busy.
func (s *Scene) Wait(ctx context.Context) error {
	if !s.Busy() {
		return nil
	}
	select {
	case res := <-s.task.done:
		s.finishTask(res)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// finishTask releases the busy lock on the interactive goroutine.
func (s *Scene) finishTask(res taskResult) {
	s.task.kind = TaskNone
	s.task.message = ""
	s.requestRedraw()

	s.log.Debug().
		Stringer("task", res.kind).
		Int("count", res.count).
		Bool("aborted", res.aborted).
		Msg("task finished")
	s.emitEvent(Event{Type: EventTaskFinished, Task: res.kind, Count: res.count, Aborted: res.aborted})

	if res.kind == TaskClosing && s.OnClose != nil {
		s.OnClose()
	}
}

// RequestClose negotiates closing the surface. It sets the abort flag,
// then:
//   - while depopulating, the request is ignored;
//   - while populating, it blocks until the worker stops, then continues;
//   - if items remain, depopulation starts and the close is deferred;
//   - otherwise the close is accepted.
//
// After a deferred close, OnClose fires once depopulation is done and the
// caller should ask again.
func (s *Scene) RequestClose() CloseResult {
	s.task.abort.Store(true)

	if s.Busy() {
		if s.task.kind == TaskClosing {
			return CloseIgnore
		}
		s.finishTask(<-s.task.done)
	}

	if !s.root.Empty() {
		s.log.Debug().Int("items", s.root.Len()).Msg("close deferred")
		if err := s.StartDeInitAsync(); err != nil {
			s.log.Error().Err(err).Msg("start depopulation")
			return CloseIgnore
		}
		return CloseDefer
	}
	s.log.Debug().Msg("close accepted")
	return CloseAccept
}
