package editscene

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// debugStats holds per-frame timing and command metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	queryTime    time.Duration
	submitTime   time.Duration
	commandCount int
	itemCount    int
}

// debugLog logs timing and command stats.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug().
		Dur("query", stats.queryTime).
		Dur("submit", stats.submitTime).
		Dur("total", stats.queryTime+stats.submitTime).
		Int("commands", stats.commandCount).
		Int("visible", stats.itemCount).
		Msg("frame")
}

// newDebugLogger returns a console logger on stderr at debug level.
func newDebugLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Str("component", "editscene").Logger()
}

// debugCheckDisposed panics with a descriptive message when a destroyed
// item is used in a tree or selection operation. Callers only run it in
// debug mode.
func debugCheckDisposed(it *Item, op string) {
	if it.disposed {
		panic(fmt.Sprintf("editscene debug: %s on destroyed item %q (ID was %d)", op, it.Name, it.id))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(it *Item) {
	if depth := it.Depth() + 1; depth > debugMaxTreeDepth && it.scene != nil {
		it.scene.log.Warn().
			Int("depth", depth).
			Int("threshold", debugMaxTreeDepth).
			Str("item", it.Name).
			Msg("tree depth exceeds threshold")
	}
}

// debugCheckChildCount warns if an item has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(it *Item) {
	if n := it.children.Len(); n > debugMaxChildCount && it.scene != nil {
		it.scene.log.Warn().
			Int("children", n).
			Int("threshold", debugMaxChildCount).
			Str("item", it.Name).
			Msg("child count exceeds threshold")
	}
}

// checkSelection returns a description of every selection invariant
// violation: members not flagged selected, destroyed members, and members
// no longer reachable from the root index.
func (s *Scene) checkSelection() []string {
	var problems []string
	for _, it := range s.SelectedItems() {
		switch {
		case it.disposed:
			problems = append(problems, fmt.Sprintf("item %d is destroyed but selected", it.id))
		case !it.selected:
			problems = append(problems, fmt.Sprintf("item %d is in the selection but not flagged", it.id))
		case it.index == nil:
			problems = append(problems, fmt.Sprintf("item %d is selected but not indexed", it.id))
		}
	}
	return problems
}

// debugCheckSelection logs every selection invariant violation.
func (s *Scene) debugCheckSelection() {
	for _, p := range s.checkSelection() {
		s.log.Error().Msg(p)
	}
}

// countItemCommands counts the item commands of a command list.
func countItemCommands(commands []RenderCommand) int {
	n := 0
	for i := range commands {
		if commands[i].Type == CommandItem {
			n++
		}
	}
	return n
}
