package editscene

import (
	"iter"
	"maps"
	"slices"
)

// Select adds it to the selection.
func (s *Scene) Select(it *Item) {
	s.SetItemSelected(it, true)
}

// Deselect removes it from the selection.
func (s *Scene) Deselect(it *Item) {
	s.SetItemSelected(it, false)
}

// ToggleSelect flips the selection state of it.
func (s *Scene) ToggleSelect(it *Item) {
	s.SetItemSelected(it, !it.selected)
}

// SetItemSelected sets the selection flag of it and updates the selection
// set to match.
func (s *Scene) SetItemSelected(it *Item, selected bool) {
	if s.debug {
		debugCheckDisposed(it, "SetItemSelected")
	}
	it.selected = selected
	_, member := s.selection[it]
	switch {
	case selected && !member:
		s.selection[it] = struct{}{}
		s.emitItemEvent(EventSelect, it)
	case !selected && member:
		delete(s.selection, it)
		s.emitItemEvent(EventDeselect, it)
	}
}

// ClearSelection deselects every item and resets the selection rectangle.
func (s *Scene) ClearSelection() {
	for _, it := range s.SelectedItems() {
		it.selected = false
		delete(s.selection, it)
		s.emitItemEvent(EventDeselect, it)
	}
	s.selectionRect.Reset()
}

// Selection returns the selected items as an unordered sequence. The
// selection must not be changed while ranging over it.
func (s *Scene) Selection() iter.Seq[*Item] {
	return maps.Keys(s.selection)
}

// SelectedItems returns a snapshot of the selection in creation order.
func (s *Scene) SelectedItems() []*Item {
	items := slices.Collect(maps.Keys(s.selection))
	slices.SortFunc(items, compareItems)
	return items
}

// SelectionCount returns the number of selected items.
func (s *Scene) SelectionCount() int {
	return len(s.selection)
}

// IsSelected reports whether it is in the selection set.
func (s *Scene) IsSelected(it *Item) bool {
	_, ok := s.selection[it]
	return ok
}

// SelectionRect returns the cached bounding box of the selection. It is
// only recomputed by CaptureSelectionRect and grown by marquee selection.
func (s *Scene) SelectionRect() Rect[int64] {
	return s.selectionRect
}

// CaptureSelectionRect recomputes the selection rectangle as the union of
// all selected items. An empty selection yields the zero rectangle.
func (s *Scene) CaptureSelectionRect() {
	s.selectionRect.Reset()
	first := true
	for it := range s.selection {
		if first {
			s.selectionRect = it.AbsRect()
			first = false
			continue
		}
		s.selectionRect.ExpandByRect(it.AbsRect())
	}
}

// MoveSelection translates every selected item by (dx, dy) and re-indexes
// each one. The selection rectangle is translated, not recomputed.
func (s *Scene) MoveSelection(dx, dy int64) {
	if dx == 0 && dy == 0 {
		return
	}
	for it := range s.selection {
		it.MoveBy(dx, dy)
	}
	s.selectionRect.MoveBy(dx, dy)
	if len(s.selection) > 0 {
		s.emitEvent(Event{Type: EventMove, DeltaX: dx, DeltaY: dy, Count: len(s.selection)})
	}
}

// MoveStart begins a move gesture.
func (s *Scene) MoveStart() {
	s.input.moveInProcess = true
}

// MoveEnd ends a move gesture. The selection keeps its current position.
func (s *Scene) MoveEnd() {
	s.input.moveInProcess = false
}

// Moving reports whether a move gesture is in progress.
func (s *Scene) Moving() bool {
	return s.input.moveInProcess
}

// SelectOneAt picks the first top-level item touching the world point
// (x, y). With ctrl the item's selection is toggled; otherwise, if it is
// not already selected, it becomes the only selected item. Reports whether
// an item was hit.
func (s *Scene) SelectOneAt(x, y int64, ctrl bool) bool {
	caught := false
	s.root.Query(NewRect(x, y, 1, 1), func(it *Item) bool {
		if !it.IsTouching(x, y) {
			return true
		}
		caught = true
		if ctrl {
			s.ToggleSelect(it)
		} else if !it.selected {
			s.ClearSelection()
			s.Select(it)
		}
		return false
	})
	return caught
}

// DeleteItem removes it from the selection (with any selected
// descendants), unregisters it from its index and destroys it with its
// child subtree. No-op if it is nil or already destroyed.
func (s *Scene) DeleteItem(it *Item) {
	if it == nil {
		return
	}
	if it.disposed {
		s.log.Warn().Uint64("item", it.id).Msg("delete of destroyed item")
		return
	}
	if s.deselectSubtree(it) {
		s.selectionRect.Reset()
	}
	s.destroy(it)
}

// DeleteSelectedItems destroys every selected item and clears the
// selection.
func (s *Scene) DeleteSelectedItems() {
	for _, it := range s.SelectedItems() {
		s.destroy(it)
	}
	clear(s.selection)
	s.selectionRect.Reset()
}

// destroy unregisters and destroys one item.
func (s *Scene) destroy(it *Item) {
	if it.disposed {
		return
	}
	s.emitItemEvent(EventDelete, it)
	if it.index != nil {
		it.index.RemoveAndDestroy(it)
		return
	}
	it.dispose()
}

// deselectSubtree removes it and its descendants from the selection and
// reports whether any of them was selected.
func (s *Scene) deselectSubtree(it *Item) bool {
	removed := false
	if _, ok := s.selection[it]; ok {
		s.Deselect(it)
		removed = true
	}
	for _, child := range it.children.Items() {
		if s.deselectSubtree(child) {
			removed = true
		}
	}
	return removed
}
