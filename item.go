package editscene

import "sync/atomic"

// itemIDCounter is atomic: background population creates items off the
// interactive goroutine.
var itemIDCounter atomic.Uint64

func nextItemID() uint64 {
	return itemIDCounter.Add(1)
}

// Item is a rectangular scene element. Its identity is its pointer. The
// position rectangle is relative to the parent item, or absolute for items
// without a parent. Children live in the item's own child index.
type Item struct {
	// Name is an optional label used in debug output.
	Name string
	// UserData is free for the embedding application.
	UserData any

	id       uint64
	rect     Rect[int64]
	selected bool

	scene    *Scene // non-owning
	parent   *Item  // non-owning
	index    *Index // index currently holding this item, if any
	children *Index

	disposed bool
}

// NewItem creates an unindexed item with the given parent-relative (or
// absolute) rectangle.
func NewItem(x, y, w, h int64) *Item {
	it := &Item{
		id:   nextItemID(),
		rect: NewRect(x, y, w, h),
	}
	it.children = newChildIndex(it)
	return it
}

// ID returns the item's creation sequence number. IDs increase
// monotonically and order query results.
func (i *Item) ID() uint64 { return i.id }

// Rect returns the item's position rectangle in its container's space.
func (i *Item) Rect() Rect[int64] { return i.rect }

func (i *Item) X() int64      { return i.rect.X() }
func (i *Item) Y() int64      { return i.rect.Y() }
func (i *Item) W() int64      { return i.rect.W() }
func (i *Item) H() int64      { return i.rect.H() }
func (i *Item) Left() int64   { return i.rect.Left() }
func (i *Item) Top() int64    { return i.rect.Top() }
func (i *Item) Right() int64  { return i.rect.Right() }
func (i *Item) Bottom() int64 { return i.rect.Bottom() }

// XAbs returns the absolute left edge, resolved through the parent chain.
func (i *Item) XAbs() int64 {
	if i.parent == nil {
		return i.rect.X()
	}
	return i.parent.XAbs() + i.rect.X()
}

// YAbs returns the absolute top edge, resolved through the parent chain.
func (i *Item) YAbs() int64 {
	if i.parent == nil {
		return i.rect.Y()
	}
	return i.parent.YAbs() + i.rect.Y()
}

func (i *Item) LeftAbs() int64   { return i.XAbs() }
func (i *Item) TopAbs() int64    { return i.YAbs() }
func (i *Item) RightAbs() int64  { return i.XAbs() + i.rect.W() }
func (i *Item) BottomAbs() int64 { return i.YAbs() + i.rect.H() }

// AbsRect returns the item's rectangle in world space.
func (i *Item) AbsRect() Rect[int64] {
	if i.parent == nil {
		return i.rect
	}
	return NewRect(i.XAbs(), i.YAbs(), i.rect.W(), i.rect.H())
}

// Depth returns the number of ancestors.
func (i *Item) Depth() int {
	d := 0
	for p := i.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Selected reports the item's selection flag.
func (i *Item) Selected() bool { return i.selected }

// SetSelected selects or deselects the item through its scene so the
// scene's selection set stays in step with the flag.
func (i *Item) SetSelected(selected bool) {
	if i.scene != nil {
		i.scene.SetItemSelected(i, selected)
		return
	}
	i.selected = selected
}

// Scene returns the owning scene, or nil.
func (i *Item) Scene() *Scene { return i.scene }

// Parent returns the parent item, or nil for a top-level item.
func (i *Item) Parent() *Item { return i.parent }

// Index returns the index currently holding the item, or nil.
func (i *Item) Index() *Index { return i.index }

// IsDisposed returns true if the item has been destroyed.
func (i *Item) IsDisposed() bool { return i.disposed }

// --- Geometry mutation ---

// SetPos moves the item and re-indexes it in its container.
func (i *Item) SetPos(x, y int64) {
	i.rect.SetPos(x, y)
	i.reindex()
}

// MoveBy translates the item and re-indexes it in its container.
func (i *Item) MoveBy(dx, dy int64) {
	i.rect.MoveBy(dx, dy)
	i.reindex()
}

// SetRect replaces the item's rectangle and re-indexes it.
func (i *Item) SetRect(x, y, w, h int64) {
	i.rect.SetRect(x, y, w, h)
	i.reindex()
}

func (i *Item) reindex() {
	if i.index != nil {
		i.index.Update(i)
	}
}

// --- Hit testing ---

// IsTouching reports whether the world point (x, y) touches the item. The
// right and bottom edges carry the same one-unit tolerance as index
// queries.
func (i *Item) IsTouching(x, y int64) bool {
	return i.AbsRect().ContainsPoint(x, y)
}

// IsTouchingRect reports whether the world rectangle r touches the item,
// using the same predicate as Index.Query.
func (i *Item) IsTouchingRect(r Rect[int64]) bool {
	return i.AbsRect().Intersects(r)
}

// --- Hierarchy ---

// AddChild makes child a child of i. The child's rectangle is interpreted
// relative to i from now on. If child is indexed elsewhere it is removed
// from there first. Panics if child is nil or an ancestor of i.
func (i *Item) AddChild(child *Item) {
	if child == nil {
		panic("editscene: cannot add nil child")
	}
	if i.debug() {
		debugCheckDisposed(i, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, i) {
		panic("editscene: adding child would create a cycle")
	}
	if child.index != nil {
		child.index.Remove(child)
	}
	child.parent = i
	if child.scene == nil {
		child.scene = i.scene
	}
	i.children.Insert(child)
	if i.debug() {
		debugCheckTreeDepth(child)
		debugCheckChildCount(i)
	}
}

// NewChild creates a child item at the parent-relative rectangle.
func (i *Item) NewChild(x, y, w, h int64) *Item {
	child := NewItem(x, y, w, h)
	child.scene = i.scene
	i.AddChild(child)
	return child
}

// RemoveChild detaches child from i without destroying it.
// Panics if child's parent is not i.
func (i *Item) RemoveChild(child *Item) {
	if child.parent != i {
		panic("editscene: child's parent is not this item")
	}
	i.children.Remove(child)
	child.parent = nil
}

// RemoveFromParent detaches the item from its parent.
// No-op if the item has no parent.
func (i *Item) RemoveFromParent() {
	if i.parent == nil {
		return
	}
	i.parent.RemoveChild(i)
}

// Children returns the children in creation order.
func (i *Item) Children() []*Item {
	return i.children.Items()
}

// NumChildren returns the number of direct children.
func (i *Item) NumChildren() int {
	return i.children.Len()
}

// ChildIndex returns the item's child index.
func (i *Item) ChildIndex() *Index {
	return i.children
}

// QueryChildren calls fn for every direct child whose world rectangle
// touches the world-space zone. Iteration stops if fn returns false.
func (i *Item) QueryChildren(zone Rect[int64], fn func(*Item) bool) {
	if i.children.Empty() {
		return
	}
	local := zone
	local.MoveBy(-i.XAbs(), -i.YAbs())
	i.children.Query(local, fn)
}

// --- Disposal ---

// dispose destroys the child subtree, then detaches the item. Callers
// remove the item from its index first; Index.RemoveAndDestroy and
// Scene.DeleteItem do both.
func (i *Item) dispose() {
	if i.disposed {
		return
	}
	i.disposed = true
	i.children.ClearAndDestroy()
	i.parent = nil
	i.index = nil
	i.scene = nil
	i.UserData = nil
}

func (i *Item) debug() bool {
	return i.scene != nil && i.scene.debug
}

// isAncestor reports whether candidate is item or one of its ancestors.
func isAncestor(candidate, item *Item) bool {
	for p := item; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
