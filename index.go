package editscene

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/tidwall/rtree"
)

// Index is a mutable bounding-box index over items. Each item is keyed by
// its position rectangle in the index's coordinate space: absolute for the
// scene's root index, parent-relative for an item's child index.
//
// An R-tree answers region queries; a membership map mirrors it so the
// index can enumerate and bulk-destroy without a spatial predicate. An item
// is in the map if and only if it is in the tree.
//
// Index is not safe for concurrent use. The scene guarantees that only one
// of the interactive context or a background task touches it at a time.
type Index struct {
	tree    rtree.RTreeG[*Item]
	members map[*Item]Rect[int64] // key the item was last indexed under
	owner   *Item                 // nil for the scene root

	hits     []*Item // reused query buffer
	querying bool
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{members: make(map[*Item]Rect[int64])}
}

func newChildIndex(owner *Item) *Index {
	x := NewIndex()
	x.owner = owner
	return x
}

// box converts an index key into R-tree bounds.
func box(r Rect[int64]) (lo, hi [2]float64) {
	return [2]float64{float64(r.Left()), float64(r.Top())},
		[2]float64{float64(r.Right()), float64(r.Bottom())}
}

// Insert adds it to the index. Returns false if it is nil, disposed or
// already indexed here.
func (x *Index) Insert(it *Item) bool {
	if it == nil || it.disposed {
		return false
	}
	if _, ok := x.members[it]; ok {
		return false
	}
	key := it.rect
	lo, hi := box(key)
	x.tree.Insert(lo, hi, it)
	x.members[it] = key
	it.index = x
	return true
}

// Update re-buckets it under its current rectangle. It must be called after
// every geometry change of an indexed item; Item.MoveBy and Item.SetPos do
// so themselves. Returns false if it is not indexed here.
func (x *Index) Update(it *Item) bool {
	if it == nil {
		return false
	}
	old, ok := x.members[it]
	if !ok {
		return false
	}
	key := it.rect
	if old == key {
		return true
	}
	lo, hi := box(old)
	x.tree.Delete(lo, hi, it)
	lo, hi = box(key)
	x.tree.Insert(lo, hi, it)
	x.members[it] = key
	return true
}

// Remove unregisters it without destroying it. Returns false if it is not
// indexed here.
func (x *Index) Remove(it *Item) bool {
	if it == nil {
		return false
	}
	key, ok := x.members[it]
	if !ok {
		return false
	}
	lo, hi := box(key)
	x.tree.Delete(lo, hi, it)
	delete(x.members, it)
	if it.index == x {
		it.index = nil
	}
	return true
}

// RemoveAndDestroy unregisters it and destroys it together with its child
// subtree. No-op if it is nil.
func (x *Index) RemoveAndDestroy(it *Item) {
	if it == nil {
		return
	}
	x.Remove(it)
	it.dispose()
}

// Clear unregisters every item without destroying any of them.
func (x *Index) Clear() {
	for it := range x.members {
		if it.index == x {
			it.index = nil
		}
	}
	x.tree.Clear()
	x.members = make(map[*Item]Rect[int64])
}

// ClearAndDestroy snapshots the membership, clears the index, then destroys
// every snapshotted item. Clearing first means no destroy step can observe
// or mutate a half-torn-down index.
func (x *Index) ClearAndDestroy() {
	snapshot := x.Items()
	x.Clear()
	for _, it := range snapshot {
		it.dispose()
	}
}

// Query calls fn for every item whose rectangle touches zone, in creation
// order. Touching is edge-inclusive with a one-unit tolerance, so an item
// sharing an edge with zone, or one pixel away from it, is reported.
// Iteration stops early if fn returns false.
func (x *Index) Query(zone Rect[int64], fn func(*Item) bool) {
	if len(x.members) == 0 {
		return
	}
	lo, hi := box(zone)
	lo[0]--
	lo[1]--
	hi[0]++
	hi[1]++

	// Nested queries on the same index (from inside fn) get their own buffer.
	var hits []*Item
	nested := x.querying
	if !nested {
		hits = x.hits[:0]
		x.querying = true
		defer func() {
			clear(x.hits)
			x.querying = false
		}()
	}
	x.tree.Search(lo, hi, func(_, _ [2]float64, it *Item) bool {
		hits = append(hits, it)
		return true
	})
	slices.SortFunc(hits, compareItems)
	if !nested {
		x.hits = hits
	}

	for _, it := range hits {
		if !fn(it) {
			break
		}
	}
}

// QueryList appends every item touching zone to buf, in creation order.
func (x *Index) QueryList(zone Rect[int64], buf []*Item) []*Item {
	x.Query(zone, func(it *Item) bool {
		buf = append(buf, it)
		return true
	})
	return buf
}

// AllItems returns the full membership as an unordered sequence. The index
// must not be mutated while the sequence is being ranged over.
func (x *Index) AllItems() iter.Seq[*Item] {
	return maps.Keys(x.members)
}

// Items returns a snapshot of the membership in creation order.
func (x *Index) Items() []*Item {
	items := slices.Collect(maps.Keys(x.members))
	slices.SortFunc(items, compareItems)
	return items
}

// Contains reports whether it is indexed here.
func (x *Index) Contains(it *Item) bool {
	_, ok := x.members[it]
	return ok
}

// Len returns the number of indexed items.
func (x *Index) Len() int {
	return len(x.members)
}

// Empty reports whether the index holds no items.
func (x *Index) Empty() bool {
	return len(x.members) == 0
}

// Owner returns the item whose children this index holds, or nil for a
// scene root index.
func (x *Index) Owner() *Item {
	return x.owner
}

func compareItems(a, b *Item) int {
	return cmp.Compare(a.id, b.id)
}
