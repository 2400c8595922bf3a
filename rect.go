package editscene

// Number is the coordinate type a Rect can be built over.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Right and Bottom are stored and
// kept equal to X+W and Y+H by every mutator, except the single-edge setters
// which recompute the paired dimension from the edge instead.
//
// The zero value is an empty rectangle at the origin.
type Rect[T Number] struct {
	x, y          T
	width, height T
	right, bottom T
}

// NewRect returns a rectangle at (x, y) with the given size.
func NewRect[T Number](x, y, w, h T) Rect[T] {
	return Rect[T]{x: x, y: y, width: w, height: h, right: x + w, bottom: y + h}
}

// RectFromCorners returns the rectangle spanned by two corner points. The
// corners may be given in any order.
func RectFromCorners[T Number](x1, y1, x2, y2 T) Rect[T] {
	var r Rect[T]
	r.SetCoords(min(x1, x2), min(y1, y2), max(x1, x2), max(y1, y2))
	return r
}

func abs[T Number](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func (r Rect[T]) X() T      { return r.x }
func (r Rect[T]) Y() T      { return r.y }
func (r Rect[T]) W() T      { return r.width }
func (r Rect[T]) H() T      { return r.height }
func (r Rect[T]) Left() T   { return r.x }
func (r Rect[T]) Top() T    { return r.y }
func (r Rect[T]) Right() T  { return r.right }
func (r Rect[T]) Bottom() T { return r.bottom }

// TopLeft returns the (x, y) corner.
func (r Rect[T]) TopLeft() (T, T) { return r.x, r.y }

// Empty reports whether the rectangle has no area.
func (r Rect[T]) Empty() bool { return r.width == 0 || r.height == 0 }

// Reset collapses the rectangle to the zero rectangle at the origin.
func (r *Rect[T]) Reset() {
	*r = Rect[T]{}
}

// SetX moves the left edge, keeping the width.
func (r *Rect[T]) SetX(x T) {
	r.x = x
	r.right = x + r.width
}

// SetY moves the top edge, keeping the height.
func (r *Rect[T]) SetY(y T) {
	r.y = y
	r.bottom = y + r.height
}

// SetW changes the width, keeping the left edge.
func (r *Rect[T]) SetW(w T) {
	r.width = w
	r.right = r.x + w
}

// SetH changes the height, keeping the top edge.
func (r *Rect[T]) SetH(h T) {
	r.height = h
	r.bottom = r.y + h
}

// SetLeft moves only the left edge; the width becomes the span to Right.
func (r *Rect[T]) SetLeft(left T) {
	r.x = left
	r.width = abs(r.right - r.x)
}

// SetRight moves only the right edge; the width becomes the span from Left.
func (r *Rect[T]) SetRight(right T) {
	r.right = right
	r.width = abs(r.right - r.x)
}

// SetTop moves only the top edge; the height becomes the span to Bottom.
func (r *Rect[T]) SetTop(top T) {
	r.y = top
	r.height = abs(r.bottom - r.y)
}

// SetBottom moves only the bottom edge; the height becomes the span from Top.
func (r *Rect[T]) SetBottom(bottom T) {
	r.bottom = bottom
	r.height = abs(r.bottom - r.y)
}

// ExpandLeft moves the left edge outward if left lies beyond it.
func (r *Rect[T]) ExpandLeft(left T) {
	if left < r.x {
		r.SetLeft(left)
	}
}

// ExpandRight moves the right edge outward if right lies beyond it.
func (r *Rect[T]) ExpandRight(right T) {
	if right > r.right {
		r.SetRight(right)
	}
}

// ExpandTop moves the top edge outward if top lies beyond it.
func (r *Rect[T]) ExpandTop(top T) {
	if top < r.y {
		r.SetTop(top)
	}
}

// ExpandBottom moves the bottom edge outward if bottom lies beyond it.
func (r *Rect[T]) ExpandBottom(bottom T) {
	if bottom > r.bottom {
		r.SetBottom(bottom)
	}
}

// ExpandByRect grows r to the union bounding box of r and other.
func (r *Rect[T]) ExpandByRect(other Rect[T]) {
	r.ExpandLeft(other.x)
	r.ExpandRight(other.right)
	r.ExpandTop(other.y)
	r.ExpandBottom(other.bottom)
}

// SetPos moves the rectangle so its top-left corner is at (x, y).
func (r *Rect[T]) SetPos(x, y T) {
	r.x = x
	r.y = y
	r.right = x + r.width
	r.bottom = y + r.height
}

// MoveBy translates the rectangle by (dx, dy).
func (r *Rect[T]) MoveBy(dx, dy T) {
	r.SetPos(r.x+dx, r.y+dy)
}

// SetRect replaces position and size.
func (r *Rect[T]) SetRect(x, y, w, h T) {
	*r = NewRect(x, y, w, h)
}

// SetCoords replaces all four edges. Width and height are taken as the
// absolute span so inverted corner pairs still yield a non-negative size.
func (r *Rect[T]) SetCoords(left, top, right, bottom T) {
	r.x = left
	r.y = top
	r.right = right
	r.bottom = bottom
	r.width = abs(right - left)
	r.height = abs(bottom - top)
}

// Intersects reports whether r and other overlap. Rectangles whose edges
// are up to one unit apart are considered intersecting, so pixel-adjacent
// rectangles touch.
func (r Rect[T]) Intersects(other Rect[T]) bool {
	return r.x <= other.right+1 &&
		r.right+1 >= other.x &&
		r.y <= other.bottom+1 &&
		r.bottom+1 >= other.y
}

// ContainsPoint reports whether (x, y) touches r, with the same one-unit
// tolerance on the right and bottom edges as Intersects.
func (r Rect[T]) ContainsPoint(x, y T) bool {
	return r.x <= x && x <= r.right+1 &&
		r.y <= y && y <= r.bottom+1
}

// ConvertRect converts a rectangle between coordinate types.
func ConvertRect[T, U Number](r Rect[T]) Rect[U] {
	return Rect[U]{
		x: U(r.x), y: U(r.y),
		width: U(r.width), height: U(r.height),
		right: U(r.right), bottom: U(r.bottom),
	}
}
