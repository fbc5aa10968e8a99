// Package geometry implements the drag-drop position classifier shared
// by the dock tree and file tree managers: pure functions from pointer
// coordinates and target rectangles to a discrete drop intent.
package geometry

// Point is a pointer location in host-space pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in host-space pixels.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) left() float64   { return r.X }
func (r Rect) right() float64  { return r.X + r.Width }
func (r Rect) top() float64    { return r.Y }
func (r Rect) bottom() float64 { return r.Y + r.Height }

func (r Rect) center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// contains reports whether p lies within r, edges inclusive.
func (r Rect) contains(p Point) bool {
	return p.X >= r.left() && p.X <= r.right() && p.Y >= r.top() && p.Y <= r.bottom()
}

// Position is a discrete drop intent.
type Position string

const (
	Top       Position = "top"
	Right     Position = "right"
	Bottom    Position = "bottom"
	Left      Position = "left"
	TabBefore Position = "tab-before"
	TabAfter  Position = "tab-after"
	TabInto   Position = "tab-into"
)

// PanelDrop classifies a drop onto a dock panel. If header is non-nil
// and pointer lies inside it, the result is TabInto. Otherwise the
// pointer is attributed to the nearest edge of target, breaking ties
// in the order top, bottom, left, right.
func PanelDrop(pointer Point, target Rect, header *Rect) Position {
	if header != nil && header.contains(pointer) {
		return TabInto
	}

	distTop := pointer.Y - target.top()
	distBottom := target.bottom() - pointer.Y
	distLeft := pointer.X - target.left()
	distRight := target.right() - pointer.X

	type edge struct {
		pos  Position
		dist float64
	}
	edges := []edge{
		{Top, distTop},
		{Bottom, distBottom},
		{Left, distLeft},
		{Right, distRight},
	}

	best := edges[0]
	for _, e := range edges[1:] {
		if e.dist < best.dist {
			best = e
		}
	}
	return best.pos
}

// SingleTabDrop classifies a drop onto a lone tab. If container is
// non-nil and pointer is more than 30px from target's centre on
// either axis while within 20px of a container edge, that edge wins.
// Otherwise target is partitioned horizontally into thirds.
func SingleTabDrop(pointer Point, target Rect, container *Rect) Position {
	if container != nil {
		c := target.center()
		farFromCenter := abs(pointer.X-c.X) > 30 || abs(pointer.Y-c.Y) > 30
		if farFromCenter {
			const edgeMargin = 20
			if pointer.X-container.left() <= edgeMargin {
				return Left
			}
			if container.right()-pointer.X <= edgeMargin {
				return Right
			}
			if pointer.Y-container.top() <= edgeMargin {
				return Top
			}
			if container.bottom()-pointer.Y <= edgeMargin {
				return Bottom
			}
		}
	}

	return thirds(pointer.X, target.left(), target.Width)
}

// thirds partitions [left, left+width) into three equal bands and
// reports which one x falls in.
func thirds(x, left, width float64) Position {
	third := width / 3
	switch {
	case x < left+third:
		return TabBefore
	case x < left+2*third:
		return TabInto
	default:
		return TabAfter
	}
}

// TabHeaderDrop classifies a drop over an ordered row of tab
// rectangles. Returns the resulting position and the index of the
// tab the position is relative to.
func TabHeaderDrop(pointerX float64, tabs []Rect) (pos Position, targetIndex int) {
	if len(tabs) == 0 {
		return TabInto, 0
	}

	if pointerX < tabs[0].left() {
		return TabBefore, 0
	}

	last := len(tabs) - 1
	if pointerX > tabs[last].right() {
		return TabAfter, last
	}

	for i, t := range tabs {
		if pointerX < t.left() || pointerX > t.right() {
			continue
		}
		p := thirds(pointerX, t.left(), t.Width)
		switch p {
		case TabBefore:
			if i == 0 {
				return TabBefore, 0
			}
			// Pointer is in the left third of a non-first tab: treat
			// the midpoint between the previous tab and this one as
			// the tie-break between "after prev" and "before this".
			prev := tabs[i-1]
			mid := (prev.right() + t.left()) / 2
			if pointerX < mid {
				return TabAfter, i - 1
			}
			return TabBefore, i
		case TabAfter:
			if i == last {
				return TabAfter, last
			}
			next := tabs[i+1]
			mid := (t.right() + next.left()) / 2
			if pointerX > mid {
				return TabBefore, i + 1
			}
			return TabAfter, i
		default:
			return TabInto, i
		}
	}

	// Pointer fell in a gap between tabs that the loop above didn't
	// resolve (shouldn't normally happen with contiguous tabs).
	return TabAfter, last
}

// FileDropZone is a file-tree row drop intent: the file-tree variant
// lacks an "inside" zone for plain files.
type FileDropZone string

const (
	Before FileDropZone = "before"
	After  FileDropZone = "after"
	Inside FileDropZone = "inside"
)

// FileRowDrop classifies a drop onto a file-tree row given the
// pointer's y relative to the row's top and the row's height. Files
// split 50/50 into before/after; folders split 30/40/30 into
// before/inside/after.
func FileRowDrop(pointerY, rowTop, rowHeight float64, isFolder bool) FileDropZone {
	rel := pointerY - rowTop
	if rowHeight <= 0 {
		rowHeight = 1
	}
	frac := rel / rowHeight

	if !isFolder {
		if frac < 0.5 {
			return Before
		}
		return After
	}

	switch {
	case frac < 0.3:
		return Before
	case frac < 0.7:
		return Inside
	default:
		return After
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
