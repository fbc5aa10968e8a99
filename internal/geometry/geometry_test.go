package geometry

import "testing"

func TestPanelDropHeaderWins(t *testing.T) {
	target := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	header := Rect{X: 0, Y: 0, Width: 100, Height: 20}

	got := PanelDrop(Point{X: 50, Y: 10}, target, &header)
	if got != TabInto {
		t.Fatalf("PanelDrop in header = %v, want %v", got, TabInto)
	}
}

func TestPanelDropEdgeDistance(t *testing.T) {
	target := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name    string
		pointer Point
		want    Position
	}{
		{"near top", Point{X: 50, Y: 5}, Top},
		{"near right", Point{X: 95, Y: 50}, Right},
		{"near bottom", Point{X: 50, Y: 95}, Bottom},
		{"near left", Point{X: 5, Y: 50}, Left},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PanelDrop(tc.pointer, target, nil)
			if got != tc.want {
				t.Errorf("PanelDrop(%v) = %v, want %v", tc.pointer, got, tc.want)
			}
		})
	}
}

func TestPanelDropTieBreakOrder(t *testing.T) {
	target := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	// Dead centre: all four edge distances tie at 50.
	got := PanelDrop(Point{X: 50, Y: 50}, target, nil)
	if got != Top {
		t.Fatalf("PanelDrop tie-break = %v, want %v (top first)", got, Top)
	}
}

func TestSingleTabDropThirds(t *testing.T) {
	target := Rect{X: 0, Y: 0, Width: 90, Height: 20}

	tests := []struct {
		x    float64
		want Position
	}{
		{10, TabBefore},
		{45, TabInto},
		{80, TabAfter},
	}

	for _, tc := range tests {
		got := SingleTabDrop(Point{X: tc.x, Y: 10}, target, nil)
		if got != tc.want {
			t.Errorf("SingleTabDrop(x=%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestSingleTabDropContainerEdge(t *testing.T) {
	target := Rect{X: 100, Y: 100, Width: 90, Height: 20}
	container := Rect{X: 0, Y: 0, Width: 500, Height: 500}

	// Far from tab centre on the Y axis and within 20px of the
	// container's top edge.
	got := SingleTabDrop(Point{X: 145, Y: 10}, target, &container)
	if got != Top {
		t.Fatalf("SingleTabDrop near container top = %v, want %v", got, Top)
	}
}

func TestTabHeaderDropOuterEdges(t *testing.T) {
	tabs := []Rect{
		{X: 0, Y: 0, Width: 30, Height: 20},
		{X: 30, Y: 0, Width: 30, Height: 20},
		{X: 60, Y: 0, Width: 30, Height: 20},
	}

	pos, idx := TabHeaderDrop(-5, tabs)
	if pos != TabBefore || idx != 0 {
		t.Errorf("left of first tab = (%v,%v), want (tab-before,0)", pos, idx)
	}

	pos, idx = TabHeaderDrop(95, tabs)
	if pos != TabAfter || idx != 2 {
		t.Errorf("right of last tab = (%v,%v), want (tab-after,2)", pos, idx)
	}
}

func TestTabHeaderDropLastTabRightThird(t *testing.T) {
	tabs := []Rect{
		{X: 0, Y: 0, Width: 30, Height: 20},
		{X: 30, Y: 0, Width: 30, Height: 20},
	}

	// Right third of the last tab must be tab-after on that tab, not
	// tab-before on a non-existent next tab.
	pos, idx := TabHeaderDrop(55, tabs)
	if pos != TabAfter || idx != 1 {
		t.Fatalf("right third of last tab = (%v,%v), want (tab-after,1)", pos, idx)
	}
}

func TestFileRowDropFileIsBinary(t *testing.T) {
	tests := []struct {
		y    float64
		want FileDropZone
	}{
		{5, Before},
		{15, After},
	}
	for _, tc := range tests {
		got := FileRowDrop(tc.y, 0, 20, false)
		if got != tc.want {
			t.Errorf("FileRowDrop(file, y=%v) = %v, want %v", tc.y, got, tc.want)
		}
	}
}

func TestFileRowDropFolderThirds(t *testing.T) {
	tests := []struct {
		y    float64
		want FileDropZone
	}{
		{2, Before},
		{10, Inside},
		{18, After},
	}
	for _, tc := range tests {
		got := FileRowDrop(tc.y, 0, 20, true)
		if got != tc.want {
			t.Errorf("FileRowDrop(folder, y=%v) = %v, want %v", tc.y, got, tc.want)
		}
	}
}
