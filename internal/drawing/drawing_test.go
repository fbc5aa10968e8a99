package drawing

import "testing"

func TestRoundTrip(t *testing.T) {
	f := File{
		Strokes: []Stroke{
			{
				ID:     "s1",
				Points: []StrokePoint{{X: 1, Y: 2}, {X: 3, Y: 4}},
				Color:  "#ff0000",
				Width:  2.5,
			},
		},
	}

	data, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(got.Strokes) != 1 || got.Strokes[0].ID != "s1" || got.Strokes[0].Color != "#ff0000" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if len(got.Strokes[0].Points) != 2 || got.Strokes[0].Points[1].X != 3 {
		t.Fatalf("round-trip points mismatch: %+v", got.Strokes[0].Points)
	}
}

func TestUnmarshalInvalidJSON(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	if err == nil {
		t.Fatal("Unmarshal of invalid JSON returned no error")
	}
}
