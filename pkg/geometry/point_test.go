package geometry

import "testing"

func TestPoint_Operations(t *testing.T) {
	p := Point{1, 1}
	q := Point{4, 5}

	t.Run("VectorTo", func(t *testing.T) {
		if got := p.VectorTo(q); !got.Eq(Vector{3, 4}) {
			t.Errorf("VectorTo = %v; want <3, 4>", got)
		}
	})

	t.Run("Add", func(t *testing.T) {
		if got := p.Add(Vector{3, 4}); !got.Eq(q) {
			t.Errorf("Add = %v; want %v", got, q)
		}
	})

	t.Run("Distance", func(t *testing.T) {
		if got := p.DistanceTo(q); got != 5 {
			t.Errorf("DistanceTo = %v; want 5", got)
		}
		if got := p.DistanceSquaredTo(q); got != 25 {
			t.Errorf("DistanceSquaredTo = %v; want 25", got)
		}
	})

	t.Run("String", func(t *testing.T) {
		if got := (Point{1.234, 5.678}).String(); got != "(1.23, 5.68)" {
			t.Errorf("String = %q", got)
		}
	})
}

func TestCentroid(t *testing.T) {
	got := Centroid(Point{0, 0}, Point{10, 0}, Point{10, 10}, Point{0, 10})
	if !got.Eq(Point{5, 5}) {
		t.Errorf("Centroid = %v; want (5, 5)", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Centroid() of nothing should panic")
		}
	}()
	Centroid()
}
