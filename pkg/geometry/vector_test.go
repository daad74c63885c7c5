package geometry

import (
	"math"
	"math/rand/v2"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= 1e-7
}

func TestNewVectorPolar(t *testing.T) {
	tests := []struct {
		name   string
		length float64
		theta  float64
		want   Vector
	}{
		{"Zero length", 0, 0, Vector{0, 0}},
		{"Zero angle (X-axis)", 10, 0, Vector{10, 0}},
		{"90 degrees (Y-axis)", 10, math.Pi / 2, Vector{0, 10}},
		{"180 degrees (Negative X)", 10, math.Pi, Vector{-10, 0}},
		{"45 degrees", math.Sqrt(2), math.Pi / 4, Vector{1, 1}},
		{"Negative length flips", -2, 0, Vector{-2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorPolar(tt.length, tt.theta)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorPolar(%v, %v) = %v; want %v", tt.length, tt.theta, got, tt.want)
			}
		})
	}
}

func TestVector_String(t *testing.T) {
	v := Vector{1.234, 5.678}
	want := "<1.23, 5.68>"
	if got := v.String(); got != want {
		t.Errorf("Vector.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector{1, 2}
	v2 := Vector{3, 4}

	t.Run("Add", func(t *testing.T) {
		if got := v1.Add(v2); !got.Eq(Vector{4, 6}) {
			t.Errorf("%v.Add(%v) = %v", v1, v2, got)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		if got := v1.Sub(v2); !got.Eq(Vector{-2, -2}) {
			t.Errorf("%v.Sub(%v) = %v", v1, v2, got)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		if got := v1.Mul(2); !got.Eq(Vector{2, 4}) {
			t.Errorf("%v.Mul(2) = %v", v1, got)
		}
	})

	t.Run("Neg", func(t *testing.T) {
		if got := v1.Neg(); !got.Eq(Vector{-1, -2}) {
			t.Errorf("%v.Neg() = %v", v1, got)
		}
	})

	t.Run("Div", func(t *testing.T) {
		got, err := v1.Div(2)
		if err != nil {
			t.Fatalf("%v.Div(2) returned error %v", v1, err)
		}
		if !got.Eq(Vector{0.5, 1}) {
			t.Errorf("%v.Div(2) = %v", v1, got)
		}
	})

	t.Run("DivByZero", func(t *testing.T) {
		got, err := v1.Div(0)
		if err == nil {
			t.Errorf("%v.Div(0) should have returned an error, got %v", v1, got)
		}
		if !math.IsInf(got.DX, 0) || !math.IsInf(got.DY, 0) {
			t.Errorf("Div(0) should result in Inf components, got %v", got)
		}
	})

	t.Run("DotCross", func(t *testing.T) {
		x, y := Vector{1, 0}, Vector{0, 1}
		if got := x.Dot(y); got != 0 {
			t.Errorf("Dot orthogonal = %v; want 0", got)
		}
		if got := x.Cross(y); got != 1 {
			t.Errorf("Cross X,Y = %v; want 1", got)
		}
	})
}

func TestVector_Angle(t *testing.T) {
	tests := []struct {
		v    Vector
		want float64
	}{
		{Vector{1, 0}, 0},
		{Vector{0, 1}, math.Pi / 2},
		{Vector{-1, 0}, math.Pi},
		{Vector{0, -1}, 3 * math.Pi / 2},
		{Vector{1, -1}, 7 * math.Pi / 4},
		{Vector{0, 0}, 0},
	}
	for _, tt := range tests {
		got := tt.v.Angle()
		if !floatEquals(got, tt.want) {
			t.Errorf("%v.Angle() = %v; want %v", tt.v, got, tt.want)
		}
		if got < 0 || got >= TwoPi {
			t.Errorf("%v.Angle() = %v; outside [0, 2π)", tt.v, got)
		}
	}
}

func TestVector_AngleRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		v := Vector{rng.Float64()*200 - 100, rng.Float64()*200 - 100}
		got := NewVectorPolar(v.Len(), v.Angle())
		if !floatEquals(got.DX, v.DX) || !floatEquals(got.DY, v.DY) {
			t.Fatalf("round trip of %v gave %v", v, got)
		}
	}
}

func TestVector_WithAngleKeepsLength(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		v := Vector{rng.Float64()*50 - 25, rng.Float64()*50 - 25}
		theta := rng.Float64() * TwoPi
		got := v.WithAngle(theta)
		if !floatEquals(got.Len(), v.Len()) {
			t.Fatalf("%v.WithAngle(%v) length = %v; want %v", v, theta, got.Len(), v.Len())
		}
		if v.Len() > 1 && RadialDistance(got.Angle(), theta) > 1e-7 {
			t.Fatalf("%v.WithAngle(%v) angle = %v", v, theta, got.Angle())
		}
	}
}

func TestVector_WithLength(t *testing.T) {
	v := Vector{3, 4}

	t.Run("KeepsAngle", func(t *testing.T) {
		got := v.WithLength(10)
		if !got.Eq(Vector{6, 8}) {
			t.Errorf("WithLength(10) = %v; want <6, 8>", got)
		}
	})

	t.Run("NegativeFlips", func(t *testing.T) {
		got := v.WithLength(-5)
		if !got.Eq(Vector{-3, -4}) {
			t.Errorf("WithLength(-5) = %v; want <-3, -4>", got)
		}
	})

	t.Run("ZeroVector", func(t *testing.T) {
		got := Vector{}.WithLength(2)
		if !got.Eq(Vector{2, 0}) {
			t.Errorf("zero.WithLength(2) = %v; want <2, 0>", got)
		}
	})
}

func TestVector_Normalize(t *testing.T) {
	got := Vector{3, 4}.Normalize()
	if !got.Eq(Vector{0.6, 0.8}) {
		t.Errorf("Normalize = %v; want <0.6, 0.8>", got)
	}
	if zero := (Vector{}).Normalize(); !zero.Eq(Vector{}) {
		t.Errorf("Normalize(0,0) = %v; want zero", zero)
	}
}

func TestAverage(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		v := Vector{2.5, -7}
		if got := Average(v, v, v, v); !got.Eq(v) {
			t.Errorf("Average of identical vectors = %v; want %v", got, v)
		}
	})

	t.Run("Opposite", func(t *testing.T) {
		v := Vector{4, -1}
		if got := Average(v, v.Neg()); !got.Eq(Vector{}) {
			t.Errorf("Average(v, -v) = %v; want zero", got)
		}
	})

	t.Run("Mean", func(t *testing.T) {
		if got := Average(Vector{0, 0}, Vector{2, 4}, Vector{4, 2}); !got.Eq(Vector{2, 2}) {
			t.Errorf("Average = %v; want <2, 2>", got)
		}
	})

	t.Run("EmptyPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Average() of nothing should panic")
			}
		}()
		Average()
	})
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{TwoPi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{-1e-18, 0},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if !floatEquals(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v; want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= TwoPi {
			t.Errorf("NormalizeAngle(%v) = %v; outside [0, 2π)", tt.in, got)
		}
	}
}

func TestRadialDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"Same", 1, 1, 0},
		{"Quarter", 0, math.Pi / 2, math.Pi / 2},
		{"Across zero", 0.1, TwoPi - 0.1, 0.2},
		{"Opposite", 0, math.Pi, math.Pi},
		{"Symmetric", math.Pi / 2, 0, math.Pi / 2},
		{"Unnormalized", -math.Pi / 4, math.Pi / 4, math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RadialDistance(tt.a, tt.b); !floatEquals(got, tt.want) {
				t.Errorf("RadialDistance(%v, %v) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
