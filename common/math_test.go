package common

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	Identity(m)
	for i, v := range m {
		want := float32(0)
		if i == 0 || i == 5 || i == 10 || i == 15 {
			want = 1
		}
		if v != want {
			t.Errorf("Identity()[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMul4Identity(t *testing.T) {
	a := []float32{
		2, 0, 0, 0,
		0, 3, 0, 0,
		0, 0, 4, 0,
		5, 6, 7, 1,
	}
	id := make([]float32, 16)
	Identity(id)

	out := make([]float32, 16)
	Mul4(out, a, id)
	for i := range a {
		if !approxEqual(out[i], a[i]) {
			t.Errorf("Mul4(a, I)[%d] = %v, want %v", i, out[i], a[i])
		}
	}

	Mul4(out, id, a)
	for i := range a {
		if !approxEqual(out[i], a[i]) {
			t.Errorf("Mul4(I, a)[%d] = %v, want %v", i, out[i], a[i])
		}
	}
}

func TestMul4TranslateThenScale(t *testing.T) {
	// scale * translate applied to a point translates first, then scales.
	scale := make([]float32, 16)
	Identity(scale)
	scale[0], scale[5] = 2, 2

	translate := make([]float32, 16)
	Identity(translate)
	translate[12], translate[13] = 3, 4

	out := make([]float32, 16)
	Mul4(out, scale, translate)

	got := TransformVec4(out, [4]float32{1, 1, 0, 1})
	want := [4]float32{8, 10, 0, 1}
	if got != want {
		t.Errorf("scale*translate applied to (1,1,0,1) = %v, want %v", got, want)
	}
}

func TestMul4InPlace(t *testing.T) {
	// Mul4 must tolerate out aliasing one of its inputs.
	a := []float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		2, 0, 0, 1,
	}
	b := []float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 3, 0, 1,
	}
	want := make([]float32, 16)
	Mul4(want, a, b)

	Mul4(a, a, b)
	for i := range want {
		if !approxEqual(a[i], want[i]) {
			t.Errorf("in-place Mul4[%d] = %v, want %v", i, a[i], want[i])
		}
	}
}

func TestOrthographic(t *testing.T) {
	m := make([]float32, 16)
	Orthographic(m, -2, 2, -1, 1, 0, 10)

	tests := []struct {
		name string
		in   [4]float32
		want [4]float32
	}{
		{"center", [4]float32{0, 0, 0, 1}, [4]float32{0, 0, 0, 1}},
		{"right-top", [4]float32{2, 1, 0, 1}, [4]float32{1, 1, 0, 1}},
		{"left-bottom", [4]float32{-2, -1, 0, 1}, [4]float32{-1, -1, 0, 1}},
		{"far plane", [4]float32{0, 0, 10, 1}, [4]float32{0, 0, 1, 1}},
		{"mid depth", [4]float32{0, 0, 5, 1}, [4]float32{0, 0, 0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformVec4(m, tt.in)
			for i := range got {
				if !approxEqual(got[i], tt.want[i]) {
					t.Errorf("Orthographic * %v = %v, want %v", tt.in, got, tt.want)
					break
				}
			}
		})
	}
}

func TestBuildSpriteMatrix(t *testing.T) {
	m := make([]float32, 16)

	t.Run("translation in fourth column", func(t *testing.T) {
		BuildSpriteMatrix(m, 3, -2, 0.5, 0, 1, 1)
		got := TransformVec4(m, [4]float32{0, 0, 0, 1})
		want := [4]float32{3, -2, 0.5, 1}
		if got != want {
			t.Errorf("origin transformed to %v, want %v", got, want)
		}
	})

	t.Run("scale", func(t *testing.T) {
		BuildSpriteMatrix(m, 0, 0, 0, 0, 2, 3)
		got := TransformVec4(m, [4]float32{1, 1, 0, 1})
		want := [4]float32{2, 3, 0, 1}
		if got != want {
			t.Errorf("(1,1) scaled to %v, want %v", got, want)
		}
	})

	t.Run("quarter turn", func(t *testing.T) {
		BuildSpriteMatrix(m, 0, 0, 0, float32(math.Pi/2), 1, 1)
		got := TransformVec4(m, [4]float32{1, 0, 0, 1})
		want := [4]float32{0, 1, 0, 1}
		for i := range got {
			if !approxEqual(got[i], want[i]) {
				t.Errorf("(1,0) rotated to %v, want %v", got, want)
				break
			}
		}
	})

	t.Run("layer preserved under rotation and scale", func(t *testing.T) {
		BuildSpriteMatrix(m, 5, 5, 0.25, 1.3, 4, 4)
		got := TransformVec4(m, [4]float32{0, 0, 0, 1})
		if !approxEqual(got[2], 0.25) {
			t.Errorf("layer z = %v, want 0.25", got[2])
		}
	})
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0, 2.0}
	b := SliceToBytes(data)
	if len(b) != 8 {
		t.Fatalf("SliceToBytes length = %d, want 8", len(b))
	}
	// 1.0 as little-endian float32 bits
	if b[0] != 0x00 || b[1] != 0x00 || b[2] != 0x80 || b[3] != 0x3f {
		t.Errorf("SliceToBytes first element bytes = % x, want 00 00 80 3f", b[:4])
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Error("SliceToBytes(nil) should return nil")
	}
}
