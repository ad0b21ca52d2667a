package sprite

import (
	"math"
	"testing"

	"github.com/pixelforge/atlas2d/common"
	"github.com/pixelforge/atlas2d/engine/atlas"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestMatrixFromRowsRoundTrip(t *testing.T) {
	var m [16]float32
	for i := range m {
		m[i] = float32(i) * 0.5
	}
	rows := Rows(m)
	back := MatrixFromRows(rows[0], rows[1], rows[2], rows[3])
	if back != m {
		t.Errorf("round trip changed matrix: got %v, want %v", back, m)
	}
}

func TestMatrixFromRowsTranslationRow(t *testing.T) {
	// Applying the reconstructed matrix to (0,0,0,1) must return the fourth
	// row exactly; that is the property the instanced vertex stage depends on.
	r0 := [4]float32{1, 0, 0, 0}
	r1 := [4]float32{0, 1, 0, 0}
	r2 := [4]float32{0, 0, 1, 0}
	r3 := [4]float32{3.5, -2, 0.25, 1}
	m := MatrixFromRows(r0, r1, r2, r3)

	got := common.TransformVec4(m[:], [4]float32{0, 0, 0, 1})
	if got != r3 {
		t.Errorf("M * (0,0,0,1) = %v, want %v", got, r3)
	}
}

func TestTransformVertexDepthPassThrough(t *testing.T) {
	// Whatever the transform does to z, the clip z must equal the vertex's
	// untransformed z.
	var transform [16]float32
	common.BuildSpriteMatrix(transform[:], 5, -3, 0.9, 0.7, 2, 2)

	tests := []struct {
		name  string
		layer float32
	}{
		{"front layer", 0.05},
		{"mid layer", 0.5},
		{"back layer", 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range atlas.QuadVertices(tt.layer) {
				clip := TransformVertex(transform[:], v)
				if clip[2] != tt.layer {
					t.Errorf("vertex %v: clip z = %v, want %v", v.Position, clip[2], tt.layer)
				}
			}
		})
	}
}

func TestTransformVertexMatchesMatrix(t *testing.T) {
	var transform [16]float32
	common.BuildSpriteMatrix(transform[:], 1, 2, 0.5, 0, 3, 4)

	v := atlas.GPUSpriteVertex{Position: [3]float32{0.5, -0.5, 0.5}, UV: [2]float32{1, 1}}
	clip := TransformVertex(transform[:], v)
	want := common.TransformVec4(transform[:], [4]float32{0.5, -0.5, 0.5, 1})

	if !approxEqual(clip[0], want[0]) || !approxEqual(clip[1], want[1]) || !approxEqual(clip[3], want[3]) {
		t.Errorf("clip xyw = (%v, %v, %v), want (%v, %v, %v)",
			clip[0], clip[1], clip[3], want[0], want[1], want[3])
	}
}

func TestSpriteInstanceStaging(t *testing.T) {
	s := NewSprite(
		WithPosition(2, 3),
		WithLayer(0.5),
		WithScale(16, 16),
		WithMetadata(atlas.IndexedSprite(4, [2]float32{0.25, 0.25})),
	)

	inst := s.Instance(nil)
	if inst.SpriteIndex != 4 {
		t.Errorf("SpriteIndex = %v, want 4", inst.SpriteIndex)
	}
	if inst.CellSize != [2]float32{0.25, 0.25} {
		t.Errorf("CellSize = %v, want (0.25, 0.25)", inst.CellSize)
	}

	// With no camera the transform is the model matrix: translation row
	// carries position and layer.
	translation := common.TransformVec4(inst.Transform[:], [4]float32{0, 0, 0, 1})
	if !approxEqual(translation[0], 2) || !approxEqual(translation[1], 3) || !approxEqual(translation[2], 0.5) {
		t.Errorf("translation = %v, want (2, 3, 0.5, 1)", translation)
	}
}

func TestSpriteInstanceCameraPremultiply(t *testing.T) {
	s := NewSprite(WithPosition(10, 20), WithScale(1, 1))

	var vp [16]float32
	common.Orthographic(vp[:], 0, 40, 0, 40, 0, 1)

	inst := s.Instance(vp[:])
	center := common.TransformVec4(inst.Transform[:], [4]float32{0, 0, 0, 1})
	// (10, 20) in a 40x40 viewport maps to clip (-0.5, 0).
	if !approxEqual(center[0], -0.5) || !approxEqual(center[1], 0) {
		t.Errorf("clip center = (%v, %v), want (-0.5, 0)", center[0], center[1])
	}
}

func TestSpriteUniformsStaging(t *testing.T) {
	s := NewSprite(
		WithPosition(1, 1),
		WithSheetCell(testSheet(t), 7),
	)
	u := s.Uniforms(nil)
	if u.SpriteIndex != 7 {
		t.Errorf("SpriteIndex = %v, want 7", u.SpriteIndex)
	}
	if u.CellSize != [2]float32{0.25, 0.25} {
		t.Errorf("CellSize = %v, want (0.25, 0.25)", u.CellSize)
	}
}

func TestSpriteSetSpriteIndexKeepsCellSize(t *testing.T) {
	s := NewSprite(WithMetadata(atlas.IndexedSprite(0, [2]float32{0.125, 0.5})))
	s.SetSpriteIndex(5)
	meta := s.Metadata()
	if meta.SpriteIndex != 5 {
		t.Errorf("SpriteIndex = %v, want 5", meta.SpriteIndex)
	}
	if meta.CellSize != [2]float32{0.125, 0.5} {
		t.Errorf("CellSize changed: %v", meta.CellSize)
	}
}

func testSheet(t *testing.T) atlas.SpriteSheet {
	t.Helper()
	return atlas.NewSpriteSheet(
		atlas.WithAtlasPixelSize(64, 64),
		atlas.WithCellPixelSize(16, 16),
	)
}
