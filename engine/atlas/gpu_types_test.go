package atlas

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
)

func float32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	if offset+4 > len(buf) {
		t.Fatalf("offset %d out of range for %d-byte buffer", offset, len(buf))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func TestGPUSpriteVertexSize(t *testing.T) {
	v := &GPUSpriteVertex{}
	if got := v.Size(); got != 20 {
		t.Errorf("Size() = %d, want 20", got)
	}
	if got := len(v.Marshal()); got != 20 {
		t.Errorf("len(Marshal()) = %d, want 20", got)
	}
}

func TestGPUSpriteVertexMarshalOffsets(t *testing.T) {
	v := &GPUSpriteVertex{
		Position: [3]float32{1, 2, 3},
		UV:       [2]float32{0.25, 0.75},
	}
	buf := v.Marshal()
	if got := float32At(t, buf, 0); got != 1 {
		t.Errorf("position.x at offset 0 = %v, want 1", got)
	}
	if got := float32At(t, buf, 8); got != 3 {
		t.Errorf("position.z at offset 8 = %v, want 3", got)
	}
	if got := float32At(t, buf, 12); got != 0.25 {
		t.Errorf("uv.x at offset 12 = %v, want 0.25", got)
	}
	if got := float32At(t, buf, 16); got != 0.75 {
		t.Errorf("uv.y at offset 16 = %v, want 0.75", got)
	}
}

func TestQuadVertices(t *testing.T) {
	layer := float32(0.4)
	quad := QuadVertices(layer)
	for i, v := range quad {
		if v.Position[2] != layer {
			t.Errorf("vertex %d: z = %v, want %v", i, v.Position[2], layer)
		}
	}
	// UV (0,0) sits on the top-left vertex so cells sample upright.
	if quad[3].UV != [2]float32{0, 0} {
		t.Errorf("top-left vertex uv = %v, want (0,0)", quad[3].UV)
	}
	if quad[1].UV != [2]float32{1, 1} {
		t.Errorf("bottom-right vertex uv = %v, want (1,1)", quad[1].UV)
	}
	for _, idx := range QuadIndices {
		if int(idx) >= len(quad) {
			t.Errorf("index %d out of range for quad", idx)
		}
	}
}

func TestGPUSpriteUniformsSize(t *testing.T) {
	u := &GPUSpriteUniforms{}
	if got := u.Size(); got != 80 {
		t.Errorf("Size() = %d, want 80", got)
	}
	if got := len(u.Marshal()); got != 80 {
		t.Errorf("len(Marshal()) = %d, want 80", got)
	}
}

func TestGPUSpriteUniformsMarshalOffsets(t *testing.T) {
	u := &GPUSpriteUniforms{
		SpriteIndex: 7,
		CellSize:    [2]float32{0.25, 0.5},
	}
	for i := range u.Transform {
		u.Transform[i] = float32(i)
	}
	buf := u.Marshal()

	if got := float32At(t, buf, 0); got != 0 {
		t.Errorf("transform[0] at offset 0 = %v, want 0", got)
	}
	if got := float32At(t, buf, 60); got != 15 {
		t.Errorf("transform[15] at offset 60 = %v, want 15", got)
	}
	if got := float32At(t, buf, 64); got != 7 {
		t.Errorf("sprite_index at offset 64 = %v, want 7", got)
	}
	if got := float32At(t, buf, 68); got != 0 {
		t.Errorf("padding at offset 68 = %v, want 0", got)
	}
	if got := float32At(t, buf, 72); got != 0.25 {
		t.Errorf("cell_size.x at offset 72 = %v, want 0.25", got)
	}
	if got := float32At(t, buf, 76); got != 0.5 {
		t.Errorf("cell_size.y at offset 76 = %v, want 0.5", got)
	}
}

func TestGPUSpriteInstanceSize(t *testing.T) {
	inst := &GPUSpriteInstance{}
	if got := inst.Size(); got != 96 {
		t.Errorf("Size() = %d, want 96", got)
	}
	if got := len(inst.Marshal()); got != 96 {
		t.Errorf("len(Marshal()) = %d, want 96", got)
	}
}

func TestGPUSpriteInstanceMarshalOffsets(t *testing.T) {
	// Offsets must line up with the InstanceInput vertex attributes:
	// transform rows at 0/16/32/48, sprite_index 64, cell_size 72,
	// uv_offset 80, uv_scale 88.
	inst := &GPUSpriteInstance{
		SpriteIndex: 3,
		CellSize:    [2]float32{0.125, 0.25},
		UVOffset:    [2]float32{0.5, 0.75},
		UVScale:     [2]float32{0.0625, 0.03125},
	}
	for i := range inst.Transform {
		inst.Transform[i] = float32(i + 1)
	}
	buf := inst.Marshal()

	rowStarts := []int{0, 16, 32, 48}
	for row, start := range rowStarts {
		if got := float32At(t, buf, start); got != float32(row*4+1) {
			t.Errorf("transform row %d at offset %d = %v, want %v", row, start, got, float32(row*4+1))
		}
	}
	if got := float32At(t, buf, 64); got != 3 {
		t.Errorf("sprite_index at offset 64 = %v, want 3", got)
	}
	if got := float32At(t, buf, 72); got != 0.125 {
		t.Errorf("cell_size.x at offset 72 = %v, want 0.125", got)
	}
	if got := float32At(t, buf, 80); got != 0.5 {
		t.Errorf("uv_offset.x at offset 80 = %v, want 0.5", got)
	}
	if got := float32At(t, buf, 88); got != 0.0625 {
		t.Errorf("uv_scale.x at offset 88 = %v, want 0.0625", got)
	}
	if got := float32At(t, buf, 92); got != 0.03125 {
		t.Errorf("uv_scale.y at offset 92 = %v, want 0.03125", got)
	}
}

func TestGPUSpriteInstanceSetMetadata(t *testing.T) {
	inst := &GPUSpriteInstance{}
	for i := range inst.Transform {
		inst.Transform[i] = float32(i)
	}
	meta := IndexedSprite(9, [2]float32{0.25, 0.25})
	inst.SetMetadata(meta)

	if inst.SpriteIndex != 9 {
		t.Errorf("SpriteIndex = %v, want 9", inst.SpriteIndex)
	}
	if inst.CellSize != meta.CellSize {
		t.Errorf("CellSize = %v, want %v", inst.CellSize, meta.CellSize)
	}
	if inst.UVScale != meta.UVScale {
		t.Errorf("UVScale = %v, want %v", inst.UVScale, meta.UVScale)
	}
	// The transform must survive a metadata swap untouched.
	for i := range inst.Transform {
		if inst.Transform[i] != float32(i) {
			t.Fatalf("Transform[%d] = %v, want %v", i, inst.Transform[i], float32(i))
		}
	}
}

func TestShaderSourcesCarryCanonicalStructs(t *testing.T) {
	// The full shaders embed the canonical struct definitions verbatim, which
	// is what keeps the Go marshal layout and the WGSL layout from drifting.
	if !strings.Contains(SpriteShaderSource, strings.TrimSpace(GPUSpriteUniformsSource)) {
		t.Error("sprite shader does not contain the canonical SpriteUniforms struct")
	}
	if !strings.Contains(SpriteInstancedShaderSource, strings.TrimSpace(GPUSpriteInstanceSource)) {
		t.Error("instanced sprite shader does not contain the canonical InstanceInput struct")
	}
}

func TestShaderSourcesUseExplicitLOD(t *testing.T) {
	for name, src := range map[string]string{
		"sprite":           SpriteShaderSource,
		"sprite_instanced": SpriteInstancedShaderSource,
	} {
		if !strings.Contains(src, "textureSampleLevel") {
			t.Errorf("%s shader must sample with an explicit LOD", name)
		}
		if strings.Contains(src, "textureSample(") {
			t.Errorf("%s shader must not use implicit-derivative sampling", name)
		}
	}
}
