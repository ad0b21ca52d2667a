package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/pixelforge/atlas2d/engine/atlas"
)

func TestNewShaderEntryPoints(t *testing.T) {
	tests := []struct {
		name       string
		shaderType ShaderType
		want       string
	}{
		{"vertex", ShaderTypeVertex, "vs_main"},
		{"fragment", ShaderTypeFragment, "fs_main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShader("sprite_"+tt.name, tt.shaderType, atlas.SpriteShaderSource)
			if got := s.EntryPoint(); got != tt.want {
				t.Errorf("EntryPoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpriteVertexLayout(t *testing.T) {
	s := NewShader("sprite_vs", ShaderTypeVertex, atlas.SpriteShaderSource)

	layouts := s.VertexLayout(0)
	if len(layouts) != 1 {
		t.Fatalf("slot 0 layout count = %d, want 1", len(layouts))
	}
	layout := layouts[0]

	if layout.ArrayStride != 20 {
		t.Errorf("ArrayStride = %d, want 20", layout.ArrayStride)
	}
	if layout.StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want per-vertex", layout.StepMode)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("attribute count = %d, want 2", len(layout.Attributes))
	}

	pos := layout.Attributes[0]
	if pos.ShaderLocation != 0 || pos.Offset != 0 || pos.Format != wgpu.VertexFormatFloat32x3 {
		t.Errorf("position attribute = %+v, want location 0, offset 0, float32x3", pos)
	}
	uv := layout.Attributes[1]
	if uv.ShaderLocation != 1 || uv.Offset != 12 || uv.Format != wgpu.VertexFormatFloat32x2 {
		t.Errorf("uv attribute = %+v, want location 1, offset 12, float32x2", uv)
	}
}

func TestInstancedVertexLayouts(t *testing.T) {
	s := NewShader("sprite_instanced_vs", ShaderTypeVertex, atlas.SpriteInstancedShaderSource)

	vertexLayout := s.VertexLayout(0)
	if len(vertexLayout) != 1 || vertexLayout[0].StepMode != wgpu.VertexStepModeVertex {
		t.Fatalf("slot 0 should be the per-vertex quad layout, got %+v", vertexLayout)
	}
	if vertexLayout[0].ArrayStride != 20 {
		t.Errorf("vertex stride = %d, want 20", vertexLayout[0].ArrayStride)
	}

	instLayouts := s.VertexLayout(1)
	if len(instLayouts) != 1 {
		t.Fatalf("slot 1 layout count = %d, want 1", len(instLayouts))
	}
	inst := instLayouts[0]

	if inst.StepMode != wgpu.VertexStepModeInstance {
		t.Errorf("instance StepMode = %v, want per-instance", inst.StepMode)
	}
	if inst.ArrayStride != 96 {
		t.Errorf("instance stride = %d, want 96", inst.ArrayStride)
	}
	if len(inst.Attributes) != 9 {
		t.Fatalf("instance attribute count = %d, want 9", len(inst.Attributes))
	}

	wantAttrs := []struct {
		location uint32
		offset   uint64
		format   wgpu.VertexFormat
	}{
		{2, 0, wgpu.VertexFormatFloat32x4},
		{3, 16, wgpu.VertexFormatFloat32x4},
		{4, 32, wgpu.VertexFormatFloat32x4},
		{5, 48, wgpu.VertexFormatFloat32x4},
		{6, 64, wgpu.VertexFormatFloat32},
		{7, 68, wgpu.VertexFormatFloat32},
		{8, 72, wgpu.VertexFormatFloat32x2},
		{9, 80, wgpu.VertexFormatFloat32x2},
		{10, 88, wgpu.VertexFormatFloat32x2},
	}
	for i, want := range wantAttrs {
		got := inst.Attributes[i]
		if got.ShaderLocation != want.location || got.Offset != want.offset || got.Format != want.format {
			t.Errorf("attribute %d = %+v, want location %d, offset %d, format %v",
				i, got, want.location, want.offset, want.format)
		}
	}
}

func TestSpriteBindGroupLayouts(t *testing.T) {
	fs := NewShader("sprite_fs", ShaderTypeFragment, atlas.SpriteShaderSource)
	descriptors := fs.BindGroupLayoutDescriptors()

	// Group 0: atlas texture + sampler. Group 1: the sprite uniform.
	g0, ok := descriptors[0]
	if !ok {
		t.Fatal("group 0 not parsed")
	}
	if len(g0.Entries) != 2 {
		t.Fatalf("group 0 entry count = %d, want 2", len(g0.Entries))
	}
	if g0.Entries[0].Texture.SampleType != wgpu.TextureSampleTypeFloat {
		t.Errorf("binding 0 should be a float sampled texture, got %+v", g0.Entries[0].Texture)
	}
	if g0.Entries[0].Texture.ViewDimension != wgpu.TextureViewDimension2D {
		t.Errorf("binding 0 view dimension = %v, want 2D", g0.Entries[0].Texture.ViewDimension)
	}
	if g0.Entries[1].Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Errorf("binding 1 should be a filtering sampler, got %+v", g0.Entries[1].Sampler)
	}

	g1, ok := descriptors[1]
	if !ok {
		t.Fatal("group 1 not parsed")
	}
	if len(g1.Entries) != 1 {
		t.Fatalf("group 1 entry count = %d, want 1", len(g1.Entries))
	}
	entry := g1.Entries[0]
	if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("group 1 binding 0 should be a uniform buffer, got %+v", entry.Buffer)
	}
	// SpriteUniforms: mat4x4 + f32 + f32 + vec2<f32>, WGSL-aligned to 80 bytes.
	if entry.Buffer.MinBindingSize != 80 {
		t.Errorf("MinBindingSize = %d, want 80", entry.Buffer.MinBindingSize)
	}
}

func TestBindGroupVarNames(t *testing.T) {
	fs := NewShader("sprite_fs", ShaderTypeFragment, atlas.SpriteShaderSource)

	if got := fs.BindGroupVarName(0, 0); got != "atlas_texture" {
		t.Errorf("group 0 binding 0 var = %q, want atlas_texture", got)
	}
	if got := fs.BindGroupVarName(0, 1); got != "atlas_sampler" {
		t.Errorf("group 0 binding 1 var = %q, want atlas_sampler", got)
	}
	if got := fs.BindGroupVarName(1, 0); got != "sprite" {
		t.Errorf("group 1 binding 0 var = %q, want sprite", got)
	}

	binding, ok := fs.BindGroupFromVarName(0, "atlas_sampler")
	if !ok || binding != 1 {
		t.Errorf("BindGroupFromVarName(0, atlas_sampler) = (%d, %v), want (1, true)", binding, ok)
	}
}

func TestInstancedShaderHasNoUniformGroup(t *testing.T) {
	vs := NewShader("sprite_instanced_vs", ShaderTypeVertex, atlas.SpriteInstancedShaderSource)
	descriptors := vs.BindGroupLayoutDescriptors()
	if _, ok := descriptors[1]; ok {
		t.Error("instanced shader should carry all per-sprite state in the instance buffer, not group 1")
	}
}

func TestComputeStructSizes(t *testing.T) {
	source := `
struct Inner {
    a: vec2<f32>,
    b: f32,
};
struct Outer {
    transform: mat4x4<f32>,
    inner: Inner,
};
`
	structs := parseStructBlocks(stripComments(source))
	sizes := computeStructSizes(structs)

	// Inner: vec2 at 0, f32 at 8, size 12 rounded to align 8 -> 16.
	if got := sizes["Inner"].size; got != 16 {
		t.Errorf("Inner size = %d, want 16", got)
	}
	// Outer: mat4x4 at 0 (64), Inner at 64 (16), size 80 at align 16.
	if got := sizes["Outer"].size; got != 80 {
		t.Errorf("Outer size = %d, want 80", got)
	}
}
