package scene

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pixelforge/atlas2d/engine/renderer/shader"
)

// atlasGroupDescriptor captures the atlas texture/sampler bind group layout
// parsed from the instanced fragment shader, so every batch's bind group is
// created against the exact layout the pipeline was built with.
type atlasGroupDescriptor struct {
	descriptor wgpu.BindGroupLayoutDescriptor
	shader     shader.Shader
	group      int
}

// bindings resolves the texture and sampler binding indices from the layout
// entries. Falls back to the conventional 0/1 split when the descriptor is
// empty (no shader parsed, e.g. in tests with a stub renderer).
//
// Returns:
//   - int: the texture binding index
//   - int: the sampler binding index
func (d atlasGroupDescriptor) bindings() (int, int) {
	textureBinding, samplerBinding := 0, 1
	for _, entry := range d.descriptor.Entries {
		if entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined {
			textureBinding = int(entry.Binding)
		}
		if entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined {
			samplerBinding = int(entry.Binding)
		}
	}
	return textureBinding, samplerBinding
}
