package atlas

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUSpriteVertex is the GPU-aligned representation of a single sprite quad vertex.
// Size: 20 bytes (vec3 position + vec2 uv, tightly packed vertex-buffer layout).
type GPUSpriteVertex struct {
	Position [3]float32 // offset 0: local-space position; z carries the layer (12 bytes)
	UV       [2]float32 // offset 12: local UV in [0,1]² (8 bytes)
}

// Size returns the size of the GPUSpriteVertex struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUSpriteVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSpriteVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 20-byte buffer ready for GPU upload.
func (g *GPUSpriteVertex) Marshal() []byte {
	buf := make([]byte, 20)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.UV[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.UV[1]))
	return buf
}

// QuadVertices builds the unit quad shared by every sprite and tile draw: a
// centered square with UV (0,0) at the top-left vertex so the sampled cell
// reads upright. The layer lands in every vertex's z, which is what the
// vertex stage forwards as clip depth.
//
// Parameters:
//   - layer: the z value written to every vertex
//
// Returns:
//   - [4]GPUSpriteVertex: the quad corners in CCW winding order
func QuadVertices(layer float32) [4]GPUSpriteVertex {
	return [4]GPUSpriteVertex{
		{Position: [3]float32{-0.5, -0.5, layer}, UV: [2]float32{0, 1}},
		{Position: [3]float32{0.5, -0.5, layer}, UV: [2]float32{1, 1}},
		{Position: [3]float32{0.5, 0.5, layer}, UV: [2]float32{1, 0}},
		{Position: [3]float32{-0.5, 0.5, layer}, UV: [2]float32{0, 0}},
	}
}

// QuadIndices is the index list forming the quad's two triangles.
var QuadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

// GPUSpriteUniformsSource is the canonical WGSL definition of the SpriteUniforms struct.
// Matches GPUSpriteUniforms layout exactly (80 bytes, WGSL uniform aligned).
//
//go:embed assets/sprite_uniforms.wgsl
var GPUSpriteUniformsSource string

// GPUSpriteUniforms is the GPU-aligned per-draw uniform for the single-sprite pipeline.
// Matches the WGSL SpriteUniforms struct layout exactly (see GPUSpriteUniformsSource).
// Size: 80 bytes (mat4x4 transform + sprite_index f32 + pad + cell_size vec2).
type GPUSpriteUniforms struct {
	Transform   [16]float32 // offset  0: fully composed clip-space transform (mat4x4<f32>)
	SpriteIndex float32     // offset 64: cell index, row-major (f32)
	_pad        float32     // offset 68: pad so cell_size lands on an 8-byte boundary
	CellSize    [2]float32  // offset 72: normalized cell dimensions; any component <= 0 selects pass-through mode (vec2<f32>)
}

// Size returns the size of the GPUSpriteUniforms struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUSpriteUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSpriteUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUSpriteUniforms) Marshal() []byte {
	buf := make([]byte, 80)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Transform[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(g.SpriteIndex))
	binary.LittleEndian.PutUint32(buf[68:72], 0) // _pad
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(g.CellSize[0]))
	binary.LittleEndian.PutUint32(buf[76:80], math.Float32bits(g.CellSize[1]))
	return buf
}

// GPUSpriteInstanceSource is the canonical WGSL definition of the InstanceInput struct.
// Matches GPUSpriteInstance layout exactly (96 bytes, instance-stepped vertex buffer).
//
//go:embed assets/sprite_instance.wgsl
var GPUSpriteInstanceSource string

// GPUSpriteInstance is the GPU-aligned per-instance data for the instanced sprite pipeline.
// The transform travels as four vec4 attribute rows (locations 2-5) that the vertex
// stage reassembles in supplied order; the remaining fields are the sprite metadata
// (locations 6-10). Matches the WGSL InstanceInput struct layout exactly (see
// GPUSpriteInstanceSource).
// Size: 96 bytes.
type GPUSpriteInstance struct {
	Transform   [16]float32 // offset  0: clip-space transform as four vec4 rows (64 bytes)
	SpriteIndex float32     // offset 64: cell index, row-major (f32)
	_pad        float32     // offset 68: pad to keep cell_size vec2-aligned
	CellSize    [2]float32  // offset 72: normalized cell dimensions; any component <= 0 selects tile mode (vec2<f32>)
	UVOffset    [2]float32  // offset 80: tile-mode UV window origin (vec2<f32>)
	UVScale     [2]float32  // offset 88: tile-mode UV window size (vec2<f32>)
}

// Size returns the size of the GPUSpriteInstance struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUSpriteInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSpriteInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUSpriteInstance) Marshal() []byte {
	buf := make([]byte, 96)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Transform[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(g.SpriteIndex))
	binary.LittleEndian.PutUint32(buf[68:72], 0) // _pad
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(g.CellSize[0]))
	binary.LittleEndian.PutUint32(buf[76:80], math.Float32bits(g.CellSize[1]))
	binary.LittleEndian.PutUint32(buf[80:84], math.Float32bits(g.UVOffset[0]))
	binary.LittleEndian.PutUint32(buf[84:88], math.Float32bits(g.UVOffset[1]))
	binary.LittleEndian.PutUint32(buf[88:92], math.Float32bits(g.UVScale[0]))
	binary.LittleEndian.PutUint32(buf[92:96], math.Float32bits(g.UVScale[1]))
	return buf
}

// SetMetadata copies sprite addressing metadata into the instance fields,
// leaving the transform untouched.
//
// Parameters:
//   - meta: the sprite metadata to copy
func (g *GPUSpriteInstance) SetMetadata(meta SpriteMetadata) {
	g.SpriteIndex = meta.SpriteIndex
	g.CellSize = meta.CellSize
	g.UVOffset = meta.UVOffset
	g.UVScale = meta.UVScale
}

// SpriteShaderSource is the complete WGSL source for the single-sprite pipeline
// (uniform transform + uniform sprite index, one draw per sprite).
//
//go:embed assets/sprite.wgsl
var SpriteShaderSource string

// SpriteInstancedShaderSource is the complete WGSL source for the instanced
// sprite pipeline (per-instance transform rows + sprite metadata).
//
//go:embed assets/sprite_instanced.wgsl
var SpriteInstancedShaderSource string
