package sprite

import (
	"github.com/pixelforge/atlas2d/common"
	"github.com/pixelforge/atlas2d/engine/atlas"
)

// sprite is the implementation of the Sprite interface.
type sprite struct {
	positionX float32
	positionY float32
	layer     float32
	rotation  float32
	scaleX    float32
	scaleY    float32

	metadata atlas.SpriteMetadata
}

// Sprite is one drawable quad: a 2D position plus layer, rotation, scale, and
// the atlas metadata selecting which cell (or tile region) it samples. A Sprite
// holds no GPU state; staging methods compose its transform with a caller
// supplied view-projection so the GPU receives a fully resolved matrix.
type Sprite interface {
	// Position returns the sprite's world-space position.
	//
	// Returns:
	//   - float32: the x coordinate
	//   - float32: the y coordinate
	Position() (float32, float32)

	// SetPosition moves the sprite in world space.
	//
	// Parameters:
	//   - x: the new x coordinate
	//   - y: the new y coordinate
	SetPosition(x, y float32)

	// Translate offsets the sprite's position.
	//
	// Parameters:
	//   - dx: the x offset
	//   - dy: the y offset
	Translate(dx, dy float32)

	// Layer returns the sprite's depth layer. Smaller values draw in front
	// under the standard less-than depth test.
	//
	// Returns:
	//   - float32: the layer in [0, 1]
	Layer() float32

	// SetLayer sets the sprite's depth layer.
	//
	// Parameters:
	//   - layer: the new layer, expected in [0, 1]
	SetLayer(layer float32)

	// Rotation returns the rotation angle around the z axis.
	//
	// Returns:
	//   - float32: the angle in radians
	Rotation() float32

	// SetRotation sets the rotation angle around the z axis.
	//
	// Parameters:
	//   - radians: the new angle
	SetRotation(radians float32)

	// Scale returns the per-axis scale factors.
	//
	// Returns:
	//   - float32: the x scale
	//   - float32: the y scale
	Scale() (float32, float32)

	// SetScale sets the per-axis scale factors.
	//
	// Parameters:
	//   - x: the x scale
	//   - y: the y scale
	SetScale(x, y float32)

	// Metadata returns the sprite's atlas addressing state.
	//
	// Returns:
	//   - atlas.SpriteMetadata: the current metadata
	Metadata() atlas.SpriteMetadata

	// SetMetadata replaces the sprite's atlas addressing state.
	//
	// Parameters:
	//   - meta: the new metadata
	SetMetadata(meta atlas.SpriteMetadata)

	// SetSpriteIndex changes only the cell index, keeping the cell size and
	// tile fields. Swapping the index every few frames is how flip-book
	// animation is driven from game code.
	//
	// Parameters:
	//   - index: the new cell index
	SetSpriteIndex(index float32)

	// ModelMatrix writes the sprite's model matrix (translation including the
	// layer, rotation, scale) into out.
	//
	// Parameters:
	//   - out: destination slice (must be at least 16 elements)
	ModelMatrix(out []float32)

	// Instance stages the sprite as per-instance GPU data with the given
	// view-projection premultiplied into the transform. Pass nil to stage the
	// model matrix unmodified.
	//
	// Parameters:
	//   - viewProjection: the camera matrix, or nil
	//
	// Returns:
	//   - atlas.GPUSpriteInstance: the staged instance data
	Instance(viewProjection []float32) atlas.GPUSpriteInstance

	// Uniforms stages the sprite as per-draw uniform data for the
	// single-sprite pipeline, with the given view-projection premultiplied.
	// Pass nil to stage the model matrix unmodified.
	//
	// Parameters:
	//   - viewProjection: the camera matrix, or nil
	//
	// Returns:
	//   - atlas.GPUSpriteUniforms: the staged uniform data
	Uniforms(viewProjection []float32) atlas.GPUSpriteUniforms
}

var _ Sprite = &sprite{}

// NewSprite creates a Sprite from the provided options. Scale defaults to
// (1, 1); everything else zero-values.
//
// Parameters:
//   - options: variadic list of SpriteOption functions to configure the sprite
//
// Returns:
//   - Sprite: a new Sprite instance
func NewSprite(options ...SpriteOption) Sprite {
	s := &sprite{
		scaleX: 1,
		scaleY: 1,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sprite) Position() (float32, float32) {
	return s.positionX, s.positionY
}

func (s *sprite) SetPosition(x, y float32) {
	s.positionX = x
	s.positionY = y
}

func (s *sprite) Translate(dx, dy float32) {
	s.positionX += dx
	s.positionY += dy
}

func (s *sprite) Layer() float32 {
	return s.layer
}

func (s *sprite) SetLayer(layer float32) {
	s.layer = layer
}

func (s *sprite) Rotation() float32 {
	return s.rotation
}

func (s *sprite) SetRotation(radians float32) {
	s.rotation = radians
}

func (s *sprite) Scale() (float32, float32) {
	return s.scaleX, s.scaleY
}

func (s *sprite) SetScale(x, y float32) {
	s.scaleX = x
	s.scaleY = y
}

func (s *sprite) Metadata() atlas.SpriteMetadata {
	return s.metadata
}

func (s *sprite) SetMetadata(meta atlas.SpriteMetadata) {
	s.metadata = meta
}

func (s *sprite) SetSpriteIndex(index float32) {
	s.metadata.SpriteIndex = index
}

func (s *sprite) ModelMatrix(out []float32) {
	common.BuildSpriteMatrix(out, s.positionX, s.positionY, s.layer, s.rotation, s.scaleX, s.scaleY)
}

// compose writes model (optionally premultiplied by viewProjection) into out.
func (s *sprite) compose(out []float32, viewProjection []float32) {
	s.ModelMatrix(out)
	if viewProjection != nil {
		common.Mul4(out, viewProjection, out)
	}
}

func (s *sprite) Instance(viewProjection []float32) atlas.GPUSpriteInstance {
	var inst atlas.GPUSpriteInstance
	s.compose(inst.Transform[:], viewProjection)
	inst.SetMetadata(s.metadata)
	return inst
}

func (s *sprite) Uniforms(viewProjection []float32) atlas.GPUSpriteUniforms {
	var u atlas.GPUSpriteUniforms
	s.compose(u.Transform[:], viewProjection)
	u.SpriteIndex = s.metadata.SpriteIndex
	u.CellSize = s.metadata.CellSize
	return u
}
