package sprite

import (
	"github.com/pixelforge/atlas2d/engine/atlas"
)

// SpriteOption is a function that configures a sprite instance during construction.
type SpriteOption func(*sprite)

// WithPosition is an option builder that sets the sprite's world-space position.
//
// Parameters:
//   - x: the x coordinate
//   - y: the y coordinate
//
// Returns:
//   - SpriteOption: a function that applies the position option to a sprite
func WithPosition(x, y float32) SpriteOption {
	return func(s *sprite) {
		s.positionX = x
		s.positionY = y
	}
}

// WithLayer is an option builder that sets the sprite's depth layer.
//
// Parameters:
//   - layer: the layer value, expected in [0, 1]
//
// Returns:
//   - SpriteOption: a function that applies the layer option to a sprite
func WithLayer(layer float32) SpriteOption {
	return func(s *sprite) {
		s.layer = layer
	}
}

// WithRotation is an option builder that sets the rotation around the z axis.
//
// Parameters:
//   - radians: the rotation angle
//
// Returns:
//   - SpriteOption: a function that applies the rotation option to a sprite
func WithRotation(radians float32) SpriteOption {
	return func(s *sprite) {
		s.rotation = radians
	}
}

// WithScale is an option builder that sets the per-axis scale factors.
//
// Parameters:
//   - x: the x scale
//   - y: the y scale
//
// Returns:
//   - SpriteOption: a function that applies the scale option to a sprite
func WithScale(x, y float32) SpriteOption {
	return func(s *sprite) {
		s.scaleX = x
		s.scaleY = y
	}
}

// WithMetadata is an option builder that sets the atlas addressing metadata.
//
// Parameters:
//   - meta: the sprite metadata
//
// Returns:
//   - SpriteOption: a function that applies the metadata option to a sprite
func WithMetadata(meta atlas.SpriteMetadata) SpriteOption {
	return func(s *sprite) {
		s.metadata = meta
	}
}

// WithSheetCell is an option builder that sets the metadata to address the
// given cell of a sprite sheet.
//
// Parameters:
//   - sheet: the sprite sheet supplying the cell size
//   - index: the cell index in row-major order
//
// Returns:
//   - SpriteOption: a function that applies the cell option to a sprite
func WithSheetCell(sheet atlas.SpriteSheet, index int) SpriteOption {
	return func(s *sprite) {
		s.metadata = sheet.Metadata(index)
	}
}
