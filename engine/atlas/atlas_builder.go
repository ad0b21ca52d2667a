package atlas

import (
	"github.com/pixelforge/atlas2d/common"
)

// SpriteSheetOption is a function that configures a spriteSheet instance during construction.
type SpriteSheetOption func(*spriteSheet)

// WithCellPixelSize is an option builder that sets the pixel dimensions of one grid cell.
//
// Parameters:
//   - width: cell width in pixels
//   - height: cell height in pixels
//
// Returns:
//   - SpriteSheetOption: a function that applies the cell size option to a sprite sheet
func WithCellPixelSize(width, height int) SpriteSheetOption {
	return func(s *spriteSheet) {
		s.cellPixelWidth = width
		s.cellPixelHeight = height
	}
}

// WithAtlasPixelSize is an option builder that sets the pixel dimensions of the
// whole atlas texture. Not needed when WithTexture is used, since the staged
// texture carries its own dimensions.
//
// Parameters:
//   - width: atlas width in pixels
//   - height: atlas height in pixels
//
// Returns:
//   - SpriteSheetOption: a function that applies the atlas size option to a sprite sheet
func WithAtlasPixelSize(width, height int) SpriteSheetOption {
	return func(s *spriteSheet) {
		s.atlasPixelWidth = width
		s.atlasPixelHeight = height
	}
}

// WithTexture is an option builder that sets the staged RGBA pixel data for the
// atlas texture and adopts its dimensions as the atlas pixel size.
//
// Parameters:
//   - texture: the staged texture data
//
// Returns:
//   - SpriteSheetOption: a function that applies the texture option to a sprite sheet
func WithTexture(texture common.TextureStagingData) SpriteSheetOption {
	return func(s *spriteSheet) {
		s.texture = texture
		s.atlasPixelWidth = int(texture.Width)
		s.atlasPixelHeight = int(texture.Height)
	}
}

// WithSampler is an option builder that sets the sampler configuration for the
// atlas. Defaults to common.PixelArtSampler when unset.
//
// Parameters:
//   - sampler: the sampler configuration
//
// Returns:
//   - SpriteSheetOption: a function that applies the sampler option to a sprite sheet
func WithSampler(sampler common.SamplerStagingData) SpriteSheetOption {
	return func(s *spriteSheet) {
		s.sampler = sampler
	}
}
