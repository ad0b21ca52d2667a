package sprite

import (
	"github.com/pixelforge/atlas2d/engine/atlas"
)

// BatchOption is a function that configures a batch instance during construction.
type BatchOption func(*batch)

// WithSheet is an option builder that sets the sprite sheet shared by every
// sprite in the batch.
//
// Parameters:
//   - sheet: the shared sprite sheet
//
// Returns:
//   - BatchOption: a function that applies the sheet option to a batch
func WithSheet(sheet atlas.SpriteSheet) BatchOption {
	return func(b *batch) {
		b.sheet = sheet
	}
}

// WithCapacity is an option builder that pre-allocates room for the given
// number of sprites and their instance slots.
//
// Parameters:
//   - n: the sprite capacity to reserve
//
// Returns:
//   - BatchOption: a function that applies the capacity option to a batch
func WithCapacity(n int) BatchOption {
	return func(b *batch) {
		b.sprites = make([]Sprite, 0, n)
		b.instances = make([]atlas.GPUSpriteInstance, 0, n)
	}
}

// WithSprites is an option builder that seeds the batch with sprites.
//
// Parameters:
//   - sprites: the sprites to add
//
// Returns:
//   - BatchOption: a function that applies the sprites option to a batch
func WithSprites(sprites ...Sprite) BatchOption {
	return func(b *batch) {
		for _, s := range sprites {
			b.sprites = append(b.sprites, s)
			b.instances = append(b.instances, atlas.GPUSpriteInstance{})
		}
	}
}
