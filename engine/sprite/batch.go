package sprite

import (
	"github.com/pixelforge/atlas2d/common"
	"github.com/pixelforge/atlas2d/engine/atlas"
)

// batch is the implementation of the Batch interface.
type batch struct {
	sheet     atlas.SpriteSheet
	sprites   []Sprite
	instances []atlas.GPUSpriteInstance
}

// Batch groups sprites that share one atlas texture so they render with a
// single instanced draw. The batch owns a staging slice of instance data with
// one slot per sprite; StageInstance fills independent slots, so a scene can
// stage a batch from multiple goroutines as long as each index is written by
// exactly one of them.
type Batch interface {
	// Sheet returns the sprite sheet every sprite in the batch samples.
	//
	// Returns:
	//   - atlas.SpriteSheet: the shared sheet
	Sheet() atlas.SpriteSheet

	// Add appends a sprite to the batch and grows the instance staging slice.
	//
	// Parameters:
	//   - s: the sprite to add
	Add(s Sprite)

	// Len returns the number of sprites in the batch.
	//
	// Returns:
	//   - int: the sprite count
	Len() int

	// At returns the sprite at the given index.
	//
	// Parameters:
	//   - i: the sprite index
	//
	// Returns:
	//   - Sprite: the sprite at index i
	At(i int) Sprite

	// StageInstance stages the sprite at index i into its instance slot with
	// the view-projection premultiplied. Safe to call concurrently for
	// distinct indices.
	//
	// Parameters:
	//   - i: the sprite index
	//   - viewProjection: the camera matrix, or nil
	StageInstance(i int, viewProjection []float32)

	// StageAll stages every sprite's instance slot serially.
	//
	// Parameters:
	//   - viewProjection: the camera matrix, or nil
	StageAll(viewProjection []float32)

	// InstanceBytes returns the staged instance data as a byte view ready for
	// buffer upload. The slice aliases the staging memory; upload it before
	// the next staging pass.
	//
	// Returns:
	//   - []byte: the staged instance bytes, 96 bytes per sprite
	InstanceBytes() []byte

	// Clear removes all sprites, keeping the staging capacity.
	Clear()
}

var _ Batch = &batch{}

// NewBatch creates a Batch from the provided options. A sheet is required
// since the batch's draw binds its texture and sampler.
//
// Parameters:
//   - options: variadic list of BatchOption functions to configure the batch
//
// Returns:
//   - Batch: a new Batch instance
func NewBatch(options ...BatchOption) Batch {
	b := &batch{}
	for _, opt := range options {
		opt(b)
	}
	if b.sheet == nil {
		panic("sprite: batch requires a sprite sheet")
	}
	return b
}

func (b *batch) Sheet() atlas.SpriteSheet {
	return b.sheet
}

func (b *batch) Add(s Sprite) {
	b.sprites = append(b.sprites, s)
	b.instances = append(b.instances, atlas.GPUSpriteInstance{})
}

func (b *batch) Len() int {
	return len(b.sprites)
}

func (b *batch) At(i int) Sprite {
	return b.sprites[i]
}

func (b *batch) StageInstance(i int, viewProjection []float32) {
	b.instances[i] = b.sprites[i].Instance(viewProjection)
}

func (b *batch) StageAll(viewProjection []float32) {
	for i := range b.sprites {
		b.StageInstance(i, viewProjection)
	}
}

func (b *batch) InstanceBytes() []byte {
	return common.SliceToBytes(b.instances)
}

func (b *batch) Clear() {
	b.sprites = b.sprites[:0]
	b.instances = b.instances[:0]
}
