// Package atlas implements sprite-sheet cell addressing: mapping a sprite
// index to the UV window of its cell inside a shared atlas texture, and the
// pass-through tile override that bypasses cell indexing for pre-resolved
// regions. The package-level functions mirror the fragment-stage WGSL math
// exactly and are the CPU reference the tests pin the shaders against.
package atlas

import (
	"math"

	"github.com/pixelforge/atlas2d/common"
)

// SpriteMetadata is the per-draw (or per-instance) sprite addressing state
// consumed by the atlas lookup: which cell to sample and how. A non-positive
// CellSize component puts the metadata in tile mode, where UVOffset/UVScale
// map the local UV directly and SpriteIndex is ignored.
type SpriteMetadata struct {
	// SpriteIndex selects a cell in row-major order. Stored as float32 for
	// uniform-buffer compatibility; out-of-range indices wrap deterministically
	// through the modulo/floor math with no bounds check.
	SpriteIndex float32

	// CellSize is the normalized width/height of one grid cell in atlas UV
	// space. Both components must be in (0, 1] for indexed mode; any
	// non-positive component signals tile mode.
	CellSize [2]float32

	// UVOffset is the top-left corner of the tile region in atlas UV space.
	// Only consumed in tile mode.
	UVOffset [2]float32

	// UVScale is the size of the tile region in atlas UV space.
	// Only consumed in tile mode.
	UVScale [2]float32
}

// TileMode reports whether this metadata bypasses cell indexing.
//
// Returns:
//   - bool: true when either CellSize component is non-positive
func (m SpriteMetadata) TileMode() bool {
	return m.CellSize[0] <= 0 || m.CellSize[1] <= 0
}

// IndexedSprite builds metadata addressing a grid cell by index.
// UVScale is set to (1, 1) so the same metadata degrades to a full-texture
// pass-through if the cell size is later zeroed.
//
// Parameters:
//   - index: the cell index in row-major order
//   - cellSize: the normalized cell dimensions, each in (0, 1]
//
// Returns:
//   - SpriteMetadata: indexed-mode metadata
func IndexedSprite(index float32, cellSize [2]float32) SpriteMetadata {
	return SpriteMetadata{
		SpriteIndex: index,
		CellSize:    cellSize,
		UVOffset:    [2]float32{0, 0},
		UVScale:     [2]float32{1, 1},
	}
}

// TileRegion builds tile-mode metadata mapping local UV directly into the
// given atlas region, bypassing grid indexing entirely.
//
// Parameters:
//   - uvOffset: top-left corner of the region in atlas UV space
//   - uvScale: size of the region in atlas UV space
//
// Returns:
//   - SpriteMetadata: tile-mode metadata (CellSize zeroed)
func TileRegion(uvOffset, uvScale [2]float32) SpriteMetadata {
	return SpriteMetadata{
		UVOffset: uvOffset,
		UVScale:  uvScale,
	}
}

// TileRegionFromPixels builds tile-mode metadata from a pixel rectangle inside
// an atlas of the given pixel dimensions.
//
// Parameters:
//   - x, y: top-left corner of the rectangle in pixels
//   - w, h: rectangle dimensions in pixels
//   - atlasW, atlasH: atlas dimensions in pixels
//
// Returns:
//   - SpriteMetadata: tile-mode metadata covering the rectangle
func TileRegionFromPixels(x, y, w, h, atlasW, atlasH int) SpriteMetadata {
	return TileRegion(
		[2]float32{float32(x) / float32(atlasW), float32(y) / float32(atlasH)},
		[2]float32{float32(w) / float32(atlasW), float32(h) / float32(atlasH)},
	)
}

// Fmod is the truncated floating-point modulo used by the cell lookup,
// matching the semantics of the WGSL % operator (result takes the sign of
// the dividend).
//
// Parameters:
//   - a: dividend
//   - b: divisor
//
// Returns:
//   - float32: a - trunc(a/b)*b
func Fmod(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}

// GridColumns derives the column count of the atlas grid from the normalized
// cell width. The same width drives both the column wrap and the row advance,
// which is what keeps the formula correct for non-square atlases.
//
// Parameters:
//   - cellSize: the normalized cell dimensions
//
// Returns:
//   - float32: the number of columns (1 / cellSize.x)
func GridColumns(cellSize [2]float32) float32 {
	return 1.0 / cellSize[0]
}

// CellOrigin computes the top-left corner of the indexed cell in atlas UV
// space using row-major wrap: column = index mod columns,
// row = floor(index / columns).
//
// Parameters:
//   - index: the cell index
//   - cellSize: the normalized cell dimensions (both components > 0)
//
// Returns:
//   - [2]float32: the cell's top-left corner in atlas UV space
func CellOrigin(index float32, cellSize [2]float32) [2]float32 {
	columns := GridColumns(cellSize)
	column := Fmod(index, columns)
	row := float32(math.Floor(float64(index / columns)))
	return [2]float32{column * cellSize[0], row * cellSize[1]}
}

// ResolveUV maps a local UV in [0,1]² to the absolute atlas UV for the given
// metadata. This is a pure function of its inputs and mirrors the fragment
// shader dispatch exactly: tile mode maps through UVOffset/UVScale, indexed
// mode remaps into the cell window. No bounds are checked; a UV landing
// outside [0,1] is resolved by the sampler's addressing mode, not here.
//
// Parameters:
//   - meta: the sprite addressing state
//   - localUV: the interpolated local UV
//
// Returns:
//   - [2]float32: the absolute atlas UV to sample
func ResolveUV(meta SpriteMetadata, localUV [2]float32) [2]float32 {
	if meta.TileMode() {
		return [2]float32{
			meta.UVOffset[0] + localUV[0]*meta.UVScale[0],
			meta.UVOffset[1] + localUV[1]*meta.UVScale[1],
		}
	}
	origin := CellOrigin(meta.SpriteIndex, meta.CellSize)
	return [2]float32{
		origin[0] + localUV[0]*meta.CellSize[0],
		origin[1] + localUV[1]*meta.CellSize[1],
	}
}

// spriteSheet is the implementation of the SpriteSheet interface.
type spriteSheet struct {
	cellPixelWidth   int
	cellPixelHeight  int
	atlasPixelWidth  int
	atlasPixelHeight int

	cellSize [2]float32
	columns  int
	rows     int

	texture common.TextureStagingData
	sampler common.SamplerStagingData
}

// SpriteSheet describes one atlas texture divided into a fixed grid of
// equally sized cells, plus the staging data needed to create its GPU
// texture/sampler pair. The sheet itself is immutable after construction;
// every lookup derives from the normalized cell size.
type SpriteSheet interface {
	// CellSize returns the normalized width/height of one grid cell in atlas
	// UV space.
	//
	// Returns:
	//   - [2]float32: the cell dimensions, each in (0, 1]
	CellSize() [2]float32

	// Columns returns the number of cells per row.
	//
	// Returns:
	//   - int: the column count
	Columns() int

	// Rows returns the number of cell rows.
	//
	// Returns:
	//   - int: the row count
	Rows() int

	// CellCount returns the total number of addressable cells.
	//
	// Returns:
	//   - int: Columns() * Rows()
	CellCount() int

	// Metadata builds indexed-mode sprite metadata for the given cell.
	// Indices outside [0, CellCount) are not rejected; they wrap through the
	// lookup math like every other index.
	//
	// Parameters:
	//   - index: the cell index in row-major order
	//
	// Returns:
	//   - SpriteMetadata: indexed-mode metadata for the cell
	Metadata(index int) SpriteMetadata

	// Texture returns the staged RGBA pixel data for the atlas texture.
	//
	// Returns:
	//   - common.TextureStagingData: the staged texture data
	Texture() common.TextureStagingData

	// Sampler returns the sampler configuration for the atlas.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler configuration
	Sampler() common.SamplerStagingData
}

var _ SpriteSheet = &spriteSheet{}

// NewSpriteSheet creates a SpriteSheet from the provided options. The atlas
// and cell pixel dimensions are required (directly or via WithTexture) and
// must be positive; the normalized cell size and grid shape are derived from
// them once here.
//
// Parameters:
//   - options: variadic list of SpriteSheetOption functions to configure the sheet
//
// Returns:
//   - SpriteSheet: a new SpriteSheet instance
func NewSpriteSheet(options ...SpriteSheetOption) SpriteSheet {
	s := &spriteSheet{
		sampler: common.PixelArtSampler(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.cellPixelWidth <= 0 || s.cellPixelHeight <= 0 {
		panic("atlas: sprite sheet requires a positive cell pixel size")
	}
	if s.atlasPixelWidth <= 0 || s.atlasPixelHeight <= 0 {
		panic("atlas: sprite sheet requires positive atlas pixel dimensions")
	}
	s.cellSize = [2]float32{
		float32(s.cellPixelWidth) / float32(s.atlasPixelWidth),
		float32(s.cellPixelHeight) / float32(s.atlasPixelHeight),
	}
	s.columns = s.atlasPixelWidth / s.cellPixelWidth
	s.rows = s.atlasPixelHeight / s.cellPixelHeight
	return s
}

func (s *spriteSheet) CellSize() [2]float32 {
	return s.cellSize
}

func (s *spriteSheet) Columns() int {
	return s.columns
}

func (s *spriteSheet) Rows() int {
	return s.rows
}

func (s *spriteSheet) CellCount() int {
	return s.columns * s.rows
}

func (s *spriteSheet) Metadata(index int) SpriteMetadata {
	return IndexedSprite(float32(index), s.cellSize)
}

func (s *spriteSheet) Texture() common.TextureStagingData {
	return s.texture
}

func (s *spriteSheet) Sampler() common.SamplerStagingData {
	return s.sampler
}
