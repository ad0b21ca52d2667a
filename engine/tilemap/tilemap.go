// Package tilemap builds grids and rows of atlas-indexed tiles and stages
// them as sprite batches. A tile map is plain placement data; rendering goes
// through the same instanced sprite path as everything else.
package tilemap

import (
	"github.com/pixelforge/atlas2d/engine/atlas"
	"github.com/pixelforge/atlas2d/engine/sprite"
)

// Tile is one placed tile: which tileset cell it samples and where its center
// sits in world space.
type Tile struct {
	Index int
	X     float32
	Y     float32
}

// tileMap is the implementation of the TileMap interface.
type tileMap struct {
	tiles      []Tile
	tileWidth  float32
	tileHeight float32
	layer      float32
}

// TileMap is a collection of placed tiles sharing one tile size. Tiles carry
// no GPU state; Batch stages them as instanced sprites against a tileset.
type TileMap interface {
	// Tiles returns the placed tiles.
	//
	// Returns:
	//   - []Tile: the tile slice, in placement order
	Tiles() []Tile

	// TileSize returns the world-space dimensions of one tile.
	//
	// Returns:
	//   - float32: the tile width
	//   - float32: the tile height
	TileSize() (float32, float32)

	// Layer returns the depth layer every staged tile draws at.
	//
	// Returns:
	//   - float32: the layer in [0, 1]
	Layer() float32

	// Add places a tile.
	//
	// Parameters:
	//   - tile: the tile to place
	Add(tile Tile)

	// Batch stages every tile as a sprite in a new batch bound to the given
	// tileset. Each tile becomes a sprite scaled to the tile size, positioned
	// at the tile's center, addressing the tile's cell.
	//
	// Parameters:
	//   - sheet: the tileset the tiles sample
	//
	// Returns:
	//   - sprite.Batch: a batch with one sprite per tile
	Batch(sheet atlas.SpriteSheet) sprite.Batch
}

var _ TileMap = &tileMap{}

// NewTileMap creates a TileMap from the provided options. The tile size is
// required and must be positive.
//
// Parameters:
//   - options: variadic list of TileMapOption functions to configure the map
//
// Returns:
//   - TileMap: a new TileMap instance
func NewTileMap(options ...TileMapOption) TileMap {
	m := &tileMap{}
	for _, opt := range options {
		opt(m)
	}
	if m.tileWidth <= 0 || m.tileHeight <= 0 {
		panic("tilemap: tile map requires a positive tile size")
	}
	return m
}

func (m *tileMap) Tiles() []Tile {
	return m.tiles
}

func (m *tileMap) TileSize() (float32, float32) {
	return m.tileWidth, m.tileHeight
}

func (m *tileMap) Layer() float32 {
	return m.layer
}

func (m *tileMap) Add(tile Tile) {
	m.tiles = append(m.tiles, tile)
}

func (m *tileMap) Batch(sheet atlas.SpriteSheet) sprite.Batch {
	b := sprite.NewBatch(sprite.WithSheet(sheet), sprite.WithCapacity(len(m.tiles)))
	for _, tile := range m.tiles {
		b.Add(sprite.NewSprite(
			sprite.WithPosition(tile.X, tile.Y),
			sprite.WithLayer(m.layer),
			sprite.WithScale(m.tileWidth, m.tileHeight),
			sprite.WithSheetCell(sheet, tile.Index),
		))
	}
	return b
}
