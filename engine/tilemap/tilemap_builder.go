package tilemap

// TileMapOption is a function that configures a tileMap instance during construction.
type TileMapOption func(*tileMap)

// WithTileSize is an option builder that sets the world-space dimensions of
// one tile.
//
// Parameters:
//   - width: the tile width
//   - height: the tile height
//
// Returns:
//   - TileMapOption: a function that applies the tile size option to a tile map
func WithTileSize(width, height float32) TileMapOption {
	return func(m *tileMap) {
		m.tileWidth = width
		m.tileHeight = height
	}
}

// WithLayer is an option builder that sets the depth layer staged tiles draw at.
//
// Parameters:
//   - layer: the layer value, expected in [0, 1]
//
// Returns:
//   - TileMapOption: a function that applies the layer option to a tile map
func WithLayer(layer float32) TileMapOption {
	return func(m *tileMap) {
		m.layer = layer
	}
}

// WithTiles is an option builder that seeds the map with tiles.
//
// Parameters:
//   - tiles: the tiles to place
//
// Returns:
//   - TileMapOption: a function that applies the tiles option to a tile map
func WithTiles(tiles ...Tile) TileMapOption {
	return func(m *tileMap) {
		m.tiles = append(m.tiles, tiles...)
	}
}

// WithGroundRow is an option builder that places a horizontal run of identical
// tiles, centered on x = 0 and resting so the row's bottom edge sits at the
// given ground height. Each tile's y is groundY + tileHeight/2 because positions
// address tile centers. Apply after WithTileSize; the row is laid out with
// whatever tile size is set at that point.
//
// Parameters:
//   - length: the number of tiles in the row
//   - tileIndex: the tileset cell every tile samples
//   - groundY: the world-space y of the row's bottom edge
//
// Returns:
//   - TileMapOption: a function that applies the ground row option to a tile map
func WithGroundRow(length, tileIndex int, groundY float32) TileMapOption {
	return func(m *tileMap) {
		totalWidth := float32(length) * m.tileWidth
		startX := -totalWidth/2 + m.tileWidth/2
		y := groundY + m.tileHeight/2
		for i := 0; i < length; i++ {
			m.tiles = append(m.tiles, Tile{
				Index: tileIndex,
				X:     startX + float32(i)*m.tileWidth,
				Y:     y,
			})
		}
	}
}
