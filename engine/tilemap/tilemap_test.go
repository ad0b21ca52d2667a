package tilemap

import (
	"math"
	"testing"

	"github.com/pixelforge/atlas2d/engine/atlas"
)

const epsilon = 1e-6

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestWithGroundRowCentersRow(t *testing.T) {
	m := NewTileMap(
		WithTileSize(0.25, 0.25),
		WithGroundRow(8, 21, -1.0),
	)

	tiles := m.Tiles()
	if len(tiles) != 8 {
		t.Fatalf("tile count = %d, want 8", len(tiles))
	}

	// Centered on x = 0: first center at -(8*0.25)/2 + 0.125.
	if !approxEqual(tiles[0].X, -0.875) {
		t.Errorf("first tile x = %v, want -0.875", tiles[0].X)
	}
	if !approxEqual(tiles[7].X, 0.875) {
		t.Errorf("last tile x = %v, want 0.875", tiles[7].X)
	}
	// Symmetry around zero.
	for i := 0; i < 4; i++ {
		if !approxEqual(tiles[i].X, -tiles[7-i].X) {
			t.Errorf("row not symmetric: tiles[%d].X = %v, tiles[%d].X = %v", i, tiles[i].X, 7-i, tiles[7-i].X)
		}
	}

	for i, tile := range tiles {
		if tile.Index != 21 {
			t.Errorf("tile %d index = %d, want 21", i, tile.Index)
		}
		// Bottom edge on the ground line: center = groundY + h/2.
		if !approxEqual(tile.Y, -0.875) {
			t.Errorf("tile %d y = %v, want -0.875", i, tile.Y)
		}
	}

	// Adjacent tiles abut exactly.
	for i := 1; i < len(tiles); i++ {
		if !approxEqual(tiles[i].X-tiles[i-1].X, 0.25) {
			t.Errorf("gap between tiles %d and %d: %v, want 0.25", i-1, i, tiles[i].X-tiles[i-1].X)
		}
	}
}

func TestBatchStagesTilesAsSprites(t *testing.T) {
	sheet := atlas.NewSpriteSheet(
		atlas.WithAtlasPixelSize(128, 64),
		atlas.WithCellPixelSize(16, 16),
	)
	m := NewTileMap(
		WithTileSize(1, 1),
		WithLayer(0.9),
		WithTiles(
			Tile{Index: 3, X: -1, Y: 0},
			Tile{Index: 5, X: 0, Y: 0},
			Tile{Index: 3, X: 1, Y: 0},
		),
	)

	b := m.Batch(sheet)
	if b.Len() != 3 {
		t.Fatalf("batch len = %d, want 3", b.Len())
	}
	if b.Sheet() != sheet {
		t.Error("batch bound to the wrong sheet")
	}

	wantIndices := []float32{3, 5, 3}
	for i := 0; i < b.Len(); i++ {
		s := b.At(i)
		meta := s.Metadata()
		if meta.SpriteIndex != wantIndices[i] {
			t.Errorf("sprite %d index = %v, want %v", i, meta.SpriteIndex, wantIndices[i])
		}
		if meta.TileMode() {
			t.Errorf("sprite %d staged in tile mode, want indexed", i)
		}
		if s.Layer() != 0.9 {
			t.Errorf("sprite %d layer = %v, want 0.9", i, s.Layer())
		}
		sx, sy := s.Scale()
		if sx != 1 || sy != 1 {
			t.Errorf("sprite %d scale = (%v, %v), want (1, 1)", i, sx, sy)
		}
	}

	b.StageAll(nil)
	if got := len(b.InstanceBytes()); got != 3*96 {
		t.Errorf("instance bytes = %d, want %d", got, 3*96)
	}
}

func TestNewTileMapPanicsWithoutTileSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewTileMap without a tile size should panic")
		}
	}()
	NewTileMap(WithTiles(Tile{Index: 0}))
}
