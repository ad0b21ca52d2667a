package atlas

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func approxEqualUV(a, b [2]float32) bool {
	return approxEqual(a[0], b[0]) && approxEqual(a[1], b[1])
}

func TestCellOrigin(t *testing.T) {
	tests := []struct {
		name     string
		index    float32
		cellSize [2]float32
		want     [2]float32
	}{
		{"first cell", 0, [2]float32{0.25, 0.25}, [2]float32{0, 0}},
		{"4 columns 1 row, index 2", 2, [2]float32{0.25, 1.0}, [2]float32{0.5, 0}},
		{"2x2 grid, index 3", 3, [2]float32{0.5, 0.5}, [2]float32{0.5, 0.5}},
		{"row wrap", 5, [2]float32{0.25, 0.25}, [2]float32{0.25, 0.25}},
		{"last cell 4x4", 15, [2]float32{0.25, 0.25}, [2]float32{0.75, 0.75}},
		{"non-square 8x2", 9, [2]float32{0.125, 0.5}, [2]float32{0.125, 0.5}},
		{"out of range extrapolates", 17, [2]float32{0.25, 0.25}, [2]float32{0.25, 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CellOrigin(tt.index, tt.cellSize)
			if !approxEqualUV(got, tt.want) {
				t.Errorf("CellOrigin(%v, %v) = %v, want %v", tt.index, tt.cellSize, got, tt.want)
			}
		})
	}
}

func TestCellOriginExactTiling(t *testing.T) {
	// Every in-range index must produce a cell that tiles the atlas exactly:
	// origins step by cellSize with no gaps or overlaps in row-major order.
	cellSize := [2]float32{0.25, 0.5} // 4x2 grid
	columns := 4
	rows := 2
	for index := 0; index < columns*rows; index++ {
		origin := CellOrigin(float32(index), cellSize)
		wantCol := index % columns
		wantRow := index / columns
		want := [2]float32{float32(wantCol) * cellSize[0], float32(wantRow) * cellSize[1]}
		if !approxEqualUV(origin, want) {
			t.Errorf("index %d: origin = %v, want %v", index, origin, want)
		}

		// Adjacent cell in the same row starts exactly where this one ends.
		if wantCol+1 < columns {
			next := CellOrigin(float32(index+1), cellSize)
			if !approxEqual(next[0], origin[0]+cellSize[0]) {
				t.Errorf("index %d: next column origin %v does not abut %v", index, next, origin)
			}
		}
	}
}

func TestResolveUVIndexed(t *testing.T) {
	tests := []struct {
		name    string
		meta    SpriteMetadata
		localUV [2]float32
		want    [2]float32
	}{
		{
			"4 columns index 2 center",
			IndexedSprite(2, [2]float32{0.25, 1.0}),
			[2]float32{0.5, 0.5},
			[2]float32{0.625, 0.5},
		},
		{
			"2x2 index 3 origin corner",
			IndexedSprite(3, [2]float32{0.5, 0.5}),
			[2]float32{0, 0},
			[2]float32{0.5, 0.5},
		},
		{
			"2x2 index 3 far corner",
			IndexedSprite(3, [2]float32{0.5, 0.5}),
			[2]float32{1, 1},
			[2]float32{1, 1},
		},
		{
			"index 0 passes local through scaled",
			IndexedSprite(0, [2]float32{0.1, 0.2}),
			[2]float32{0.5, 0.5},
			[2]float32{0.05, 0.1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveUV(tt.meta, tt.localUV)
			if !approxEqualUV(got, tt.want) {
				t.Errorf("ResolveUV(%+v, %v) = %v, want %v", tt.meta, tt.localUV, got, tt.want)
			}
		})
	}
}

func TestResolveUVCellCorners(t *testing.T) {
	// localUV (0,0) must land on the cell's top-left corner and (1,1) on the
	// corner of the next cell over (exclusive boundary, sampler's business).
	meta := IndexedSprite(5, [2]float32{0.25, 0.25})
	origin := CellOrigin(5, meta.CellSize)

	topLeft := ResolveUV(meta, [2]float32{0, 0})
	if !approxEqualUV(topLeft, origin) {
		t.Errorf("localUV (0,0) resolved to %v, want cell origin %v", topLeft, origin)
	}

	bottomRight := ResolveUV(meta, [2]float32{1, 1})
	want := [2]float32{origin[0] + meta.CellSize[0], origin[1] + meta.CellSize[1]}
	if !approxEqualUV(bottomRight, want) {
		t.Errorf("localUV (1,1) resolved to %v, want %v", bottomRight, want)
	}
}

func TestResolveUVTileMode(t *testing.T) {
	tests := []struct {
		name    string
		meta    SpriteMetadata
		localUV [2]float32
		want    [2]float32
	}{
		{
			"offset and scale",
			TileRegion([2]float32{0.5, 0.25}, [2]float32{0.125, 0.125}),
			[2]float32{0.5, 0.5},
			[2]float32{0.5625, 0.3125},
		},
		{
			"full texture pass-through",
			TileRegion([2]float32{0, 0}, [2]float32{1, 1}),
			[2]float32{0.3, 0.7},
			[2]float32{0.3, 0.7},
		},
		{
			"sprite index ignored in tile mode",
			SpriteMetadata{SpriteIndex: 42, UVOffset: [2]float32{0.1, 0.1}, UVScale: [2]float32{0.2, 0.2}},
			[2]float32{0.5, 0.5},
			[2]float32{0.2, 0.2},
		},
		{
			"negative cell size is tile mode",
			SpriteMetadata{SpriteIndex: 7, CellSize: [2]float32{-1, 0.5}, UVScale: [2]float32{1, 1}},
			[2]float32{0.25, 0.75},
			[2]float32{0.25, 0.75},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveUV(tt.meta, tt.localUV)
			if !approxEqualUV(got, tt.want) {
				t.Errorf("ResolveUV(%+v, %v) = %v, want %v", tt.meta, tt.localUV, got, tt.want)
			}
		})
	}
}

func TestResolveUVIdempotent(t *testing.T) {
	meta := IndexedSprite(11, [2]float32{0.125, 0.25})
	localUV := [2]float32{0.33, 0.66}
	first := ResolveUV(meta, localUV)
	second := ResolveUV(meta, localUV)
	if first != second {
		t.Errorf("ResolveUV not idempotent: %v then %v", first, second)
	}
}

func TestTileModeDispatch(t *testing.T) {
	tests := []struct {
		name     string
		cellSize [2]float32
		want     bool
	}{
		{"both positive", [2]float32{0.25, 0.25}, false},
		{"both zero", [2]float32{0, 0}, true},
		{"x zero", [2]float32{0, 0.5}, true},
		{"y zero", [2]float32{0.5, 0}, true},
		{"negative", [2]float32{-0.25, -0.25}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := SpriteMetadata{CellSize: tt.cellSize}
			if got := meta.TileMode(); got != tt.want {
				t.Errorf("TileMode() with cellSize %v = %v, want %v", tt.cellSize, got, tt.want)
			}
		})
	}
}

func TestTileRegionFromPixels(t *testing.T) {
	meta := TileRegionFromPixels(16, 32, 16, 16, 128, 64)
	if !meta.TileMode() {
		t.Fatal("TileRegionFromPixels metadata should be in tile mode")
	}
	if !approxEqualUV(meta.UVOffset, [2]float32{0.125, 0.5}) {
		t.Errorf("UVOffset = %v, want (0.125, 0.5)", meta.UVOffset)
	}
	if !approxEqualUV(meta.UVScale, [2]float32{0.125, 0.25}) {
		t.Errorf("UVScale = %v, want (0.125, 0.25)", meta.UVScale)
	}
}

func TestFmodMatchesTruncatedModulo(t *testing.T) {
	tests := []struct {
		a, b, want float32
	}{
		{3, 2, 1},
		{2, 4, 2},
		{7.5, 4, 3.5},
		{-3, 2, -1}, // sign of the dividend, matching WGSL %
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := Fmod(tt.a, tt.b); !approxEqual(got, tt.want) {
			t.Errorf("Fmod(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewSpriteSheet(t *testing.T) {
	sheet := NewSpriteSheet(
		WithAtlasPixelSize(384, 16),
		WithCellPixelSize(16, 16),
	)
	if got := sheet.Columns(); got != 24 {
		t.Errorf("Columns() = %d, want 24", got)
	}
	if got := sheet.Rows(); got != 1 {
		t.Errorf("Rows() = %d, want 1", got)
	}
	if got := sheet.CellCount(); got != 24 {
		t.Errorf("CellCount() = %d, want 24", got)
	}
	wantCell := [2]float32{16.0 / 384.0, 1.0}
	if !approxEqualUV(sheet.CellSize(), wantCell) {
		t.Errorf("CellSize() = %v, want %v", sheet.CellSize(), wantCell)
	}

	meta := sheet.Metadata(2)
	if meta.TileMode() {
		t.Error("sheet metadata should be indexed mode")
	}
	if meta.SpriteIndex != 2 {
		t.Errorf("SpriteIndex = %v, want 2", meta.SpriteIndex)
	}
}

func TestNewSpriteSheetPanicsWithoutCellSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewSpriteSheet without cell size should panic")
		}
	}()
	NewSpriteSheet(WithAtlasPixelSize(64, 64))
}
