package sprite

import (
	"sync"
	"testing"
)

func TestBatchStaging(t *testing.T) {
	sheet := testSheet(t)
	b := NewBatch(WithSheet(sheet), WithCapacity(4))

	for i := 0; i < 3; i++ {
		b.Add(NewSprite(
			WithPosition(float32(i), 0),
			WithSheetCell(sheet, i),
		))
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}

	b.StageAll(nil)
	buf := b.InstanceBytes()
	if len(buf) != 3*96 {
		t.Fatalf("InstanceBytes() len = %d, want %d", len(buf), 3*96)
	}

	// Each instance slot reflects its own sprite.
	for i := 0; i < 3; i++ {
		inst := b.At(i).Instance(nil)
		if inst.SpriteIndex != float32(i) {
			t.Errorf("sprite %d: SpriteIndex = %v, want %v", i, inst.SpriteIndex, float32(i))
		}
	}
}

func TestBatchStageInstanceConcurrent(t *testing.T) {
	sheet := testSheet(t)
	b := NewBatch(WithSheet(sheet))
	const n = 64
	for i := 0; i < n; i++ {
		b.Add(NewSprite(WithPosition(float32(i), float32(-i)), WithSheetCell(sheet, i)))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.StageInstance(i, nil)
		}(i)
	}
	wg.Wait()

	if got := len(b.InstanceBytes()); got != n*96 {
		t.Fatalf("InstanceBytes() len = %d, want %d", got, n*96)
	}
	for i := 0; i < n; i++ {
		inst := b.At(i).Instance(nil)
		if inst.SpriteIndex != float32(i) {
			t.Errorf("sprite %d staged wrong index %v", i, inst.SpriteIndex)
		}
	}
}

func TestBatchClearKeepsSheet(t *testing.T) {
	sheet := testSheet(t)
	b := NewBatch(WithSheet(sheet), WithSprites(NewSprite(), NewSprite()))
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", b.Len())
	}
	if b.Sheet() != sheet {
		t.Error("Clear dropped the sheet")
	}
}

func TestNewBatchPanicsWithoutSheet(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBatch without a sheet should panic")
		}
	}()
	NewBatch()
}
