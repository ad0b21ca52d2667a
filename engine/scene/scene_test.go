package scene

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pixelforge/atlas2d/common"
	"github.com/pixelforge/atlas2d/engine/atlas"
	"github.com/pixelforge/atlas2d/engine/camera"
	"github.com/pixelforge/atlas2d/engine/renderer"
	"github.com/pixelforge/atlas2d/engine/renderer/bind_group_provider"
	"github.com/pixelforge/atlas2d/engine/renderer/pipeline"
	"github.com/pixelforge/atlas2d/engine/sprite"
	"github.com/pixelforge/atlas2d/engine/tilemap"
)

// recordingRenderer satisfies renderer.Renderer without touching a GPU,
// recording enough of each call to assert the scene's wiring.
type recordingRenderer struct {
	registeredKeys []string

	meshInits []meshInit
	instInits []instInit
	uploads   []upload
	draws     []draw

	textureInits int
	samplerInits int
	bindGroups   int
}

type meshInit struct {
	provider   bind_group_provider.BindGroupProvider
	vertexLen  int
	indexLen   int
	indexCount int
}

type instInit struct {
	provider bind_group_provider.BindGroupProvider
	stride   uint64
	capacity int
}

type upload struct {
	provider bind_group_provider.BindGroupProvider
	dataLen  int
	count    int
}

type draw struct {
	key        string
	provider   bind_group_provider.BindGroupProvider
	count      uint32
	bindGroups []bind_group_provider.BindGroupProvider
}

var _ renderer.Renderer = &recordingRenderer{}

func (r *recordingRenderer) Pipeline(key string) pipeline.Pipeline        { return nil }
func (r *recordingRenderer) Pipelines() map[string]pipeline.Pipeline      { return nil }
func (r *recordingRenderer) SetPipeline(key string, p pipeline.Pipeline)  {}
func (r *recordingRenderer) SetPipelines(p map[string]pipeline.Pipeline)  {}
func (r *recordingRenderer) Resize(width, height int)                     {}
func (r *recordingRenderer) SetPresentMode(mode renderer.PresentMode)     {}
func (r *recordingRenderer) WriteBuffers(w []bind_group_provider.BufferWrite) {}
func (r *recordingRenderer) BeginFrame() error                            { return nil }
func (r *recordingRenderer) EndFrame()                                    {}
func (r *recordingRenderer) Present()                                     {}

func (r *recordingRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		r.registeredKeys = append(r.registeredKeys, p.PipelineKey())
	}
	return nil
}

func (r *recordingRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	r.meshInits = append(r.meshInits, meshInit{provider, len(vertexData), len(indexData), indexCount})
	provider.SetIndexCount(indexCount)
	return nil
}

func (r *recordingRenderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceStride uint64, capacity int) error {
	r.instInits = append(r.instInits, instInit{provider, instanceStride, capacity})
	provider.SetInstanceCapacity(capacity)
	return nil
}

func (r *recordingRenderer) WriteInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, instanceCount int) error {
	r.uploads = append(r.uploads, upload{provider, len(data), instanceCount})
	return nil
}

func (r *recordingRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	r.bindGroups++
	return nil
}

func (r *recordingRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	r.textureInits++
	return nil
}

func (r *recordingRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	r.samplerInits++
	return nil
}

func (r *recordingRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.draws = append(r.draws, draw{pipelineKey, meshProvider, instanceCount, bindGroups})
	return nil
}

func testSheet() atlas.SpriteSheet {
	return atlas.NewSpriteSheet(
		atlas.WithCellPixelSize(16, 16),
		atlas.WithAtlasPixelSize(64, 64),
	)
}

func testBatch(sheet atlas.SpriteSheet, n int) sprite.Batch {
	b := sprite.NewBatch(sprite.WithSheet(sheet), sprite.WithCapacity(n))
	for i := range n {
		b.Add(sprite.NewSprite(
			sprite.WithPosition(float32(i), 0),
			sprite.WithSheetCell(sheet, i),
		))
	}
	return b
}

func newTestScene(t *testing.T, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	t.Helper()
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	options = append(options, WithStagingWorkers(2))
	return NewScene("test", cam, r, options...)
}

func TestNewSceneRegistersSpritePipeline(t *testing.T) {
	rec := &recordingRenderer{}
	newTestScene(t, rec)

	if len(rec.registeredKeys) != 1 || rec.registeredKeys[0] != SpritePipelineKey {
		t.Fatalf("registered pipelines = %v, want [%s]", rec.registeredKeys, SpritePipelineKey)
	}
}

func TestAddCreatesBatchResources(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestScene(t, rec)
	sheet := testSheet()

	id := s.Add(testBatch(sheet, 3), 0.5)
	if id == 0 {
		t.Fatal("Add returned zero ID")
	}
	if s.Count() != 1 {
		t.Fatalf("Count = %d, want 1", s.Count())
	}
	if s.SpriteCount() != 3 {
		t.Fatalf("SpriteCount = %d, want 3", s.SpriteCount())
	}

	if len(rec.meshInits) != 1 {
		t.Fatalf("mesh inits = %d, want 1", len(rec.meshInits))
	}
	mi := rec.meshInits[0]
	if mi.vertexLen != 4*20 {
		t.Errorf("vertex data = %d bytes, want 80", mi.vertexLen)
	}
	if mi.indexLen != 6*2 || mi.indexCount != 6 {
		t.Errorf("index data = %d bytes / %d indices, want 12 / 6", mi.indexLen, mi.indexCount)
	}

	if len(rec.instInits) != 1 {
		t.Fatalf("instance inits = %d, want 1", len(rec.instInits))
	}
	ii := rec.instInits[0]
	if ii.stride != 96 {
		t.Errorf("instance stride = %d, want 96", ii.stride)
	}
	if ii.capacity != 3 {
		t.Errorf("instance capacity = %d, want 3", ii.capacity)
	}

	if rec.textureInits != 1 || rec.samplerInits != 1 || rec.bindGroups != 1 {
		t.Errorf("atlas resources = %d textures / %d samplers / %d bind groups, want 1 each",
			rec.textureInits, rec.samplerInits, rec.bindGroups)
	}
}

func TestPrepareStagesAndUploads(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestScene(t, rec)
	sheet := testSheet()
	b := testBatch(sheet, 5)
	s.Add(b, 0.5)

	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare returned %v", err)
	}

	if len(rec.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(rec.uploads))
	}
	up := rec.uploads[0]
	if up.count != 5 {
		t.Errorf("uploaded instance count = %d, want 5", up.count)
	}
	if up.dataLen != 5*96 {
		t.Errorf("uploaded bytes = %d, want 480", up.dataLen)
	}

	// Staged instance data matches what serial staging would produce.
	vp := s.Camera().ViewProjectionMatrix()
	want := b.At(2).Instance(vp[:])
	got := make([]atlas.GPUSpriteInstance, 5)
	copy(common.SliceToBytes(got), b.InstanceBytes())
	if got[2] != want {
		t.Errorf("staged instance 2 = %+v, want %+v", got[2], want)
	}
}

func TestPrepareSkipsEmptyBatches(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestScene(t, rec)
	sheet := testSheet()
	s.Add(sprite.NewBatch(sprite.WithSheet(sheet)), 0.5)

	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare returned %v", err)
	}
	if len(rec.uploads) != 0 {
		t.Fatalf("uploads = %d for empty batch, want 0", len(rec.uploads))
	}
}

func TestDrawCallsBackToFront(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestScene(t, rec)
	sheet := testSheet()

	front := s.Add(testBatch(sheet, 1), 0.2)
	back := s.Add(testBatch(sheet, 1), 0.8)
	mid := s.Add(testBatch(sheet, 1), 0.5)

	if err := s.DrawCalls(); err != nil {
		t.Fatalf("DrawCalls returned %v", err)
	}
	if len(rec.draws) != 3 {
		t.Fatalf("draws = %d, want 3", len(rec.draws))
	}

	// Draw order follows descending layer: back, mid, front.
	order := []uint64{back, mid, front}
	for i, id := range order {
		if rec.draws[i].provider != providerFor(s, id) {
			t.Errorf("draw %d used wrong mesh provider (want batch %d)", i, id)
		}
		if rec.draws[i].key != SpritePipelineKey {
			t.Errorf("draw %d used pipeline %q, want %q", i, rec.draws[i].key, SpritePipelineKey)
		}
		if len(rec.draws[i].bindGroups) != 1 {
			t.Errorf("draw %d bound %d groups, want 1", i, len(rec.draws[i].bindGroups))
		}
	}
}

// providerFor digs the mesh provider of a registered batch out of the scene.
func providerFor(s Scene, id uint64) bind_group_provider.BindGroupProvider {
	impl := s.(*scene)
	impl.mu.RLock()
	defer impl.mu.RUnlock()
	if e, ok := impl.registry[id]; ok {
		return e.mesh
	}
	return nil
}

func TestAddTileMapStagesTiles(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestScene(t, rec)
	sheet := testSheet()

	m := tilemap.NewTileMap(
		tilemap.WithTileSize(1, 1),
		tilemap.WithLayer(0.9),
		tilemap.WithGroundRow(8, 3, -1.0),
	)
	id := s.AddTileMap(m, sheet)

	b := s.Get(id)
	if b == nil {
		t.Fatal("tile map batch not registered")
	}
	if b.Len() != 8 {
		t.Fatalf("tile map batch has %d sprites, want 8", b.Len())
	}
}

func TestRemoveDropsBatch(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestScene(t, rec)
	sheet := testSheet()

	id := s.Add(testBatch(sheet, 2), 0.5)
	s.Remove(id)

	if s.Count() != 0 {
		t.Fatalf("Count after Remove = %d, want 0", s.Count())
	}
	if s.Get(id) != nil {
		t.Fatal("removed batch still retrievable")
	}
	if err := s.DrawCalls(); err != nil {
		t.Fatalf("DrawCalls returned %v", err)
	}
	if len(rec.draws) != 0 {
		t.Fatalf("draws after Remove = %d, want 0", len(rec.draws))
	}
}

func TestClearReleasesBatches(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestScene(t, rec)
	sheet := testSheet()

	a := s.Add(testBatch(sheet, 2), 0.5)
	b := s.Add(testBatch(sheet, 3), 0.3)
	s.Clear()

	if s.Count() != 0 {
		t.Fatalf("Count after Clear = %d, want 0", s.Count())
	}
	if s.Get(a) != nil || s.Get(b) != nil {
		t.Fatal("cleared batch still retrievable")
	}
	if err := s.DrawCalls(); err != nil {
		t.Fatalf("DrawCalls returned %v", err)
	}
	if len(rec.draws) != 0 {
		t.Fatalf("draws after Clear = %d, want 0", len(rec.draws))
	}

	// The scene stays usable: a new batch gets fresh GPU resources.
	s.Add(testBatch(sheet, 1), 0.5)
	if len(rec.meshInits) != 3 {
		t.Fatalf("mesh inits = %d, want 3", len(rec.meshInits))
	}
	if s.Count() != 1 {
		t.Fatalf("Count after re-Add = %d, want 1", s.Count())
	}
}

func TestWithBatchRegistersAtConstruction(t *testing.T) {
	rec := &recordingRenderer{}
	sheet := testSheet()
	s := newTestScene(t, rec, WithBatch(testBatch(sheet, 2), 0.4))

	if s.Count() != 1 {
		t.Fatalf("Count = %d, want 1", s.Count())
	}
	if len(rec.meshInits) != 1 {
		t.Fatalf("mesh inits = %d, want 1", len(rec.meshInits))
	}
}
