// Package scene ties batches, tile maps, a camera, and a renderer into one
// drawable unit. The scene owns the GPU resources behind every registered
// batch (quad mesh, instance buffer, atlas bind group) and drives the
// per-frame staging/upload/draw cycle.
package scene

import (
	"cmp"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/pixelforge/atlas2d/common"
	"github.com/pixelforge/atlas2d/engine/atlas"
	"github.com/pixelforge/atlas2d/engine/camera"
	"github.com/pixelforge/atlas2d/engine/renderer"
	"github.com/pixelforge/atlas2d/engine/renderer/bind_group_provider"
	"github.com/pixelforge/atlas2d/engine/renderer/pipeline"
	"github.com/pixelforge/atlas2d/engine/renderer/shader"
	"github.com/pixelforge/atlas2d/engine/sprite"
	"github.com/pixelforge/atlas2d/engine/tilemap"
)

// SpritePipelineKey is the cache key of the instanced sprite render pipeline
// every scene registers on its renderer.
const SpritePipelineKey = "sprite_instanced"

// stagingChunkSize caps how many sprites one staging task processes, so large
// batches fan out across the worker pool instead of serializing on one worker.
const stagingChunkSize = 512

// batchEntry is one registered batch plus the GPU resources the scene created
// for it. The quad mesh carries the entry's layer in every vertex z, which is
// what the vertex stage forwards as clip depth.
type batchEntry struct {
	id    uint64
	layer float32
	batch sprite.Batch

	mesh     bind_group_provider.BindGroupProvider // quad vertex/index + instance buffer
	atlasBGP bind_group_provider.BindGroupProvider // atlas texture + sampler
}

// Scene manages a registry of sprite batches with a Camera and Renderer for
// rendering. Each batch gets its own quad mesh (baked at the batch's layer),
// instance buffer, and atlas bind group; draws run back to front so alpha
// blending composites correctly across layers.
// Scenes can be hot-swapped via the Active flag to switch between different views or levels.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Count returns the number of registered batches.
	//
	// Returns:
	//   - int: count of batches in the registry
	Count() int

	// SpriteCount returns the total number of sprites across all batches.
	//
	// Returns:
	//   - int: total sprite count
	SpriteCount() int

	// Add registers a batch at the given depth layer. The scene creates the
	// batch's quad mesh with the layer baked into every vertex z, an instance
	// buffer sized for the batch, and a bind group holding the sheet's atlas
	// texture and sampler. Panics if GPU resource creation fails.
	//
	// Parameters:
	//   - b: the batch to register
	//   - layer: the depth layer in [0, 1]; smaller values draw in front
	//
	// Returns:
	//   - uint64: the assigned batch ID
	Add(b sprite.Batch, layer float32) uint64

	// AddTileMap stages a tile map as a batch against the given tileset and
	// registers it at the map's layer.
	//
	// Parameters:
	//   - m: the tile map to stage
	//   - sheet: the tileset the tiles sample
	//
	// Returns:
	//   - uint64: the assigned batch ID
	AddTileMap(m tilemap.TileMap, sheet atlas.SpriteSheet) uint64

	// Get retrieves a registered batch by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the batch's unique ID
	//
	// Returns:
	//   - sprite.Batch: the batch or nil
	Get(id uint64) sprite.Batch

	// Remove removes a batch from the registry by ID and releases the GPU
	// resources the scene created for it.
	//
	// Parameters:
	//   - id: the batch's unique ID
	Remove(id uint64)

	// Clear removes all batches from the scene and releases their GPU
	// resources, leaving the scene empty and ready for new batches.
	Clear()

	// Prepare updates the camera, stages every sprite's instance data with the
	// view-projection premultiplied, and uploads the staged bytes to each
	// batch's instance buffer. Staging fans out across the scene's worker pool;
	// uploads run serially afterward.
	//
	// Returns:
	//   - error: error if an instance buffer upload fails
	Prepare() error

	// DrawCalls issues one instanced draw per non-empty batch, back to front.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	entries  []*batchEntry // sorted back to front (descending layer)
	registry map[uint64]*batchEntry
	nextID   uint64

	cam camera.Camera
	r   renderer.Renderer

	// Layout descriptor for the atlas texture/sampler group, captured once
	// from the instanced fragment shader at construction.
	atlasGroupDesc atlasGroupDescriptor

	pipelineOpts []pipeline.PipelineBuilderOption

	// Batches passed via WithBatch before GPU init; drained in NewScene.
	pendingBatches []pendingBatch

	// stagingPool manages a bounded set of reusable goroutines for the parallel
	// staging phase of Prepare. Workers persist across frames, avoiding
	// per-frame goroutine spawn/teardown overhead.
	stagingPool    worker.DynamicWorkerPool
	stagingWorkers int
}

type pendingBatch struct {
	batch sprite.Batch
	layer float32
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera and renderer. Both are
// required and NewScene panics if either is nil. The instanced sprite pipeline
// is registered on the renderer under SpritePipelineKey, shared by every batch
// the scene draws.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		active:         false,
		cam:            cam,
		r:              r,
		registry:       make(map[uint64]*batchEntry),
		nextID:         1,
		stagingWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the staging pool after options so WithStagingWorkers can
	// override the default. Queue size of 256 accommodates typical batch
	// chunk counts with headroom.
	s.stagingPool = worker.NewDynamicWorkerPool(s.stagingWorkers, 256, 1*time.Second)

	// Build both stages of the instanced sprite pipeline from the shared
	// source and register it once. Every batch draw goes through this pipeline.
	vs := shader.NewShader(SpritePipelineKey+"_vs", shader.ShaderTypeVertex, atlas.SpriteInstancedShaderSource)
	fs := shader.NewShader(SpritePipelineKey+"_fs", shader.ShaderTypeFragment, atlas.SpriteInstancedShaderSource)

	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}, s.pipelineOpts...)
	p := pipeline.NewPipeline(SpritePipelineKey, opts...)
	if err := r.RegisterPipelines(p); err != nil {
		panic(fmt.Sprintf("scene: failed to register sprite pipeline: %v", err))
	}

	// Locate the atlas texture/sampler group by variable name so the layout
	// descriptor survives shader edits that renumber groups.
	atlasGroup := 0
	for i, names := range fs.BindGroupVarNames() {
		for _, varName := range names {
			if strings.Contains(strings.ToLower(varName), "atlas") {
				atlasGroup = i
				break
			}
		}
	}
	s.atlasGroupDesc = atlasGroupDescriptor{
		descriptor: fs.BindGroupLayoutDescriptor(atlasGroup),
		shader:     fs,
		group:      atlasGroup,
	}

	// Register batches supplied through options now that GPU init can run.
	for _, pb := range s.pendingBatches {
		s.addLocked(pb.batch, pb.layer)
	}
	s.pendingBatches = nil

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) SpriteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.entries {
		count += e.batch.Len()
	}
	return count
}

func (s *scene) Add(b sprite.Batch, layer float32) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(b, layer)
}

func (s *scene) AddTileMap(m tilemap.TileMap, sheet atlas.SpriteSheet) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(m.Batch(sheet), m.Layer())
}

// addLocked registers a batch and creates its GPU resources.
// Caller must hold s.mu write lock.
func (s *scene) addLocked(b sprite.Batch, layer float32) uint64 {
	id := s.nextID
	s.nextID++

	e := &batchEntry{
		id:    id,
		layer: layer,
		batch: b,
	}
	s.initEntryResources(e)

	s.registry[id] = e
	s.entries = append(s.entries, e)
	// Back to front: larger layers are farther under the less-equal depth
	// test, and translucent sprites need the far ones composited first.
	slices.SortStableFunc(s.entries, func(a, b *batchEntry) int {
		return cmp.Compare(b.layer, a.layer)
	})

	return id
}

func (s *scene) Get(id uint64) sprite.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.registry[id]; ok {
		return e.batch
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.registry[id]
	if !exists {
		return
	}
	delete(s.registry, id)

	for i, entry := range s.entries {
		if entry == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}

	if e.mesh != nil {
		e.mesh.Release()
	}
	if e.atlasBGP != nil {
		e.atlasBGP.Release()
	}
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.mesh != nil {
			e.mesh.Release()
		}
		if e.atlasBGP != nil {
			e.atlasBGP.Release()
		}
	}
	s.entries = nil
	s.registry = make(map[uint64]*batchEntry)
}

func (s *scene) Prepare() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	var vp []float32
	if s.cam != nil {
		s.cam.Update()
		m := s.cam.ViewProjectionMatrix()
		vp = m[:]
	}

	// Phase 1: parallel staging — fan batch chunks out across the pool.
	// Workers are reused across frames (no goroutine spawn overhead).
	// A WaitGroup provides per-frame barrier sync since pool.Wait() blocks
	// until workers idle-exit which is unsuitable for frame-rate workloads.
	// StageInstance writes are index-disjoint across tasks, so chunks of the
	// same batch can stage concurrently.
	var wg sync.WaitGroup
	taskID := 0
	for _, e := range s.entries {
		n := e.batch.Len()
		if n == 0 {
			continue
		}
		for start := 0; start < n; start += stagingChunkSize {
			end := min(start+stagingChunkSize, n)
			wg.Add(1)
			b := e.batch // capture for closure
			lo, hi := start, end
			id := taskID
			taskID++
			s.stagingPool.SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					for i := lo; i < hi; i++ {
						b.StageInstance(i, vp)
					}
					return nil, nil
				},
			})
		}
	}
	wg.Wait()

	// Phase 2: serial upload — push each batch's staged bytes to its instance
	// buffer. The buffer grows in place when a batch gained sprites.
	for _, e := range s.entries {
		n := e.batch.Len()
		if n == 0 {
			continue
		}
		if err := s.r.WriteInstanceBuffer(e.mesh, e.batch.InstanceBytes(), n); err != nil {
			return fmt.Errorf("instance upload failed for batch %d in scene %q: %w", e.id, s.name, err)
		}
	}

	return nil
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	// Entries are kept sorted back to front, so iteration order is draw order.
	for _, e := range s.entries {
		n := e.batch.Len()
		if n == 0 {
			continue
		}
		bindGroups := []bind_group_provider.BindGroupProvider{e.atlasBGP}
		if err := s.r.DrawCall(SpritePipelineKey, e.mesh, uint32(n), bindGroups); err != nil {
			return fmt.Errorf("draw call failed for batch %d in scene %q: %w", e.id, s.name, err)
		}
	}

	return nil
}

// initEntryResources creates the quad mesh, instance buffer, and atlas bind
// group for a new entry. Caller must hold s.mu write lock.
// Panics on GPU resource creation failure, matching the construction-time
// failure mode of the rest of the engine.
func (s *scene) initEntryResources(e *batchEntry) {
	sheet := e.batch.Sheet()

	// Quad mesh with the entry's layer baked into every vertex z. The vertex
	// stage forwards that z as clip depth untouched.
	mesh := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s_batch_%d_mesh", s.name, e.id))
	verts := atlas.QuadVertices(e.layer)
	if err := s.r.InitMeshBuffers(mesh, common.SliceToBytes(verts[:]), common.SliceToBytes(atlas.QuadIndices[:]), len(atlas.QuadIndices)); err != nil {
		panic(fmt.Sprintf("scene: failed to init quad mesh for batch %d: %v", e.id, err))
	}

	var inst atlas.GPUSpriteInstance
	if err := s.r.InitInstanceBuffer(mesh, uint64(inst.Size()), max(e.batch.Len(), 1)); err != nil {
		panic(fmt.Sprintf("scene: failed to init instance buffer for batch %d: %v", e.id, err))
	}
	e.mesh = mesh

	// Atlas bind group: texture view and sampler from the sheet's staging
	// data, bound at the indices the fragment shader declared.
	atlasBGP := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s_batch_%d_atlas", s.name, e.id))
	textureBinding, samplerBinding := s.atlasGroupDesc.bindings()
	if err := s.r.InitTextureView(atlasBGP, textureBinding, sheet.Texture()); err != nil {
		panic(fmt.Sprintf("scene: failed to init atlas texture for batch %d: %v", e.id, err))
	}
	if err := s.r.InitSampler(atlasBGP, samplerBinding, sheet.Sampler()); err != nil {
		panic(fmt.Sprintf("scene: failed to init atlas sampler for batch %d: %v", e.id, err))
	}
	if err := s.r.InitBindGroup(atlasBGP, s.atlasGroupDesc.descriptor, nil, nil); err != nil {
		panic(fmt.Sprintf("scene: failed to init atlas bind group for batch %d: %v", e.id, err))
	}
	e.atlasBGP = atlasBGP
}
