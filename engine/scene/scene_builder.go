package scene

import (
	"github.com/pixelforge/atlas2d/engine/renderer/pipeline"
	"github.com/pixelforge/atlas2d/engine/sprite"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithBatch registers an initial batch at the given layer. The batch's GPU
// resources are created once the scene's pipeline is registered, so this is
// equivalent to calling Add after NewScene returns.
//
// Parameters:
//   - b: the batch to register
//   - layer: the depth layer in [0, 1]; smaller values draw in front
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBatch(b sprite.Batch, layer float32) SceneBuilderOption {
	return func(s *scene) {
		s.pendingBatches = append(s.pendingBatches, pendingBatch{batch: b, layer: layer})
	}
}

// WithStagingWorkers sets the number of worker goroutines used during the
// parallel staging phase of Prepare. Defaults to runtime.NumCPU()-1.
// Higher values may improve throughput with many large batches; lower values
// reduce scheduling overhead for simple scenes.
//
// Parameters:
//   - n: the number of staging workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithStagingWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.stagingWorkers = n
	}
}

// WithPipelineOptions appends pipeline builder options applied when the scene
// registers its instanced sprite pipeline (e.g. a custom blend state).
//
// Parameters:
//   - opts: pipeline builder options to apply
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPipelineOptions(opts ...pipeline.PipelineBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.pipelineOpts = append(s.pipelineOpts, opts...)
	}
}
