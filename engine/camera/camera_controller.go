package camera

// CameraController defines the interface for 2D camera control systems.
// Controllers own positional state (center, zoom). Camera reads from the
// controller and computes the orthographic view-projection matrix.
type CameraController interface {
	// Center returns the world-space point at the middle of the view.
	//
	// Returns:
	//   - x, y: world-space center coordinates
	Center() (x, y float32)

	// SetCenter sets the world-space view center directly.
	//
	// Parameters:
	//   - x, y: world-space coordinates
	SetCenter(x, y float32)

	// Pan translates the view center by a world-space offset scaled by PanSpeed.
	//
	// Parameters:
	//   - dx, dy: pan amounts along the world axes
	Pan(dx, dy float32)

	// Follow moves the view center toward the given point by the smoothing
	// factor. A factor of 1 snaps directly to the target; smaller values
	// trail it, which keeps a tracked sprite from jerking the view.
	//
	// Parameters:
	//   - x, y: world-space point to follow
	//   - smoothing: fraction of the remaining distance to close, in (0, 1]
	Follow(x, y, smoothing float32)

	// Zoom returns the current zoom factor. 1 shows the camera's full view
	// height; larger values magnify.
	//
	// Returns:
	//   - float32: current zoom factor
	Zoom() float32

	// SetZoom sets the zoom factor directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - zoom: new zoom factor
	SetZoom(zoom float32)

	// ZoomBy adjusts the zoom factor multiplicatively by delta steps scaled
	// by ZoomSpeed. Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount, typically a scroll wheel delta
	ZoomBy(delta float32)

	// MinZoom returns the minimum allowed zoom factor.
	//
	// Returns:
	//   - float32: minimum zoom factor
	MinZoom() float32

	// MaxZoom returns the maximum allowed zoom factor.
	//
	// Returns:
	//   - float32: maximum zoom factor
	MaxZoom() float32

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32

	// MouseSensitivity returns the mouse drag sensitivity multiplier.
	//
	// Returns:
	//   - float32: multiplier for mouse movement
	MouseSensitivity() float32
}
