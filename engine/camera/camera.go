package camera

import (
	"sync"

	"github.com/pixelforge/atlas2d/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	aspect     float32
	viewHeight float32
	near       float32
	far        float32

	viewProjectionMatrix [16]float32

	controller CameraController
}

// Camera defines the interface for the 2D camera system.
// The camera holds orthographic settings and computes a view-projection matrix
// from an attached CameraController each frame via Update(). The resulting
// matrix is premultiplied into sprite transforms on the CPU, so the camera
// owns no GPU resources of its own.
type Camera interface {
	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// ViewHeight returns the number of world units visible vertically at zoom 1.
	//
	// Returns:
	//   - float32: the vertical view extent in world units
	ViewHeight() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads center/zoom from the controller and recomputes the matrix.
	// Should be called once per frame (typically in the tick callback).
	// If no controller is attached, this method does nothing.
	Update()

	// SetAspect sets the aspect ratio (width / height) and recomputes the matrix.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetViewHeight sets the vertical view extent in world units and recomputes the matrix.
	//
	// Parameters:
	//   - viewHeight: world units visible vertically at zoom 1
	SetViewHeight(viewHeight float32)

	// SetNear sets the near clipping plane distance and recomputes the matrix.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes the matrix.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default orthographic settings.
// A controller must be attached via SetController or WithController option
// before center/zoom data is available.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		aspect:               1.0,
		viewHeight:           2.0,
		near:                 -1.0,
		far:                  1.0,
		viewProjectionMatrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.updateMatrix()
	}
	return c
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) ViewHeight() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewHeight
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrix()
}

func (c *cameraImpl) SetViewHeight(viewHeight float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewHeight = viewHeight
	c.updateMatrix()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrix()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrix()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrix()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

// updateMatrix recalculates the orthographic view-projection matrix from the
// controller's center and zoom. This is a no-op when the controller is nil.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrix() {
	if c.controller == nil {
		return
	}

	cx, cy := c.controller.Center()
	zoom := c.controller.Zoom()
	if zoom <= 0 {
		zoom = 1
	}

	halfHeight := c.viewHeight / (2 * zoom)
	halfWidth := halfHeight * c.aspect

	common.Orthographic(c.viewProjectionMatrix[:],
		cx-halfWidth, cx+halfWidth,
		cy-halfHeight, cy+halfHeight,
		c.near, c.far,
	)
}
