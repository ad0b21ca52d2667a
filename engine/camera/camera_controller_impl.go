package camera

import (
	"math"
	"sync"

	"github.com/pixelforge/atlas2d/common"
)

// cameraControllerImpl is the single implementation of CameraController.
// Pan methods translate the view center along the world axes; zoom methods
// scale the visible extent multiplicatively within the configured bounds.
type cameraControllerImpl struct {
	mu *sync.Mutex

	center [2]float32
	zoom   float32

	minZoom float32
	maxZoom float32

	panSpeed         float32
	zoomSpeed        float32
	mouseSensitivity float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		center: [2]float32{0, 0},
		zoom:   1.0,

		minZoom: 0.1,
		maxZoom: 10.0,

		panSpeed:         1.0,
		zoomSpeed:        0.1,
		mouseSensitivity: 0.005,
	}

	for _, option := range options {
		option(cc)
	}

	cc.clampZoom()
	return cc
}

// clampZoom keeps the zoom factor within the configured bounds.
// Caller must hold the mutex (or be in construction).
func (cc *cameraControllerImpl) clampZoom() {
	cc.zoom = common.Clamp(cc.zoom, cc.minZoom, cc.maxZoom)
}

func (cc *cameraControllerImpl) Center() (x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.center[0], cc.center[1]
}

func (cc *cameraControllerImpl) SetCenter(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.center[0] = x
	cc.center[1] = y
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	// Pan distance shrinks as zoom grows so a drag covers the same fraction
	// of the screen at any magnification.
	cc.center[0] += dx * cc.panSpeed / cc.zoom
	cc.center[1] += dy * cc.panSpeed / cc.zoom
}

func (cc *cameraControllerImpl) Follow(x, y, smoothing float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if smoothing <= 0 {
		return
	}
	if smoothing > 1 {
		smoothing = 1
	}
	cc.center[0] = common.Lerp(cc.center[0], x, smoothing)
	cc.center[1] = common.Lerp(cc.center[1], y, smoothing)
}

func (cc *cameraControllerImpl) Zoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoom
}

func (cc *cameraControllerImpl) SetZoom(zoom float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoom = zoom
	cc.clampZoom()
}

func (cc *cameraControllerImpl) ZoomBy(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	// Multiplicative steps keep zoom feel uniform across the range: one
	// scroll notch near minZoom covers the same apparent change as one
	// near maxZoom.
	cc.zoom *= float32(math.Exp(float64(delta * cc.zoomSpeed)))
	cc.clampZoom()
}

func (cc *cameraControllerImpl) MinZoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minZoom
}

func (cc *cameraControllerImpl) MaxZoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxZoom
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}
