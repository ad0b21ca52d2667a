package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithCenter sets the initial world-space view center.
//
// Parameters:
//   - x: X coordinate of the center
//   - y: Y coordinate of the center
//
// Returns:
//   - CameraControllerOption: functional option to set the center
func WithCenter(x, y float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.center[0] = x
		cc.center[1] = y
	}
}

// WithZoom sets the initial zoom factor.
//
// Parameters:
//   - zoom: zoom factor (1 shows the camera's full view height)
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom
func WithZoom(zoom float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoom = zoom
	}
}

// WithZoomBounds sets the minimum and maximum zoom factors.
//
// Parameters:
//   - min: minimum zoom factor (widest view)
//   - max: maximum zoom factor (tightest view)
//
// Returns:
//   - CameraControllerOption: functional option to set zoom bounds
func WithZoomBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZoom = min
		cc.maxZoom = max
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithMouseSensitivity sets the mouse drag sensitivity.
//
// Parameters:
//   - sensitivity: multiplier for mouse movement
//
// Returns:
//   - CameraControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}
