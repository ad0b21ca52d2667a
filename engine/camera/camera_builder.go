package camera

type CameraBuilderOption func(*cameraImpl)

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
		c.updateMatrix()
	}
}

// WithViewHeight sets the number of world units visible vertically at zoom 1.
//
// Parameters:
//   - viewHeight: the vertical view extent in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's view height
func WithViewHeight(viewHeight float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewHeight = viewHeight
		c.updateMatrix()
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.updateMatrix()
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
		c.updateMatrix()
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrix from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
