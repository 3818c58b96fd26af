package viewer

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-go/engine/camera"
)

// Navigator converts raw drag and scroll input into damped orbit motion on a
// camera controller. Input accumulates as angular velocity; Step integrates it
// into the controller and decays it, so motion eases out after input stops.
type Navigator interface {
	// Drag feeds a pointer drag delta in pixels.
	//
	// Parameters:
	//   - dx: horizontal delta in pixels
	//   - dy: vertical delta in pixels
	Drag(dx, dy float32)

	// Scroll feeds a scroll wheel delta. Positive deltas zoom in.
	//
	// Parameters:
	//   - delta: the scroll amount
	Scroll(delta float32)

	// Step advances the damped motion by one frame.
	//
	// Parameters:
	//   - dt: the frame delta time in seconds
	Step(dt float32)

	// Controller returns the underlying camera controller.
	//
	// Returns:
	//   - camera.CameraController: the driven controller
	Controller() camera.CameraController
}

// navigator is the implementation of the Navigator interface.
type navigator struct {
	mu sync.Mutex

	ctrl            camera.CameraController
	damping         float32
	dragSensitivity float32
	zoomSensitivity float32

	azimuthVel   float32
	elevationVel float32
	zoomVel      float32
}

var _ Navigator = &navigator{}

// NewNavigator creates a new Navigator driving the given camera controller
// with the provided options.
//
// Parameters:
//   - ctrl: the camera controller to drive
//   - options: functional options to configure the navigator
//
// Returns:
//   - Navigator: the configured navigator
func NewNavigator(ctrl camera.CameraController, options ...NavigatorBuilderOption) Navigator {
	n := &navigator{
		ctrl:            ctrl,
		damping:         0.05,
		dragSensitivity: 0.005,
		zoomSensitivity: 0.25,
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *navigator) Drag(dx, dy float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.azimuthVel += dx * n.dragSensitivity
	n.elevationVel += dy * n.dragSensitivity
}

func (n *navigator) Scroll(delta float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.zoomVel += delta * n.zoomSensitivity
}

func (n *navigator) Step(dt float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if dt <= 0 {
		return
	}

	if n.azimuthVel != 0 {
		n.ctrl.SetAzimuth(n.ctrl.Azimuth() + n.azimuthVel)
	}
	if n.elevationVel != 0 {
		n.ctrl.SetElevation(n.ctrl.Elevation() + n.elevationVel)
	}
	if n.zoomVel != 0 {
		n.ctrl.Zoom(n.zoomVel)
	}

	// exponential decay normalized to a 60Hz frame so damping behaves the
	// same regardless of tick rate
	decay := float32(math.Pow(float64(1-n.damping), float64(dt*60)))
	n.azimuthVel *= decay
	n.elevationVel *= decay
	n.zoomVel *= decay

	const rest = 1e-5
	if n.azimuthVel < rest && n.azimuthVel > -rest {
		n.azimuthVel = 0
	}
	if n.elevationVel < rest && n.elevationVel > -rest {
		n.elevationVel = 0
	}
	if n.zoomVel < rest && n.zoomVel > -rest {
		n.zoomVel = 0
	}
}

func (n *navigator) Controller() camera.CameraController {
	return n.ctrl
}
