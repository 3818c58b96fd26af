package viewer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-go/engine/camera"
	"github.com/stretchr/testify/assert"
)

func newTestController() camera.CameraController {
	return camera.NewCameraController(
		camera.WithRadius(8),
		camera.WithAzimuth(0.5),
		camera.WithElevation(0.35),
		camera.WithRadiusBounds(1, 100),
	)
}

func TestNavigatorDragOrbits(t *testing.T) {
	ctrl := newTestController()
	n := NewNavigator(ctrl, WithDragSensitivity(0.005))

	startAz := ctrl.Azimuth()
	startEl := ctrl.Elevation()

	n.Drag(100, 40)
	n.Step(1.0 / 60)

	assert.InDelta(t, float64(startAz+0.5), float64(ctrl.Azimuth()), 1e-4)
	assert.InDelta(t, float64(startEl+0.2), float64(ctrl.Elevation()), 1e-4)
}

func TestNavigatorMotionDecays(t *testing.T) {
	ctrl := newTestController()
	n := NewNavigator(ctrl, WithDamping(0.5))

	n.Drag(100, 0)
	n.Step(1.0 / 60)
	afterFirst := ctrl.Azimuth()

	n.Step(1.0 / 60)
	afterSecond := ctrl.Azimuth()

	firstDelta := afterFirst - 0.5
	secondDelta := afterSecond - afterFirst
	assert.Greater(t, firstDelta, secondDelta, "motion should slow down each frame")
	assert.Greater(t, secondDelta, float32(0), "residual velocity keeps easing")

	for i := 0; i < 600; i++ {
		n.Step(1.0 / 60)
	}
	settled := ctrl.Azimuth()
	n.Step(1.0 / 60)
	assert.Equal(t, settled, ctrl.Azimuth(), "velocity below rest threshold stops motion")
}

func TestNavigatorScrollZooms(t *testing.T) {
	ctrl := newTestController()
	n := NewNavigator(ctrl, WithZoomSensitivity(0.25))

	start := ctrl.Radius()
	n.Scroll(4)
	n.Step(1.0 / 60)
	assert.Less(t, ctrl.Radius(), start, "positive scroll zooms in")

	for i := 0; i < 600; i++ {
		n.Scroll(4)
		n.Step(1.0 / 60)
	}
	assert.GreaterOrEqual(t, ctrl.Radius(), ctrl.MinRadius(), "zoom respects the radius floor")
}

func TestNavigatorElevationClamped(t *testing.T) {
	ctrl := newTestController()
	n := NewNavigator(ctrl)

	for i := 0; i < 200; i++ {
		n.Drag(0, 500)
		n.Step(1.0 / 60)
	}
	assert.LessOrEqual(t, ctrl.Elevation(), ctrl.MaxElevation())

	for i := 0; i < 400; i++ {
		n.Drag(0, -500)
		n.Step(1.0 / 60)
	}
	assert.GreaterOrEqual(t, ctrl.Elevation(), ctrl.MinElevation())
}

func TestNavigatorZeroDtIsNoop(t *testing.T) {
	ctrl := newTestController()
	n := NewNavigator(ctrl)

	n.Drag(100, 100)
	az := ctrl.Azimuth()
	n.Step(0)
	assert.Equal(t, az, ctrl.Azimuth())
}
