package surface

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow records the callbacks set on it so tests can drive events.
type fakeWindow struct {
	width, height   int
	onResize        func(width, height int)
	onScroll        func(delta float32)
	onKeyDown       func(keyCode uint32)
	onKeyUp         func(keyCode uint32)
	onUpdate        func()
	onMiddleDown    func(x, y int32)
	onMiddleUp      func(x, y int32)
	onMouseMove     func(x, y int32)
	closed          bool
	processMessages bool
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetDelegate(window.Window)                      {}
func (w *fakeWindow) SetUpdateCallback(cb func())                    { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(int, int))            { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(float32))             { w.onScroll = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(uint32))             { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(uint32))               { w.onKeyUp = cb }
func (w *fakeWindow) SetMiddleMouseDownCallback(cb func(x, y int32)) { w.onMiddleDown = cb }
func (w *fakeWindow) SetMiddleMouseUpCallback(cb func(x, y int32))   { w.onMiddleUp = cb }
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y int32))       { w.onMouseMove = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor     { return nil }
func (w *fakeWindow) IsRunning() bool                                { return !w.closed }
func (w *fakeWindow) Close() error                                   { w.closed = true; return nil }
func (w *fakeWindow) ProcessMessages()                               { w.processMessages = true }
func (w *fakeWindow) Width() int                                     { return w.width }
func (w *fakeWindow) Height() int                                    { return w.height }

func TestWindowSurfaceDimensions(t *testing.T) {
	win := &fakeWindow{width: 640, height: 480}
	s := NewWindowSurface(win)

	assert.Equal(t, 640, s.Width())
	assert.Equal(t, 480, s.Height())
}

func TestResizeFanOutAndUnsubscribe(t *testing.T) {
	win := &fakeWindow{width: 640, height: 480}
	s := NewWindowSurface(win)
	require.NotNil(t, win.onResize)

	var a, b [][2]int
	unsubA := s.OnResize(func(w, h int) { a = append(a, [2]int{w, h}) })
	s.OnResize(func(w, h int) { b = append(b, [2]int{w, h}) })

	win.onResize(800, 600)
	assert.Equal(t, [][2]int{{800, 600}}, a)
	assert.Equal(t, [][2]int{{800, 600}}, b)

	unsubA()
	unsubA() // idempotent
	win.onResize(1024, 768)
	assert.Len(t, a, 1)
	assert.Len(t, b, 2)
}

func TestDragSynthesizedFromMiddleMouse(t *testing.T) {
	win := &fakeWindow{width: 640, height: 480}
	s := NewWindowSurface(win)

	var drags [][2]float32
	s.OnDrag(func(dx, dy float32) { drags = append(drags, [2]float32{dx, dy}) })

	// movement without the button held produces nothing
	win.onMouseMove(10, 10)
	assert.Empty(t, drags)

	win.onMiddleDown(100, 100)
	win.onMouseMove(110, 95)
	win.onMouseMove(112, 95)
	win.onMiddleUp(112, 95)
	win.onMouseMove(200, 200)

	assert.Equal(t, [][2]float32{{10, -5}, {2, 0}}, drags)
}

func TestScrollAndKeyFanOut(t *testing.T) {
	win := &fakeWindow{width: 640, height: 480}
	s := NewWindowSurface(win)

	var ticks []float32
	var keys []uint32
	unsubScroll := s.OnScroll(func(d float32) { ticks = append(ticks, d) })
	s.OnKeyDown(func(k uint32) { keys = append(keys, k) })

	win.onScroll(1.5)
	win.onKeyDown(32)
	unsubScroll()
	win.onScroll(-1)

	assert.Equal(t, []float32{1.5}, ticks)
	assert.Equal(t, []uint32{32}, keys)
}
