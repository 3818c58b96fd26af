// package surface abstracts the display surface the viewer session runs
// against: its current dimensions plus resize and input notifications. The
// production implementation wraps the engine window; tests substitute fakes so
// session lifecycle logic runs without a real windowing environment.
package surface

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-go/engine/window"
)

// Surface provides the display dimensions and event subscriptions a viewer
// session needs. Every subscription returns an unsubscribe function that is
// safe to call more than once; after it returns, the callback is no longer
// invoked.
type Surface interface {
	// Width returns the current surface width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current surface height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// OnResize subscribes to surface dimension changes.
	//
	// Parameters:
	//   - fn: function receiving the new width and height in pixels
	//
	// Returns:
	//   - func(): unsubscribe function
	OnResize(fn func(width, height int)) func()

	// OnDrag subscribes to orbit-drag deltas (middle mouse held + move).
	//
	// Parameters:
	//   - fn: function receiving the drag delta in pixels since the last event
	//
	// Returns:
	//   - func(): unsubscribe function
	OnDrag(fn func(dx, dy float32)) func()

	// OnScroll subscribes to mouse scroll wheel events.
	//
	// Parameters:
	//   - fn: function receiving the scroll delta (positive = zoom in)
	//
	// Returns:
	//   - func(): unsubscribe function
	OnScroll(fn func(delta float32)) func()

	// OnKeyDown subscribes to key press events.
	//
	// Parameters:
	//   - fn: function receiving the virtual key code
	//
	// Returns:
	//   - func(): unsubscribe function
	OnKeyDown(fn func(keyCode uint32)) func()
}

// windowSurface adapts a window.Window to the Surface interface. The window
// supports a single callback per event, so windowSurface installs master
// callbacks once and fans events out to any number of subscribers. Drag events
// are synthesized from the middle-mouse down/up/move callbacks.
type windowSurface struct {
	mu  sync.Mutex
	win window.Window

	nextID   int
	resize   map[int]func(width, height int)
	drag     map[int]func(dx, dy float32)
	scroll   map[int]func(delta float32)
	keyDown  map[int]func(keyCode uint32)
	dragging bool
	lastX    int32
	lastY    int32
}

var _ Surface = &windowSurface{}

// NewWindowSurface wraps an engine window as a Surface. This replaces the
// window's resize, scroll, key and mouse callbacks with fan-out dispatchers,
// so all consumers must subscribe through the returned Surface rather than
// calling the window's Set*Callback methods directly.
//
// Parameters:
//   - win: the engine window to wrap
//
// Returns:
//   - Surface: the surface backed by the window
func NewWindowSurface(win window.Window) Surface {
	s := &windowSurface{
		win:     win,
		resize:  make(map[int]func(int, int)),
		drag:    make(map[int]func(float32, float32)),
		scroll:  make(map[int]func(float32)),
		keyDown: make(map[int]func(uint32)),
	}

	win.SetResizeCallback(func(width, height int) {
		for _, fn := range s.snapshotResize() {
			fn(width, height)
		}
	})
	win.SetScrollCallback(func(delta float32) {
		for _, fn := range s.snapshotScroll() {
			fn(delta)
		}
	})
	win.SetKeyDownCallback(func(keyCode uint32) {
		for _, fn := range s.snapshotKeyDown() {
			fn(keyCode)
		}
	})
	win.SetMiddleMouseDownCallback(func(x, y int32) {
		s.mu.Lock()
		s.dragging = true
		s.lastX, s.lastY = x, y
		s.mu.Unlock()
	})
	win.SetMiddleMouseUpCallback(func(_, _ int32) {
		s.mu.Lock()
		s.dragging = false
		s.mu.Unlock()
	})
	win.SetMouseMoveCallback(func(x, y int32) {
		s.mu.Lock()
		if !s.dragging {
			s.mu.Unlock()
			return
		}
		dx := float32(x - s.lastX)
		dy := float32(y - s.lastY)
		s.lastX, s.lastY = x, y
		subs := make([]func(float32, float32), 0, len(s.drag))
		for _, fn := range s.drag {
			subs = append(subs, fn)
		}
		s.mu.Unlock()

		for _, fn := range subs {
			fn(dx, dy)
		}
	})

	return s
}

func (s *windowSurface) Width() int {
	return s.win.Width()
}

func (s *windowSurface) Height() int {
	return s.win.Height()
}

func (s *windowSurface) OnResize(fn func(width, height int)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.resize[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.resize, id)
	}
}

func (s *windowSurface) OnDrag(fn func(dx, dy float32)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.drag[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.drag, id)
	}
}

func (s *windowSurface) OnScroll(fn func(delta float32)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.scroll[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.scroll, id)
	}
}

func (s *windowSurface) OnKeyDown(fn func(keyCode uint32)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.keyDown[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.keyDown, id)
	}
}

func (s *windowSurface) snapshotResize() []func(int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]func(int, int), 0, len(s.resize))
	for _, fn := range s.resize {
		out = append(out, fn)
	}
	return out
}

func (s *windowSurface) snapshotScroll() []func(float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]func(float32), 0, len(s.scroll))
	for _, fn := range s.scroll {
		out = append(out, fn)
	}
	return out
}

func (s *windowSurface) snapshotKeyDown() []func(uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]func(uint32), 0, len(s.keyDown))
	for _, fn := range s.keyDown {
		out = append(out, fn)
	}
	return out
}
