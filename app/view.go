// package app holds the root view: the toggle between the placeholder panel
// and the 3D viewing session. Exactly one of the two is mounted at any time.
package app

import (
	"log"
	"sync"
)

// Unit is a display unit with a one-time installation step. The engine's
// scene set is only safe to mutate before its render loop starts, so units
// register their scenes during Install and Mount/Unmount only flip scene
// activation afterwards.
type Unit interface {
	Mountable

	// Install registers the unit's scenes on the engine, inactive. Must run
	// before the engine starts.
	//
	// Returns:
	//   - error: error if GPU resources could not be initialized
	Install() error
}

// Mountable is a display unit the root view can switch between. Both the
// panel and the viewer satisfy it.
type Mountable interface {
	// Mount makes the unit visible.
	//
	// Returns:
	//   - error: error if the unit could not be set up
	Mount() error

	// Unmount tears the unit down. Safe to call when not mounted.
	Unmount()

	// Mounted reports whether the unit is currently mounted.
	//
	// Returns:
	//   - bool: true while mounted
	Mounted() bool
}

// DisplayMode selects which unit the root view shows.
type DisplayMode int

const (
	// ModePanel shows the placeholder panel.
	ModePanel DisplayMode = iota

	// ModeScene shows the 3D viewing session.
	ModeScene
)

// String returns the mode name for diagnostics.
func (m DisplayMode) String() string {
	switch m {
	case ModePanel:
		return "panel"
	case ModeScene:
		return "scene"
	default:
		return "unknown"
	}
}

// RootView owns the display mode and keeps exactly one unit mounted.
type RootView interface {
	// Start mounts the initial unit. The view starts in ModePanel.
	//
	// Returns:
	//   - error: error if the initial unit could not be mounted
	Start() error

	// Toggle flips the display mode: the active unit unmounts fully before
	// the other mounts.
	//
	// Returns:
	//   - error: error if the incoming unit could not be mounted
	Toggle() error

	// Mode returns the current display mode.
	//
	// Returns:
	//   - DisplayMode: the active mode
	Mode() DisplayMode

	// Close unmounts whatever is active.
	Close()
}

// rootView is the implementation of the RootView interface.
type rootView struct {
	mu sync.Mutex

	panel Mountable
	scene Mountable
	mode  DisplayMode
}

var _ RootView = &rootView{}

// NewRootView creates a RootView switching between the given panel and scene
// units.
//
// Parameters:
//   - panel: the placeholder panel unit
//   - scene: the 3D session unit
//
// Returns:
//   - RootView: the configured root view
func NewRootView(panel, scene Mountable) RootView {
	if panel == nil {
		panic("app: NewRootView requires a non-nil panel")
	}
	if scene == nil {
		panic("app: NewRootView requires a non-nil scene")
	}
	return &rootView{
		panel: panel,
		scene: scene,
		mode:  ModePanel,
	}
}

func (r *rootView) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active().Mount()
}

func (r *rootView) Toggle() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active().Unmount()
	if r.mode == ModePanel {
		r.mode = ModeScene
	} else {
		r.mode = ModePanel
	}
	log.Printf("Display mode: %s", r.mode)
	return r.active().Mount()
}

func (r *rootView) Mode() DisplayMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

func (r *rootView) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active().Unmount()
}

// active returns the unit for the current mode. Caller holds the lock.
func (r *rootView) active() Mountable {
	if r.mode == ModeScene {
		return r.scene
	}
	return r.panel
}
