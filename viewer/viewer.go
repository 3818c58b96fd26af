package viewer

import (
	"context"
	"log"
	"sync"

	"github.com/hiroki-yod/building-3d-memory/modelload"
	"github.com/hiroki-yod/building-3d-memory/surface"
)

// Viewer is one model-viewing session. Mount stages the scenes, starts the
// asset pipeline in the background and hooks up input; Unmount tears all of
// that down. A viewer can be mounted again after Unmount and starts a fresh
// load each time.
type Viewer interface {
	// Mount starts a viewing session.
	//
	// Returns:
	//   - error: error if the stage could not be mounted
	Mount() error

	// Unmount ends the session: cancels a pending load, detaches input and
	// releases the stage. Safe to call when not mounted.
	Unmount()

	// Mounted reports whether a session is active.
	//
	// Returns:
	//   - bool: true while mounted
	Mounted() bool

	// Status returns the session's load state.
	//
	// Returns:
	//   - Status: the current phase and error
	Status() Status

	// Step advances the session by one frame: damped camera motion.
	//
	// Parameters:
	//   - dt: the frame delta time in seconds
	Step(dt float32)
}

// viewer is the implementation of the Viewer interface.
type viewer struct {
	mu sync.Mutex

	surf    surface.Surface
	stage   Stage
	pipe    modelload.Pipeline
	runTask func(do func())
	navOpts []NavigatorBuilderOption

	nav          Navigator
	status       Status
	mounted      bool
	cancel       context.CancelFunc
	unsubscribes []func()
}

var _ Viewer = &viewer{}

func (v *viewer) Mount() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted {
		return nil
	}

	if err := v.stage.Mount(); err != nil {
		return err
	}

	v.nav = NewNavigator(v.stage.Controller(), v.navOpts...)
	v.status = Status{Phase: PhaseLoading}
	v.stage.SetPhase(PhaseLoading)
	log.Println("Loading 3D Model...")

	v.unsubscribes = []func(){
		v.surf.OnDrag(func(dx, dy float32) {
			v.withNav(func(n Navigator) { n.Drag(dx, dy) })
		}),
		v.surf.OnScroll(func(delta float32) {
			v.withNav(func(n Navigator) { n.Scroll(delta) })
		}),
		v.surf.OnResize(func(width, height int) {
			v.stage.SetViewport(width, height)
		}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.mounted = true

	v.runTask(func() {
		asset, err := v.pipe.Load(ctx)
		v.finishLoad(ctx, asset, err)
	})
	return nil
}

// finishLoad applies the pipeline result. It runs on the task runner, after
// the session may already have ended; a canceled context or an unmounted
// viewer means the result belongs to a dead session and is dropped.
func (v *viewer) finishLoad(ctx context.Context, asset *modelload.Asset, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if ctx.Err() != nil || !v.mounted {
		return
	}

	if err == nil {
		err = v.stage.AddModel(asset)
	}
	if err != nil {
		v.status = Status{Phase: PhaseFailed, Err: err}
		v.stage.SetPhase(PhaseFailed)
		log.Printf("Error: %v", err)
		return
	}

	v.status = Status{Phase: PhaseReady}
	v.stage.SetPhase(PhaseReady)
	log.Printf("Staged model %s: %d meshes, %d vertices", asset.Name, len(asset.Meshes), asset.VertexCount())
}

func (v *viewer) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}

	v.cancel()
	v.cancel = nil
	for _, unsub := range v.unsubscribes {
		unsub()
	}
	v.unsubscribes = nil
	v.stage.Release()
	v.nav = nil
	v.status = Status{Phase: PhaseInit}
	v.mounted = false
}

func (v *viewer) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

func (v *viewer) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *viewer) Step(dt float32) {
	v.withNav(func(n Navigator) { n.Step(dt) })
}

// withNav runs fn against the current navigator, if any. The navigator is
// resolved under the viewer lock but driven outside it; input callbacks fire
// from window threads while Step runs on the tick loop, and the navigator has
// its own lock.
func (v *viewer) withNav(fn func(Navigator)) {
	v.mu.Lock()
	nav := v.nav
	v.mu.Unlock()
	if nav != nil {
		fn(nav)
	}
}
