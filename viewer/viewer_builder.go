package viewer

import (
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/hiroki-yod/building-3d-memory/modelload"
	"github.com/hiroki-yod/building-3d-memory/surface"
)

// ViewerBuilderOption is a function that configures a viewer.
type ViewerBuilderOption func(*viewer)

// NewViewer creates a new Viewer with the provided options. A surface, a
// stage and a pipeline are required.
//
// Parameters:
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the configured viewer
func NewViewer(options ...ViewerBuilderOption) Viewer {
	v := &viewer{
		status: Status{Phase: PhaseInit},
	}
	for _, opt := range options {
		opt(v)
	}
	if v.surf == nil {
		panic("viewer: NewViewer requires a non-nil Surface")
	}
	if v.stage == nil {
		panic("viewer: NewViewer requires a non-nil Stage")
	}
	if v.pipe == nil {
		panic("viewer: NewViewer requires a non-nil Pipeline")
	}
	if v.runTask == nil {
		v.runTask = poolTaskRunner()
	}
	return v
}

// poolTaskRunner builds the default background task runner on a small
// dynamic worker pool.
func poolTaskRunner() func(do func()) {
	pool := worker.NewDynamicWorkerPool(2, 8, 30*time.Second)
	var taskID atomic.Int64
	return func(do func()) {
		pool.SubmitTask(worker.Task{
			ID: int(taskID.Add(1)),
			Do: func() (any, error) {
				do()
				return nil, nil
			},
		})
	}
}

// WithSurface sets the input and resize event source.
//
// Parameters:
//   - surf: the surface to subscribe to
//
// Returns:
//   - ViewerBuilderOption: the option to apply
func WithSurface(surf surface.Surface) ViewerBuilderOption {
	return func(v *viewer) {
		v.surf = surf
	}
}

// WithStage sets the stage the session renders through.
//
// Parameters:
//   - stage: the stage to drive
//
// Returns:
//   - ViewerBuilderOption: the option to apply
func WithStage(stage Stage) ViewerBuilderOption {
	return func(v *viewer) {
		v.stage = stage
	}
}

// WithPipeline sets the asset pipeline run on Mount.
//
// Parameters:
//   - pipe: the pipeline to run
//
// Returns:
//   - ViewerBuilderOption: the option to apply
func WithPipeline(pipe modelload.Pipeline) ViewerBuilderOption {
	return func(v *viewer) {
		v.pipe = pipe
	}
}

// WithTaskRunner replaces the background task runner. The default submits to
// a small dynamic worker pool.
//
// Parameters:
//   - run: the function that executes background work
//
// Returns:
//   - ViewerBuilderOption: the option to apply
func WithTaskRunner(run func(do func())) ViewerBuilderOption {
	return func(v *viewer) {
		if run != nil {
			v.runTask = run
		}
	}
}

// WithNavigatorOptions sets the options applied to the navigator built on
// each Mount.
//
// Parameters:
//   - options: the navigator options
//
// Returns:
//   - ViewerBuilderOption: the option to apply
func WithNavigatorOptions(options ...NavigatorBuilderOption) ViewerBuilderOption {
	return func(v *viewer) {
		v.navOpts = options
	}
}
