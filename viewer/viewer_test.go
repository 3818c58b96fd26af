package viewer

import (
	"context"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-go/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroki-yod/building-3d-memory/modelload"
)

// fakeSurface records subscriptions and lets tests fire events by hand.
type fakeSurface struct {
	width, height int

	resize func(width, height int)
	drag   func(dx, dy float32)
	scroll func(delta float32)
	key    func(keyCode uint32)

	unsubscribed int
}

func (s *fakeSurface) Width() int  { return s.width }
func (s *fakeSurface) Height() int { return s.height }

func (s *fakeSurface) OnResize(fn func(width, height int)) func() {
	s.resize = fn
	return func() { s.resize = nil; s.unsubscribed++ }
}

func (s *fakeSurface) OnDrag(fn func(dx, dy float32)) func() {
	s.drag = fn
	return func() { s.drag = nil; s.unsubscribed++ }
}

func (s *fakeSurface) OnScroll(fn func(delta float32)) func() {
	s.scroll = fn
	return func() { s.scroll = nil; s.unsubscribed++ }
}

func (s *fakeSurface) OnKeyDown(fn func(keyCode uint32)) func() {
	s.key = fn
	return func() { s.key = nil; s.unsubscribed++ }
}

// fakeStage records stage calls without touching the GPU.
type fakeStage struct {
	mountErr error
	addErr   error

	installs  int
	mounted   bool
	added     []*modelload.Asset
	phases    []Phase
	viewports [][2]int
	released  int
}

func (s *fakeStage) Install() error {
	s.installs++
	return nil
}

func (s *fakeStage) Mount() error {
	if s.mountErr != nil {
		return s.mountErr
	}
	s.mounted = true
	return nil
}

func (s *fakeStage) AddModel(asset *modelload.Asset) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, asset)
	return nil
}

func (s *fakeStage) SetPhase(phase Phase) { s.phases = append(s.phases, phase) }

func (s *fakeStage) SetViewport(width, height int) {
	s.viewports = append(s.viewports, [2]int{width, height})
}

func (s *fakeStage) Controller() camera.CameraController { return newTestController() }

func (s *fakeStage) Release() {
	s.released++
	s.mounted = false
}

// fakePipeline returns a canned result, optionally honoring cancellation.
type fakePipeline struct {
	asset *modelload.Asset
	err   error
	calls int
}

func (p *fakePipeline) Load(ctx context.Context) (*modelload.Asset, error) {
	p.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.asset, p.err
}

// taskQueue is a deterministic task runner: tasks run only when drained.
type taskQueue struct {
	tasks []func()
}

func (q *taskQueue) run(do func()) { q.tasks = append(q.tasks, do) }

func (q *taskQueue) drain() {
	for len(q.tasks) > 0 {
		next := q.tasks[0]
		q.tasks = q.tasks[1:]
		next()
	}
}

func newTestViewer(stage *fakeStage, pipe *fakePipeline) (Viewer, *fakeSurface, *taskQueue) {
	surf := &fakeSurface{width: 1280, height: 720}
	queue := &taskQueue{}
	v := NewViewer(
		WithSurface(surf),
		WithStage(stage),
		WithPipeline(pipe),
		WithTaskRunner(queue.run),
	)
	return v, surf, queue
}

func testAsset() *modelload.Asset {
	return &modelload.Asset{
		Name:      "building",
		Meshes:    []modelload.Mesh{{Name: "walls", Indices: []uint32{0, 1, 2}}},
		Materials: []modelload.MaterialSpec{{Name: "plaster"}},
	}
}

func TestViewerLifecycleReady(t *testing.T) {
	stage := &fakeStage{}
	pipe := &fakePipeline{asset: testAsset()}
	v, _, queue := newTestViewer(stage, pipe)

	assert.Equal(t, PhaseInit, v.Status().Phase)
	assert.False(t, v.Mounted())

	require.NoError(t, v.Mount())
	assert.True(t, v.Mounted())
	assert.Equal(t, PhaseLoading, v.Status().Phase)
	assert.Equal(t, []Phase{PhaseLoading}, stage.phases)

	queue.drain()
	assert.Equal(t, PhaseReady, v.Status().Phase)
	assert.NoError(t, v.Status().Err)
	require.Len(t, stage.added, 1)
	assert.Equal(t, "building", stage.added[0].Name)
	assert.Equal(t, []Phase{PhaseLoading, PhaseReady}, stage.phases)
}

func TestViewerPipelineFailure(t *testing.T) {
	stage := &fakeStage{}
	pipe := &fakePipeline{err: modelload.ErrMaterialLoad}
	v, _, queue := newTestViewer(stage, pipe)

	require.NoError(t, v.Mount())
	queue.drain()

	st := v.Status()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.ErrorIs(t, st.Err, modelload.ErrMaterialLoad)
	assert.Empty(t, stage.added)
	assert.Equal(t, []Phase{PhaseLoading, PhaseFailed}, stage.phases)
}

func TestViewerStagingFailure(t *testing.T) {
	stage := &fakeStage{addErr: errors.New("bind group exploded")}
	pipe := &fakePipeline{asset: testAsset()}
	v, _, queue := newTestViewer(stage, pipe)

	require.NoError(t, v.Mount())
	queue.drain()

	st := v.Status()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Error(t, st.Err)
}

func TestViewerStageMountFailure(t *testing.T) {
	stage := &fakeStage{mountErr: errors.New("no adapter")}
	pipe := &fakePipeline{asset: testAsset()}
	v, _, _ := newTestViewer(stage, pipe)

	assert.Error(t, v.Mount())
	assert.False(t, v.Mounted())
	assert.Equal(t, 0, pipe.calls)
}

func TestViewerUnmountDropsLateResult(t *testing.T) {
	stage := &fakeStage{}
	pipe := &fakePipeline{asset: testAsset()}
	v, surf, queue := newTestViewer(stage, pipe)

	require.NoError(t, v.Mount())
	v.Unmount()

	assert.False(t, v.Mounted())
	assert.Equal(t, PhaseInit, v.Status().Phase)
	assert.Equal(t, 1, stage.released)
	assert.GreaterOrEqual(t, surf.unsubscribed, 3)

	// the load finishes after the session ended; nothing may change
	queue.drain()
	assert.Empty(t, stage.added)
	assert.Equal(t, PhaseInit, v.Status().Phase)
	assert.Equal(t, []Phase{PhaseLoading}, stage.phases)
}

func TestViewerRemountStartsFreshLoad(t *testing.T) {
	stage := &fakeStage{}
	pipe := &fakePipeline{asset: testAsset()}
	v, _, queue := newTestViewer(stage, pipe)

	require.NoError(t, v.Mount())
	queue.drain()
	v.Unmount()

	require.NoError(t, v.Mount())
	assert.Equal(t, PhaseLoading, v.Status().Phase)
	queue.drain()
	assert.Equal(t, PhaseReady, v.Status().Phase)
	assert.Equal(t, 2, pipe.calls)
	assert.Len(t, stage.added, 2)

	// scene registration happens once at wiring time; sessions only
	// activate and release what is already installed
	assert.Zero(t, stage.installs)
}

func TestViewerMountIsIdempotent(t *testing.T) {
	stage := &fakeStage{}
	pipe := &fakePipeline{asset: testAsset()}
	v, _, queue := newTestViewer(stage, pipe)

	require.NoError(t, v.Mount())
	require.NoError(t, v.Mount())
	queue.drain()
	assert.Equal(t, 1, pipe.calls)
}

func TestViewerResizeForwardsToStage(t *testing.T) {
	stage := &fakeStage{}
	pipe := &fakePipeline{asset: testAsset()}
	v, surf, queue := newTestViewer(stage, pipe)

	require.NoError(t, v.Mount())
	queue.drain()

	require.NotNil(t, surf.resize)
	surf.resize(1920, 1080)
	assert.Equal(t, [][2]int{{1920, 1080}}, stage.viewports)
}

func TestViewerInputDrivesNavigator(t *testing.T) {
	stage := &fakeStage{}
	pipe := &fakePipeline{asset: testAsset()}
	v, surf, queue := newTestViewer(stage, pipe)

	require.NoError(t, v.Mount())
	queue.drain()

	require.NotNil(t, surf.drag)
	surf.drag(100, 0)
	v.Step(1.0 / 60)

	// the stage handed out a controller starting at azimuth 0.5; default
	// drag sensitivity turns 100px into 0.5 radians
	impl := v.(*viewer)
	assert.InDelta(t, 1.0, float64(impl.nav.Controller().Azimuth()), 1e-3)
}
