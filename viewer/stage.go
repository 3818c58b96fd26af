package viewer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-go/common"
	"github.com/Carmen-Shannon/oxy-go/engine"
	"github.com/Carmen-Shannon/oxy-go/engine/camera"
	"github.com/Carmen-Shannon/oxy-go/engine/game_object"
	"github.com/Carmen-Shannon/oxy-go/engine/light"
	"github.com/Carmen-Shannon/oxy-go/engine/loader"
	"github.com/Carmen-Shannon/oxy-go/engine/model"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/hiroki-yod/building-3d-memory/config"
	"github.com/hiroki-yod/building-3d-memory/meshes"
	"github.com/hiroki-yod/building-3d-memory/modelload"
)

// Scene keys control render order: the overlay draws after the content.
const (
	sceneKeyContent = 0
	sceneKeyOverlay = 10
)

// Overlay tints per phase. The alpha keeps the content faintly visible while
// it loads.
var (
	overlayLoadingColor = [4]float32{0.45, 0.45, 0.45, 0.85}
	overlayFailedColor  = [4]float32{0.75, 0.15, 0.15, 0.85}
)

// Stage owns everything the session puts on screen: the content scene with
// its camera, lighting and loaded model, and the status overlay drawn above
// it. The viewer drives it; it never talks to the window directly.
//
// The engine's scene set is not synchronized against its render loop, so the
// set may only be mutated before the engine runs. Install is that one-time
// mutation; Mount and Release afterwards only flip scene activation and go
// through the scene's own locked methods.
type Stage interface {
	// Install builds the scenes and registers them on the engine, inactive.
	// Must be called once, before the engine starts its render loop.
	//
	// Returns:
	//   - error: error if GPU resources could not be initialized
	Install() error

	// Mount activates the installed scenes and resets the camera to its
	// configured home position.
	//
	// Returns:
	//   - error: error if Install has not run
	Mount() error

	// AddModel stages a converted asset in the content scene.
	//
	// Parameters:
	//   - asset: the converted asset to stage
	//
	// Returns:
	//   - error: error if a mesh's material could not be initialized
	AddModel(asset *modelload.Asset) error

	// SetPhase updates the status overlay for the given phase.
	//
	// Parameters:
	//   - phase: the session phase to display
	SetPhase(phase Phase)

	// SetViewport updates the camera aspect ratio for new surface
	// dimensions. The swap chain resize belongs to whoever owns the
	// renderer's resize subscription.
	//
	// Parameters:
	//   - width: the new viewport width in pixels
	//   - height: the new viewport height in pixels
	SetViewport(width, height int)

	// Controller returns the content camera's orbit controller, or nil
	// before Install.
	//
	// Returns:
	//   - camera.CameraController: the orbit controller
	Controller() camera.CameraController

	// Release deactivates the scenes and removes the staged model objects.
	Release()
}

// StageShaders bundles the compiled shader set the stage renders with.
type StageShaders struct {
	// StaticCompute transforms non-skinned vertices.
	StaticCompute shader.Shader

	// LitVert and LitFrag render the content scene.
	LitVert shader.Shader
	LitFrag shader.Shader

	// ShadowVert and ShadowSkinnedVert render the shadow depth pass.
	ShadowVert        shader.Shader
	ShadowSkinnedVert shader.Shader

	// LightCull is the light culling compute pass.
	LightCull shader.Shader

	// OverlayVert and OverlayFrag render the unlit overlay scene.
	OverlayVert shader.Shader
	OverlayFrag shader.Shader
}

// stageShaderFiles are the WGSL files LoadStageShaders expects in the shader
// directory.
var stageShaderFiles = []string{
	"simple-compute.wgsl",
	"lit-vert.wgsl",
	"lit-frag.wgsl",
	"shadow-depth-vert.wgsl",
	"shadow-depth-skinned-vert.wgsl",
	"light-cull-compute.wgsl",
	"simple-vert.wgsl",
	"rainbow-frag.wgsl",
}

// LoadStageShaders compiles the stage's shader set from WGSL files in the
// given directory. All files are checked up front so a missing shader set is
// reported as one error instead of a panic from the shader compiler.
//
// Parameters:
//   - dir: the directory holding the WGSL shader files
//
// Returns:
//   - StageShaders: the compiled shader set
//   - error: error naming the first missing file
func LoadStageShaders(dir string) (StageShaders, error) {
	path := func(name string) string { return filepath.Join(dir, name) }
	for _, name := range stageShaderFiles {
		if _, err := os.Stat(path(name)); err != nil {
			return StageShaders{}, fmt.Errorf(
				"missing shader %s: copy the WGSL set into %s (see assets/shaders/README.md): %w",
				name, dir, err,
			)
		}
	}
	return StageShaders{
		StaticCompute:     shader.NewShader("simple_compute", shader.ShaderTypeCompute, path("simple-compute.wgsl")),
		LitVert:           shader.NewShader("lit_vert", shader.ShaderTypeVertex, path("lit-vert.wgsl")),
		LitFrag:           shader.NewShader("lit_frag", shader.ShaderTypeFragment, path("lit-frag.wgsl")),
		ShadowVert:        shader.NewShader("shadow_depth_vert", shader.ShaderTypeVertex, path("shadow-depth-vert.wgsl")),
		ShadowSkinnedVert: shader.NewShader("shadow_depth_skinned_vert", shader.ShaderTypeVertex, path("shadow-depth-skinned-vert.wgsl")),
		LightCull:         shader.NewShader("light_cull_compute", shader.ShaderTypeCompute, path("light-cull-compute.wgsl")),
		OverlayVert:       shader.NewShader("simple_vert", shader.ShaderTypeVertex, path("simple-vert.wgsl")),
		OverlayFrag:       shader.NewShader("rainbow_frag", shader.ShaderTypeFragment, path("rainbow-frag.wgsl")),
	}, nil
}

// oxyStage is the implementation of the Stage interface.
type oxyStage struct {
	mu sync.Mutex

	eng     engine.Engine
	rend    renderer.Renderer
	ldr     loader.Loader
	cfg     config.Config
	shaders StageShaders

	cam  camera.Camera
	ctrl camera.CameraController

	content scene.Scene
	overlay scene.Scene

	overlayObj   game_object.GameObject
	overlayVerts []model.GPUVertex

	stagedIDs []uint64
	installed bool
	mounted   bool
}

var _ Stage = &oxyStage{}

// alphaBlendState is the standard premultiplied-free alpha blend used for the
// overlay and for transparent model meshes.
var alphaBlendState = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
	},
}

// NewOxyStage creates a Stage rendering through the given engine, renderer
// and loader with the provided configuration and shaders.
//
// Parameters:
//   - eng: the engine hosting the scenes
//   - rend: the renderer
//   - ldr: the loader used to initialize material GPU resources
//   - cfg: the viewer configuration
//   - shaders: the compiled shader set
//
// Returns:
//   - Stage: the configured stage
func NewOxyStage(eng engine.Engine, rend renderer.Renderer, ldr loader.Loader, cfg config.Config, shaders StageShaders) Stage {
	return &oxyStage{
		eng:     eng,
		rend:    rend,
		ldr:     ldr,
		cfg:     cfg,
		shaders: shaders,
	}
}

func (s *oxyStage) Install() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.installed {
		return nil
	}

	width := s.eng.Window().Width()
	height := s.eng.Window().Height()
	aspect := float32(width) / float32(height)

	camCfg := s.cfg.Camera
	s.ctrl = camera.NewCameraController(
		camera.WithRadius(camCfg.Radius),
		camera.WithTarget(0, 0, 0),
		camera.WithAzimuth(camCfg.Azimuth),
		camera.WithElevation(camCfg.Elevation),
		camera.WithRadiusBounds(0.5, camCfg.Far/2),
		camera.WithZoomSpeed(1.0),
		camera.WithMouseSensitivity(0.002),
	)
	s.cam = camera.NewCamera(
		camera.WithFov(camCfg.FovDegrees*float32(math.Pi)/180),
		camera.WithAspect(aspect),
		camera.WithNear(camCfg.Near),
		camera.WithFar(camCfg.Far),
		camera.WithController(s.ctrl),
	)

	lightCfg := s.cfg.Lighting
	s.content = scene.NewScene("building", s.cam, s.rend, s.shaders.LitVert,
		scene.WithActive(false),
		scene.WithShadowHalfExtent(lightCfg.ShadowHalfExtent),
		scene.WithShadowNearFar(lightCfg.ShadowNear, lightCfg.ShadowFar),
		scene.WithShadowBias(0.001),
	)

	pos := lightCfg.DirectionalPosition
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithDirection(-pos[0], -pos[1], -pos[2]),
		light.WithColor(1, 1, 1),
		light.WithIntensity(lightCfg.DirectionalIntensity),
		light.WithCastsShadows(true),
		light.WithEnabled(true),
	)
	s.content.AddLight(sun)

	ambient := lightCfg.AmbientIntensity
	s.content.SetAmbientColor([3]float32{ambient, ambient, ambient})

	s.content.InitLighting(
		s.shaders.LitFrag,
		s.shaders.ShadowVert,
		s.shaders.ShadowSkinnedVert,
		s.shaders.LightCull,
		width, height,
	)

	if err := s.buildOverlay(aspect); err != nil {
		return err
	}

	s.eng.AddScene(sceneKeyContent, s.content)
	s.eng.AddScene(sceneKeyOverlay, s.overlay)
	s.installed = true
	return nil
}

func (s *oxyStage) Mount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.installed {
		return fmt.Errorf("stage is not installed")
	}
	if s.mounted {
		return nil
	}

	// fresh session: the camera returns to its configured home position
	camCfg := s.cfg.Camera
	s.ctrl.SetTarget(0, 0, 0)
	s.ctrl.SetRadius(camCfg.Radius)
	s.ctrl.SetAzimuth(camCfg.Azimuth)
	s.ctrl.SetElevation(camCfg.Elevation)

	s.content.SetActive(true)
	s.overlay.SetActive(true)
	s.mounted = true
	return nil
}

// buildOverlay creates the unlit overlay scene: a fixed top-down camera
// looking at a thin tinted quad that covers the view.
func (s *oxyStage) buildOverlay(aspect float32) error {
	overlayCam := camera.NewCamera(
		camera.WithFov(45*float32(math.Pi)/180),
		camera.WithAspect(aspect),
		camera.WithNear(0.1),
		camera.WithFar(100),
		camera.WithController(camera.NewCameraController(
			camera.WithRadius(5),
			camera.WithTarget(0, 0, 0),
			camera.WithElevation(1.5),
			camera.WithAzimuth(0),
		)),
	)

	s.overlay = scene.NewScene("status_overlay", overlayCam, s.rend, s.shaders.OverlayVert,
		scene.WithActive(false),
	)

	verts, idx := meshes.BuildQuad(6, 0.05, overlayLoadingColor)
	s.overlayVerts = verts

	mat := material.NewMaterial(
		material.WithName("overlay_material"),
		material.WithBaseColor(overlayLoadingColor),
		material.WithPipelineKey("status_overlay"),
	)
	s.overlayObj = game_object.NewGameObject(
		game_object.WithModel(model.NewModel(
			model.WithName("status_overlay"),
			model.WithBoundingRadius(12),
			model.WithVertexData(common.SliceToBytes(verts)),
			model.WithIndexData(common.SliceToBytes(idx)),
			model.WithIndexCount(len(idx)),
			model.WithMeshProvider(bind_group_provider.NewBindGroupProvider("overlay_mesh")),
			model.WithRenderMaterials(mat),
		)),
		game_object.WithPosition(0, 0, 0),
		game_object.WithScale(1, 1, 1),
		game_object.WithEphemeral(true),
	)

	if err := s.ldr.InitMaterialGPU(mat, s.shaders.OverlayFrag, "overlay_material"); err != nil {
		return fmt.Errorf("failed to init overlay material: %w", err)
	}

	_ = s.overlay.Add(s.overlayObj, s.shaders.StaticCompute, s.shaders.OverlayVert, s.shaders.OverlayFrag,
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(alphaBlendState),
	)
	return nil
}

func (s *oxyStage) AddModel(asset *modelload.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return fmt.Errorf("stage is not mounted")
	}

	radius := asset.BoundingRadius()
	for mi := range asset.Meshes {
		mesh := &asset.Meshes[mi]
		spec := asset.Materials[mesh.MaterialIndex]

		mat := material.NewMaterial(
			material.WithName(mesh.Name),
			material.WithBaseColor(spec.BaseColor),
			material.WithMetallic(spec.Metallic),
			material.WithRoughness(spec.Roughness),
			material.WithPipelineKey(pipelineKeyFor(spec)),
		)

		obj := game_object.NewGameObject(
			game_object.WithModel(model.NewModel(
				model.WithName(asset.Name+"/"+mesh.Name),
				model.WithBoundingRadius(radius),
				model.WithVertexData(common.SliceToBytes(mesh.Vertices)),
				model.WithIndexData(common.SliceToBytes(mesh.Indices)),
				model.WithIndexCount(len(mesh.Indices)),
				model.WithMeshProvider(bind_group_provider.NewBindGroupProvider(mesh.Name+"_mesh")),
				model.WithRenderMaterials(mat),
			)),
			game_object.WithPosition(0, 0, 0),
			game_object.WithScale(1, 1, 1),
		)

		if err := s.ldr.InitMaterialGPU(mat, s.shaders.LitFrag, mesh.Name); err != nil {
			return fmt.Errorf("failed to init material for mesh %s: %w", mesh.Name, err)
		}

		var opts []pipeline.PipelineBuilderOption
		if spec.BaseColor[3] < 1 {
			opts = append(opts,
				pipeline.WithBlendEnabled(true),
				pipeline.WithBlendState(alphaBlendState),
			)
		}
		id := s.content.Add(obj, s.shaders.StaticCompute, s.shaders.LitVert, s.shaders.LitFrag, opts...)
		s.stagedIDs = append(s.stagedIDs, id)
	}
	return nil
}

// pipelineKeyFor groups meshes into pipelines: opaque meshes share one
// pipeline, transparent ones another, so blend state stays per-pipeline.
func pipelineKeyFor(spec modelload.MaterialSpec) string {
	if spec.BaseColor[3] < 1 {
		return "building_transparent"
	}
	return "building_opaque"
}

func (s *oxyStage) SetPhase(phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted || s.overlayObj == nil {
		return
	}

	switch phase {
	case PhaseLoading:
		s.tintOverlayLocked(overlayLoadingColor)
		s.overlayObj.SetEnabled(true)
	case PhaseFailed:
		s.tintOverlayLocked(overlayFailedColor)
		s.overlayObj.SetEnabled(true)
	case PhaseReady:
		s.overlayObj.SetEnabled(false)
	}
}

func (s *oxyStage) tintOverlayLocked(color [4]float32) {
	meshes.Recolor(s.overlayVerts, color)
	s.overlayObj.Model().SetVertexData(common.SliceToBytes(s.overlayVerts))
}

func (s *oxyStage) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width <= 0 || height <= 0 || s.cam == nil {
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
}

func (s *oxyStage) Controller() camera.CameraController {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl
}

func (s *oxyStage) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return
	}
	for _, id := range s.stagedIDs {
		s.content.Remove(id)
	}
	s.stagedIDs = nil
	s.content.SetActive(false)
	s.overlay.SetActive(false)
	s.mounted = false
}
