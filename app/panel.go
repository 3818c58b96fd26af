package app

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-go/common"
	"github.com/Carmen-Shannon/oxy-go/engine"
	"github.com/Carmen-Shannon/oxy-go/engine/camera"
	"github.com/Carmen-Shannon/oxy-go/engine/game_object"
	"github.com/Carmen-Shannon/oxy-go/engine/loader"
	"github.com/Carmen-Shannon/oxy-go/engine/model"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-go/engine/scene"

	"github.com/hiroki-yod/building-3d-memory/meshes"
	"github.com/hiroki-yod/building-3d-memory/viewer"
)

// panelSceneKey never collides with the viewer's scene keys; only one of the
// two units is mounted at a time anyway.
const panelSceneKey = 1

// panelColor is the flat card drawn while the panel is up.
var panelColor = [4]float32{0.93, 0.91, 0.86, 1}

// panel is the placeholder display unit: a flat card scene plus a logged
// heading. Its scene is registered once during Install; Mount and Unmount
// only flip the scene's activation.
type panel struct {
	mu sync.Mutex

	eng     engine.Engine
	rend    renderer.Renderer
	ldr     loader.Loader
	shaders viewer.StageShaders
	heading string

	sc        scene.Scene
	installed bool
	mounted   bool
}

var _ Unit = &panel{}

// PanelBuilderOption is a function that configures a panel.
type PanelBuilderOption func(*panel)

// NewPanel creates the placeholder panel unit. An engine, renderer and loader
// are required.
//
// Parameters:
//   - options: functional options to configure the panel
//
// Returns:
//   - Unit: the configured panel
func NewPanel(options ...PanelBuilderOption) Unit {
	p := &panel{
		heading: "Building 3D Memory",
	}
	for _, opt := range options {
		opt(p)
	}
	if p.eng == nil {
		panic("app: NewPanel requires a non-nil Engine")
	}
	if p.rend == nil {
		panic("app: NewPanel requires a non-nil Renderer")
	}
	if p.ldr == nil {
		panic("app: NewPanel requires a non-nil Loader")
	}
	return p
}

// WithPanelEngine sets the engine hosting the panel scene.
//
// Parameters:
//   - eng: the engine
//
// Returns:
//   - PanelBuilderOption: the option to apply
func WithPanelEngine(eng engine.Engine) PanelBuilderOption {
	return func(p *panel) {
		p.eng = eng
	}
}

// WithPanelRenderer sets the renderer the panel scene draws with.
//
// Parameters:
//   - rend: the renderer
//
// Returns:
//   - PanelBuilderOption: the option to apply
func WithPanelRenderer(rend renderer.Renderer) PanelBuilderOption {
	return func(p *panel) {
		p.rend = rend
	}
}

// WithPanelLoader sets the loader used to initialize the card material.
//
// Parameters:
//   - ldr: the loader
//
// Returns:
//   - PanelBuilderOption: the option to apply
func WithPanelLoader(ldr loader.Loader) PanelBuilderOption {
	return func(p *panel) {
		p.ldr = ldr
	}
}

// WithPanelShaders sets the shader set the panel renders with.
//
// Parameters:
//   - shaders: the compiled shader set
//
// Returns:
//   - PanelBuilderOption: the option to apply
func WithPanelShaders(shaders viewer.StageShaders) PanelBuilderOption {
	return func(p *panel) {
		p.shaders = shaders
	}
}

// WithPanelHeading sets the heading logged when the panel mounts.
//
// Parameters:
//   - heading: the heading text
//
// Returns:
//   - PanelBuilderOption: the option to apply
func WithPanelHeading(heading string) PanelBuilderOption {
	return func(p *panel) {
		if heading != "" {
			p.heading = heading
		}
	}
}

func (p *panel) Install() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.installed {
		return nil
	}

	width := p.eng.Window().Width()
	height := p.eng.Window().Height()

	cam := camera.NewCamera(
		camera.WithFov(45*float32(math.Pi)/180),
		camera.WithAspect(float32(width)/float32(height)),
		camera.WithNear(0.1),
		camera.WithFar(100),
		camera.WithController(camera.NewCameraController(
			camera.WithRadius(5),
			camera.WithTarget(0, 0, 0),
			camera.WithElevation(1.5),
			camera.WithAzimuth(0),
		)),
	)

	p.sc = scene.NewScene("memory_panel", cam, p.rend, p.shaders.OverlayVert,
		scene.WithActive(false),
	)

	verts, idx := meshes.BuildQuad(4, 0.05, panelColor)
	mat := material.NewMaterial(
		material.WithName("panel_material"),
		material.WithBaseColor(panelColor),
		material.WithPipelineKey("memory_panel"),
	)
	card := game_object.NewGameObject(
		game_object.WithModel(model.NewModel(
			model.WithName("panel_card"),
			model.WithBoundingRadius(8),
			model.WithVertexData(common.SliceToBytes(verts)),
			model.WithIndexData(common.SliceToBytes(idx)),
			model.WithIndexCount(len(idx)),
			model.WithMeshProvider(bind_group_provider.NewBindGroupProvider("panel_mesh")),
			model.WithRenderMaterials(mat),
		)),
		game_object.WithPosition(0, 0, 0),
		game_object.WithScale(1, 1, 1),
		game_object.WithEphemeral(true),
	)

	if err := p.ldr.InitMaterialGPU(mat, p.shaders.OverlayFrag, "panel_material"); err != nil {
		return fmt.Errorf("failed to init panel material: %w", err)
	}

	_ = p.sc.Add(card, p.shaders.StaticCompute, p.shaders.OverlayVert, p.shaders.OverlayFrag)
	p.eng.AddScene(panelSceneKey, p.sc)
	p.installed = true
	return nil
}

func (p *panel) Mount() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.installed {
		return fmt.Errorf("panel is not installed")
	}
	if p.mounted {
		return nil
	}
	p.sc.SetActive(true)
	log.Println(p.heading)
	p.mounted = true
	return nil
}

func (p *panel) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return
	}
	p.sc.SetActive(false)
	p.mounted = false
}

func (p *panel) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted
}
