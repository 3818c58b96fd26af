package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-go/common"
	"github.com/Carmen-Shannon/oxy-go/engine"
	"github.com/Carmen-Shannon/oxy-go/engine/loader"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer"
	"github.com/Carmen-Shannon/oxy-go/engine/window"

	"github.com/hiroki-yod/building-3d-memory/app"
	"github.com/hiroki-yod/building-3d-memory/config"
	"github.com/hiroki-yod/building-3d-memory/modelload"
	"github.com/hiroki-yod/building-3d-memory/surface"
	"github.com/hiroki-yod/building-3d-memory/viewer"
)

func main() {
	configPath := flag.String("config", "building3d.toml", "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithTickRate(60),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
		)),
	)

	// ── Renderer ────────────────────────────────────────────────────────
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		eng.Window(),
		renderer.WithPresentMode(renderer.PresentModeUncapped),
	)
	ldr := loader.NewLoader(loader.BackendTypeGLTF, loader.WithRenderer(r))

	// ── Display units ───────────────────────────────────────────────────
	shaders, err := viewer.LoadStageShaders(cfg.Assets.ShaderDir)
	if err != nil {
		log.Fatalf("Failed to load shaders: %v", err)
	}
	surf := surface.NewWindowSurface(eng.Window())

	// Progress arrives per read chunk; log it in quarter steps to keep the
	// output readable for large files.
	lastQuarter := map[modelload.LoadStage]int{}
	pipe := modelload.NewPipeline(
		modelload.WithMaterialPath(cfg.Assets.MaterialPath),
		modelload.WithGeometryPath(cfg.Assets.GeometryPath),
		modelload.WithScale(cfg.Model.Scale),
		modelload.WithProgress(func(stage modelload.LoadStage, fraction float64) {
			quarter := int(fraction * 4)
			if quarter > lastQuarter[stage] {
				lastQuarter[stage] = quarter
				log.Printf("Loading %s: %.0f%%", stage, fraction*100)
			}
		}),
	)

	stage := viewer.NewOxyStage(eng, r, ldr, cfg, shaders)
	sceneUnit := viewer.NewViewer(
		viewer.WithSurface(surf),
		viewer.WithStage(stage),
		viewer.WithPipeline(pipe),
		viewer.WithNavigatorOptions(
			viewer.WithDamping(cfg.Camera.DampingFactor),
			viewer.WithDragSensitivity(cfg.Camera.DragSensitivity),
			viewer.WithZoomSensitivity(cfg.Camera.ZoomSensitivity),
		),
	)

	panelUnit := app.NewPanel(
		app.WithPanelEngine(eng),
		app.WithPanelRenderer(r),
		app.WithPanelLoader(ldr),
		app.WithPanelShaders(shaders),
		app.WithPanelHeading(cfg.Window.Title),
	)

	// The engine's scene set is not safe to mutate once the render loop runs,
	// so both units register their scenes now, before eng.Run(). Toggling
	// later only flips scene activation.
	if err := stage.Install(); err != nil {
		log.Fatalf("Failed to install 3D stage: %v", err)
	}
	if err := panelUnit.Install(); err != nil {
		log.Fatalf("Failed to install panel: %v", err)
	}

	root := app.NewRootView(panelUnit, sceneUnit)
	if err := root.Start(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	// ── Input Handling ──────────────────────────────────────────────────
	// The surface owns the window callbacks, so the swap chain resize is
	// wired exactly once here; the mounted viewer only updates its camera
	// aspect on resize.
	_ = surf.OnResize(func(width, height int) {
		r.Resize(width, height)
	})
	_ = surf.OnKeyDown(func(keyCode uint32) {
		switch keyCode {
		case common.KeySpace:
			if err := root.Toggle(); err != nil {
				log.Printf("Failed to switch display mode: %v", err)
			}
		case common.KeyEsc:
			eng.Quit()
		}
	})

	eng.SetTickCallback(func(dt float32) {
		sceneUnit.Step(dt)
	})

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  Building 3D Memory                                 ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Space:  Toggle panel / 3D scene                    ║")
	fmt.Println("║  Camera: Middle-mouse drag=Orbit  Scroll=Zoom       ║")
	fmt.Println("║  Esc:    Quit                                       ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	log.Println("Starting Building 3D Memory")
	eng.Run()
	root.Close()
}
