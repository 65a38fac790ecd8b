package main

import (
	"image/color"
	"log"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/config"
	"github.com/Carmen-Shannon/oxy-ar/engine"
	"github.com/Carmen-Shannon/oxy-ar/engine/ar"
	"github.com/Carmen-Shannon/oxy-ar/engine/camera"
	"github.com/Carmen-Shannon/oxy-ar/engine/camera_feed"
	"github.com/Carmen-Shannon/oxy-ar/engine/capture"
	"github.com/Carmen-Shannon/oxy-ar/engine/compositor"
	"github.com/Carmen-Shannon/oxy-ar/engine/gallery"
	"github.com/Carmen-Shannon/oxy-ar/engine/input"
	"github.com/Carmen-Shannon/oxy-ar/engine/loader"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
	"github.com/Carmen-Shannon/oxy-ar/engine/panel"
	"github.com/Carmen-Shannon/oxy-ar/engine/placement"
	"github.com/Carmen-Shannon/oxy-ar/engine/presenter"
	"github.com/Carmen-Shannon/oxy-ar/engine/registry"
	"github.com/Carmen-Shannon/oxy-ar/engine/rotation"
	"github.com/Carmen-Shannon/oxy-ar/engine/scene"
	"github.com/Carmen-Shannon/oxy-ar/engine/touch"
	"github.com/Carmen-Shannon/oxy-ar/engine/viewer"
	"github.com/Carmen-Shannon/oxy-ar/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ARViewer] ERROR: %v", err)
	}

	templates := loadTemplates(cfg.Models)

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)),
	)
	win := eng.Window()
	width, height := win.Size()

	// ── Camera + Tracking ───────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithScreenSize(width, height),
		camera.WithClipPlanes(0.01, 100),
		camera.WithController(camera.NewOrbitController()),
	)
	extent := cfg.Placement.FloorExtent
	tracker := ar.NewTracker(ar.WithFloorPlane(cfg.Placement.FloorY, mgl32.Vec2{extent, extent}))

	// ── Scene + Models ──────────────────────────────────────────────────
	sc := scene.NewScene("AR Viewer", scene.WithActive(true))
	anchor := sc.NewAnchor("content", common.Pose{
		Position: mgl32.Vec3{cfg.Models.AnchorX, cfg.Models.AnchorY, cfg.Models.AnchorZ},
		Rotation: mgl32.QuatIdent(),
	})
	reg := registry.NewRegistry(sc,
		registry.WithAnchor(anchor),
		registry.WithTemplates(templates...),
	)

	// ── UI ──────────────────────────────────────────────────────────────
	panels := panel.NewSwitcher(panel.WithPanelNames(cfg.Panels.Names...))
	overlay := panel.NewGroup(
		panel.NewFlag("shutter", true),
		panel.NewFlag("model_picker", true),
		panel.NewFlag("reset_buttons", true),
	)

	// ── Compositor + Presenter ──────────────────────────────────────────
	comp := compositor.NewCompositor(cam,
		compositor.WithModels(reg),
		compositor.WithPanels(panels),
		compositor.WithElements(overlay),
	)
	pres, err := presenter.NewPresenter(win.SurfaceDescriptor(), width, height,
		presenter.WithVSync(cfg.Window.VSync),
	)
	if err != nil {
		log.Fatalf("[ARViewer] ERROR: %v", err)
	}

	// ── Camera Feed ─────────────────────────────────────────────────────
	provider := camera_feed.NewDeviceProvider()
	if cfg.Camera.Synthetic {
		provider = camera_feed.NewSyntheticProvider()
	}
	feed := camera_feed.NewFeed(camera_feed.NewStaticPermissions(), provider,
		camera_feed.WithDelay(cfg.Camera.Delay),
		camera_feed.WithTimeout(cfg.Camera.Timeout),
		camera_feed.WithRequestedMode(cfg.Camera.Width, cfg.Camera.Height, cfg.Camera.FPS),
		camera_feed.WithLoadingIndicator(comp),
	)
	comp.SetFrameSource(feed)

	// ── Capture ─────────────────────────────────────────────────────────
	pipeline := capture.NewPipeline(
		gallery.NewGallery(cfg.Capture.GalleryDir, gallery.WithUniqueNames(cfg.Capture.UniqueNames)),
		capture.WithRenderer(comp),
		capture.WithFramebuffer(pres),
		capture.WithAlbums(cfg.Capture.ImageAlbum, cfg.Capture.PhotoAlbum),
		capture.WithFileName(cfg.Capture.FileName),
		capture.WithWorkers(cfg.Capture.Workers),
	)

	// ── Viewer ──────────────────────────────────────────────────────────
	emulator := input.NewEmulator(
		input.WithScreenHeight(height),
		input.WithPinchSpread(cfg.Interaction.PinchSpread),
	)
	v := viewer.NewViewer(reg,
		viewer.WithRotation(rotation.NewController(reg, rotation.WithRotationSpeed(cfg.Interaction.RotationSpeed))),
		viewer.WithTouch(touch.NewController(emulator, reg,
			touch.WithDragFactor(cfg.Interaction.DragFactor),
			touch.WithPinchFactor(cfg.Interaction.PinchFactor),
			touch.WithPinchDeadZone(cfg.Interaction.PinchDeadZone),
			touch.WithScaleBounds(cfg.Interaction.MinScale, cfg.Interaction.MaxScale),
		)),
		viewer.WithPlacement(placement.NewResolver(cam, tracker, reg,
			placement.WithFallbackDistance(cfg.Placement.FallbackDistance),
		)),
		viewer.WithPanels(panels),
		viewer.WithUIGroup(overlay),
		viewer.WithCapture(pipeline),
		viewer.WithFeed(feed),
		viewer.WithClock(eng.Elapsed),
	)

	eng.AddUpdater(v)
	eng.AddUpdater(engine.UpdaterFunc(func(_ float32) {
		emulator.Advance()
	}))
	eng.SetRenderCallback(func(_ float32) {
		comp.Render()
		if err := pres.Present(comp.Display()); err != nil {
			log.Printf("[ARViewer] WARN: present failed: %v", err)
		}
	})

	win.SetResizeCallback(func(width, height int) {
		cam.SetScreenSize(width, height)
		pres.Resize(width, height)
		emulator.SetScreenHeight(height)
	})

	bindInput(eng, v, cam, emulator)

	eng.OnTeardown(pres.Release)
	eng.OnTeardown(v.Close)

	if reg.Count() > 0 && !v.SwitchModel(cfg.Models.Initial) {
		log.Printf("[ARViewer] WARN: initial model %d out of range", cfg.Models.Initial)
	}
	v.Start()

	log.Printf("[ARViewer] %d model(s), %d panel(s); keys: 1-9 model, 0 clear, arrows rotate, R/T/G reset, V toggle, H/U UI, F1-F4 panels, C/P capture, WASD/QE camera",
		reg.Count(), panels.Count())
	eng.Run()
}

// loadTemplates loads the configured model files in order. Without any configured files a
// single placeholder marker is registered so the viewer still has something to place.
//
// Parameters:
//   - cfg: the models configuration
//
// Returns:
//   - []model.Model: the templates in registry order
func loadTemplates(cfg config.ModelsConfig) []model.Model {
	if len(cfg.Paths) == 0 {
		log.Printf("[ARViewer] WARN: no models configured, using a placeholder")
		return []model.Model{model.NewModel(
			model.WithName("placeholder"),
			model.WithBoundingRadius(0.25),
			model.WithColor(color.RGBA{R: 0, G: 170, B: 255, A: 255}),
		)}
	}

	templates, err := loader.NewLoader(loader.BackendTypeGLTF).LoadAll(cfg.Paths)
	if err != nil {
		log.Fatalf("[ARViewer] ERROR: %v", err)
	}
	return templates
}
