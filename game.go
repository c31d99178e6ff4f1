package main

import (
	"fmt"
	"sync"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/ecs/entity"
	"github.com/milk9111/firstperson/ecs/render"
	"github.com/milk9111/firstperson/ecs/system"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/physics"
	"github.com/milk9111/firstperson/prefabs"
	"golang.design/x/clipboard"
)

type GameOptions struct {
	Debug     bool
	Session   string
	Publisher system.Publisher
	Clipboard bool
}

type Game struct {
	opts GameOptions

	world      *ecs.World
	scheduler  *ecs.Scheduler
	controller *system.PlayerControllerSystem
	physics    *system.PhysicsSystem

	device   *input.Device
	tracker  *input.Tracker
	look     *input.Look
	controls *controls

	player ecs.Entity
	camera ecs.Entity
	scene  entity.Scene

	hud      *ebitenui.UI
	reloader *prefabs.Reloader

	closeOnce sync.Once
}

func NewGame(opts GameOptions) (*Game, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	keymap, err := playerSpec.Bindings()
	if err != nil {
		return nil, err
	}
	cfg, err := playerSpec.Config()
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	scene, err := entity.NewScene(w)
	if err != nil {
		return nil, err
	}
	p, err := entity.NewPlayerFromSpec(w, playerSpec)
	if err != nil {
		return nil, err
	}
	cam, err := entity.NewCamera(w, playerSpec.SpawnPoint(), cfg.EyeHeight)
	if err != nil {
		return nil, err
	}

	device := input.NewDevice()
	tracker := input.NewTracker(keymap)
	tracker.Activate(device)
	look := input.NewLook(playerSpec.Look.Sensitivity)

	g := &Game{
		opts:       opts,
		world:      w,
		controller: system.NewPlayerControllerSystem(common.TickDuration),
		physics:    system.NewPhysicsSystem(physics.NewWorld(common.Gravity), common.TickSeconds),
		device:     device,
		tracker:    tracker,
		look:       look,
		controls:   newControls(device, look),
		player:     p,
		camera:     cam,
		scene:      scene,
		hud:        NewInstructionsUI(keymap),
	}
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(tracker),
		system.NewLookSystem(look),
		g.controller,
		g.physics,
		system.NewRespawnSystem(),
		system.NewCameraSystem(),
		system.NewTelemetrySystem(opts.Publisher, opts.Session),
	)

	if r, err := prefabs.NewReloader(); err != nil {
		common.Log.Debugw("prefab hot reload disabled", "error", err)
	} else {
		g.reloader = r
		for _, name := range []string{"player.yaml", "camera.yaml"} {
			if data, err := prefabs.Load(name); err == nil {
				r.Seen(name, data)
			}
		}
	}

	common.Log.Infow("game ready", "spawn", playerSpec.SpawnPoint(), "boxes", len(scene.Boxes))
	return g, nil
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Close()
		return ebiten.Termination
	}

	g.controls.update()
	g.applyReloads()
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySpawn()
	}

	g.scheduler.Update(g.world)
	if !g.controls.locked() {
		g.hud.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.scene.Background)

	if view, ok := g.view(screen); ok {
		drawScene(screen, render.Collect(g.world, view))
	}

	if g.controls.locked() {
		drawCrosshair(screen)
	} else {
		g.hud.Draw(screen)
	}

	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, g.debugText(), 10, screen.Bounds().Dy()-60)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close tears the controller down: the tracker stops listening and forgets
// held keys, the controller leaves the frame loop, pending jump cooldowns are
// cancelled and the physics world is released.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		g.tracker.Deactivate()
		g.scheduler.Remove(g.controller)
		ecs.ForEach(g.world, component.JumpComponent.Kind(), func(_ ecs.Entity, j *component.Jump) {
			j.Gate.Cancel()
		})
		g.physics.Close()
		if err := g.reloader.Close(); err != nil {
			common.Log.Warnw("close prefab watcher", "error", err)
		}
		g.controls.unlock()
		common.Log.Infow("game closed")
	})
}

func (g *Game) view(screen *ebiten.Image) (*render.View, bool) {
	cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind())
	if !ok {
		return nil, false
	}
	t, ok := ecs.Get(g.world, g.camera, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	v := &render.View{
		Eye:    t.Position,
		FOV:    cam.FOV,
		Near:   cam.Near,
		Far:    cam.Far,
		Width:  float64(screen.Bounds().Dx()),
		Height: float64(screen.Bounds().Dy()),
	}
	if look, ok := ecs.Get(g.world, g.camera, component.LookComponent.Kind()); ok {
		v.Look = look.Orientation
	}
	v.Prepare()
	return v, true
}

func (g *Game) applyReloads() {
	if g.reloader == nil {
		return
	}
	select {
	case err, ok := <-g.reloader.Errors():
		if ok {
			common.Log.Warnw("prefab watcher", "error", err)
		}
	default:
	}

	for _, change := range g.reloader.Poll() {
		switch change.Name {
		case "player.yaml":
			spec, err := prefabs.DecodeSpec[prefabs.PlayerSpec](change.Name, change.Data)
			if err != nil {
				common.Log.Warnw("reload player", "error", err)
				continue
			}
			if err := entity.ApplyPlayerSpec(g.world, g.player, &spec); err != nil {
				common.Log.Warnw("reload player", "error", err)
				continue
			}
			if km, err := spec.Bindings(); err == nil {
				g.tracker.SetKeymap(km)
				g.hud = NewInstructionsUI(km)
			}
			if spec.Look.Sensitivity > 0 {
				g.look.Sensitivity = spec.Look.Sensitivity
			}
			common.Log.Infow("reloaded player tuning")
		case "camera.yaml":
			spec, err := prefabs.DecodeSpec[prefabs.CameraSpec](change.Name, change.Data)
			if err != nil {
				common.Log.Warnw("reload camera", "error", err)
				continue
			}
			entity.ApplyCameraSpec(g.world, &spec)
			common.Log.Infow("reloaded camera")
		default:
			common.Log.Infow("prefab changed; restart to apply", "name", change.Name)
		}
	}
}

func (g *Game) copySpawn() {
	t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	snippet, err := prefabs.SpawnSnippet(t.Position)
	if err != nil {
		common.Log.Warnw("spawn snippet", "error", err)
		return
	}
	if !g.opts.Clipboard {
		common.Log.Infow("clipboard unavailable; spawn snippet logged instead", "snippet", snippet)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(snippet))
	common.Log.Infow("copied spawn snippet", "position", t.Position)
}

func (g *Game) debugText() string {
	t, _ := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	j, _ := ecs.Get(g.world, g.player, component.JumpComponent.Kind())
	if t == nil || j == nil {
		return fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS())
	}
	o := g.look.Orientation()
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\npos: %.2f %.2f %.2f  vel: %.2f %.2f %.2f\nyaw: %.2f pitch: %.2f  grounded: %v  jump: %s (%d)",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		t.Position.X(), t.Position.Y(), t.Position.Z(),
		t.Velocity.X(), t.Velocity.Y(), t.Velocity.Z(),
		o.Yaw, o.Pitch, t.Grounded, j.Gate.State(), j.Count)
}
