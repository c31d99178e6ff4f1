// Command prefabcheck loads the prefabs, builds the scene and drops the player
// into it without opening a window. It exits non-zero when a prefab fails to
// load or the player never comes to rest.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/ecs/entity"
	"github.com/milk9111/firstperson/ecs/system"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/physics"
	"github.com/milk9111/firstperson/prefabs"
)

// heldKeys is a key source that reports the same keys every frame.
type heldKeys input.KeyState

func (h heldKeys) State() input.KeyState { return input.KeyState(h) }

func main() {
	settle := flag.Duration("settle", 3*time.Second, "simulated time allowed for the player to land")
	walk := flag.Duration("walk", 0, "simulated time to hold forward after landing")
	yaw := flag.Float64("yaw", 0, "look yaw in radians while walking")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	if *verbose {
		if err := common.InitLogger(os.DevNull, true); err != nil {
			log.Fatal(err)
		}
	}

	if err := run(*settle, *walk, *yaw); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(settle, walk time.Duration, yaw float64) error {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	if _, err := playerSpec.Bindings(); err != nil {
		return err
	}
	cfg, err := playerSpec.Config()
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	scene, err := entity.NewScene(w)
	if err != nil {
		return err
	}
	p, err := entity.NewPlayerFromSpec(w, playerSpec)
	if err != nil {
		return err
	}
	if _, err := entity.NewCamera(w, playerSpec.SpawnPoint(), cfg.EyeHeight); err != nil {
		return err
	}
	fmt.Printf("scene: %d boxes, spawn %v\n", len(scene.Boxes), playerSpec.SpawnPoint())

	keys := heldKeys{}
	look := input.NewLook(0)
	phys := system.NewPhysicsSystem(physics.NewWorld(common.Gravity), common.TickSeconds)
	defer phys.Close()

	sched := ecs.NewScheduler(
		system.NewInputSystem(&keys),
		system.NewLookSystem(look),
		system.NewPlayerControllerSystem(common.TickDuration),
		phys,
		system.NewRespawnSystem(),
		system.NewCameraSystem(),
	)

	frames := int(settle / common.TickDuration)
	landed := false
	for i := 0; i < frames && !landed; i++ {
		sched.Update(w)
		if i == 0 {
			world := phys.World()
			statics := world.StaticBoxes()
			fmt.Printf("physics: gravity %.2f, ground %.0fm, %d static boxes\n", world.Gravity(), world.GroundSize(), len(statics))
			if len(statics) != len(scene.Boxes) {
				return fmt.Errorf("prefabcheck: %d scene boxes but %d registered with physics", len(scene.Boxes), len(statics))
			}
		}
		t, ok := ecs.Get(w, p, component.TransformComponent.Kind())
		landed = ok && t.Grounded
	}
	t, ok := ecs.Get(w, p, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("prefabcheck: player has no transform")
	}
	if !landed {
		return fmt.Errorf("prefabcheck: player did not land within %v, at %v", settle, t.Position)
	}
	fmt.Printf("landed at %.2f %.2f %.2f\n", t.Position.X(), t.Position.Y(), t.Position.Z())

	if walk <= 0 {
		return nil
	}
	look.Lock()
	look.Set(input.Orientation{Yaw: yaw})
	keys = heldKeys(input.KeyState{}.With(input.KeyForward))
	start := t.Position
	for i := 0; i < int(walk/common.TickDuration); i++ {
		sched.Update(w)
	}
	t, _ = ecs.Get(w, p, component.TransformComponent.Kind())
	fmt.Printf("walked %.2f m to %.2f %.2f %.2f\n", t.Position.Sub(start).Len(), t.Position.X(), t.Position.Y(), t.Position.Z())
	return nil
}
