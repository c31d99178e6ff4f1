package prefabs

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/player"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load player spec: %v", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg != player.DefaultConfig() {
		t.Fatalf("expected shipped tuning to match defaults, got %+v", cfg)
	}
	if spec.SpawnPoint() != player.DefaultSpawn {
		t.Fatalf("expected spawn %v, got %v", player.DefaultSpawn, spec.SpawnPoint())
	}
	if spec.KillHeight() != DefaultRespawnBelow {
		t.Fatalf("expected kill height %v, got %v", DefaultRespawnBelow, spec.KillHeight())
	}
	c := spec.Capsule()
	if c.Radius != 0.3 || c.HalfHeight != 0.7 || c.Mass != 1 {
		t.Fatalf("unexpected capsule %+v", c)
	}

	km, err := spec.Bindings()
	if err != nil {
		t.Fatalf("bindings: %v", err)
	}
	for code, want := range input.DefaultKeymap() {
		if km[code] != want {
			t.Fatalf("binding %s: expected %v, got %v", code, want, km[code])
		}
	}
}

func TestPlayerSpecOverrides(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, cfg player.Config, spec PlayerSpec)
		wantErr bool
	}{
		{
			name: "empty_uses_defaults",
			yaml: "name: player\n",
			check: func(t *testing.T, cfg player.Config, spec PlayerSpec) {
				if cfg != player.DefaultConfig() {
					t.Fatalf("expected defaults, got %+v", cfg)
				}
				km, err := spec.Bindings()
				if err != nil || len(km) != len(input.DefaultKeymap()) {
					t.Fatalf("expected default keymap, got %v err=%v", km, err)
				}
			},
		},
		{
			name: "tuning",
			yaml: "move_speed: 0.8\njump_cooldown: 250ms\ngrounded_jump: true\nrespawn_below: -5\n",
			check: func(t *testing.T, cfg player.Config, spec PlayerSpec) {
				if cfg.MoveSpeed != 0.8 || cfg.JumpCooldown != 250*time.Millisecond || !cfg.GroundedJump {
					t.Fatalf("overrides not applied: %+v", cfg)
				}
				if spec.KillHeight() != -5 {
					t.Fatalf("expected kill height -5, got %v", spec.KillHeight())
				}
			},
		},
		{
			name: "custom_keymap",
			yaml: "keymap:\n  Z: forward\n  Q: left\n",
			check: func(t *testing.T, _ player.Config, spec PlayerSpec) {
				km, err := spec.Bindings()
				if err != nil {
					t.Fatal(err)
				}
				if km["Z"] != input.KeyForward || km["Q"] != input.KeyLeft {
					t.Fatalf("unexpected keymap %v", km)
				}
				if _, ok := km["W"]; ok {
					t.Fatalf("custom keymap must replace the defaults")
				}
			},
		},
		{name: "negative_speed", yaml: "move_speed: -1\n", wantErr: true},
		{name: "negative_cooldown", yaml: "jump_cooldown: -1s\n", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := DecodeSpec[PlayerSpec]("player.yaml", []byte(tc.yaml))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			cfg, err := spec.Config()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("config: %v", err)
			}
			tc.check(t, cfg, spec)
		})
	}
}

func TestPlayerSpecBadKeymap(t *testing.T) {
	spec, err := DecodeSpec[PlayerSpec]("player.yaml", []byte("keymap:\n  X: fly\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := spec.Bindings(); err == nil {
		t.Fatalf("expected unknown key name to fail")
	}
}

func TestEmbeddedSceneSpec(t *testing.T) {
	scene, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	if scene.Ground.Size != 50 {
		t.Fatalf("expected 50m ground, got %v", scene.Ground.Size)
	}
	grey := scene.Ground.Color.RGBA8(color.RGBA{})
	if grey != (color.RGBA{0x66, 0x66, 0x66, 0xff}) {
		t.Fatalf("unexpected ground color %v", grey)
	}

	boxes, err := scene.AllBoxes()
	if err != nil {
		t.Fatalf("all boxes: %v", err)
	}
	if len(boxes) != len(scene.Boxes)+8 {
		t.Fatalf("expected listed boxes plus 8 pillars, got %d", len(boxes))
	}
	for _, b := range boxes {
		if err := b.Box().Validate(); err != nil {
			t.Fatalf("box %s: %v", b.Name, err)
		}
		if b.Color == nil {
			t.Fatalf("box %s has no color", b.Name)
		}
	}
}

func TestEmbeddedCameraSpec(t *testing.T) {
	spec, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("load camera: %v", err)
	}
	if spec.Target != "player" || spec.FOVDeg <= 0 || spec.Near <= 0 || spec.Far <= spec.Near {
		t.Fatalf("unexpected camera spec %+v", spec)
	}
}

func TestRunGeometryScript(t *testing.T) {
	src, err := LoadScript("pillars.tengo")
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	boxes, err := RunGeometryScript(src, map[string]any{"count": 4, "radius": 10, "size": 2, "height": 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(boxes) != 4 {
		t.Fatalf("expected 4 boxes, got %d", len(boxes))
	}
	first := boxes[0].Box()
	want := mgl64.Vec3{10, 1.5, 0}
	if !first.Center().ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("expected first pillar centred at %v, got %v", want, first.Center())
	}
	if first.Max.Y() != 3 || math.Abs(first.Max.X()-first.Min.X()-2) > 1e-9 {
		t.Fatalf("unexpected pillar extent %v..%v", first.Min, first.Max)
	}
}

func TestRunGeometryScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "boxes := ["},
		{"missing_boxes", "x := 1"},
		{"not_a_map", "boxes := [1]"},
		{"short_vector", "boxes := [{min: [0, 0], max: [1, 1, 1]}]"},
		{"non_numeric", `boxes := [{min: [0, "a", 0], max: [1, 1, 1]}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RunGeometryScript([]byte(tc.src), nil); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: `"#666"`, want: color.RGBA{0x66, 0x66, 0x66, 0xff}},
		{in: `"#a0522d"`, want: color.RGBA{0xa0, 0x52, 0x2d, 0xff}},
		{in: `"ff000080"`, want: color.RGBA{0x80, 0, 0, 0x80}},
		{in: `"#12345"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := c.RGBA8(color.RGBA{}); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestReloaderSeen(t *testing.T) {
	r := &Reloader{}
	if !r.Seen("player.yaml", []byte("a: 1")) {
		t.Fatalf("first version must count as a change")
	}
	if r.Seen("player.yaml", []byte("a: 1")) {
		t.Fatalf("identical content must not count as a change")
	}
	if !r.Seen("player.yaml", []byte("a: 2")) {
		t.Fatalf("new content must count as a change")
	}
	if !r.Seen("camera.yaml", []byte("a: 2")) {
		t.Fatalf("hashes are tracked per file")
	}
	var nilReloader *Reloader
	if nilReloader.Seen("x", nil) || nilReloader.Poll() != nil {
		t.Fatalf("nil reloader must be inert")
	}
}

func TestSpawnSnippetRoundTrips(t *testing.T) {
	snippet, err := SpawnSnippet(mgl64.Vec3{1.234, 1, -7.5})
	if err != nil {
		t.Fatal(err)
	}
	spec, err := DecodeSpec[PlayerSpec]("player.yaml", []byte(snippet))
	if err != nil {
		t.Fatalf("snippet is not a valid player spec: %v\n%s", err, snippet)
	}
	if got := spec.SpawnPoint(); got != (mgl64.Vec3{1.23, 1, -7.5}) {
		t.Fatalf("expected rounded spawn, got %v", got)
	}
}
