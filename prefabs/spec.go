package prefabs

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/physics"
	"github.com/milk9111/firstperson/player"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

// DecodeSpec parses an already loaded prefab.
func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

type ColliderSpec struct {
	Radius     float64 `yaml:"radius"`
	HalfHeight float64 `yaml:"half_height"`
	Mass       float64 `yaml:"mass"`
}

type LookSpec struct {
	Sensitivity float64 `yaml:"sensitivity"`
}

type PlayerSpec struct {
	Name          string            `yaml:"name"`
	MoveSpeed     float64           `yaml:"move_speed"`
	VelocityScale float64           `yaml:"velocity_scale"`
	JumpForce     float64           `yaml:"jump_force"`
	JumpCooldown  time.Duration     `yaml:"jump_cooldown"`
	EyeHeight     float64           `yaml:"eye_height"`
	GroundedJump  bool              `yaml:"grounded_jump"`
	RespawnBelow  *float64          `yaml:"respawn_below"`
	Spawn         *Vec3Spec         `yaml:"spawn"`
	Collider      ColliderSpec      `yaml:"collider"`
	Look          LookSpec          `yaml:"look"`
	Keymap        map[string]string `yaml:"keymap"`
}

// DefaultRespawnBelow is the kill height used when a spec leaves it out.
const DefaultRespawnBelow = -20.0

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config returns the controller tuning, with defaults for omitted values.
func (s *PlayerSpec) Config() (player.Config, error) {
	cfg := player.DefaultConfig()
	if s == nil {
		return cfg, nil
	}
	for name, v := range map[string]float64{
		"move_speed":     s.MoveSpeed,
		"velocity_scale": s.VelocityScale,
		"jump_force":     s.JumpForce,
		"eye_height":     s.EyeHeight,
	} {
		if v < 0 || math.IsNaN(v) {
			return cfg, fmt.Errorf("prefabs: player %s must be non-negative, got %v", name, v)
		}
	}
	if s.JumpCooldown < 0 {
		return cfg, fmt.Errorf("prefabs: player jump_cooldown must be non-negative, got %v", s.JumpCooldown)
	}

	if s.MoveSpeed > 0 {
		cfg.MoveSpeed = s.MoveSpeed
	}
	if s.VelocityScale > 0 {
		cfg.VelocityScale = s.VelocityScale
	}
	if s.JumpForce > 0 {
		cfg.JumpForce = s.JumpForce
	}
	if s.JumpCooldown > 0 {
		cfg.JumpCooldown = s.JumpCooldown
	}
	if s.EyeHeight > 0 {
		cfg.EyeHeight = s.EyeHeight
	}
	cfg.GroundedJump = s.GroundedJump
	return cfg, nil
}

func (s *PlayerSpec) SpawnPoint() mgl64.Vec3 {
	if s == nil || s.Spawn == nil {
		return player.DefaultSpawn
	}
	return s.Spawn.Vec3()
}

func (s *PlayerSpec) KillHeight() float64 {
	if s == nil || s.RespawnBelow == nil {
		return DefaultRespawnBelow
	}
	return *s.RespawnBelow
}

func (s *PlayerSpec) Capsule() physics.Capsule {
	c := physics.DefaultCapsule()
	if s == nil {
		return c
	}
	if s.Collider.Radius > 0 {
		c.Radius = s.Collider.Radius
	}
	if s.Collider.HalfHeight > 0 {
		c.HalfHeight = s.Collider.HalfHeight
	}
	if s.Collider.Mass > 0 {
		c.Mass = s.Collider.Mass
	}
	return c
}

// Bindings returns the configured keymap, or the default one when none is set.
func (s *PlayerSpec) Bindings() (input.Keymap, error) {
	if s == nil || len(s.Keymap) == 0 {
		return input.DefaultKeymap(), nil
	}
	km, err := input.ParseKeymap(s.Keymap)
	if err != nil {
		return nil, fmt.Errorf("prefabs: player keymap: %w", err)
	}
	return km, nil
}

type CameraSpec struct {
	Name   string  `yaml:"name"`
	Target string  `yaml:"target"`
	FOVDeg float64 `yaml:"fov_deg"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type GroundSpec struct {
	Size  float64    `yaml:"size"`
	Color *YAMLColor `yaml:"color"`
}

type LightSpec struct {
	Ambient   float64  `yaml:"ambient"`
	Intensity float64  `yaml:"intensity"`
	Position  Vec3Spec `yaml:"position"`
}

type BoxSpec struct {
	Name  string     `yaml:"name"`
	Min   Vec3Spec   `yaml:"min"`
	Max   Vec3Spec   `yaml:"max"`
	Color *YAMLColor `yaml:"color"`
}

func (b BoxSpec) Box() physics.Box {
	return physics.NewBox(b.Min.Vec3(), b.Max.Vec3())
}

// ScriptSpec runs a tengo script that returns extra static boxes.
type ScriptSpec struct {
	Path   string         `yaml:"path"`
	Color  *YAMLColor     `yaml:"color"`
	Params map[string]any `yaml:"params"`
}

type SceneSpec struct {
	Name       string       `yaml:"name"`
	Background *YAMLColor   `yaml:"background"`
	Ground     GroundSpec   `yaml:"ground"`
	Light      LightSpec    `yaml:"light"`
	Boxes      []BoxSpec    `yaml:"boxes"`
	Scripts    []ScriptSpec `yaml:"scripts"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec]("scene.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// AllBoxes returns the listed boxes followed by every scripted one.
func (s *SceneSpec) AllBoxes() ([]BoxSpec, error) {
	if s == nil {
		return nil, nil
	}
	out := append([]BoxSpec(nil), s.Boxes...)
	for _, sc := range s.Scripts {
		src, err := LoadScript(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("prefabs: load script %s: %w", sc.Path, err)
		}
		boxes, err := RunGeometryScript(src, sc.Params)
		if err != nil {
			return nil, fmt.Errorf("prefabs: run script %s: %w", sc.Path, err)
		}
		for i := range boxes {
			if boxes[i].Color == nil {
				boxes[i].Color = sc.Color
			}
		}
		out = append(out, boxes...)
	}
	return out, nil
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the color, or fallback when c is unset.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) == 3 {
		s = strings.Repeat(s[0:1], 2) + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2)
	}

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
